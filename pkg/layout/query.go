package layout

// Visible returns the geometries in items that intersect r, in ordinal
// order. items must be ordered as produced by Build.
//
// A binary search locates one row within vertical reach of r, then the
// search walks outward one chunk at a time in both directions, stopping a
// direction at the first chunk with nothing within vertical reach. The cost
// is O(log n + k) for k rows touching r.
func Visible(items []ItemGeometry, r Rect) []ItemGeometry {
	if len(items) == 0 || r.IsEmpty() {
		return nil
	}
	seed, ok := search(items, r)
	if !ok {
		return nil
	}

	first := seed - seed%ChunkSize
	lo, hi := first, first
	for lo >= ChunkSize && chunkReaches(items, lo-ChunkSize, r) {
		lo -= ChunkSize
	}
	for hi+ChunkSize < len(items) && chunkReaches(items, hi+ChunkSize, r) {
		hi += ChunkSize
	}

	var out []ItemGeometry
	for _, g := range items[lo:min(hi+ChunkSize, len(items))] {
		if g.Frame.Intersects(r) {
			out = append(out, g)
		}
	}
	return out
}

// Scan is the linear reference for Visible: it tests every geometry.
func Scan(items []ItemGeometry, r Rect) []ItemGeometry {
	var out []ItemGeometry
	for _, g := range items {
		if g.Frame.Intersects(r) {
			out = append(out, g)
		}
	}
	return out
}

// search returns a position whose chunk is within vertical reach of r.
// Chunks, unlike individual items, are ordered by vertical position without
// exception, so the predicate is evaluated on the whole chunk span.
func search(items []ItemGeometry, r Rect) (int, bool) {
	lower, upper := 0, len(items)-1
	for lower <= upper {
		mid := lower + (upper-lower)/2
		top, bottom := chunkSpan(items, mid)
		switch {
		case bottom < r.MinY():
			lower = mid + 1
		case top > r.MaxY():
			upper = mid - 1
		default:
			return mid, true
		}
	}
	return 0, false
}

// chunkSpan returns the top and bottom edges of the chunk holding position i.
func chunkSpan(items []ItemGeometry, i int) (top, bottom float64) {
	start := i - i%ChunkSize
	end := min(start+ChunkSize, len(items))
	top, bottom = items[start].Frame.MinY(), items[start].Frame.MaxY()
	for _, g := range items[start+1 : end] {
		top = min(top, g.Frame.MinY())
		bottom = max(bottom, g.Frame.MaxY())
	}
	return top, bottom
}

// chunkReaches reports whether any member of the chunk starting at start is
// within vertical reach of r.
func chunkReaches(items []ItemGeometry, start int, r Rect) bool {
	for _, g := range items[start:min(start+ChunkSize, len(items))] {
		if g.reaches(r) {
			return true
		}
	}
	return false
}
