package layout

// Rect is an axis-aligned rectangle in content coordinates. Y grows
// downward, so MinY is the top edge and MaxY the bottom edge.
type Rect struct {
	X, Y float64
	W, H float64
}

// MinX returns the left edge.
func (r Rect) MinX() float64 { return r.X }

// MaxX returns the right edge.
func (r Rect) MaxX() float64 { return r.X + r.W }

// MinY returns the top edge.
func (r Rect) MinY() float64 { return r.Y }

// MaxY returns the bottom edge.
func (r Rect) MaxY() float64 { return r.Y + r.H }

// IsEmpty reports whether r has no area.
func (r Rect) IsEmpty() bool { return r.W <= 0 || r.H <= 0 }

// Intersects reports whether r and o share a region of positive area.
// Rectangles that only touch along an edge do not intersect, and an empty
// rectangle intersects nothing.
func (r Rect) Intersects(o Rect) bool {
	if r.IsEmpty() || o.IsEmpty() {
		return false
	}
	return r.MinX() < o.MaxX() && o.MinX() < r.MaxX() &&
		r.MinY() < o.MaxY() && o.MinY() < r.MaxY()
}

// ItemGeometry is the frame assigned to the item at Position.
type ItemGeometry struct {
	Position int
	Frame    Rect
}

// reaches reports whether g's vertical span touches the vertical span of r.
// It is deliberately looser than Intersects: siblings inside an expanded
// chunk overlap vertically without sharing a top edge.
func (g ItemGeometry) reaches(r Rect) bool {
	return g.Frame.MaxY() >= r.MinY() && g.Frame.MinY() <= r.MaxY()
}
