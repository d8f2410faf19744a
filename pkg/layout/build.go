package layout

import "math"

// ChunkSize is the number of consecutive items sharing one placement
// decision. The grid is fixed at three columns.
const ChunkSize = 3

// DefaultSpacing is the gap between cells and rows when none is configured.
const DefaultSpacing = 1.0

// ExpansionFunc reports whether the item at position is expanded.
type ExpansionFunc func(position int) bool

// Config holds the inputs of a single layout pass.
type Config struct {
	Count   int     // number of items in the section
	Width   float64 // available width after insets
	Spacing float64 // gap between cells and between rows
}

// Result is a complete layout: one geometry per item in ordinal order and
// the content height they span.
type Result struct {
	Items   []ItemGeometry
	Width   float64
	Height  float64
	Spacing float64
}

// Len returns the number of laid out items.
func (r Result) Len() int { return len(r.Items) }

// Empty reports whether the result holds no items.
func (r Result) Empty() bool { return len(r.Items) == 0 }

// IsExpanded reports whether g was laid out as an expanded cell.
func (r Result) IsExpanded(g ItemGeometry) bool {
	side := ItemSide(r.Width, r.Spacing)
	return g.Frame.W > (side+ExpandedSide(r.Width, r.Spacing))/2
}

// ItemSide returns the side of a regular cell for the given width and
// spacing.
func ItemSide(width, spacing float64) float64 {
	return (width - float64(ChunkSize-1)*spacing) / ChunkSize
}

// ExpandedSide returns the side of an expanded cell, which spans two regular
// cells and the gap between them.
func ExpandedSide(width, spacing float64) float64 {
	return 2*ItemSide(width, spacing) + spacing
}

// Build lays out cfg.Count items. isExpanded is called exactly once per item,
// in order. A nil isExpanded treats every item as regular.
//
// Items are grouped in chunks of three and each chunk is placed according to
// its Pattern. Chunks start at or below the bottom of the previous chunk, so
// the result is ordered both by position and by row.
func Build(cfg Config, isExpanded ExpansionFunc) Result {
	res := Result{Width: cfg.Width, Spacing: cfg.Spacing}
	if cfg.Count <= 0 {
		return res
	}

	flags := make([]bool, cfg.Count)
	if isExpanded != nil {
		for i := range flags {
			flags[i] = isExpanded(i)
		}
	}

	p := placer{
		side:     ItemSide(cfg.Width, cfg.Spacing),
		expanded: ExpandedSide(cfg.Width, cfg.Spacing),
		gap:      cfg.Spacing,
		items:    make([]ItemGeometry, 0, cfg.Count),
	}

	for start := 0; start < cfg.Count; start += ChunkSize {
		end := min(start+ChunkSize, cfg.Count)
		p.place(start, PatternOf(flags[start:end]), end-start)
	}

	res.Items = p.items
	res.Height = p.bottom
	return res
}

// placer accumulates geometries chunk by chunk.
type placer struct {
	side, expanded, gap float64
	y                   float64
	bottom              float64
	items               []ItemGeometry
}

func (p *placer) place(first int, pat Pattern, n int) {
	small := func(x, y float64) Rect { return Rect{X: x, Y: y, W: p.side, H: p.side} }
	big := func(x, y float64) Rect { return Rect{X: x, Y: y, W: p.expanded, H: p.expanded} }
	lower := p.y + p.side + p.gap

	var frames []Rect
	row := p.expanded
	switch pat {
	case PatternStart:
		right := p.expanded + p.gap
		frames = []Rect{big(0, p.y), small(right, p.y), small(right, lower)}
	case PatternMiddle:
		frames = []Rect{small(0, p.y), big(p.side+p.gap, p.y), small(0, lower)}
	case PatternEnd:
		frames = []Rect{small(0, p.y), small(0, lower), big(p.side+p.gap, p.y)}
	default:
		row = p.side
		frames = make([]Rect, n)
		for k := range frames {
			frames[k] = small(float64(k)*(p.side+p.gap), p.y)
		}
	}

	for k, f := range frames {
		p.items = append(p.items, ItemGeometry{Position: first + k, Frame: f})
		p.bottom = math.Max(p.bottom, f.MaxY())
	}
	p.y += row + p.gap
}
