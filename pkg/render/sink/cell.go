package sink

import "github.com/shannonchou/SquareFlowLayout/pkg/layout"

// Default palette shared by the SVG and PNG sinks.
const (
	colorBackground = "#ffffff"
	colorCell       = "#d9e2ec"
	colorExpanded   = "#f0b429"
	colorStroke     = "#334e68"
	colorViewport   = "#e12d39"
)

// cell is a geometry prepared for drawing.
type cell struct {
	Position int
	X, Y     float64
	W, H     float64
	Expanded bool
}

// cellsOf returns the cells to draw: all of them, or only those intersecting
// viewport when it is non-nil.
func cellsOf(l layout.Result, viewport *layout.Rect) []cell {
	items := l.Items
	if viewport != nil {
		items = layout.Visible(l.Items, *viewport)
	}
	cells := make([]cell, 0, len(items))
	for _, g := range items {
		cells = append(cells, cell{
			Position: g.Position,
			X:        g.Frame.X, Y: g.Frame.Y,
			W: g.Frame.W, H: g.Frame.H,
			Expanded: l.IsExpanded(g),
		})
	}
	return cells
}

// canvas returns the region of content space to draw.
func canvas(l layout.Result, viewport *layout.Rect) layout.Rect {
	if viewport != nil {
		return *viewport
	}
	return layout.Rect{W: l.Width, H: l.Height}
}
