package sink

import (
	"bytes"
	"fmt"

	"github.com/shannonchou/SquareFlowLayout/pkg/layout"
)

const cellCSS = `
    .cell { fill: ` + colorCell + `; stroke: ` + colorStroke + `; stroke-width: 0.5; }
    .cell.expanded { fill: ` + colorExpanded + `; }
    .cell-label { font: 10px sans-serif; fill: ` + colorStroke + `; text-anchor: middle; dominant-baseline: central; }
    .viewport { fill: none; stroke: ` + colorViewport + `; stroke-dasharray: 4 2; }`

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	labels   bool
	viewport *layout.Rect
	outline  *layout.Rect
}

// WithLabels draws each cell's position at its center.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// WithViewport crops the drawing to v and draws only the cells visible in it.
func WithViewport(v layout.Rect) SVGOption { return func(r *svgRenderer) { r.viewport = &v } }

// WithViewportOutline draws a dashed outline of v over the full layout.
func WithViewportOutline(v layout.Rect) SVGOption { return func(r *svgRenderer) { r.outline = &v } }

// RenderSVG renders the layout as a standalone SVG document.
func RenderSVG(l layout.Result, opts ...SVGOption) []byte {
	var r svgRenderer
	for _, opt := range opts {
		opt(&r)
	}

	view := canvas(l, r.viewport)
	cells := cellsOf(l, r.viewport)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.2f %.2f %.2f %.2f" width="%.0f" height="%.0f">`+"\n",
		view.X, view.Y, view.W, view.H, view.W, view.H)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", cellCSS)
	fmt.Fprintf(&buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`+"\n",
		view.X, view.Y, view.W, view.H, colorBackground)

	for _, c := range cells {
		renderCell(&buf, c)
	}
	if r.labels {
		for _, c := range cells {
			fmt.Fprintf(&buf, `  <text class="cell-label" x="%.2f" y="%.2f">%d</text>`+"\n",
				c.X+c.W/2, c.Y+c.H/2, c.Position)
		}
	}
	if r.outline != nil {
		o := r.outline
		fmt.Fprintf(&buf, `  <rect class="viewport" x="%.2f" y="%.2f" width="%.2f" height="%.2f"/>`+"\n", o.X, o.Y, o.W, o.H)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderCell(buf *bytes.Buffer, c cell) {
	class := "cell"
	if c.Expanded {
		class += " expanded"
	}
	fmt.Fprintf(buf, `  <rect id="cell-%d" class="%s" x="%.2f" y="%.2f" width="%.2f" height="%.2f"/>`+"\n",
		c.Position, class, c.X, c.Y, c.W, c.H)
}
