package sink

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/fogleman/gg"

	"github.com/shannonchou/SquareFlowLayout/pkg/layout"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale    float64
	labels   bool
	viewport *layout.Rect
}

// WithPNGScale sets the pixel density (default 1).
func WithPNGScale(s float64) PNGOption { return func(r *pngRenderer) { r.scale = s } }

// WithPNGLabels draws each cell's position at its center.
func WithPNGLabels() PNGOption { return func(r *pngRenderer) { r.labels = true } }

// WithPNGViewport crops the image to v and draws only the cells visible in it.
func WithPNGViewport(v layout.Rect) PNGOption { return func(r *pngRenderer) { r.viewport = &v } }

// maxPNGSide bounds each image dimension in pixels.
const maxPNGSide = 16384

// RenderPNG rasterizes the layout.
func RenderPNG(l layout.Result, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 1}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		return nil, fmt.Errorf("invalid png scale %v", r.scale)
	}

	view := canvas(l, r.viewport)
	w := int(math.Ceil(view.W * r.scale))
	h := int(math.Ceil(view.H * r.scale))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("empty canvas %dx%d", w, h)
	}
	if w > maxPNGSide || h > maxPNGSide {
		return nil, fmt.Errorf("canvas %dx%d exceeds %d pixels per side", w, h, maxPNGSide)
	}

	dc := gg.NewContext(w, h)
	dc.SetHexColor(colorBackground)
	dc.Clear()
	dc.Scale(r.scale, r.scale)
	dc.Translate(-view.X, -view.Y)
	dc.SetLineWidth(0.5)

	cells := cellsOf(l, r.viewport)
	for _, c := range cells {
		dc.DrawRectangle(c.X, c.Y, c.W, c.H)
		if c.Expanded {
			dc.SetHexColor(colorExpanded)
		} else {
			dc.SetHexColor(colorCell)
		}
		dc.FillPreserve()
		dc.SetHexColor(colorStroke)
		dc.Stroke()
	}
	if r.labels {
		dc.SetHexColor(colorStroke)
		for _, c := range cells {
			dc.DrawStringAnchored(strconv.Itoa(c.Position), c.X+c.W/2, c.Y+c.H/2, 0.5, 0.5)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
