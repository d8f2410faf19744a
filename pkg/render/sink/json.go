package sink

import (
	"encoding/json"

	"github.com/shannonchou/SquareFlowLayout/pkg/layout"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	viewport *layout.Rect
	compact  bool
}

// WithJSONViewport exports only the cells visible in v and records v.
func WithJSONViewport(v layout.Rect) JSONOption { return func(r *jsonRenderer) { r.viewport = &v } }

// WithJSONCompact disables indentation.
func WithJSONCompact() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

// Document is the JSON form of a layout.
type Document struct {
	Width    float64    `json:"width"`
	Height   float64    `json:"height"`
	Spacing  float64    `json:"spacing"`
	Count    int        `json:"count"`
	Viewport *JSONRect  `json:"viewport,omitempty"`
	Items    []JSONItem `json:"items"`
}

// JSONRect is a rectangle in a [Document].
type JSONRect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// JSONItem is one cell in a [Document].
type JSONItem struct {
	Position int     `json:"position"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Expanded bool    `json:"expanded,omitempty"`
}

// NewDocument converts a layout (or the part of it visible in viewport, when
// non-nil) to its JSON form.
func NewDocument(l layout.Result, viewport *layout.Rect) Document {
	cells := cellsOf(l, viewport)
	doc := Document{
		Width:   l.Width,
		Height:  l.Height,
		Spacing: l.Spacing,
		Count:   l.Len(),
		Items:   make([]JSONItem, 0, len(cells)),
	}
	if viewport != nil {
		doc.Viewport = &JSONRect{X: viewport.X, Y: viewport.Y, Width: viewport.W, Height: viewport.H}
	}
	for _, c := range cells {
		doc.Items = append(doc.Items, JSONItem{
			Position: c.Position,
			X:        c.X, Y: c.Y,
			Width: c.W, Height: c.H,
			Expanded: c.Expanded,
		})
	}
	return doc
}

// ItemJSON converts a single geometry.
func ItemJSON(l layout.Result, g layout.ItemGeometry) JSONItem {
	return JSONItem{
		Position: g.Position,
		X:        g.Frame.X, Y: g.Frame.Y,
		Width: g.Frame.W, Height: g.Frame.H,
		Expanded: l.IsExpanded(g),
	}
}

// RenderJSON exports the layout as JSON, pretty-printed unless
// [WithJSONCompact] is given.
func RenderJSON(l layout.Result, opts ...JSONOption) ([]byte, error) {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}
	doc := NewDocument(l, r.viewport)
	if r.compact {
		return json.Marshal(doc)
	}
	return json.MarshalIndent(doc, "", "  ")
}
