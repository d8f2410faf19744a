package cli

import (
	"bytes"
	"testing"

	"github.com/shannonchou/SquareFlowLayout/pkg/config"
	"github.com/shannonchou/SquareFlowLayout/pkg/layout"
)

func TestRenderFormat(t *testing.T) {
	res := layout.Build(layout.Config{Count: 6, Width: 100, Spacing: 1}, func(i int) bool { return i == 2 })
	viewport := layout.Rect{W: 100, H: 20}

	tests := []struct {
		name   string
		format string
		opts   renderOpts
		prefix []byte
	}{
		{"svg", formatSVG, renderOpts{}, []byte("<svg")},
		{"svg viewport", formatSVG, renderOpts{viewport: &viewport, labels: true}, []byte("<svg")},
		{"png", formatPNG, renderOpts{scale: 1}, []byte("\x89PNG")},
		{"png viewport", formatPNG, renderOpts{scale: 2, viewport: &viewport}, []byte("\x89PNG")},
		{"json", formatJSON, renderOpts{}, []byte("{")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := renderFormat(res, tt.format, tt.opts)
			if err != nil {
				t.Fatalf("renderFormat: %v", err)
			}
			if !bytes.HasPrefix(data, tt.prefix) {
				t.Errorf("output starts with %q, want %q", data[:min(len(data), 8)], tt.prefix)
			}
		})
	}

	if _, err := renderFormat(res, "pdf", renderOpts{}); err == nil {
		t.Error("pdf rendered")
	}
}

func TestRenderKeyOpts(t *testing.T) {
	doc := config.Default()
	v := layout.Rect{X: 1, Y: 2, W: 3, H: 4}

	svg := renderKeyOpts(formatSVG, doc, renderOpts{scale: 2})
	if svg.Scale != 0 {
		t.Errorf("svg key carries scale %v", svg.Scale)
	}
	png := renderKeyOpts(formatPNG, doc, renderOpts{scale: 2, viewport: &v})
	if png.Scale != 2 || png.Viewport != "1,2,3,4" {
		t.Errorf("png key = %+v", png)
	}
}

func TestDocumentHash(t *testing.T) {
	a := config.Default()
	a.Items = 10
	b := config.Default()
	b.Items = 10
	b.Server.Addr = ":9999"

	ha, err := documentHash(a)
	if err != nil {
		t.Fatal(err)
	}
	hb, _ := documentHash(b)
	if ha != hb {
		t.Error("server settings changed the layout hash")
	}

	b.SetExpanded(3, true)
	if hc, _ := documentHash(b); hc == ha {
		t.Error("expansion change kept the layout hash")
	}
}
