// Package sink renders a computed grid [layout.Result] to output formats.
//
// # Overview
//
// A "sink" transforms a layout into a final artifact:
//
//   - SVG: one rect per cell, expanded cells highlighted
//   - JSON: layout data export for external tools
//   - PNG: raster output drawn with fogleman/gg
//
// Every sink accepts a viewport. When one is set, only the cells returned by
// [layout.Visible] for that viewport are drawn and the canvas is cropped to
// it, which is how the server produces scroll tiles.
//
//	svg := sink.RenderSVG(res, sink.WithLabels())
//	png, err := sink.RenderPNG(res, sink.WithPNGScale(2))
//	tile, err := sink.RenderPNG(res, sink.WithPNGViewport(layout.Rect{Y: 400, W: 375, H: 667}))
//
// [layout.Result]: github.com/shannonchou/SquareFlowLayout/pkg/layout
package sink
