// Package pkg provides the core libraries for squareflow grid layouts.
//
// # Overview
//
// Squareflow lays out items in a scrollable three-column grid of squares in
// which any cell may be expanded to a 2x2 block, and answers viewport queries
// against the result without scanning every item. The pkg directory is
// organized into these areas:
//
//  1. [layout] - Geometry, the layout builder and the spatial query engine
//  2. [flow] - The cached, invalidatable layout owned by a hosting container
//  3. [render/sink] - SVG, PNG and JSON output
//  4. [config] - Grid documents (TOML or YAML)
//  5. [cache] - Render and tile caches
//  6. [errors], [observability], [buildinfo] - Shared infrastructure
//
// # Architecture
//
// The typical data flow:
//
//	grid document
//	     ↓
//	[config] package (load + validate)
//	     ↓
//	[flow] package (stale → built, via layout.Build)
//	     ↓
//	[layout] package (Visible: binary search + local expansion)
//	     ↓
//	SVG/PNG/JSON output, HTTP responses, terminal viewer
//
// # Quick Start
//
//	doc, err := config.Load("feed.toml")
//	if err != nil {
//	    return err
//	}
//	f := doc.Flow()
//	_, height := f.ContentSize()
//	for _, g := range f.VisibleGeometries(layout.Rect{Y: 400, W: doc.Width, H: 667}) {
//	    fmt.Println(g.Position, g.Frame)
//	}
//
// [layout]: github.com/shannonchou/SquareFlowLayout/pkg/layout
// [flow]: github.com/shannonchou/SquareFlowLayout/pkg/flow
// [render/sink]: github.com/shannonchou/SquareFlowLayout/pkg/render/sink
// [config]: github.com/shannonchou/SquareFlowLayout/pkg/config
// [cache]: github.com/shannonchou/SquareFlowLayout/pkg/cache
// [errors]: github.com/shannonchou/SquareFlowLayout/pkg/errors
// [observability]: github.com/shannonchou/SquareFlowLayout/pkg/observability
// [buildinfo]: github.com/shannonchou/SquareFlowLayout/pkg/buildinfo
package pkg
