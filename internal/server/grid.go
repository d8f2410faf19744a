package server

import (
	"github.com/google/uuid"

	"github.com/shannonchou/SquareFlowLayout/pkg/cache"
	"github.com/shannonchou/SquareFlowLayout/pkg/config"
	"github.com/shannonchou/SquareFlowLayout/pkg/flow"
)

// grid is the mutable state behind the API: the document, its expansion
// set and the Flow laid out over them. It implements [flow.Host] so that
// width changes are seen by the next build.
//
// grid is not safe for concurrent use; Server guards it with a mutex.
type grid struct {
	doc      *config.Document
	expanded map[int]bool
	flow     *flow.Flow
	revision string
	keys     cache.Keyer
}

func newGrid(doc *config.Document, opts ...flow.Option) *grid {
	g := &grid{doc: doc, expanded: doc.ExpandedSet()}
	opts = append([]flow.Option{flow.WithSpacing(doc.Spacing)}, opts...)
	g.flow = flow.New(g, g.isExpanded, opts...)
	g.bump()
	return g
}

func (g *grid) ItemCount() int          { return g.doc.Items }
func (g *grid) ContainerWidth() float64 { return g.doc.Width }

func (g *grid) ContentInsets() flow.Insets {
	return flow.Insets{
		Top:    g.doc.Insets.Top,
		Left:   g.doc.Insets.Left,
		Bottom: g.doc.Insets.Bottom,
		Right:  g.doc.Insets.Right,
	}
}

func (g *grid) isExpanded(position int) bool { return g.expanded[position] }

// bump starts a new layout revision. Cache keys of older revisions are never
// asked for again and age out of the caches.
func (g *grid) bump() {
	g.revision = uuid.NewString()
	g.keys = cache.NewKeyer().Scoped("rev:" + g.revision + ":")
}

func (g *grid) invalidate() {
	g.flow.Invalidate()
	g.bump()
}

// setExpanded updates one flag and reports whether it changed.
func (g *grid) setExpanded(position int, expanded bool) bool {
	if g.expanded[position] == expanded {
		return false
	}
	g.doc.SetExpanded(position, expanded)
	g.expanded = g.doc.ExpandedSet()
	g.invalidate()
	return true
}

// setWidth changes the container width and reports whether the layout had
// to be invalidated.
func (g *grid) setWidth(width float64) bool {
	if width == g.doc.Width {
		return false
	}
	needed := g.flow.ShouldInvalidate(layoutBounds(width))
	g.doc.Width = width
	if needed {
		g.invalidate()
	}
	return needed
}
