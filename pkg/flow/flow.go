// Package flow owns a cached square-grid layout on behalf of a hosting
// container.
//
// A [Flow] is either stale or built. Any read (content size, viewport query,
// single-item lookup) on a stale flow first runs a full [layout.Build] into a
// fresh buffer and then swaps it in, so readers never see a partially built
// layout. The host calls [Flow.Invalidate] whenever the item count, the
// container width or an expansion flag may have changed.
//
// A Flow is not safe for concurrent use; hosts that serve several goroutines
// must serialize calls themselves.
package flow

import (
	"time"

	"github.com/charmbracelet/log"

	errs "github.com/shannonchou/SquareFlowLayout/pkg/errors"
	"github.com/shannonchou/SquareFlowLayout/pkg/layout"
	"github.com/shannonchou/SquareFlowLayout/pkg/observability"
)

// Insets are the content insets of the hosting container.
type Insets struct {
	Top, Left, Bottom, Right float64
}

// Host is the hosting container the layout is computed for.
type Host interface {
	// ItemCount returns the number of items in the single section.
	ItemCount() int
	// ContainerWidth returns the width of the container bounds.
	ContainerWidth() float64
	// ContentInsets returns the container's content insets.
	ContentInsets() Insets
}

// Option configures a Flow.
type Option func(*Flow)

// WithSpacing sets the gap between cells and rows. The default is
// [layout.DefaultSpacing].
func WithSpacing(spacing float64) Option {
	return func(f *Flow) { f.spacing = spacing }
}

// WithLogger sets the logger used for build and invalidation diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(f *Flow) {
		if l != nil {
			f.logger = l
		}
	}
}

type state int

const (
	stale state = iota
	built
)

// Flow caches the layout of a Host's items.
type Flow struct {
	host       Host
	isExpanded layout.ExpansionFunc
	spacing    float64
	logger     *log.Logger

	state          state
	cache          layout.Result
	containerWidth float64
}

// New returns a stale Flow for host. isExpanded is consulted once per item on
// every build; nil means no item is expanded.
func New(host Host, isExpanded layout.ExpansionFunc, opts ...Option) *Flow {
	f := &Flow{
		host:       host,
		isExpanded: isExpanded,
		spacing:    layout.DefaultSpacing,
		logger:     log.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Spacing returns the configured gap between cells.
func (f *Flow) Spacing() float64 { return f.spacing }

// SetSpacing changes the gap between cells and invalidates the layout when
// the value differs.
func (f *Flow) SetSpacing(spacing float64) {
	if spacing == f.spacing {
		return
	}
	f.spacing = spacing
	f.Invalidate()
}

// Built reports whether a layout is cached.
func (f *Flow) Built() bool { return f.state == built }

// Invalidate discards the cached layout. The next read rebuilds it.
func (f *Flow) Invalidate() {
	if f.state == stale {
		return
	}
	n := f.cache.Len()
	f.cache = layout.Result{}
	f.state = stale
	f.logger.Debug("layout invalidated", "items", n)
	observability.Layout().OnInvalidate(n)
}

// Prepare builds the layout if it is stale. Reads call it implicitly; hosts
// may call it up front to keep the first query cheap.
func (f *Flow) Prepare() {
	if f.state == built {
		return
	}

	count := f.host.ItemCount()
	width := f.host.ContainerWidth()
	insets := f.host.ContentInsets()
	cfg := layout.Config{
		Count:   count,
		Width:   width - insets.Left - insets.Right,
		Spacing: f.spacing,
	}

	observability.Layout().OnBuildStart(count, cfg.Width)
	start := time.Now()
	res := layout.Build(cfg, f.isExpanded)
	elapsed := time.Since(start)

	f.cache = res
	f.containerWidth = width
	f.state = built

	f.logger.Debug("layout built", "items", res.Len(), "width", cfg.Width, "height", res.Height, "took", elapsed)
	observability.Layout().OnBuildComplete(res.Len(), res.Height, elapsed)
}

// ContentSize returns the container width and the height of the laid out
// content.
func (f *Flow) ContentSize() (width, height float64) {
	f.Prepare()
	return f.containerWidth, f.cache.Height
}

// VisibleGeometries returns the geometries intersecting r, in ordinal order.
func (f *Flow) VisibleGeometries(r layout.Rect) []layout.ItemGeometry {
	f.Prepare()
	start := time.Now()
	out := layout.Visible(f.cache.Items, r)
	observability.Layout().OnQuery(len(out), time.Since(start))
	return out
}

// GeometryForItem returns the geometry of the item at position. Asking for a
// position outside the host's item count is a programming error and panics
// with an [errs.ErrCodeOutOfRange] error.
func (f *Flow) GeometryForItem(position int) layout.ItemGeometry {
	f.Prepare()
	if err := errs.ValidatePosition(position, f.cache.Len()); err != nil {
		panic(err)
	}
	return f.cache.Items[position]
}

// ShouldInvalidate reports whether moving the container to bounds requires a
// new layout. Only a change of width does; scrolling never does.
func (f *Flow) ShouldInvalidate(bounds layout.Rect) bool {
	return f.state == built && bounds.W != f.containerWidth
}

// Snapshot returns the cached layout, building it first if needed. The
// returned items must not be modified.
func (f *Flow) Snapshot() layout.Result {
	f.Prepare()
	return f.cache
}
