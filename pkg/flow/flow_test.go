package flow

import (
	"bytes"
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	errs "github.com/shannonchou/SquareFlowLayout/pkg/errors"
	"github.com/shannonchou/SquareFlowLayout/pkg/layout"
	"github.com/shannonchou/SquareFlowLayout/pkg/observability"
)

// mutableHost lets tests change inputs between builds.
type mutableHost struct {
	count  int
	width  float64
	insets Insets
}

func (h *mutableHost) ItemCount() int          { return h.count }
func (h *mutableHost) ContainerWidth() float64 { return h.width }
func (h *mutableHost) ContentInsets() Insets   { return h.insets }

type countingHooks struct {
	observability.NoopLayoutHooks
	builds, invalidations, queries int
}

func (c *countingHooks) OnBuildComplete(int, float64, time.Duration) { c.builds++ }
func (c *countingHooks) OnInvalidate(int)                            { c.invalidations++ }
func (c *countingHooks) OnQuery(int, time.Duration)                  { c.queries++ }

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestFlowStartsStale(t *testing.T) {
	f := New(Static{Count: 3, Width: 100}, nil)
	if f.Built() {
		t.Fatal("new Flow should be stale")
	}
	if f.Spacing() != layout.DefaultSpacing {
		t.Errorf("Spacing() = %v, want default %v", f.Spacing(), layout.DefaultSpacing)
	}
}

func TestFlowContentSize(t *testing.T) {
	f := New(Static{Count: 3, Width: 100}, nil)
	w, h := f.ContentSize()
	if w != 100 {
		t.Errorf("width = %v, want 100", w)
	}
	if !near(h, 98.0/3) {
		t.Errorf("height = %v, want %v", h, 98.0/3)
	}
	if !f.Built() {
		t.Error("ContentSize should build the layout")
	}
}

func TestFlowEmptyHost(t *testing.T) {
	f := New(Static{Count: 0, Width: 100}, nil)
	if _, h := f.ContentSize(); h != 0 {
		t.Errorf("height = %v, want 0", h)
	}
	if got := f.VisibleGeometries(layout.Rect{W: 100, H: 100}); len(got) != 0 {
		t.Errorf("VisibleGeometries = %v, want none", got)
	}
	if !f.Snapshot().Empty() {
		t.Error("Snapshot of empty host should be empty")
	}
}

func TestFlowInsetsNarrowAvailableWidth(t *testing.T) {
	host := Static{Count: 3, Width: 120, Insets: Insets{Left: 10, Right: 10}}
	f := New(host, nil)
	g := f.GeometryForItem(0)
	if !near(g.Frame.W, 98.0/3) {
		t.Errorf("cell side = %v, want %v", g.Frame.W, 98.0/3)
	}
	if w, _ := f.ContentSize(); w != 120 {
		t.Errorf("content width = %v, want container width 120", w)
	}
}

func TestFlowInvalidateRebuilds(t *testing.T) {
	hooks := &countingHooks{}
	observability.SetLayoutHooks(hooks)
	defer observability.Reset()

	host := &mutableHost{count: 3, width: 100}
	expanded := map[int]bool{}
	f := New(host, ExpandedSet(expanded))

	if got := f.GeometryForItem(0).Frame.W; !near(got, 98.0/3) {
		t.Fatalf("initial width = %v", got)
	}

	// Changing inputs without invalidating keeps the cached layout.
	expanded[0] = true
	host.count = 6
	if got := f.Snapshot().Len(); got != 3 {
		t.Errorf("cached layout has %d items, want 3 until invalidated", got)
	}

	f.Invalidate()
	if f.Built() {
		t.Error("Invalidate should leave the flow stale")
	}
	if got := f.Snapshot().Len(); got != 6 {
		t.Errorf("rebuilt layout has %d items, want 6", got)
	}
	if got := f.GeometryForItem(0).Frame.W; !near(got, 2*98.0/3+1) {
		t.Errorf("expanded width = %v, want %v", got, 2*98.0/3+1)
	}

	f.Invalidate()
	f.Invalidate() // already stale: no event
	f.Prepare()

	if hooks.builds != 3 {
		t.Errorf("builds = %d, want 3", hooks.builds)
	}
	if hooks.invalidations != 2 {
		t.Errorf("invalidations = %d, want 2", hooks.invalidations)
	}
}

func TestFlowSamplesFlagsOncePerBuild(t *testing.T) {
	calls := 0
	f := New(Static{Count: 9, Width: 300}, func(int) bool { calls++; return false })
	f.Prepare()
	f.VisibleGeometries(layout.Rect{W: 300, H: 300})
	f.GeometryForItem(8)
	f.ContentSize()
	if calls != 9 {
		t.Errorf("expansion callback called %d times, want 9", calls)
	}
}

func TestFlowVisibleGeometriesMatchesScan(t *testing.T) {
	expanded := map[int]bool{1: true, 3: true, 8: true, 10: true}
	f := New(Static{Count: 14, Width: 200}, ExpandedSet(expanded), WithSpacing(2))

	_, h := f.ContentSize()
	for y := -20.0; y < h+20; y += 7 {
		r := layout.Rect{X: 10, Y: y, W: 120, H: 45}
		got := f.VisibleGeometries(r)
		want := layout.Scan(f.Snapshot().Items, r)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("rect %+v: got %v, want %v", r, got, want)
		}
	}
}

func TestFlowGeometryForItemOutOfRangePanics(t *testing.T) {
	f := New(Static{Count: 3, Width: 100}, nil)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		err, ok := r.(error)
		if !ok || !errs.Is(err, errs.ErrCodeOutOfRange) {
			t.Errorf("panic value = %v, want OUT_OF_RANGE error", r)
		}
	}()
	f.GeometryForItem(3)
}

func TestFlowSetSpacing(t *testing.T) {
	f := New(Static{Count: 3, Width: 100}, nil)
	f.Prepare()

	f.SetSpacing(layout.DefaultSpacing)
	if !f.Built() {
		t.Error("SetSpacing with the same value should keep the layout")
	}

	f.SetSpacing(4)
	if f.Built() {
		t.Error("SetSpacing should invalidate")
	}
	if got := f.GeometryForItem(1).Frame.X; !near(got, 92.0/3+4) {
		t.Errorf("second cell x = %v, want %v", got, 92.0/3+4)
	}
}

func TestFlowShouldInvalidate(t *testing.T) {
	f := New(Static{Count: 3, Width: 100}, nil)
	if f.ShouldInvalidate(layout.Rect{W: 200}) {
		t.Error("stale flow has nothing to invalidate")
	}
	f.Prepare()

	tests := []struct {
		name   string
		bounds layout.Rect
		want   bool
	}{
		{"scroll", layout.Rect{Y: 500, W: 100, H: 300}, false},
		{"resize height", layout.Rect{W: 100, H: 900}, false},
		{"resize width", layout.Rect{W: 160, H: 300}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.ShouldInvalidate(tt.bounds); got != tt.want {
				t.Errorf("ShouldInvalidate(%+v) = %v, want %v", tt.bounds, got, tt.want)
			}
		})
	}
}

func TestFlowLogsBuilds(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	f := New(Static{Count: 4, Width: 100}, nil, WithLogger(logger))
	f.Prepare()
	f.Invalidate()

	out := buf.String()
	if !strings.Contains(out, "layout built") {
		t.Errorf("log output missing build entry: %q", out)
	}
	if !strings.Contains(out, "layout invalidated") {
		t.Errorf("log output missing invalidation entry: %q", out)
	}
}
