package cli

import (
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shannonchou/SquareFlowLayout/pkg/config"
)

func viewerDoc() *config.Document {
	doc := config.Default()
	doc.Items = 9
	doc.Width = 100
	doc.Spacing = 1
	return doc
}

func press(t *testing.T, m viewerModel, msg tea.KeyMsg) viewerModel {
	t.Helper()
	next, _ := m.Update(msg)
	vm, ok := next.(viewerModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return vm
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func positionsOf(m viewerModel) []int {
	out := make([]int, len(m.visible))
	for i, g := range m.visible {
		out[i] = g.Position
	}
	return out
}

func TestViewerScrolling(t *testing.T) {
	m := newViewerModel(viewerDoc(), 50)
	side := 98.0 / 3

	tests := []struct {
		name       string
		key        tea.KeyMsg
		wantOffset float64
		wantFirst  int
		wantCount  int
	}{
		{"initial", tea.KeyMsg{}, 0, 0, 6},
		{"down", runes("j"), side / 2, 0, 6},
		{"up", runes("k"), 0, 0, 6},
		{"up at top clamps", tea.KeyMsg{Type: tea.KeyUp}, 0, 0, 6},
		{"page down clamps to bottom", tea.KeyMsg{Type: tea.KeyPgDown}, 50, 3, 6},
		{"page down again stays", tea.KeyMsg{Type: tea.KeyPgDown}, 50, 3, 6},
		{"top", runes("g"), 0, 0, 6},
		{"bottom", runes("G"), 50, 3, 6},
		{"page up", tea.KeyMsg{Type: tea.KeyPgUp}, 0, 0, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.name != "initial" {
				m = press(t, m, tt.key)
			}
			if math.Abs(m.offset-tt.wantOffset) > 1e-9 {
				t.Errorf("offset = %v, want %v", m.offset, tt.wantOffset)
			}
			got := positionsOf(m)
			if len(got) != tt.wantCount || got[0] != tt.wantFirst {
				t.Errorf("visible = %v, want %d items from %d", got, tt.wantCount, tt.wantFirst)
			}
		})
	}
}

func TestViewerToggleRebuilds(t *testing.T) {
	doc := viewerDoc()
	m := newViewerModel(doc, 50)
	_, before := m.state.flow.ContentSize()

	m = press(t, m, runes("x"))

	if len(doc.Expanded) != 1 || doc.Expanded[0] != 0 {
		t.Fatalf("expanded = %v, want [0]", doc.Expanded)
	}
	if m.state.builds != 2 {
		t.Errorf("builds = %d, want 2", m.state.builds)
	}
	_, after := m.state.flow.ContentSize()
	side := 98.0 / 3
	if want := before + side + 1; math.Abs(after-want) > 1e-9 {
		t.Errorf("height = %v, want %v", after, want)
	}
	if !m.state.flow.Snapshot().IsExpanded(m.visible[0]) {
		t.Error("first visible item not laid out expanded")
	}
	if !strings.Contains(m.View(), "item 0 expanded: true") {
		t.Error("status line missing from view")
	}

	m = press(t, m, runes("x"))
	if len(doc.Expanded) != 0 {
		t.Errorf("expanded = %v after second toggle, want none", doc.Expanded)
	}
}

func TestViewerEmptyGrid(t *testing.T) {
	doc := viewerDoc()
	doc.Items = 0
	m := newViewerModel(doc, 50)
	m = press(t, m, runes("x"))

	if m.status != "nothing to toggle" {
		t.Errorf("status = %q", m.status)
	}
	if !strings.Contains(m.View(), "no items in view") {
		t.Error("empty view not reported")
	}
}

func TestViewerQuit(t *testing.T) {
	m := newViewerModel(viewerDoc(), 50)
	next, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("quit key returned no command")
	}
	if v := next.(viewerModel).View(); v != "" {
		t.Errorf("View after quit = %q, want empty", v)
	}
}

func TestViewerIgnoresOtherMessages(t *testing.T) {
	m := newViewerModel(viewerDoc(), 50)
	next, cmd := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	if cmd != nil || next.(viewerModel).offset != 0 {
		t.Error("window size message changed the viewer")
	}
}
