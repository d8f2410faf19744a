package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/shannonchou/SquareFlowLayout/pkg/config"
	"github.com/shannonchou/SquareFlowLayout/pkg/flow"
	"github.com/shannonchou/SquareFlowLayout/pkg/layout"
)

// defaultViewportHeight is the viewer's viewport height in content units.
const defaultViewportHeight = 667

var helpStyle = lipgloss.NewStyle().Foreground(colorDim)

// viewCommand creates the interactive viewer command.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		grid   gridFlags
		height float64
	)

	cmd := &cobra.Command{
		Use:   "view [grid.toml]",
		Short: "Scroll through a grid in the terminal",
		Long: `Scroll through a grid in the terminal.

The viewer acts as the hosting container: every scroll step issues a viewport
query and lists the items it returns. Pressing x toggles expansion of the
first visible item, which invalidates and rebuilds the layout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runView(cmd.Context(), args[0], grid, height)
		},
	}

	cmd.Flags().Float64Var(&height, "viewport-height", defaultViewportHeight, "viewport height in content units")
	grid.register(cmd)

	return cmd
}

func (c *CLI) runView(ctx context.Context, input string, grid gridFlags, height float64) error {
	doc, err := c.loadDocument(input, grid)
	if err != nil {
		return err
	}
	m := newViewerModel(doc, height)
	_, err = tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run()
	return err
}

// viewerState is shared by every copy of the viewer model. The Flow reads
// expansion flags from it on each rebuild.
type viewerState struct {
	doc      *config.Document
	expanded map[int]bool
	flow     *flow.Flow
	builds   int
}

func (s *viewerState) isExpanded(position int) bool { return s.expanded[position] }

// viewerModel is the bubbletea model for the grid viewer.
type viewerModel struct {
	state    *viewerState
	offset   float64
	height   float64
	visible  []layout.ItemGeometry
	status   string
	quitting bool
}

func newViewerModel(doc *config.Document, height float64) viewerModel {
	st := &viewerState{doc: doc, expanded: doc.ExpandedSet()}
	st.flow = flow.New(doc.Host(), st.isExpanded, flow.WithSpacing(doc.Spacing))
	if height <= 0 {
		height = defaultViewportHeight
	}
	m := viewerModel{state: st, height: height}
	st.builds++
	m.refresh()
	return m
}

func (m viewerModel) Init() tea.Cmd {
	return nil
}

func (m viewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	step := layout.ItemSide(m.state.doc.AvailableWidth(), m.state.doc.Spacing) / 2

	switch key.String() {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit
	case "down", "j":
		m.scrollTo(m.offset + step)
	case "up", "k":
		m.scrollTo(m.offset - step)
	case "pgdown", " ":
		m.scrollTo(m.offset + m.height)
	case "pgup":
		m.scrollTo(m.offset - m.height)
	case "home", "g":
		m.scrollTo(0)
	case "end", "G":
		m.scrollTo(m.maxOffset())
	case "x":
		m.toggleFirstVisible()
	}
	return m, nil
}

func (m viewerModel) viewport() layout.Rect {
	return layout.Rect{X: 0, Y: m.offset, W: m.state.doc.Width, H: m.height}
}

func (m viewerModel) maxOffset() float64 {
	_, h := m.state.flow.ContentSize()
	return max(0, h-m.height)
}

func (m *viewerModel) scrollTo(y float64) {
	m.offset = min(max(0, y), m.maxOffset())
	m.refresh()
}

func (m *viewerModel) refresh() {
	m.visible = m.state.flow.VisibleGeometries(m.viewport())
}

// toggleFirstVisible flips the expansion flag of the first visible item.
func (m *viewerModel) toggleFirstVisible() {
	if len(m.visible) == 0 {
		m.status = "nothing to toggle"
		return
	}
	p := m.visible[0].Position
	st := m.state
	now := !st.expanded[p]
	st.doc.SetExpanded(p, now)
	st.expanded = st.doc.ExpandedSet()
	st.flow.Invalidate()
	st.builds++
	m.status = fmt.Sprintf("item %d expanded: %v", p, now)
	m.scrollTo(m.offset)
}

func (m viewerModel) View() string {
	if m.quitting {
		return ""
	}
	res := m.state.flow.Snapshot()

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Squareflow"))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(fmt.Sprintf("y %.1f–%.1f of %.1f · %d items · %d builds",
		m.offset, m.offset+m.height, res.Height, res.Len(), m.state.builds)))
	b.WriteString("\n\n")

	if len(m.visible) == 0 {
		b.WriteString(StyleDim.Render("  no items in view"))
	} else {
		b.WriteString(visibleTable(res, m.visible))
	}
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(StyleValue.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("j/k scroll  pgup/pgdn page  g/G top/bottom  x toggle first  q quit"))
	return b.String()
}
