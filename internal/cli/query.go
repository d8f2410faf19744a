package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/shannonchou/SquareFlowLayout/pkg/layout"
	"github.com/shannonchou/SquareFlowLayout/pkg/render/sink"
)

// queryCommand creates the query command for listing the items in a viewport.
func (c *CLI) queryCommand() *cobra.Command {
	var (
		rectStr string
		asJSON  bool
		grid    gridFlags
	)

	cmd := &cobra.Command{
		Use:   "query [grid.toml]",
		Short: "List the items visible in a viewport",
		Long: `List the items visible in a viewport.

The viewport is given in content coordinates as x,y,w,h. Items whose frame
overlaps the viewport are listed in position order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rect, err := parseRect(rectStr)
			if err != nil {
				return err
			}
			return c.runQuery(cmd.Context(), args[0], grid, rect, asJSON)
		},
	}

	cmd.Flags().StringVar(&rectStr, "rect", "", "viewport as x,y,w,h")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	grid.register(cmd)
	_ = cmd.MarkFlagRequired("rect")

	return cmd
}

func (c *CLI) runQuery(ctx context.Context, input string, grid gridFlags, rect layout.Rect, asJSON bool) error {
	doc, err := c.loadDocument(input, grid)
	if err != nil {
		return err
	}
	f := c.newFlow(doc)
	visible := f.VisibleGeometries(rect)
	res := f.Snapshot()
	c.Logger.Debug("query", "rect", rect, "visible", len(visible))

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if asJSON {
		items := make([]sink.JSONItem, 0, len(visible))
		for _, g := range visible {
			items = append(items, sink.ItemJSON(res, g))
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}

	if len(visible) == 0 {
		printInfo("No items in %s", formatRect(rect))
		return nil
	}
	printInfo("%d items in %s", len(visible), formatRect(rect))
	fmt.Println(visibleTable(res, visible))
	return nil
}

// visibleTable renders geometries as a table, expanded cells highlighted.
func visibleTable(res layout.Result, items []layout.ItemGeometry) string {
	rows := make([][]string, 0, len(items))
	for _, g := range items {
		kind := "regular"
		if res.IsExpanded(g) {
			kind = "expanded"
		}
		rows = append(rows, []string{
			strconv.Itoa(g.Position),
			fmt.Sprintf("%.2f", g.Frame.X),
			fmt.Sprintf("%.2f", g.Frame.Y),
			fmt.Sprintf("%.2f", g.Frame.W),
			kind,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Pos", "X", "Y", "Side", "Cell").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if row >= 0 && row < len(rows) && rows[row][4] == "expanded" {
				return StyleExpanded
			}
			if col == 0 {
				return StyleNumber
			}
			return StyleValue
		})
	return t.Render()
}

func formatRect(r layout.Rect) string {
	return fmt.Sprintf("(%g, %g, %g×%g)", r.X, r.Y, r.W, r.H)
}
