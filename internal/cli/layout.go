package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shannonchou/SquareFlowLayout/pkg/render/sink"
)

// layoutCommand creates the layout command for computing grid layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		grid   gridFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [grid.toml]",
		Short: "Compute the layout of a grid document",
		Long: `Compute the layout of a grid document.

The layout command reads a grid document, lays out its items in three columns
with expanded cells spanning 2x2, and writes every item's frame together with
the content size as JSON (same format as 'render -f json').`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], grid, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json, - for stdout)")
	grid.register(cmd)

	return cmd
}

// runLayout loads the document, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, grid gridFlags, output string) error {
	doc, err := c.loadDocument(input, grid)
	if err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	res := c.newFlow(doc).Snapshot()
	prog.done(fmt.Sprintf("Laid out %d items", res.Len()))

	if ctx.Err() != nil {
		return ctx.Err()
	}

	data, err := sink.RenderJSON(res)
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}

	if output == "-" {
		_, err := os.Stdout.Write(append(data, '\n'))
		return err
	}
	outputPath := output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printGridStats(res.Len(), len(doc.Expanded), res.Height, nil)
	printNewline()
	printNextStep("Render", appName+" render "+input)

	return nil
}
