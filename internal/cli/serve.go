package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shannonchou/SquareFlowLayout/internal/server"
)

// serveCommand creates the serve command for exposing a grid over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr string
		grid gridFlags
	)

	cmd := &cobra.Command{
		Use:   "serve [grid.toml]",
		Short: "Serve a grid document over HTTP",
		Long: `Serve a grid document over HTTP.

The server answers layout, size, viewport and item queries, accepts expansion
and width changes, and renders PNG tiles of any viewport. Stop it with Ctrl-C.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), args[0], grid, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: from document, then :8080)")
	grid.register(cmd)

	return cmd
}

func (c *CLI) runServe(ctx context.Context, input string, grid gridFlags, addr string) error {
	doc, err := c.loadDocument(input, grid)
	if err != nil {
		return err
	}
	if addr == "" {
		addr = doc.Server.Addr
	}

	srv, err := server.New(doc, server.WithLogger(loggerFromContext(ctx)))
	if err != nil {
		return fmt.Errorf("start server: %w", err)
	}
	defer srv.Close()

	printSuccess("Serving %s", input)
	printFile("http://" + displayAddr(addr))
	printDetail("%d items, %d expanded, width %g", doc.Items, len(doc.Expanded), doc.Width)
	return srv.ListenAndServe(ctx, addr)
}

// displayAddr turns a listen address into something clickable.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
