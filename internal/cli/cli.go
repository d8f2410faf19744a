// Package cli implements the squareflow command-line interface.
//
// # Commands
//
// Every command takes a grid document (TOML or YAML, see package config):
//   - layout: Compute the layout and write it as JSON
//   - query: List the items visible in a viewport rectangle
//   - render: Generate SVG, PNG or JSON output
//   - view: Scroll through the grid in the terminal
//   - serve: Expose the grid over HTTP
//   - cache: Manage the render cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// surfaces layout builds and invalidations. The root command attaches the
// CLI logger to the command context so long-running commands can hand it to
// the components they start.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/shannonchou/SquareFlowLayout/pkg/buildinfo"
	"github.com/shannonchou/SquareFlowLayout/pkg/cache"
	"github.com/shannonchou/SquareFlowLayout/pkg/config"
	"github.com/shannonchou/SquareFlowLayout/pkg/flow"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "squareflow"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Squareflow lays out square grids with expanded cells",
		Long:         `Squareflow computes three-column square grid layouts in which any cell may be expanded to a 2x2 block, answers viewport queries against them, and renders or serves the result.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.queryCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Documents
// =============================================================================

// gridFlags are the document overrides shared by commands that lay out a grid.
type gridFlags struct {
	width   float64
	spacing float64
}

func (g *gridFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&g.width, "width", 0, "container width (default: from document)")
	cmd.Flags().Float64Var(&g.spacing, "spacing", -1, "gap between cells (default: from document)")
}

// loadDocument reads the document at path and applies flag overrides.
func (c *CLI) loadDocument(path string, g gridFlags) (*config.Document, error) {
	doc, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load document %s: %w", path, err)
	}
	if g.width > 0 {
		doc.Width = g.width
	}
	if g.spacing >= 0 {
		doc.Spacing = g.spacing
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded document", "path", path, "doc", doc.String())
	return doc, nil
}

// newFlow returns a Flow over doc that logs through the CLI logger.
func (c *CLI) newFlow(doc *config.Document) *flow.Flow {
	return doc.Flow(flow.WithLogger(c.Logger))
}

// =============================================================================
// Cache
// =============================================================================

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/squareflow/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
