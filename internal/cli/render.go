package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/shannonchou/SquareFlowLayout/pkg/cache"
	"github.com/shannonchou/SquareFlowLayout/pkg/config"
	"github.com/shannonchou/SquareFlowLayout/pkg/layout"
	"github.com/shannonchou/SquareFlowLayout/pkg/render/sink"
)

// renderTTL is how long rendered artifacts stay in the local cache.
const renderTTL = 24 * time.Hour

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string       // output file path (or base path for multiple outputs)
	formats  []string     // output formats: "svg", "png", "json"
	labels   bool         // draw item positions
	scale    float64      // PNG pixel density
	viewport *layout.Rect // crop to a viewport
	noCache  bool         // bypass the render cache
	grid     gridFlags
}

// renderCommand creates the render command for generating visualizations.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr, viewportStr string
	opts := renderOpts{scale: 1}

	cmd := &cobra.Command{
		Use:   "render [grid.toml]",
		Short: "Render a grid document to SVG, PNG or JSON",
		Long: `Render a grid document to SVG, PNG or JSON.

Expanded cells are highlighted. With --viewport only the cells visible in the
viewport are drawn and the output is cropped to it.

Rendered files are cached locally; use --no-cache to bypass the cache.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			if viewportStr != "" {
				v, err := parseRect(viewportStr)
				if err != nil {
					return err
				}
				opts.viewport = &v
			}
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, json (comma-separated)")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "draw item positions")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG pixel density")
	cmd.Flags().StringVar(&viewportStr, "viewport", "", "crop to viewport x,y,w,h")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	opts.grid.register(cmd)

	return cmd
}

// basePath derives the base output path from the output and input file paths.
// A known format extension on output is stripped.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if validateFormats([]string{strings.TrimPrefix(ext, ".")}) == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// runRender lays out the document and writes one file per requested format.
func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	logger := loggerFromContext(ctx)

	doc, err := c.loadDocument(input, opts.grid)
	if err != nil {
		return err
	}
	docHash, err := documentHash(doc)
	if err != nil {
		return err
	}

	store, err := newCache(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	defer store.Close()

	res := c.newFlow(doc).Snapshot()
	keys := cache.NewKeyer()
	base := basePath(opts.output, input)

	for _, format := range opts.formats {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		key := keys.RenderKey(docHash, renderKeyOpts(format, doc, opts))
		data, hit, err := store.Get(ctx, key)
		if err != nil {
			logger.Warn("cache read failed", "err", err)
		}
		if !hit {
			spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", format))
			spinner.Start()
			data, err = renderFormat(res, format, opts)
			if err != nil {
				spinner.StopWithError("Render failed")
				return fmt.Errorf("%s: %w", format, err)
			}
			spinner.Stop()
			if err := store.Set(ctx, key, data, renderTTL); err != nil {
				logger.Warn("cache write failed", "err", err)
			}
		}
		logger.Debug("rendered", "format", format, "bytes", len(data), "cached", hit)

		path := base + "." + format
		if len(opts.formats) == 1 && opts.output != "" {
			path = opts.output
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		printSuccess("Rendered %s", strings.ToUpper(format))
		printFile(path)
		printGridStats(res.Len(), len(doc.Expanded), res.Height, &hit)
	}
	return nil
}

func renderFormat(res layout.Result, format string, opts renderOpts) ([]byte, error) {
	switch format {
	case formatSVG:
		var svgOpts []sink.SVGOption
		if opts.labels {
			svgOpts = append(svgOpts, sink.WithLabels())
		}
		if opts.viewport != nil {
			svgOpts = append(svgOpts, sink.WithViewport(*opts.viewport))
		}
		return sink.RenderSVG(res, svgOpts...), nil
	case formatPNG:
		pngOpts := []sink.PNGOption{sink.WithPNGScale(opts.scale)}
		if opts.labels {
			pngOpts = append(pngOpts, sink.WithPNGLabels())
		}
		if opts.viewport != nil {
			pngOpts = append(pngOpts, sink.WithPNGViewport(*opts.viewport))
		}
		return sink.RenderPNG(res, pngOpts...)
	case formatJSON:
		var jsonOpts []sink.JSONOption
		if opts.viewport != nil {
			jsonOpts = append(jsonOpts, sink.WithJSONViewport(*opts.viewport))
		}
		return sink.RenderJSON(res, jsonOpts...)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

func renderKeyOpts(format string, doc *config.Document, opts renderOpts) cache.RenderOpts {
	ro := cache.RenderOpts{Format: format, Labels: opts.labels, Spacing: doc.Spacing}
	if format == formatPNG {
		ro.Scale = opts.scale
	}
	if opts.viewport != nil {
		v := opts.viewport
		ro.Viewport = fmt.Sprintf("%g,%g,%g,%g", v.X, v.Y, v.W, v.H)
	}
	return ro
}

// documentHash identifies the layout inputs of doc.
func documentHash(doc *config.Document) (string, error) {
	data, err := json.Marshal(struct {
		Items    int
		Expanded []int
		Width    float64
		Spacing  float64
		Insets   config.InsetsConfig
	}{doc.Items, doc.Expanded, doc.Width, doc.Spacing, doc.Insets})
	if err != nil {
		return "", fmt.Errorf("hash document: %w", err)
	}
	return cache.Hash(data), nil
}
