// Package config loads grid documents: the item count, expansion flags and
// container geometry a layout is computed for, plus server and cache
// settings.
//
// Documents are TOML (.toml) or YAML (.yaml, .yml), chosen by extension:
//
//	items    = 30
//	expanded = [1, 9, 14]
//	width    = 375.0
//	spacing  = 1.0
//
//	[insets]
//	left  = 8.0
//	right = 8.0
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	errs "github.com/shannonchou/SquareFlowLayout/pkg/errors"
	"github.com/shannonchou/SquareFlowLayout/pkg/flow"
	"github.com/shannonchou/SquareFlowLayout/pkg/layout"
)

// Format identifies a document encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// Document describes a grid and the services built around it.
type Document struct {
	Items    int          `toml:"items" yaml:"items"`
	Expanded []int        `toml:"expanded" yaml:"expanded"`
	Width    float64      `toml:"width" yaml:"width"`
	Spacing  float64      `toml:"spacing" yaml:"spacing"`
	Insets   InsetsConfig `toml:"insets" yaml:"insets"`
	Server   ServerConfig `toml:"server" yaml:"server"`
	Cache    CacheConfig  `toml:"cache" yaml:"cache"`
}

// InsetsConfig contains the container's content insets.
type InsetsConfig struct {
	Top    float64 `toml:"top" yaml:"top"`
	Left   float64 `toml:"left" yaml:"left"`
	Bottom float64 `toml:"bottom" yaml:"bottom"`
	Right  float64 `toml:"right" yaml:"right"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Addr        string   `toml:"addr" yaml:"addr"`
	CORSOrigins []string `toml:"cors_origins" yaml:"cors_origins"`
	TileScale   float64  `toml:"tile_scale" yaml:"tile_scale"`
}

// CacheConfig contains caching settings.
type CacheConfig struct {
	TileSizeMB     int `toml:"tile_size_mb" yaml:"tile_size_mb"`
	TileTTLMinutes int `toml:"tile_ttl_minutes" yaml:"tile_ttl_minutes"`
	QueryCacheSize int `toml:"query_cache_size" yaml:"query_cache_size"`
}

// Default returns a document with default settings and no items.
func Default() *Document {
	return &Document{
		Width:   375,
		Spacing: layout.DefaultSpacing,
		Server: ServerConfig{
			Addr:        ":8080",
			CORSOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
			TileScale:   1,
		},
		Cache: CacheConfig{
			TileSizeMB:     64,
			TileTTLMinutes: 10,
			QueryCacheSize: 1024,
		},
	}
}

// FormatOf picks a format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errs.New(errs.ErrCodeInvalidFormat, "unsupported document extension %q (want .toml, .yaml or .yml)", filepath.Ext(path))
	}
}

// Load reads and validates the document at path.
func Load(path string) (*Document, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "read %s", path)
	}
	return Parse(data, format)
}

// Parse decodes data in the given format on top of [Default] and validates
// the result. Fields absent from data keep their defaults.
func Parse(data []byte, format Format) (*Document, error) {
	doc := Default()
	switch format {
	case FormatTOML:
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(doc); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "decode toml")
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, doc); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "decode yaml")
		}
	default:
		return nil, errs.New(errs.ErrCodeInvalidFormat, "unknown document format %q", format)
	}
	applyDefaults(doc)
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

func applyDefaults(doc *Document) {
	defaults := Default()

	if doc.Server.Addr == "" {
		doc.Server.Addr = defaults.Server.Addr
	}
	if doc.Server.TileScale <= 0 {
		doc.Server.TileScale = defaults.Server.TileScale
	}
	if doc.Cache.TileSizeMB == 0 {
		doc.Cache.TileSizeMB = defaults.Cache.TileSizeMB
	}
	if doc.Cache.TileTTLMinutes == 0 {
		doc.Cache.TileTTLMinutes = defaults.Cache.TileTTLMinutes
	}
	if doc.Cache.QueryCacheSize == 0 {
		doc.Cache.QueryCacheSize = defaults.Cache.QueryCacheSize
	}
}

// Validate checks that the document describes a grid that can be laid out.
func (d *Document) Validate() error {
	if err := errs.ValidateInsets(d.Width, d.Insets.Top, d.Insets.Left, d.Insets.Bottom, d.Insets.Right); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "insets")
	}
	if err := errs.ValidateDimensions(d.Items, d.AvailableWidth(), d.Spacing); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "dimensions")
	}
	for _, p := range d.Expanded {
		if err := errs.ValidatePosition(p, d.Items); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidConfig, err, "expanded")
		}
	}
	return nil
}

// AvailableWidth returns the width left for cells after horizontal insets.
func (d *Document) AvailableWidth() float64 {
	return d.Width - d.Insets.Left - d.Insets.Right
}

// Host returns a fixed host for the document's container.
func (d *Document) Host() flow.Static {
	return flow.Static{
		Count: d.Items,
		Width: d.Width,
		Insets: flow.Insets{
			Top:    d.Insets.Top,
			Left:   d.Insets.Left,
			Bottom: d.Insets.Bottom,
			Right:  d.Insets.Right,
		},
	}
}

// ExpandedSet returns the expanded positions as a set.
func (d *Document) ExpandedSet() map[int]bool {
	set := make(map[int]bool, len(d.Expanded))
	for _, p := range d.Expanded {
		set[p] = true
	}
	return set
}

// SetExpanded adds or removes position from the expanded list, keeping it
// sorted and free of duplicates.
func (d *Document) SetExpanded(position int, expanded bool) {
	set := d.ExpandedSet()
	if expanded {
		set[position] = true
	} else {
		delete(set, position)
	}
	d.Expanded = d.Expanded[:0]
	for p := range set {
		d.Expanded = append(d.Expanded, p)
	}
	slices.Sort(d.Expanded)
}

// Flow returns a Flow over the document, with the document's spacing.
// Later changes to Expanded are not seen by the returned Flow.
func (d *Document) Flow(opts ...flow.Option) *flow.Flow {
	opts = append([]flow.Option{flow.WithSpacing(d.Spacing)}, opts...)
	return flow.New(d.Host(), flow.ExpandedSet(d.ExpandedSet()), opts...)
}

// String summarizes the document for logs.
func (d *Document) String() string {
	return fmt.Sprintf("%d items, %d expanded, width %g", d.Items, len(d.Expanded), d.Width)
}
