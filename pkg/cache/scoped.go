package cache

import "fmt"

// Keyer builds cache keys, optionally under a scope prefix.
//
// The server scopes its keyer to the current layout revision:
//
//	keys := cache.NewKeyer().Scoped("rev:" + revision + ":")
//
// so that invalidating the layout orphans every tile and query result of the
// previous revision without an explicit purge.
type Keyer struct {
	prefix string
}

// NewKeyer returns an unscoped keyer.
func NewKeyer() Keyer { return Keyer{} }

// Scoped returns a keyer whose keys carry prefix after any existing prefix.
func (k Keyer) Scoped(prefix string) Keyer {
	return Keyer{prefix: k.prefix + prefix}
}

// RenderOpts identifies a rendered artifact.
type RenderOpts struct {
	Format   string  `json:"format"`
	Scale    float64 `json:"scale,omitempty"`
	Labels   bool    `json:"labels,omitempty"`
	Spacing  float64 `json:"spacing"`
	Viewport string  `json:"viewport,omitempty"`
}

// RenderKey generates a key for a rendered document. docHash identifies the
// document contents.
func (k Keyer) RenderKey(docHash string, opts RenderOpts) string {
	return k.prefix + hashKey("render", docHash, opts)
}

// QueryKey generates a key for a visible-items query over rect (x, y, w, h).
func (k Keyer) QueryKey(x, y, w, h float64) string {
	return k.prefix + fmt.Sprintf("query:%g,%g,%g,%g", x, y, w, h)
}

// TileKey generates a key for a rendered viewport tile.
func (k Keyer) TileKey(x, y, w, h, scale float64) string {
	return k.prefix + fmt.Sprintf("tile:%g,%g,%g,%g@%g", x, y, w, h, scale)
}
