package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/allegro/bigcache/v3"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/shannonchou/SquareFlowLayout/pkg/observability"
)

// ManagerConfig contains in-memory cache settings.
type ManagerConfig struct {
	TileCacheSizeMB int
	TileTTL         time.Duration
	QueryCacheSize  int
}

// Manager holds the server's tile and query caches.
type Manager struct {
	tiles   *bigcache.BigCache
	queries *lru.Cache[string, []byte]
}

// NewManager creates a cache manager.
func NewManager(cfg ManagerConfig) (*Manager, error) {
	tileConfig := bigcache.Config{
		Shards:             256,
		LifeWindow:         cfg.TileTTL,
		CleanWindow:        cfg.TileTTL / 2,
		MaxEntriesInWindow: 10000,
		MaxEntrySize:       64 * 1024,
		HardMaxCacheSize:   cfg.TileCacheSizeMB,
		Verbose:            false,
	}

	tiles, err := bigcache.New(context.Background(), tileConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create tile cache: %w", err)
	}

	queries, err := lru.New[string, []byte](cfg.QueryCacheSize)
	if err != nil {
		_ = tiles.Close()
		return nil, fmt.Errorf("failed to create query cache: %w", err)
	}

	return &Manager{tiles: tiles, queries: queries}, nil
}

// GetTile retrieves a rendered tile.
func (m *Manager) GetTile(ctx context.Context, key string) ([]byte, bool) {
	data, err := m.tiles.Get(key)
	if err != nil {
		observability.Cache().OnCacheMiss(ctx, "tile")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "tile")
	return data, true
}

// SetTile stores a rendered tile.
func (m *Manager) SetTile(ctx context.Context, key string, data []byte) error {
	if err := m.tiles.Set(key, data); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, "tile", len(data))
	return nil
}

// GetQuery retrieves an encoded query result.
func (m *Manager) GetQuery(ctx context.Context, key string) ([]byte, bool) {
	data, ok := m.queries.Get(key)
	if !ok {
		observability.Cache().OnCacheMiss(ctx, "query")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "query")
	return data, true
}

// SetQuery stores an encoded query result.
func (m *Manager) SetQuery(ctx context.Context, key string, data []byte) {
	m.queries.Add(key, data)
	observability.Cache().OnCacheSet(ctx, "query", len(data))
}

// Purge drops every entry.
func (m *Manager) Purge() error {
	m.queries.Purge()
	return m.tiles.Reset()
}

// Stats returns cache statistics.
func (m *Manager) Stats() map[string]int {
	return map[string]int{
		"tile_cache_len":  m.tiles.Len(),
		"tile_cache_cap":  m.tiles.Capacity(),
		"query_cache_len": m.queries.Len(),
	}
}

// Close closes the cache manager.
func (m *Manager) Close() error {
	return m.tiles.Close()
}
