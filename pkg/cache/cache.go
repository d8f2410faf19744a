// Package cache stores rendered grid artifacts and viewport query results.
//
// Two families of caches live here:
//
//   - [Cache] implementations ([FileCache], [NullCache]) keep rendered
//     outputs between CLI runs so an unchanged document is not re-rendered.
//   - [Manager] keeps server-side tiles (bigcache) and visible-item query
//     results (an LRU) in memory.
//
// Keys are built with a [Keyer], which can be scoped to a layout revision so
// that entries from an invalidated layout are never served again.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value stored at key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data at key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}
