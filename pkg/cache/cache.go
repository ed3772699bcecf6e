// Package cache stores computed diagrams and flows keyed by a hash of their
// inputs.
//
// Backends:
//   - [NullCache]: never stores anything
//   - [MemoryCache]: process-local map for a single server
//   - [FileCache]: one JSON file per entry, used by the CLI
//   - [RedisCache]: shared cache for multi-instance deployments
//   - [MongoCache]: shared cache with a TTL index
//
// Keys come from a [Keyer] so the same inputs map to the same entry in
// every backend:
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.LayoutKey(cache.Hash(topologyJSON), cache.LayoutKeyOpts{Engine: "layered"})
//	data, hit, err := c.Get(ctx, key)
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry. A miss is reported through
// the hit result, never as an error.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	// Set stores data; a ttl of zero or less never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by backends that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) error
}
