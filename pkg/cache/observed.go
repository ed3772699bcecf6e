package cache

import (
	"context"
	"time"

	"github.com/matzehuels/clustergraph/pkg/observability"
)

// Observed reports hits, misses and writes of an inner cache to hooks.
type Observed struct {
	Cache
	hooks observability.CacheHooks
}

// WithHooks wraps c; nil hooks return c unchanged.
func WithHooks(c Cache, hooks observability.CacheHooks) Cache {
	if hooks == nil {
		return c
	}
	return &Observed{Cache: c, hooks: hooks}
}

func (o *Observed) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := o.Cache.Get(ctx, key)
	if err == nil {
		if hit {
			o.hooks.OnCacheHit(ctx, KeyType(key))
		} else {
			o.hooks.OnCacheMiss(ctx, KeyType(key))
		}
	}
	return data, hit, err
}

func (o *Observed) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := o.Cache.Set(ctx, key, data, ttl)
	if err == nil {
		o.hooks.OnCacheSet(ctx, KeyType(key), len(data))
	}
	return err
}

// Clear forwards to the inner cache when it supports clearing.
func (o *Observed) Clear(ctx context.Context) error {
	if c, ok := o.Cache.(Clearer); ok {
		return c.Clear(ctx)
	}
	return nil
}
