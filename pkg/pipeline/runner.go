package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/clustergraph/pkg/cache"
	"github.com/matzehuels/clustergraph/pkg/diagram"
	"github.com/matzehuels/clustergraph/pkg/layout/engines"
	"github.com/matzehuels/clustergraph/pkg/observability"
	"github.com/matzehuels/clustergraph/pkg/topology"
)

// Runner executes the pipeline with caching. It keeps no results between
// calls, so one Runner can serve concurrent requests.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// Engine names the default layout engine.
	Engine string
	// Config is passed to every diagram engine.
	Config diagram.Config
	// Hooks observes layout phases; nil disables them.
	Hooks observability.LayoutHooks
	// TTL bounds cached entries; zero or less never expires.
	TTL time.Duration
	// Backoff retries cache writes that fail transiently.
	Backoff cache.Backoff
}

// NewRunner returns a runner with the default engine and settings. A nil
// cache disables caching and a nil keyer selects the default keyer.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:   c,
		Keyer:   keyer,
		Logger:  logger,
		Engine:  engines.Default,
		Config:  diagram.DefaultConfig(),
		TTL:     DefaultTTL,
		Backoff: cache.DefaultBackoff(),
	}
}

// Execute validates t, lays it out and renders every requested format.
func (r *Runner) Execute(ctx context.Context, t *topology.Topology, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	result := &Result{}

	start := time.Now()
	hash, err := r.prepare(t, opts)
	if err != nil {
		return nil, err
	}
	result.TopologyHash = hash
	result.Stats.ValidateTime = time.Since(start)

	start = time.Now()
	d, hit, err := r.layout(ctx, t, hash, opts)
	if err != nil {
		return nil, err
	}
	result.Diagram = d
	result.CacheInfo.LayoutHit = hit
	result.Stats.LayoutTime = time.Since(start)
	r.Logger.Info("computed layout",
		"nodes", len(d.Nodes),
		"subcategories", len(d.Subcategories),
		"categories", len(d.Categories),
		"cached", hit,
		"duration", result.Stats.LayoutTime)

	start = time.Now()
	artifacts, flowHit, err := r.renderCached(ctx, d, hash, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheInfo.FlowHit = flowHit
	result.Stats.RenderTime = time.Since(start)
	r.Logger.Debug("rendered outputs", "formats", opts.formats(), "duration", result.Stats.RenderTime)

	return result, nil
}

// Layout validates t and returns its diagram, reporting whether it came
// from the cache.
func (r *Runner) Layout(ctx context.Context, t *topology.Topology, opts Options) (*diagram.Diagram, bool, error) {
	if err := opts.Validate(); err != nil {
		return nil, false, err
	}
	hash, err := r.prepare(t, opts)
	if err != nil {
		return nil, false, err
	}
	return r.layout(ctx, t, hash, opts)
}

// prepare validates t unless opts is lenient and returns its hash.
func (r *Runner) prepare(t *topology.Topology, opts Options) (string, error) {
	if t == nil || !opts.Lenient {
		if err := t.Validate(); err != nil {
			return "", err
		}
	}
	data, err := json.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("hash topology: %w", err)
	}
	return cache.Hash(data), nil
}

func (r *Runner) layout(ctx context.Context, t *topology.Topology, hash string, opts Options) (*diagram.Diagram, bool, error) {
	key := r.Keyer.LayoutKey(hash, r.layoutKeyOpts(opts))
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err != nil {
			r.Logger.Warn("cache read failed", "error", err)
		} else if hit {
			var d diagram.Diagram
			if err := json.Unmarshal(data, &d); err == nil {
				return &d, true, nil
			}
			r.Logger.Debug("discarding undecodable cache entry", "key", key)
		}
	}

	layouter, err := engines.New(r.engineName(opts))
	if err != nil {
		return nil, false, err
	}
	engine := &diagram.Engine{
		Layouter: layouter,
		Config:   r.Config,
		Logger:   r.Logger,
		Hooks:    r.Hooks,
	}
	d, err := engine.Layout(ctx, t)
	if err != nil {
		return nil, false, err
	}
	if d.Stats.DroppedRelationships > 0 {
		r.Logger.Warn("dropped unresolved relationships", "count", d.Stats.DroppedRelationships)
	}

	if data, err := json.Marshal(d); err == nil {
		r.store(ctx, key, data)
	}
	return d, false, nil
}

// store writes to the cache, retrying transient failures. A failed write
// is logged, never returned.
func (r *Runner) store(ctx context.Context, key string, data []byte) {
	err := r.Backoff.Retry(ctx, func() error {
		return r.Cache.Set(ctx, key, data, r.TTL)
	})
	if err != nil {
		r.Logger.Warn("cache write failed", "error", err)
	}
}

// engineName is canonical so spellings of one engine share cache entries.
func (r *Runner) engineName(opts Options) string {
	if opts.Engine != "" {
		return engines.Canonical(opts.Engine)
	}
	return engines.Canonical(r.Engine)
}

func (r *Runner) layoutKeyOpts(opts Options) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{Engine: r.engineName(opts), Config: r.Config}
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
