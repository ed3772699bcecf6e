// Package observability defines the event hooks the diagram engine, the
// caches and the HTTP server report through.
//
// Components take hooks as struct fields and treat nil as a no-op:
//
//	engine := diagram.New(layered.New(), cfg)
//	engine.Hooks = observability.NewLogHooks(logger)
//
// [LogHooks] implements all three interfaces on a charmbracelet logger.
package observability

import (
	"context"
	"time"
)

// Phase names a stage of the layout pipeline.
type Phase string

const (
	PhaseInner   Phase = "inner"
	PhaseMacro   Phase = "macro"
	PhaseCompose Phase = "compose"
	PhasePresent Phase = "present"
)

// LayoutHooks receives events from the diagram engine.
type LayoutHooks interface {
	// OnPhaseStart is called when a phase begins. size is the number of
	// items the phase works on (subcategories, macro nodes, leaves).
	OnPhaseStart(ctx context.Context, phase Phase, size int)
	OnPhaseComplete(ctx context.Context, phase Phase, duration time.Duration, err error)

	// OnRelationshipsResolved reports how many relationship records became
	// macro edges and how many were dropped.
	OnRelationshipsResolved(ctx context.Context, resolved, dropped int)
}

// CacheHooks receives cache lookups and writes keyed by artifact kind.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	// OnCacheSet reports a write of size bytes.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks brackets every API request.
type HTTPHooks interface {
	OnRequest(ctx context.Context, requestID, method, path string)
	OnResponse(ctx context.Context, requestID, method, path string, statusCode int, duration time.Duration)
}

type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnPhaseStart(context.Context, Phase, int)                     {}
func (NoopLayoutHooks) OnPhaseComplete(context.Context, Phase, time.Duration, error) {}
func (NoopLayoutHooks) OnRelationshipsResolved(context.Context, int, int)            {}

type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}

// LayoutOrNoop returns h, or a no-op when h is nil. The cache and HTTP
// variants below behave the same.
func LayoutOrNoop(h LayoutHooks) LayoutHooks {
	if h == nil {
		return NoopLayoutHooks{}
	}
	return h
}

func CacheOrNoop(h CacheHooks) CacheHooks {
	if h == nil {
		return NoopCacheHooks{}
	}
	return h
}

func HTTPOrNoop(h HTTPHooks) HTTPHooks {
	if h == nil {
		return NoopHTTPHooks{}
	}
	return h
}
