package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug-level records
// to a charmbracelet logger.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks writing to logger, or to log.Default() when
// logger is nil.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{Logger: logger}
}

var (
	_ LayoutHooks = (*LogHooks)(nil)
	_ CacheHooks  = (*LogHooks)(nil)
	_ HTTPHooks   = (*LogHooks)(nil)
)

func (h *LogHooks) OnPhaseStart(_ context.Context, phase Phase, size int) {
	h.Logger.Debug("phase start", "phase", phase, "size", size)
}

func (h *LogHooks) OnPhaseComplete(_ context.Context, phase Phase, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("phase failed", "phase", phase, "duration", d, "error", err)
		return
	}
	h.Logger.Debug("phase complete", "phase", phase, "duration", d)
}

func (h *LogHooks) OnRelationshipsResolved(_ context.Context, resolved, dropped int) {
	h.Logger.Debug("relationships resolved", "resolved", resolved, "dropped", dropped)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, requestID, method, path string) {
	h.Logger.Debug("request", "id", requestID, "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, requestID, method, path string, status int, d time.Duration) {
	h.Logger.Info("response", "id", requestID, "method", method, "path", path, "status", status, "duration", d)
}
