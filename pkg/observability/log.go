package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level. Failed stages
// and 5xx responses are logged as errors.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks writing to logger, or to the default logger
// when logger is nil. The result implements PipelineHooks, CacheHooks and
// HTTPHooks.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{Logger: logger}
}

func (h *LogHooks) OnEditStart(_ context.Context, ops int) {
	h.Logger.Debug("edit started", "ops", ops)
}

func (h *LogHooks) OnEditComplete(_ context.Context, ops int, d time.Duration, err error) {
	h.complete("edit", err, "ops", ops, "duration", d)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, view string, annotations int) {
	h.Logger.Debug("layout started", "view", view, "annotations", annotations)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, view string, d time.Duration, err error) {
	h.complete("layout", err, "view", view, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.Logger.Debug("render started", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.complete("render", err, "formats", formats, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "kind", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "kind", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "kind", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.Logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	if status >= 500 {
		h.Logger.Error("response", "method", method, "path", path, "status", status, "duration", d)
		return
	}
	h.Logger.Debug("response", "method", method, "path", path, "status", status, "duration", d)
}

func (h *LogHooks) complete(stage string, err error, kv ...any) {
	if err != nil {
		h.Logger.Error(stage+" failed", append(kv, "err", err)...)
		return
	}
	h.Logger.Debug(stage+" done", kv...)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
