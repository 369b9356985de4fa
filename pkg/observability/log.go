package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports every event as a debug line on a logger. It implements
// all hook interfaces.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks writing to logger, prefixed "obs".
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger.WithPrefix("obs")}
}

// Register installs h for every event category.
func (h *LogHooks) Register() {
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
	SetServerHooks(h)
	SetShellHooks(h)
}

func (h *LogHooks) OnMessagesLoaded(_ context.Context, source string, count int, d time.Duration, err error) {
	h.logger.Debug("messages loaded", "source", source, "count", count, "took", d, "err", err)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, silhouette string, items int) {
	h.logger.Debug("layout start", "silhouette", silhouette, "items", items)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, silhouette string, d time.Duration, err error) {
	h.logger.Debug("layout done", "silhouette", silhouette, "took", d, "err", err)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render start", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.logger.Debug("render done", "formats", formats, "took", d, "err", err)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("http response", "method", method, "host", host, "path", path, "status", status, "took", d)
}

func (h *LogHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("http error", "method", method, "host", host, "path", path, "err", err)
}

func (h *LogHooks) OnServe(_ context.Context, method, route string, status int, d time.Duration) {
	h.logger.Debug("served", "method", method, "route", route, "status", status, "took", d)
}

func (h *LogHooks) OnReload(_ context.Context, path string, err error) {
	h.logger.Debug("silhouette reload", "path", path, "err", err)
}

func (h *LogHooks) OnCelebrateError(_ context.Context, err error) {
	h.logger.Debug("celebrate failed", "err", err)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
	_ ServerHooks   = (*LogHooks)(nil)
	_ ShellHooks    = (*LogHooks)(nil)
)
