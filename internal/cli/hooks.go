package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/depscope/pkg/observability"
)

// logHooks traces outbound HTTP calls and history writes at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnRequest(context.Context, string, string, string) {}

func (h logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("http", "method", method, "host", host, "path", path, "status", status, "took", d.Round(time.Millisecond))
}

func (h logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("http failed", "method", method, "host", host, "path", path, "error", err)
}

func (h logHooks) OnSave(_ context.Context, backend string, err error) {
	if err != nil {
		h.logger.Debug("history save failed", "backend", backend, "error", err)
		return
	}
	h.logger.Debug("history saved", "backend", backend)
}

// EnableTracing registers hooks that log HTTP traffic and history writes
// through the CLI logger.
func (c *CLI) EnableTracing() {
	h := logHooks{logger: c.Logger}
	observability.SetHTTPHooks(h)
	observability.SetHistoryHooks(h)
}
