package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/depscope/pkg/config"
	"github.com/matzehuels/depscope/pkg/history"
	"github.com/matzehuels/depscope/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "depscope"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is bound to the --config flag.
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig resolves the configuration for the current invocation.
func (c *CLI) loadConfig() (config.Config, error) {
	return config.Load(c.configPath)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner recording into the configured
// history. The caller closes the returned store.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config, noHistory bool) (*pipeline.Runner, history.Store, error) {
	store, err := c.openHistory(ctx, cfg, noHistory)
	if err != nil {
		return nil, nil, err
	}
	return pipeline.NewRunner(cfg, store, c.Logger), store, nil
}

// openHistory opens the configured store. A store that cannot be reached
// is replaced by a null store so the analysis still runs.
func (c *CLI) openHistory(ctx context.Context, cfg config.Config, disabled bool) (history.Store, error) {
	if disabled {
		return history.NewNullStore(), nil
	}
	store, err := history.Open(ctx, cfg.History)
	if err != nil {
		c.Logger.Warn("history disabled", "backend", cfg.History.Backend, "error", err)
		return history.NewNullStore(), nil
	}
	return store, nil
}
