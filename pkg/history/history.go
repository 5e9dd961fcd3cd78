// Package history records completed analyses.
//
// A [Store] is a [pipeline.Sink] that can also list what it recorded.
// Backends:
//   - none: [NullStore], nothing is kept (the default)
//   - file: [FileStore], one JSON file per result under the data dir
//   - mongo: [MongoStore], one document per result
//   - redis: [RedisStore], a capped list of JSON results
//
// The analysis itself never depends on the store: a failed write is
// logged by the pipeline and the result is still returned.
package history

import (
	"context"
	"fmt"

	"github.com/matzehuels/depscope/pkg/config"
	"github.com/matzehuels/depscope/pkg/observability"
	"github.com/matzehuels/depscope/pkg/pipeline"
)

// DefaultLimit is the number of results Recent returns for a zero limit.
const DefaultLimit = 20

// Store is the interface for history backends.
type Store interface {
	// Save records a completed analysis.
	Save(ctx context.Context, result *pipeline.Result) error

	// Recent returns up to limit results, newest first.
	Recent(ctx context.Context, limit int) ([]*pipeline.Result, error)

	// Close releases backend connections.
	Close() error
}

// Open connects to the backend named in cfg.
func Open(ctx context.Context, cfg config.HistoryConfig) (Store, error) {
	switch cfg.Backend {
	case config.BackendNone, "":
		return NewNullStore(), nil
	case config.BackendFile:
		return NewFileStore(cfg.URI, cfg.Retention)
	case config.BackendMongo:
		return NewMongoStore(ctx, cfg.URI, cfg.Database, cfg.Key)
	case config.BackendRedis:
		return NewRedisStore(ctx, cfg.URI, cfg.Key, cfg.Retention)
	}
	return nil, fmt.Errorf("unknown history backend %q", cfg.Backend)
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}

func reportSave(ctx context.Context, backend string, err error) error {
	observability.History().OnSave(ctx, backend, err)
	return err
}
