package history

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/depscope/pkg/config"
	"github.com/matzehuels/depscope/pkg/pipeline"
)

// RedisStore keeps results as JSON in a list, newest at the head.
type RedisStore struct {
	client    *redis.Client
	key       string
	retention int
}

// NewRedisStore connects to uri (redis:// or rediss://). A positive
// retention trims the list to that many entries on every save.
func NewRedisStore(ctx context.Context, uri, key string, retention int) (*RedisStore, error) {
	opts, err := redis.ParseURL(uri)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisStore{client: client, key: key, retention: retention}, nil
}

func (s *RedisStore) Save(ctx context.Context, r *pipeline.Result) error {
	data, err := encodeResult(r)
	if err != nil {
		return reportSave(ctx, config.BackendRedis, err)
	}

	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, s.key, data)
	if s.retention > 0 {
		pipe.LTrim(ctx, s.key, 0, int64(s.retention-1))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return reportSave(ctx, config.BackendRedis, fmt.Errorf("push result: %w", err))
	}
	return reportSave(ctx, config.BackendRedis, nil)
}

func (s *RedisStore) Recent(ctx context.Context, limit int) ([]*pipeline.Result, error) {
	vals, err := s.client.LRange(ctx, s.key, 0, int64(limitOrDefault(limit)-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	return decodeResults(vals), nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func encodeResult(r *pipeline.Result) ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return data, nil
}

// decodeResults skips entries that no longer decode.
func decodeResults(vals []string) []*pipeline.Result {
	out := make([]*pipeline.Result, 0, len(vals))
	for _, v := range vals {
		var r pipeline.Result
		if err := json.Unmarshal([]byte(v), &r); err != nil {
			continue
		}
		out = append(out, &r)
	}
	return out
}

var _ Store = (*RedisStore)(nil)
