package history

import (
	"context"

	"github.com/matzehuels/depscope/pkg/pipeline"
)

// NullStore is a no-op store that never records anything.
type NullStore struct{}

// NewNullStore creates a null store.
func NewNullStore() *NullStore {
	return &NullStore{}
}

// Save does nothing.
func (s *NullStore) Save(ctx context.Context, result *pipeline.Result) error {
	return nil
}

// Recent always returns an empty list.
func (s *NullStore) Recent(ctx context.Context, limit int) ([]*pipeline.Result, error) {
	return []*pipeline.Result{}, nil
}

// Close does nothing.
func (s *NullStore) Close() error {
	return nil
}

// Ensure NullStore implements Store.
var _ Store = (*NullStore)(nil)
