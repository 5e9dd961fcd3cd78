package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/matzehuels/depscope/pkg/config"
	"github.com/matzehuels/depscope/pkg/pipeline"
)

// FileStore keeps results as JSON files in a directory. File names start
// with the analysis time so a reverse name sort lists newest first.
type FileStore struct {
	mu        sync.RWMutex
	baseDir   string
	retention int
}

// NewFileStore creates a file store. If baseDir is empty, defaults to
// ~/.local/share/depscope/history/. A positive retention prunes the
// oldest files after each save.
func NewFileStore(baseDir string, retention int) (*FileStore, error) {
	if baseDir == "" {
		dir, err := config.DataDir()
		if err != nil {
			return nil, fmt.Errorf("get data dir: %w", err)
		}
		baseDir = filepath.Join(dir, "history")
	}
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	return &FileStore{baseDir: baseDir, retention: retention}, nil
}

func (s *FileStore) resultPath(r *pipeline.Result) string {
	return filepath.Join(s.baseDir, fmt.Sprintf("%020d-%s.json", r.AnalyzedAt.UnixNano(), r.ID))
}

func (s *FileStore) Save(ctx context.Context, r *pipeline.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return reportSave(ctx, config.BackendFile, fmt.Errorf("marshal result: %w", err))
	}
	if err := os.WriteFile(s.resultPath(r), data, 0o600); err != nil {
		return reportSave(ctx, config.BackendFile, fmt.Errorf("write result file: %w", err))
	}
	return reportSave(ctx, config.BackendFile, s.prune())
}

func (s *FileStore) Recent(ctx context.Context, limit int) ([]*pipeline.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names, err := s.names()
	if err != nil {
		return nil, err
	}
	if n := limitOrDefault(limit); len(names) > n {
		names = names[:n]
	}

	out := make([]*pipeline.Result, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(s.baseDir, name))
		if err != nil {
			return nil, fmt.Errorf("read result file: %w", err)
		}
		var r pipeline.Result
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("parse result %s: %w", name, err)
		}
		out = append(out, &r)
	}
	return out, nil
}

func (s *FileStore) Close() error {
	return nil
}

// names lists result files, newest first.
func (s *FileStore) names() ([]string, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read history dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}

func (s *FileStore) prune() error {
	if s.retention <= 0 {
		return nil
	}
	names, err := s.names()
	if err != nil {
		return err
	}
	for _, name := range names[min(s.retention, len(names)):] {
		if err := os.Remove(filepath.Join(s.baseDir, name)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("prune history: %w", err)
		}
	}
	return nil
}

var _ Store = (*FileStore)(nil)
