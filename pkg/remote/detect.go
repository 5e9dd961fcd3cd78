package remote

import (
	"context"

	"github.com/matzehuels/depscope/pkg/remote/lockfile"
)

// LockFile is a lock file found in a repository.
type LockFile struct {
	Kind    lockfile.Kind
	Path    string
	Content string
}

// Tree parses the lock file into a dependency tree.
func (l *LockFile) Tree() *lockfile.Node {
	return lockfile.Parse(l.Content, l.Kind)
}

// DetectLockFile probes pnpm-lock.yaml, yarn.lock and package-lock.json in
// that order and returns the first one present. ok is false when none is.
func DetectLockFile(ctx context.Context, f Fetcher, ref RepoReference) (*LockFile, bool) {
	for _, kind := range lockfile.Kinds {
		path := kind.Filename()
		if content, ok := f.Fetch(ctx, ref, path); ok {
			return &LockFile{Kind: kind, Path: path, Content: content}, true
		}
	}
	return nil, false
}
