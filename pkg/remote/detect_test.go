package remote

import (
	"context"
	"reflect"
	"testing"

	"github.com/matzehuels/depscope/pkg/remote/lockfile"
)

func TestDetectLockFile(t *testing.T) {
	ref := RepoReference{Platform: PlatformGitHub, Owner: "o", Repo: "r"}

	tests := []struct {
		name      string
		files     map[string]string
		wantKind  lockfile.Kind
		wantOK    bool
		wantPaths []string
	}{
		{
			name:      "pnpm wins",
			files:     map[string]string{"pnpm-lock.yaml": "p", "yarn.lock": "y", "package-lock.json": "n"},
			wantKind:  lockfile.KindPnpm,
			wantOK:    true,
			wantPaths: []string{"pnpm-lock.yaml"},
		},
		{
			name:      "yarn before npm",
			files:     map[string]string{"yarn.lock": "y", "package-lock.json": "n"},
			wantKind:  lockfile.KindYarn,
			wantOK:    true,
			wantPaths: []string{"pnpm-lock.yaml", "yarn.lock"},
		},
		{
			name:      "npm last",
			files:     map[string]string{"package-lock.json": "n"},
			wantKind:  lockfile.KindNpm,
			wantOK:    true,
			wantPaths: []string{"pnpm-lock.yaml", "yarn.lock", "package-lock.json"},
		},
		{
			name:      "empty file skipped",
			files:     map[string]string{"pnpm-lock.yaml": "", "package-lock.json": "n"},
			wantKind:  lockfile.KindNpm,
			wantOK:    true,
			wantPaths: []string{"pnpm-lock.yaml", "yarn.lock", "package-lock.json"},
		},
		{
			name:      "none",
			files:     map[string]string{},
			wantOK:    false,
			wantPaths: []string{"pnpm-lock.yaml", "yarn.lock", "package-lock.json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &mapFetcher{files: tt.files}
			lock, ok := DetectLockFile(context.Background(), f, ref)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && lock.Kind != tt.wantKind {
				t.Errorf("kind = %s, want %s", lock.Kind, tt.wantKind)
			}
			if !ok && lock != nil {
				t.Error("lock should be nil when absent")
			}
			if !reflect.DeepEqual(f.paths, tt.wantPaths) {
				t.Errorf("probed %v, want %v", f.paths, tt.wantPaths)
			}
		})
	}
}

func TestLockFileTree(t *testing.T) {
	lock := &LockFile{Kind: lockfile.KindYarn, Content: "left-pad@^1.3.0:\n  version \"1.3.0\"\n"}
	tree := lock.Tree()
	if tree.Len() != 1 || tree.Children[0].Name != "left-pad" {
		t.Errorf("Tree() = %+v", tree)
	}
}
