package remote

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/depscope/pkg/integrations"
)

type fakeSource struct {
	files map[string]string
	err   error
	calls []string
}

func (s *fakeSource) FetchFileRaw(_ context.Context, owner, repo, path, ref string) (string, error) {
	s.calls = append(s.calls, owner+"/"+repo+":"+path+"@"+ref)
	if s.err != nil {
		return "", s.err
	}
	content, ok := s.files[path]
	if !ok {
		return "", integrations.ErrNotFound
	}
	return content, nil
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestRepoFetcher_DispatchesOnPlatform(t *testing.T) {
	gh := &fakeSource{files: map[string]string{"package.json": "gh"}}
	gl := &fakeSource{files: map[string]string{"package.json": "gl"}}
	f := NewRepoFetcher(gh, gl, quietLogger())

	got, ok := f.Fetch(context.Background(), RepoReference{Platform: PlatformGitHub, Owner: "o", Repo: "r"}, "package.json")
	if !ok || got != "gh" {
		t.Errorf("github Fetch() = %q, %v", got, ok)
	}
	got, ok = f.Fetch(context.Background(), RepoReference{Platform: PlatformGitLab, Owner: "o", Repo: "r", Branch: "dev"}, "package.json")
	if !ok || got != "gl" {
		t.Errorf("gitlab Fetch() = %q, %v", got, ok)
	}

	if len(gh.calls) != 1 || gh.calls[0] != "o/r:package.json@HEAD" {
		t.Errorf("github calls = %v", gh.calls)
	}
	if len(gl.calls) != 1 || gl.calls[0] != "o/r:package.json@dev" {
		t.Errorf("gitlab calls = %v", gl.calls)
	}
}

func TestRepoFetcher_FailuresAreAbsent(t *testing.T) {
	ref := RepoReference{Platform: PlatformGitHub, Owner: "o", Repo: "r"}
	tests := []struct {
		name      string
		src       *fakeSource
		path      string
		wantCalls int
	}{
		{"not found", &fakeSource{files: map[string]string{}}, "yarn.lock", 1},
		{"network", &fakeSource{err: integrations.ErrNetwork}, "yarn.lock", 1},
		{"other", &fakeSource{err: errors.New("boom")}, "yarn.lock", 1},
		{"empty body", &fakeSource{files: map[string]string{"yarn.lock": ""}}, "yarn.lock", 1},
		{"traversal", &fakeSource{files: map[string]string{"../secrets/.env": "x"}}, "../secrets/.env", 0},
		{"absolute", &fakeSource{files: map[string]string{"/etc/passwd": "x"}}, "/etc/passwd", 0},
		{"empty path", &fakeSource{files: map[string]string{"": "x"}}, "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewRepoFetcher(tt.src, nil, quietLogger())
			if got, ok := f.Fetch(context.Background(), ref, tt.path); ok || got != "" {
				t.Errorf("Fetch() = %q, %v; want absent", got, ok)
			}
			if len(tt.src.calls) != tt.wantCalls {
				t.Errorf("source calls = %v, want %d", tt.src.calls, tt.wantCalls)
			}
		})
	}
}

func TestRepoFetcher_MissingSource(t *testing.T) {
	f := NewRepoFetcher(&fakeSource{}, nil, quietLogger())
	ref := RepoReference{Platform: PlatformGitLab, Owner: "o", Repo: "r"}
	if _, ok := f.Fetch(context.Background(), ref, "package.json"); ok {
		t.Error("Fetch() without gitlab source should be absent")
	}
}

// mapFetcher is a Fetcher over an in-memory file set.
type mapFetcher struct {
	files map[string]string
	paths []string
}

func (m *mapFetcher) Fetch(_ context.Context, _ RepoReference, path string) (string, bool) {
	m.paths = append(m.paths, path)
	c, ok := m.files[path]
	return c, ok && c != ""
}
