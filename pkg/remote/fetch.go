package remote

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/depscope/pkg/errors"
)

// Fetcher reads one file from a repository.
//
// Fetch never fails: an unsafe path, a missing file, a non-2xx response, a
// transport error and an empty body all report ok=false.
type Fetcher interface {
	Fetch(ctx context.Context, ref RepoReference, path string) (content string, ok bool)
}

// FileSource is a provider API able to return a file's raw contents.
// The GitHub and GitLab clients in pkg/integrations implement it.
type FileSource interface {
	FetchFileRaw(ctx context.Context, owner, repo, path, ref string) (string, error)
}

// RepoFetcher is the [Fetcher] backed by the hosting provider APIs.
type RepoFetcher struct {
	GitHub FileSource
	GitLab FileSource
	Logger *log.Logger
}

// NewRepoFetcher creates a fetcher dispatching on [RepoReference.Platform].
func NewRepoFetcher(github, gitlab FileSource, logger *log.Logger) *RepoFetcher {
	if logger == nil {
		logger = log.Default()
	}
	return &RepoFetcher{GitHub: github, GitLab: gitlab, Logger: logger}
}

func (f *RepoFetcher) Fetch(ctx context.Context, ref RepoReference, path string) (string, bool) {
	if err := errors.ValidatePath(path); err != nil {
		f.Logger.Debug("rejected path", "repo", ref, "path", path, "error", err)
		return "", false
	}

	src := f.GitHub
	if ref.Platform == PlatformGitLab {
		src = f.GitLab
	}
	if src == nil {
		f.Logger.Debug("no file source for platform", "platform", ref.Platform)
		return "", false
	}

	content, err := src.FetchFileRaw(ctx, ref.Owner, ref.Repo, path, ref.Ref())
	if err != nil {
		f.Logger.Debug("file unavailable", "repo", ref, "path", path, "error", err)
		return "", false
	}
	if content == "" {
		f.Logger.Debug("file empty", "repo", ref, "path", path)
		return "", false
	}
	return content, true
}
