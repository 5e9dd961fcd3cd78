package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/depscope/pkg/config"
	"github.com/matzehuels/depscope/pkg/errors"
	"github.com/matzehuels/depscope/pkg/integrations/github"
	"github.com/matzehuels/depscope/pkg/integrations/gitlab"
	"github.com/matzehuels/depscope/pkg/integrations/npm"
	"github.com/matzehuels/depscope/pkg/integrations/osv"
	"github.com/matzehuels/depscope/pkg/observability"
	"github.com/matzehuels/depscope/pkg/remote"
)

// VulnerabilityScanner matches package versions against advisories.
type VulnerabilityScanner interface {
	Check(ctx context.Context, pkgs []remote.PackageRef) []remote.Vulnerability
}

// UpdateScanner looks up the latest version of packages.
type UpdateScanner interface {
	Check(ctx context.Context, pkgs []remote.PackageRef) []remote.Update
}

// Sink receives every completed result.
type Sink interface {
	Save(ctx context.Context, result *Result) error
}

// Runner executes remote analyses.
//
// A Runner holds no per-analysis state; one Runner can serve concurrent
// analyses of different repositories.
type Runner struct {
	Fetcher remote.Fetcher
	Vulns   VulnerabilityScanner
	Updates UpdateScanner

	// CheckLimit caps how many packages are checked; zero selects
	// config.DefaultCheckLimit.
	CheckLimit int

	// Sink is optional. Save errors are logged, never returned.
	Sink Sink

	Logger *log.Logger
}

// NewRunner wires a runner to the services named in cfg.
// A nil sink disables result recording; a nil logger uses log.Default().
func NewRunner(cfg config.Config, sink Sink, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	timeout := cfg.HTTPTimeout.Duration

	fetcher := remote.NewRepoFetcher(
		github.NewClient(cfg.GitHubAPIURL, cfg.UserAgent, timeout),
		gitlab.NewClient(cfg.GitLabAPIURL, cfg.UserAgent, timeout),
		logger,
	)
	return &Runner{
		Fetcher:    fetcher,
		Vulns:      remote.NewVulnerabilityChecker(osv.NewClient(cfg.OSVURL, cfg.UserAgent, timeout), logger),
		Updates:    remote.NewUpdateChecker(npm.NewClient(cfg.RegistryURL, cfg.UserAgent, timeout), cfg.UpdateConcurrency, logger),
		CheckLimit: cfg.CheckLimit,
		Sink:       sink,
		Logger:     logger,
	}
}

// Analyze runs a remote analysis of repoURL. A non-empty branch overrides
// the branch named in the URL.
//
// The returned error is an *errors.Error with code ErrCodeInvalidURL or
// ErrCodeManifestNotFound; every other failure degrades the result.
func (r *Runner) Analyze(ctx context.Context, repoURL, branch string) (result *Result, err error) {
	start := time.Now()
	hooks := observability.Analysis()
	hooks.OnAnalyzeStart(ctx, repoURL)
	defer func() {
		var pkgs, vulns int
		if result != nil {
			pkgs, vulns = len(result.Packages), len(result.Vulnerabilities)
		}
		hooks.OnAnalyzeComplete(ctx, repoURL, pkgs, vulns, time.Since(start), err)
	}()

	ref, err := remote.ParseURL(repoURL)
	if err != nil {
		return nil, err
	}
	if branch != "" {
		ref.Branch = branch
	}

	// Manifest
	stageStart := time.Now()
	text, ok := r.Fetcher.Fetch(ctx, ref, remote.ManifestFile)
	if !ok {
		return nil, errors.New(errors.ErrCodeManifestNotFound, "package.json not found in repository")
	}
	manifest := remote.ExtractManifest(text)
	packages := remote.ToPackageList(manifest.Dependencies, manifest.DevDependencies)
	r.stage(ctx, "manifest", stageStart)
	r.Logger.Info("fetched manifest", "repo", ref, "packages", len(packages))

	result = &Result{
		ID:         uuid.NewString(),
		AnalyzedAt: start.UTC(),
		SourceType: SourceTypeGit,
		RepoInfo:   ref,
		Packages:   packages,
	}

	// Lock file
	stageStart = time.Now()
	if lf, found := remote.DetectLockFile(ctx, r.Fetcher, ref); found {
		result.DependencyTree = lf.Tree()
		result.LockFileType = lf.Kind
		r.Logger.Info("parsed lock file", "file", lf.Path, "dependencies", result.DependencyTree.Len())
	} else {
		r.Logger.Debug("no lock file", "repo", ref)
	}
	r.stage(ctx, "lockfile", stageStart)

	// Vulnerabilities and updates
	refs := remote.Refs(packages, r.checkLimit())
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		t := time.Now()
		result.Vulnerabilities = r.Vulns.Check(ctx, refs)
		r.stage(ctx, "vulnerabilities", t)
	}()
	go func() {
		defer wg.Done()
		t := time.Now()
		result.Updates = r.Updates.Check(ctx, refs)
		r.stage(ctx, "updates", t)
	}()
	wg.Wait()

	if result.Vulnerabilities == nil {
		result.Vulnerabilities = []remote.Vulnerability{}
	}
	if result.Updates == nil {
		result.Updates = []remote.Update{}
	}
	result.Summary = Summarize(result.Vulnerabilities)

	r.Logger.Info("analyzed repository",
		"repo", ref,
		"packages", len(result.Packages),
		"checked", len(refs),
		"vulnerabilities", result.Summary.Total,
		"outdated", len(result.Outdated()),
		"duration", time.Since(start))

	if r.Sink != nil {
		if err := r.Sink.Save(ctx, result); err != nil {
			r.Logger.Warn("could not record analysis", "id", result.ID, "error", err)
		}
	}

	return result, nil
}

func (r *Runner) checkLimit() int {
	if r.CheckLimit > 0 {
		return r.CheckLimit
	}
	return config.DefaultCheckLimit
}

func (r *Runner) stage(ctx context.Context, name string, since time.Time) {
	d := time.Since(since)
	observability.Analysis().OnStage(ctx, name, d)
	r.Logger.Debug("stage complete", "stage", name, "duration", d)
}
