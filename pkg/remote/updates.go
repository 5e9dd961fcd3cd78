package remote

import (
	"context"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/depscope/pkg/errors"
)

// UpdateType classifies the distance between the current and latest version.
type UpdateType string

const (
	UpdateMajor      UpdateType = "major"
	UpdateMinor      UpdateType = "minor"
	UpdatePatch      UpdateType = "patch"
	UpdatePrerelease UpdateType = "prerelease"
)

// Update is the registry state of one package.
type Update struct {
	Name           string     `json:"name" yaml:"name"`
	CurrentVersion string     `json:"currentVersion" yaml:"currentVersion"`
	LatestVersion  string     `json:"latestVersion" yaml:"latestVersion"`
	HasUpdate      bool       `json:"hasUpdate" yaml:"hasUpdate"`
	UpdateType     UpdateType `json:"updateType,omitempty" yaml:"updateType,omitempty"`
}

// LatestFetcher returns the "latest" dist-tag of a package.
type LatestFetcher interface {
	FetchLatest(ctx context.Context, pkg string) (string, error)
}

// UpdateChecker looks up the latest published version of each package,
// one registry request per package.
type UpdateChecker struct {
	Client LatestFetcher

	// Concurrency caps in-flight registry requests; zero means unbounded.
	Concurrency int

	Logger *log.Logger
}

// NewUpdateChecker creates a checker over client.
func NewUpdateChecker(client LatestFetcher, concurrency int, logger *log.Logger) *UpdateChecker {
	if logger == nil {
		logger = log.Default()
	}
	return &UpdateChecker{Client: client, Concurrency: concurrency, Logger: logger}
}

// Check returns one record per package, in input order. A failed lookup
// yields a record with LatestVersion equal to the current version and
// HasUpdate false; it never affects the other records.
func (c *UpdateChecker) Check(ctx context.Context, pkgs []PackageRef) []Update {
	out := make([]Update, len(pkgs))

	var g errgroup.Group
	if c.Concurrency > 0 {
		g.SetLimit(c.Concurrency)
	}
	for i, p := range pkgs {
		i, p := i, p // per-iteration copies; go.mod targets go 1.21
		g.Go(func() error {
			out[i] = c.checkOne(ctx, p)
			return nil
		})
	}
	_ = g.Wait()

	return out
}

func (c *UpdateChecker) checkOne(ctx context.Context, p PackageRef) Update {
	u := Update{Name: p.Name, CurrentVersion: p.Version, LatestVersion: p.Version}

	if err := errors.ValidateNpmPackageName(p.Name); err != nil {
		c.Logger.Debug("skipping update check", "package", p.Name, "error", err)
		return u
	}

	latest, err := c.Client.FetchLatest(ctx, p.Name)
	if err != nil {
		c.Logger.Debug("update check failed", "package", p.Name, "error", err)
		return u
	}
	if latest == "" {
		latest = p.Version
	}

	u.LatestVersion = latest
	u.HasUpdate = HasUpdate(p.Version, latest)
	if u.HasUpdate {
		u.UpdateType = ClassifyUpdate(p.Version, latest)
	}
	return u
}

// HasUpdate reports whether latest differs from current and is not
// already contained in current. This is a string heuristic, not a
// semantic version comparison: current "1.10.0" hides latest "1.10".
func HasUpdate(current, latest string) bool {
	return latest != current && !strings.Contains(current, latest)
}

// ClassifyUpdate returns how far latest is ahead of current, or "" when
// either version does not parse or latest is not newer.
func ClassifyUpdate(current, latest string) UpdateType {
	cur, err := semver.NewVersion(current)
	if err != nil {
		return ""
	}
	lat, err := semver.NewVersion(latest)
	if err != nil {
		return ""
	}
	if !lat.GreaterThan(cur) {
		return ""
	}
	switch {
	case lat.Major() != cur.Major():
		return UpdateMajor
	case lat.Minor() != cur.Minor():
		return UpdateMinor
	case lat.Patch() != cur.Patch():
		return UpdatePatch
	}
	return UpdatePrerelease
}
