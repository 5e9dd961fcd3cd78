package pipeline

import (
	"time"

	"github.com/matzehuels/depscope/pkg/remote"
	"github.com/matzehuels/depscope/pkg/remote/lockfile"
)

// SourceTypeGit marks results produced from a remote repository.
const SourceTypeGit = "git"

// Result is the outcome of one remote analysis.
type Result struct {
	ID         string    `json:"id" yaml:"id"`
	AnalyzedAt time.Time `json:"analyzedAt" yaml:"analyzedAt"`
	SourceType string    `json:"sourceType" yaml:"sourceType"`

	RepoInfo remote.RepoReference  `json:"repoInfo" yaml:"repoInfo"`
	Packages []remote.PackageEntry `json:"packages" yaml:"packages"`

	// DependencyTree is nil when the repository has no lock file.
	DependencyTree *lockfile.Node `json:"dependencyTree" yaml:"dependencyTree"`
	LockFileType   lockfile.Kind  `json:"lockFileType,omitempty" yaml:"lockFileType,omitempty"`

	Vulnerabilities []remote.Vulnerability `json:"vulnerabilities" yaml:"vulnerabilities"`
	Updates         []remote.Update        `json:"updates" yaml:"updates"`
	Summary         Summary                `json:"summary" yaml:"summary"`
}

// Summary counts vulnerabilities by severity.
type Summary struct {
	Critical int `json:"critical" yaml:"critical"`
	High     int `json:"high" yaml:"high"`
	Moderate int `json:"moderate" yaml:"moderate"`
	Low      int `json:"low" yaml:"low"`
	Total    int `json:"total" yaml:"total"`
}

// Summarize counts vulns by severity.
func Summarize(vulns []remote.Vulnerability) Summary {
	var s Summary
	for _, v := range vulns {
		switch v.Severity {
		case remote.SeverityCritical:
			s.Critical++
		case remote.SeverityHigh:
			s.High++
		case remote.SeverityModerate:
			s.Moderate++
		case remote.SeverityLow:
			s.Low++
		}
		s.Total++
	}
	return s
}

// Outdated returns the updates that have a newer version available.
func (r *Result) Outdated() []remote.Update {
	out := []remote.Update{}
	for _, u := range r.Updates {
		if u.HasUpdate {
			out = append(out, u)
		}
	}
	return out
}
