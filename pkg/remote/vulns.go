package remote

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/depscope/pkg/integrations/osv"
)

// Severity is the normalized severity of a vulnerability.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityModerate Severity = "moderate"
	SeverityLow      Severity = "low"
)

// Rank orders severities from low (1) to critical (4); unknown values rank 0.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityModerate:
		return 2
	case SeverityLow:
		return 1
	}
	return 0
}

// NoFixAvailable is the recommendation for advisories without a fixed version.
const NoFixAvailable = "No fix available"

// Vulnerability is one advisory matched against one package version.
type Vulnerability struct {
	ID             string   `json:"id" yaml:"id"`
	Title          string   `json:"title" yaml:"title"`
	Severity       Severity `json:"severity" yaml:"severity"`
	Package        string   `json:"package" yaml:"package"`
	Version        string   `json:"version" yaml:"version"`
	Recommendation string   `json:"recommendation" yaml:"recommendation"`
	URL            string   `json:"url,omitempty" yaml:"url,omitempty"`
}

// BatchQuerier submits a batch of OSV queries.
type BatchQuerier interface {
	QueryBatch(ctx context.Context, queries []osv.Query) (*osv.BatchResponse, error)
}

// VulnerabilityChecker looks up advisories for package versions in one
// batched request.
type VulnerabilityChecker struct {
	Client BatchQuerier
	Logger *log.Logger
}

// NewVulnerabilityChecker creates a checker over client.
func NewVulnerabilityChecker(client BatchQuerier, logger *log.Logger) *VulnerabilityChecker {
	if logger == nil {
		logger = log.Default()
	}
	return &VulnerabilityChecker{Client: client, Logger: logger}
}

// Check returns the advisories affecting pkgs. An empty input returns
// without a network call; a failed batch returns an empty list.
func (c *VulnerabilityChecker) Check(ctx context.Context, pkgs []PackageRef) []Vulnerability {
	out := []Vulnerability{}
	if len(pkgs) == 0 {
		return out
	}

	queries := make([]osv.Query, len(pkgs))
	for i, p := range pkgs {
		queries[i] = osv.Query{
			Package: osv.Package{Name: p.Name, Ecosystem: osv.EcosystemNpm},
			Version: p.Version,
		}
	}

	resp, err := c.Client.QueryBatch(ctx, queries)
	if err != nil {
		c.Logger.Warn("vulnerability check failed", "packages", len(pkgs), "error", err)
		return out
	}

	for i, result := range resp.Results {
		if i >= len(pkgs) {
			break
		}
		for _, adv := range result.Vulns {
			out = append(out, toVulnerability(adv, pkgs[i]))
		}
	}
	return out
}

func toVulnerability(adv osv.Advisory, pkg PackageRef) Vulnerability {
	v := Vulnerability{
		ID:             adv.ID,
		Title:          adv.Summary,
		Severity:       AdvisorySeverity(adv),
		Package:        pkg.Name,
		Version:        pkg.Version,
		Recommendation: NoFixAvailable,
	}
	if v.Title == "" {
		v.Title = adv.ID
	}
	if fixed := firstFixed(adv); fixed != "" {
		v.Recommendation = "Upgrade to " + fixed
	}
	if len(adv.References) > 0 {
		v.URL = adv.References[0].URL
	}
	return v
}

// firstFixed scans the events of the first range of the first affected
// package for a fixed version.
func firstFixed(adv osv.Advisory) string {
	if len(adv.Affected) == 0 || len(adv.Affected[0].Ranges) == 0 {
		return ""
	}
	for _, e := range adv.Affected[0].Ranges[0].Events {
		if e.Fixed != "" {
			return e.Fixed
		}
	}
	return ""
}

// AdvisorySeverity normalizes an advisory's severity.
//
// The top-level severity is used when set, else database_specific.severity.
// When neither is set the result is moderate. A set value that is not one
// of the recognized strings, including OSV's array of CVSS scores, is low.
func AdvisorySeverity(adv osv.Advisory) Severity {
	for _, raw := range []json.RawMessage{adv.Severity, adv.DatabaseSpecific.Severity} {
		s, isString, set := severityValue(raw)
		if !set {
			continue
		}
		if !isString {
			return SeverityLow
		}
		return MapSeverity(s)
	}
	return SeverityModerate
}

// MapSeverity maps a severity label case-insensitively. An empty label is
// moderate; any unrecognized label is low.
func MapSeverity(label string) Severity {
	if label == "" {
		return SeverityModerate
	}
	switch strings.ToLower(label) {
	case "critical":
		return SeverityCritical
	case "high":
		return SeverityHigh
	case "moderate", "medium":
		return SeverityModerate
	}
	return SeverityLow
}

// severityValue decodes a raw severity field. set is false for an absent
// field and for null, false, 0 and "".
func severityValue(raw json.RawMessage) (s string, isString, set bool) {
	if len(raw) == 0 {
		return "", false, false
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", false, false
	}
	switch t := v.(type) {
	case nil:
		return "", false, false
	case string:
		return t, true, t != ""
	case bool:
		return "", false, t
	case float64:
		return "", false, t != 0
	}
	return "", false, true
}
