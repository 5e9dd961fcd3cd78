package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/depscope/pkg/errors"
	"github.com/matzehuels/depscope/pkg/pipeline"
)

// Output formats.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func validateFormat(format string) error {
	switch format {
	case formatText, formatJSON, formatYAML:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unknown output format %q (want text, json or yaml)", format)
}

// writeData encodes v as JSON or YAML.
func writeData(w io.Writer, v any, format string) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return errors.New(errors.ErrCodeInvalidFormat, "format %q is not a data format", format)
}

// writeReport prints a human-readable report of r.
func writeReport(w io.Writer, r *pipeline.Result) {
	fmt.Fprintln(w, StyleTitle.Render(r.RepoInfo.Owner+"/"+r.RepoInfo.Repo))
	printKeyValue(w, "Repository", StyleLink.Render(r.RepoInfo.URL()))
	printKeyValue(w, "Ref", r.RepoInfo.Ref())
	printKeyValue(w, "Packages", packageCounts(r))
	if r.DependencyTree != nil {
		printKeyValue(w, "Lock file", fmt.Sprintf("%s (%d resolved)", r.LockFileType.Filename(), r.DependencyTree.Len()))
	} else {
		printKeyValue(w, "Lock file", StyleDim.Render("none"))
	}

	printSection(w, "Vulnerabilities", r.Summary.Total)
	if r.Summary.Total == 0 {
		printSuccess(w, "No known vulnerabilities")
	} else {
		printDetail(w, "%s", summaryLine(r.Summary))
		for _, v := range r.Vulnerabilities {
			fmt.Fprintf(w, "  %s %s %s\n",
				severityLabel(v.Severity),
				StyleHighlight.Render(v.Package+"@"+v.Version),
				v.Title)
			printDetail(w, "%s %s %s", v.ID, iconArrow, v.Recommendation)
			if v.URL != "" {
				fmt.Fprintln(w, "  "+StyleLink.Render(v.URL))
			}
		}
	}

	outdated := r.Outdated()
	printSection(w, "Updates", len(outdated))
	if len(outdated) == 0 {
		printSuccess(w, "All checked packages are up to date")
	}
	for _, u := range outdated {
		kind := ""
		if u.UpdateType != "" {
			kind = StyleDim.Render(" " + string(u.UpdateType))
		}
		fmt.Fprintf(w, "  %s %s %s %s%s\n",
			StyleValue.Render(u.Name),
			StyleDim.Render(u.CurrentVersion),
			iconArrow,
			StyleNumber.Render(u.LatestVersion),
			kind)
	}
	if len(r.Updates) < len(r.Packages) {
		fmt.Fprintln(w)
		printWarning(w, "Checked the first %d of %d packages", len(r.Updates), len(r.Packages))
	}
}

func packageCounts(r *pipeline.Result) string {
	dev := 0
	for _, p := range r.Packages {
		if p.IsDev {
			dev++
		}
	}
	return fmt.Sprintf("%d (%d dev)", len(r.Packages), dev)
}

func summaryLine(s pipeline.Summary) string {
	var parts []string
	for _, c := range []struct {
		label string
		n     int
	}{
		{"critical", s.Critical},
		{"high", s.High},
		{"moderate", s.Moderate},
		{"low", s.Low},
	} {
		if c.n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", c.n, c.label))
		}
	}
	return strings.Join(parts, " · ")
}

// writeHistory prints one line per recorded analysis.
func writeHistory(w io.Writer, results []*pipeline.Result) {
	if len(results) == 0 {
		printInfo(w, "No analyses recorded")
		printNextStep(w, "Record one", appName+" analyze <repo-url>")
		return
	}
	for _, r := range results {
		fmt.Fprintf(w, "%s  %s  %s  %s\n",
			StyleDim.Render(r.AnalyzedAt.Local().Format("2006-01-02 15:04")),
			StyleHighlight.Render(r.RepoInfo.String()),
			fmt.Sprintf("%d packages", len(r.Packages)),
			vulnCount(r.Summary))
	}
}

func vulnCount(s pipeline.Summary) string {
	if s.Total == 0 {
		return StyleSuccess.Render("no vulnerabilities")
	}
	return StyleWarning.Render(fmt.Sprintf("%d vulnerabilities", s.Total))
}
