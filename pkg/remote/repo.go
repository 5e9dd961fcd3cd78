package remote

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/matzehuels/depscope/pkg/errors"
)

// Platform is a supported Git hosting provider.
type Platform string

const (
	PlatformGitHub Platform = "github"
	PlatformGitLab Platform = "gitlab"
)

// DefaultRef is the ref used when a reference names no branch.
const DefaultRef = "HEAD"

// RepoReference identifies a repository and an optional branch.
type RepoReference struct {
	Platform Platform `json:"platform" yaml:"platform"`
	Owner    string   `json:"owner" yaml:"owner"`
	Repo     string   `json:"repo" yaml:"repo"`
	Branch   string   `json:"branch,omitempty" yaml:"branch,omitempty"`
}

// Ref returns the branch, or [DefaultRef] when none is set.
func (r RepoReference) Ref() string {
	if r.Branch == "" {
		return DefaultRef
	}
	return r.Branch
}

// URL returns the canonical web URL of the repository.
func (r RepoReference) URL() string {
	host := "github.com"
	if r.Platform == PlatformGitLab {
		host = "gitlab.com"
	}
	return fmt.Sprintf("https://%s/%s/%s", host, r.Owner, r.Repo)
}

func (r RepoReference) String() string {
	s := string(r.Platform) + ":" + r.Owner + "/" + r.Repo
	if r.Branch != "" {
		s += "@" + r.Branch
	}
	return s
}

// Supported URL shapes, tried in order.
var repoURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^https?://github\.com/([^/]+)/([^/]+?)(?:\.git)?(?:/tree/([^/]+))?$`),
	regexp.MustCompile(`^git@github\.com:([^/]+)/([^/]+?)(?:\.git)?$`),
	regexp.MustCompile(`^https?://gitlab\.com/([^/]+)/([^/]+?)(?:\.git)?(?:/-/tree/([^/]+))?$`),
	regexp.MustCompile(`^git@gitlab\.com:([^/]+)/([^/]+?)(?:\.git)?$`),
}

// ParseURL parses a GitHub or GitLab repository URL.
//
// Accepted shapes:
//
//	https://github.com/<owner>/<repo>[.git][/tree/<branch>]
//	git@github.com:<owner>/<repo>[.git]
//	https://gitlab.com/<owner>/<repo>[.git][/-/tree/<branch>]
//	git@gitlab.com:<owner>/<repo>[.git]
//
// The platform is GitLab whenever the input contains "gitlab", regardless
// of which shape matched. Any other input yields an error with code
// [errors.ErrCodeInvalidURL].
func ParseURL(raw string) (RepoReference, error) {
	raw = strings.TrimSpace(raw)
	for _, re := range repoURLPatterns {
		m := re.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		ref := RepoReference{
			Platform: PlatformGitHub,
			Owner:    m[1],
			Repo:     strings.TrimSuffix(m[2], ".git"),
		}
		if len(m) > 3 {
			ref.Branch = m[3]
		}
		if strings.Contains(raw, "gitlab") {
			ref.Platform = PlatformGitLab
		}
		return ref, nil
	}
	return RepoReference{}, errors.New(errors.ErrCodeInvalidURL, "invalid Git URL: %s", raw)
}
