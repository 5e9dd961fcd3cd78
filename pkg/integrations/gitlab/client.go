package gitlab

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/matzehuels/depscope/pkg/integrations"
)

// DefaultBaseURL is the gitlab.com REST API (v4).
const DefaultBaseURL = "https://gitlab.com/api/v4"

// Client reads repository files through the GitLab repository files API.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a GitLab API client.
//
// Parameters:
//   - baseURL: API root including the version segment (empty for [DefaultBaseURL])
//   - userAgent: User-Agent header sent with every request (may be empty)
//   - timeout: per-request timeout (zero for [integrations.DefaultTimeout])
//
// The returned Client is safe for concurrent use.
func NewClient(baseURL, userAgent string, timeout time.Duration) *Client {
	var headers map[string]string
	if userAgent != "" {
		headers = map[string]string{"User-Agent": userAgent}
	}
	return &Client{
		Client:  integrations.NewClient(timeout, headers),
		baseURL: integrations.BaseURL(baseURL, DefaultBaseURL),
	}
}

// FetchFileRaw retrieves the raw content of a repository file.
//
// The project is addressed by its full path ("owner/repo"), URL-encoded as
// a single path segment, and the file path is URL-encoded the same way, as
// the GitLab API requires:
//
//	GET /projects/owner%2Frepo/repository/files/src%2Findex.js/raw?ref=main
//
// Returns an error wrapping [integrations.ErrNotFound] when the project or
// file does not exist, or [integrations.ErrNetwork] for any other failure.
func (c *Client) FetchFileRaw(ctx context.Context, owner, repo, path, ref string) (string, error) {
	u := fmt.Sprintf("%s/projects/%s/repository/files/%s/raw?ref=%s",
		c.baseURL,
		url.PathEscape(owner+"/"+repo),
		url.PathEscape(path),
		integrations.URLEncode(ref))

	body, err := c.GetText(ctx, u, nil)
	if err != nil {
		return "", fmt.Errorf("gitlab %s/%s %s: %w", owner, repo, path, err)
	}
	return body, nil
}
