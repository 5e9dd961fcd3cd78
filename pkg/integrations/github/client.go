package github

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/depscope/pkg/integrations"
)

// DefaultBaseURL is the public GitHub REST API.
const DefaultBaseURL = "https://api.github.com"

// rawAccept asks the contents endpoint for the file body instead of the
// base64 JSON envelope.
const rawAccept = "application/vnd.github.v3.raw"

// Client reads repository files through the GitHub contents API.
// Requests are unauthenticated.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a GitHub API client. An empty baseURL selects
// [DefaultBaseURL]; userAgent is sent on every request.
func NewClient(baseURL, userAgent string, timeout time.Duration) *Client {
	headers := map[string]string{"Accept": "application/vnd.github.v3+json"}
	if userAgent != "" {
		headers["User-Agent"] = userAgent
	}
	return &Client{
		Client:  integrations.NewClient(timeout, headers),
		baseURL: integrations.BaseURL(baseURL, DefaultBaseURL),
	}
}

// FetchFileRaw retrieves the raw content of path in owner/repo at ref.
// It returns an error wrapping [integrations.ErrNotFound] when the file or
// repository does not exist.
func (c *Client) FetchFileRaw(ctx context.Context, owner, repo, path, ref string) (string, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/contents/%s?ref=%s",
		c.baseURL, owner, repo, integrations.EscapePath(path), integrations.URLEncode(ref))

	body, err := c.GetText(ctx, url, map[string]string{"Accept": rawAccept})
	if err != nil {
		return "", fmt.Errorf("github %s/%s %s: %w", owner, repo, path, err)
	}
	return body, nil
}
