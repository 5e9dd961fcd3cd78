package npm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/depscope/pkg/integrations"
)

// DefaultBaseURL is the public npm registry.
const DefaultBaseURL = "https://registry.npmjs.org"

// Client queries package documents from an npm-compatible registry.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a registry client. An empty baseURL selects [DefaultBaseURL].
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

// FetchDistTags returns the dist-tags of pkg (for example "latest" and "next").
func (c *Client) FetchDistTags(ctx context.Context, pkg string) (map[string]string, error) {
	pkg = strings.TrimSpace(pkg)

	var data registryResponse
	if err := c.Get(ctx, c.baseURL+"/"+pkg, &data); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return nil, fmt.Errorf("%w: npm package %s", err, pkg)
		}
		return nil, err
	}
	if data.DistTags == nil {
		return map[string]string{}, nil
	}
	return data.DistTags, nil
}

// FetchLatest returns the version tagged "latest", or "" when the package
// document carries no such tag.
func (c *Client) FetchLatest(ctx context.Context, pkg string) (string, error) {
	tags, err := c.FetchDistTags(ctx, pkg)
	if err != nil {
		return "", err
	}
	return tags["latest"], nil
}

type registryResponse struct {
	Name     string            `json:"name"`
	DistTags map[string]string `json:"dist-tags"`
}
