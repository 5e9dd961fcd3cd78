package osv

import (
	"context"
	"encoding/json"
	"time"

	"github.com/matzehuels/depscope/pkg/integrations"
)

// DefaultBatchURL is the OSV batch query endpoint.
const DefaultBatchURL = "https://api.osv.dev/v1/querybatch"

// EcosystemNpm is the OSV ecosystem identifier for npm packages.
const EcosystemNpm = "npm"

// Client submits batch vulnerability queries to OSV.
type Client struct {
	*integrations.Client
	batchURL string
}

// NewClient creates an OSV client. An empty batchURL selects [DefaultBatchURL].
func NewClient(batchURL, userAgent string, timeout time.Duration) *Client {
	var headers map[string]string
	if userAgent != "" {
		headers = map[string]string{"User-Agent": userAgent}
	}
	return &Client{
		Client:   integrations.NewClient(timeout, headers),
		batchURL: integrations.BaseURL(batchURL, DefaultBatchURL),
	}
}

// QueryBatch posts queries in one request. The response carries one
// [Result] per query, in query order.
func (c *Client) QueryBatch(ctx context.Context, queries []Query) (*BatchResponse, error) {
	var resp BatchResponse
	if err := c.PostJSON(ctx, c.batchURL, BatchRequest{Queries: queries}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// BatchRequest is the body of a querybatch call.
type BatchRequest struct {
	Queries []Query `json:"queries"`
}

// Query asks for advisories affecting one package version.
type Query struct {
	Package Package `json:"package"`
	Version string  `json:"version,omitempty"`
}

// Package identifies a package within an ecosystem.
type Package struct {
	Name      string `json:"name"`
	Ecosystem string `json:"ecosystem"`
}

// BatchResponse is the querybatch reply.
type BatchResponse struct {
	Results []Result `json:"results"`
}

// Result holds the advisories matched by a single query.
type Result struct {
	Vulns []Advisory `json:"vulns"`
}

// Advisory is the subset of an OSV record the analyzer reads.
//
// Severity and DatabaseSpecific.Severity are kept raw: OSV publishes
// severity as an array of CVSS vectors while some databases put a plain
// string in either place, and callers need to tell "absent" apart from
// "present in an unexpected shape".
type Advisory struct {
	ID               string           `json:"id"`
	Summary          string           `json:"summary"`
	Severity         json.RawMessage  `json:"severity,omitempty"`
	DatabaseSpecific DatabaseSpecific `json:"database_specific"`
	Affected         []Affected       `json:"affected"`
	References       []Reference      `json:"references"`
}

// DatabaseSpecific carries source-database fields; only severity is read.
type DatabaseSpecific struct {
	Severity json.RawMessage `json:"severity,omitempty"`
}

// Affected describes the affected ranges of one package.
type Affected struct {
	Ranges []Range `json:"ranges"`
}

// Range is an ordered list of introduced/fixed events.
type Range struct {
	Type   string  `json:"type"`
	Events []Event `json:"events"`
}

// Event is a single range boundary. Exactly one field is usually set.
type Event struct {
	Introduced   string `json:"introduced,omitempty"`
	Fixed        string `json:"fixed,omitempty"`
	LastAffected string `json:"last_affected,omitempty"`
}

// Reference is an advisory link.
type Reference struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}
