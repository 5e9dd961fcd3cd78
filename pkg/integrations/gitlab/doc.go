// Package gitlab provides an HTTP client for the GitLab API.
//
// # Overview
//
// This package complements the GitHub client for repositories hosted on
// gitlab.com (or a self-managed instance reachable at a configured API
// root). It only reads files; it never lists trees or clones.
//
// # Usage
//
//	client := gitlab.NewClient("", "depscope-remote-analyzer", 10*time.Second)
//	text, err := client.FetchFileRaw(ctx, "gitlab-org", "gitlab-ui", "yarn.lock", "main")
//	if errors.Is(err, integrations.ErrNotFound) {
//	    // file absent on that ref
//	}
//
// # Authentication
//
// Requests are anonymous, so only public projects can be read.
package gitlab
