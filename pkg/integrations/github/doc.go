// Package github provides an HTTP client for the GitHub contents API.
//
// # Usage
//
//	client := github.NewClient("", "depscope-remote-analyzer", 10*time.Second)
//	text, err := client.FetchFileRaw(ctx, "expressjs", "express", "package.json", "HEAD")
//
// Files are requested with the raw media type
// (application/vnd.github.v3.raw), so the body is the file itself rather
// than the base64 JSON envelope. Requests are unauthenticated and subject
// to GitHub's anonymous rate limit of 60 requests per hour.
package github
