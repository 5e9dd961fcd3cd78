// Package pkg provides the core libraries for depscope, a remote dependency
// and security analyzer for Node.js repositories.
//
// # Overview
//
// depscope analyzes a GitHub or GitLab repository without cloning it. It
// fetches package.json and the lock file through the hosting API, checks the
// declared packages against the OSV advisory database and the npm registry,
// and produces one analysis result. The pkg directory is organized as:
//
//  1. [remote] - Domain logic (URL parsing, file fetching, manifest and
//     lock file parsing, vulnerability and update checks)
//  2. [integrations] - HTTP clients for GitHub, GitLab, npm and OSV
//  3. [pipeline] - Orchestration of one analysis into a [pipeline.Result]
//  4. [history] - Persistence of results (file, MongoDB, Redis)
//  5. [server] - The HTTP API
//
// # Architecture
//
// The data flow of one analysis:
//
//	Repository URL
//	     ↓
//	[remote.ParseURL] (platform, owner, repo, branch)
//	     ↓
//	[remote.RepoFetcher] (package.json, lock file)
//	     ↓
//	[remote.ExtractManifest] + [lockfile.Parse]
//	     ↓
//	OSV batch query  ‖  npm latest versions
//	     ↓
//	[pipeline.Result] → CLI report, HTTP response, history store
//
// # Quick Start
//
//	cfg := config.Default()
//	runner := pipeline.NewRunner(cfg, nil, nil)
//	result, err := runner.Analyze(ctx, "https://github.com/expressjs/express", "")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.Summary.Total, "vulnerabilities")
//
// # Supporting Packages
//
// [config] - TOML configuration with DEPSCOPE_* environment overrides.
//
// [errors] - Structured error codes shared by the CLI and the HTTP API.
//
// [observability] - Hook interfaces for analysis stages, history writes
// and outbound HTTP calls.
//
// [buildinfo] - Version information injected at build time.
package pkg
