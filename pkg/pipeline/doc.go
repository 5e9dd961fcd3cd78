// Package pipeline runs a complete remote analysis of one repository.
//
// The CLI, the HTTP API and tests all go through [Runner.Analyze], so the
// sequencing of the analysis lives in one place.
//
// # Stages
//
//  1. Parse the repository URL (fatal on failure).
//  2. Fetch package.json (fatal when absent) and flatten its dependencies.
//  3. Probe for a lock file and parse it into a dependency tree (optional).
//  4. Check the first [config.DefaultCheckLimit] packages for known
//     vulnerabilities and newer versions, both checks running concurrently.
//  5. Assemble the [Result] and hand it to the configured [Sink].
//
// Only stages 1 and 2 can fail the analysis. Everything after degrades to
// an empty or partial section of the result.
//
// # Usage
//
//	runner := pipeline.NewRunner(cfg, nil, logger)
//	result, err := runner.Analyze(ctx, "https://github.com/expressjs/express", "")
//	if errors.Is(err, errors.ErrCodeManifestNotFound) {
//	    // not a Node.js repository
//	}
package pipeline
