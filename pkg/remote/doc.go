// Package remote analyzes a Node.js repository without cloning it.
//
// # Overview
//
// Given a repository URL the package reads individual files through the
// hosting provider's API and derives:
//
//   - the declared packages from package.json ([ExtractManifest], [ToPackageList])
//   - the lock file, if any ([DetectLockFile] and the [lockfile] package)
//   - known vulnerabilities from OSV ([VulnerabilityChecker])
//   - newer upstream versions from the npm registry ([UpdateChecker])
//
// # Failure Model
//
// Only two outcomes are errors: a URL that matches none of the supported
// shapes ([ParseURL] returns an INVALID_URL error) and, one level up in the
// pipeline, a missing package.json. Everything else degrades: a file that
// cannot be fetched is absent, a lock file that cannot be parsed is the
// empty root, a failed vulnerability batch is an empty list, and a failed
// registry lookup is a "no update" record for that one package.
//
// [lockfile]: github.com/matzehuels/depscope/pkg/remote/lockfile
package remote
