// Package lockfile turns raw lock-file text into a flat dependency tree.
//
// # Overview
//
// Three lock grammars are supported, one [Parser] per [Kind]:
//
//   - [KindNpm]: package-lock.json (lockfileVersion 1 "dependencies" and
//     lockfileVersion 2+ "packages")
//   - [KindYarn]: yarn.lock (classic v1 and Berry)
//   - [KindPnpm]: pnpm-lock.yaml
//
// Parsing is best effort. A parser never returns an error and never
// panics: malformed or unrecognized input yields the sentinel returned by
// [EmptyRoot]. The resulting tree is at most one level deep (the direct
// dependencies recorded by the lock file) and every parser keeps only the
// first entry seen for a given package name, so a package locked at
// several versions is reported once.
//
// # Usage
//
//	tree := lockfile.Parse(text, lockfile.KindYarn)
//	for _, child := range tree.Children {
//	    fmt.Println(child.Name, child.Version)
//	}
package lockfile
