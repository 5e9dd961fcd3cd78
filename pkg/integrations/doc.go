// Package integrations provides HTTP clients for the remote services the
// analyzer talks to.
//
// # Overview
//
// Each upstream has its own subpackage:
//
//   - [github]: GitHub contents API (raw file reads)
//   - [gitlab]: GitLab repository files API (raw file reads)
//   - [npm]: npm registry (dist-tags)
//   - [osv]: OSV.dev batch vulnerability queries
//
// # Shared Infrastructure
//
// The [Client] type carries the behavior every subpackage shares: default
// headers (User-Agent), a bounded request timeout, JSON and text decoding,
// and status classification into [ErrNotFound] and [ErrNetwork]. Every
// request is reported to the [observability.HTTPHooks] registered at
// startup.
//
// There is no response cache and no retry loop: a failed call fails once
// and the caller decides how to degrade.
//
// [github]: github.com/matzehuels/depscope/pkg/integrations/github
// [gitlab]: github.com/matzehuels/depscope/pkg/integrations/gitlab
// [npm]: github.com/matzehuels/depscope/pkg/integrations/npm
// [osv]: github.com/matzehuels/depscope/pkg/integrations/osv
// [observability.HTTPHooks]: github.com/matzehuels/depscope/pkg/observability.HTTPHooks
package integrations
