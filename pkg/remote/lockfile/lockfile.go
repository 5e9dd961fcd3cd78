package lockfile

import (
	"fmt"
	"strings"
)

// Kind identifies a lock-file grammar.
type Kind string

const (
	KindNpm  Kind = "npm"
	KindYarn Kind = "yarn"
	KindPnpm Kind = "pnpm"
)

// Kinds lists the supported kinds in detection priority order.
var Kinds = []Kind{KindPnpm, KindYarn, KindNpm}

// Filename returns the conventional file name for k, or "" for an unknown kind.
func (k Kind) Filename() string {
	switch k {
	case KindNpm:
		return "package-lock.json"
	case KindYarn:
		return "yarn.lock"
	case KindPnpm:
		return "pnpm-lock.yaml"
	}
	return ""
}

// ParseKind converts a string such as "yarn" into a Kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindNpm, KindYarn, KindPnpm:
		return k, nil
	}
	return "", fmt.Errorf("unknown lock file kind %q", s)
}

// Parser converts lock-file text into a dependency tree.
// Implementations never fail; unusable input yields [EmptyRoot].
type Parser interface {
	Parse(text string) *Node
}

var parsers = map[Kind]Parser{
	KindNpm:  NpmParser{},
	KindYarn: YarnParser{},
	KindPnpm: PnpmParser{},
}

// For returns the parser for k, or nil for an unknown kind.
func For(k Kind) Parser {
	return parsers[k]
}

// Parse parses text with the parser for k.
// An unknown kind yields the sentinel tree.
func Parse(text string, k Kind) *Node {
	p := For(k)
	if p == nil {
		return EmptyRoot()
	}
	return p.Parse(text)
}

// guard turns a panic inside a parser into the sentinel tree.
func guard(out **Node) {
	if r := recover(); r != nil {
		*out = EmptyRoot()
	}
}
