package remote

import (
	"strings"

	"github.com/tailscale/hujson"
)

// ManifestFile is the manifest every analysis requires.
const ManifestFile = "package.json"

// Requirement is one declared dependency and its version range.
type Requirement struct {
	Name  string `json:"name" yaml:"name"`
	Range string `json:"range" yaml:"range"`
}

// Requirements is a dependency map in document order.
type Requirements []Requirement

// Get returns the range declared for name.
func (rs Requirements) Get(name string) (string, bool) {
	for _, r := range rs {
		if r.Name == name {
			return r.Range, true
		}
	}
	return "", false
}

// Manifest holds the parts of package.json the analyzer reads.
type Manifest struct {
	Name            string
	Version         string
	Dependencies    Requirements
	DevDependencies Requirements
}

// PackageEntry is a declared package with its range operator removed.
type PackageEntry struct {
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version" yaml:"version"`
	IsDev   bool   `json:"isDev" yaml:"isDev"`
}

// PackageRef is a name/version pair submitted to the vulnerability and
// update checks.
type PackageRef struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// ExtractManifest parses package.json text.
//
// Comments and trailing commas are tolerated. Input that does not parse,
// or whose root is not an object, yields an empty manifest. Dependency
// values that are not strings are skipped. A key repeated within one map
// keeps its first position and its last value. A leading byte order mark
// is ignored.
func ExtractManifest(text string) Manifest {
	v, err := hujson.Parse([]byte(strings.TrimPrefix(text, "\ufeff")))
	if err != nil {
		return Manifest{}
	}
	doc, ok := v.Value.(*hujson.Object)
	if !ok {
		return Manifest{}
	}

	m := Manifest{
		Dependencies:    Requirements{},
		DevDependencies: Requirements{},
	}
	for _, mem := range doc.Members {
		switch keyOf(mem) {
		case "name":
			m.Name = stringOf(mem.Value)
		case "version":
			m.Version = stringOf(mem.Value)
		case "dependencies":
			m.Dependencies = requirementsOf(mem.Value)
		case "devDependencies":
			m.DevDependencies = requirementsOf(mem.Value)
		}
	}
	return m
}

func requirementsOf(v hujson.Value) Requirements {
	obj, ok := v.Value.(*hujson.Object)
	if !ok {
		return Requirements{}
	}
	out := Requirements{}
	index := make(map[string]int, len(obj.Members))
	for _, mem := range obj.Members {
		lit, ok := mem.Value.Value.(hujson.Literal)
		if !ok || lit.Kind() != '"' {
			continue
		}
		name, rng := keyOf(mem), lit.String()
		if i, dup := index[name]; dup {
			out[i].Range = rng
			continue
		}
		index[name] = len(out)
		out = append(out, Requirement{Name: name, Range: rng})
	}
	return out
}

func keyOf(m hujson.ObjectMember) string {
	if lit, ok := m.Name.Value.(hujson.Literal); ok {
		return lit.String()
	}
	return ""
}

func stringOf(v hujson.Value) string {
	if lit, ok := v.Value.(hujson.Literal); ok && lit.Kind() == '"' {
		return lit.String()
	}
	return ""
}

// ToPackageList flattens production then development requirements into
// package entries, stripping one leading range operator from each version.
// A name present in both groups appears twice.
func ToPackageList(deps, devDeps Requirements) []PackageEntry {
	out := make([]PackageEntry, 0, len(deps)+len(devDeps))
	for _, r := range deps {
		out = append(out, PackageEntry{Name: r.Name, Version: StripRangeOperator(r.Range)})
	}
	for _, r := range devDeps {
		out = append(out, PackageEntry{Name: r.Name, Version: StripRangeOperator(r.Range), IsDev: true})
	}
	return out
}

// StripRangeOperator removes a single leading ^, ~, >, = or < from v.
// ">=1.0.0" becomes "=1.0.0".
func StripRangeOperator(v string) string {
	if v == "" {
		return v
	}
	switch v[0] {
	case '^', '~', '>', '=', '<':
		return v[1:]
	}
	return v
}

// Refs returns name/version pairs for at most the first limit entries.
// A limit of zero or less means no limit.
func Refs(entries []PackageEntry, limit int) []PackageRef {
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	out := make([]PackageRef, len(entries))
	for i, e := range entries {
		out[i] = PackageRef{Name: e.Name, Version: e.Version}
	}
	return out
}
