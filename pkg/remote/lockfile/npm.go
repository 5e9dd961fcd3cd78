package lockfile

import (
	"strings"

	"github.com/tailscale/hujson"
)

const nodeModules = "node_modules/"

// NpmParser reads package-lock.json and npm-shrinkwrap.json.
//
// The root node takes the lock document's name and version. Children come
// from the "packages" map when it has any entries (lockfileVersion 2+),
// keeping only depth-one "node_modules/<name>" keys; otherwise from the
// top-level keys of the legacy "dependencies" map. Entries keep document
// order, and a missing version becomes "0.0.0".
type NpmParser struct{}

func (NpmParser) Parse(text string) (root *Node) {
	defer guard(&root)

	v, err := hujson.Parse([]byte(strings.TrimPrefix(text, "\ufeff")))
	if err != nil {
		return EmptyRoot()
	}
	doc, ok := v.Value.(*hujson.Object)
	if !ok {
		return EmptyRoot()
	}

	root = newRoot(
		orDefault(stringMember(doc, "name"), rootName),
		orDefault(stringMember(doc, "version"), rootVersion),
	)

	var c children
	if pkgs := objectMember(doc, "packages"); pkgs != nil && len(pkgs.Members) > 0 {
		for _, m := range pkgs.Members {
			key := memberName(m)
			if !strings.HasPrefix(key, nodeModules) {
				continue
			}
			name := strings.TrimPrefix(key, nodeModules)
			if strings.Contains(name, nodeModules) {
				continue
			}
			c.add(name, entryVersion(m.Value))
		}
	} else if deps := objectMember(doc, "dependencies"); deps != nil {
		for _, m := range deps.Members {
			c.add(memberName(m), entryVersion(m.Value))
		}
	}
	return c.attach(root)
}

func entryVersion(v hujson.Value) string {
	obj, ok := v.Value.(*hujson.Object)
	if !ok {
		return rootVersion
	}
	return orDefault(stringMember(obj, "version"), rootVersion)
}

func memberName(m hujson.ObjectMember) string {
	if lit, ok := m.Name.Value.(hujson.Literal); ok {
		return lit.String()
	}
	return ""
}

// member returns the last member named key, matching encoding/json.
func member(obj *hujson.Object, key string) *hujson.Value {
	var found *hujson.Value
	for i := range obj.Members {
		if memberName(obj.Members[i]) == key {
			found = &obj.Members[i].Value
		}
	}
	return found
}

func stringMember(obj *hujson.Object, key string) string {
	v := member(obj, key)
	if v == nil {
		return ""
	}
	if lit, ok := v.Value.(hujson.Literal); ok && lit.Kind() == '"' {
		return lit.String()
	}
	return ""
}

func objectMember(obj *hujson.Object, key string) *hujson.Object {
	v := member(obj, key)
	if v == nil {
		return nil
	}
	o, _ := v.Value.(*hujson.Object)
	return o
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
