package lockfile

import "regexp"

// yarnEntry matches an entry header followed by its version line, in both
// the classic (`version "1.2.3"`) and Berry (`version: 1.2.3`) layouts.
// The first capture is the package name, scoped or not.
var yarnEntry = regexp.MustCompile(`(?m)^"?(@?[^@\s"]+)@[^\n]*?"?:\s*\n\s+version:?[ \t]+"?([^"\s]+)"?`)

// YarnParser reads yarn.lock files.
type YarnParser struct{}

func (YarnParser) Parse(text string) (root *Node) {
	defer guard(&root)

	var c children
	for _, m := range yarnEntry.FindAllStringSubmatch(text, -1) {
		c.add(m[1], m[2])
	}
	return c.attach(EmptyRoot())
}
