package lockfile

import (
	"regexp"
	"strings"
)

var (
	// pnpmEntry matches "  /name@1.2.3:" and "  'name@1.2.3(peer@4.5.6)':".
	pnpmEntry = regexp.MustCompile(`^\s+['"]?/?([@\w\-./]+)@(\d+\.\d+\.\d+[^'":]*)`)

	// pnpmTopLevel matches the start of the next top-level key.
	pnpmTopLevel = regexp.MustCompile(`^[a-zA-Z]`)
)

// PnpmParser reads pnpm-lock.yaml files.
//
// Only the "packages:" section is read; it ends at the next unindented key.
type PnpmParser struct{}

func (PnpmParser) Parse(text string) (root *Node) {
	defer guard(&root)

	var c children
	inPackages := false

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")

		if strings.HasPrefix(line, "packages:") {
			inPackages = true
			continue
		}
		if !inPackages {
			continue
		}
		if pnpmTopLevel.MatchString(line) {
			break
		}
		if m := pnpmEntry.FindStringSubmatch(line); m != nil {
			c.add(m[1], m[2])
		}
	}
	return c.attach(EmptyRoot())
}
