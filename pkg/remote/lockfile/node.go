package lockfile

const (
	rootName    = "root"
	rootVersion = "0.0.0"
)

// Node is one package in a dependency tree.
type Node struct {
	Name     string  `json:"name" yaml:"name"`
	Version  string  `json:"version" yaml:"version"`
	Children []*Node `json:"children" yaml:"children"`

	// IsCircular is reserved for resolvers that walk transitive edges.
	// The lock parsers in this package never set it.
	IsCircular *bool `json:"isCircular,omitempty" yaml:"isCircular,omitempty"`
}

// EmptyRoot returns the sentinel tree {root, 0.0.0, []}.
func EmptyRoot() *Node {
	return newRoot(rootName, rootVersion)
}

func newRoot(name, version string) *Node {
	return &Node{Name: name, Version: version, Children: []*Node{}}
}

// IsEmpty reports whether n has no children.
func (n *Node) IsEmpty() bool {
	return n == nil || len(n.Children) == 0
}

// Len returns the number of direct children.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	return len(n.Children)
}

// children collects leaf nodes, keeping the first version seen per name.
type children struct {
	nodes []*Node
	seen  map[string]bool
}

func (c *children) add(name, version string) {
	if c.seen == nil {
		c.seen = make(map[string]bool)
	}
	if c.seen[name] {
		return
	}
	c.seen[name] = true
	c.nodes = append(c.nodes, &Node{Name: name, Version: version, Children: []*Node{}})
}

func (c *children) attach(root *Node) *Node {
	if len(c.nodes) > 0 {
		root.Children = c.nodes
	}
	return root
}
