// Package suite defines the immutable test-suite tree and the discovery
// contract a host uses to recognize runnable suites.
//
// A suite is a named tree. Interior nodes are groups (a name plus an
// ordered list of children); leaves are tests (a name plus an effectful
// zero-argument body). Names need not be unique; reporting identity is
// the full path of names from the root, in declaration order.
//
// Suite values are constructed once and never mutated afterwards, so a
// single suite can safely be shared across repeated and concurrent
// executions.
package suite

// Node is a single node in a suite tree: either a *Group or a *Test.
type Node interface {
	// Name returns the node's declared name.
	Name() string

	// sealed restricts implementations to this package.
	sealed()
}

// Body is the executable body of a leaf test.
//
// A nil return means the test passed. A *FailureDetail return means an
// assertion did not hold. Any other error is an unexpected body error;
// the engine treats it like a failure but reports it with the Error
// status. A body may also panic; the engine converts the panic into an
// unexpected body error instead of aborting the traversal.
type Body func() error

// Group is an interior node aggregating named children in declaration order.
type Group struct {
	name     string
	children []Node
}

// NewGroup creates a group node with the given children.
// The children slice is copied; the group is immutable afterwards.
func NewGroup(name string, children ...Node) *Group {
	g := &Group{name: name, children: make([]Node, len(children))}
	copy(g.children, children)
	return g
}

// Name returns the group's name.
func (g *Group) Name() string { return g.name }

// Children returns the group's children in declaration order.
// Callers must treat the returned slice as read-only.
func (g *Group) Children() []Node { return g.children }

func (g *Group) sealed() {}

// Test is a leaf node with an executable body.
type Test struct {
	name    string
	body    Body
	ignored bool
}

// NewTest creates a leaf test node.
func NewTest(name string, body Body) *Test {
	return &Test{name: name, body: body}
}

// Ignore returns a copy of the test tagged as ignored. Ignored tests
// are reported with the Ignored status and their body is never invoked.
func (t *Test) Ignore() *Test {
	return &Test{name: t.name, body: t.body, ignored: true}
}

// Name returns the test's name.
func (t *Test) Name() string { return t.name }

// Body returns the test's executable body.
func (t *Test) Body() Body { return t.body }

// Ignored reports whether the test is tagged as ignored.
func (t *Test) Ignored() bool { return t.ignored }

func (t *Test) sealed() {}

// Suite is an immutable named tree of groups and tests. The suite
// itself acts as the root group for rendering purposes.
type Suite struct {
	name  string
	nodes []Node
}

// New creates a suite with the given top-level nodes.
func New(name string, nodes ...Node) *Suite {
	s := &Suite{name: name, nodes: make([]Node, len(nodes))}
	copy(s.nodes, nodes)
	return s
}

// Name returns the suite's declared name.
func (s *Suite) Name() string { return s.name }

// Nodes returns the suite's top-level nodes in declaration order.
// Callers must treat the returned slice as read-only.
func (s *Suite) Nodes() []Node { return s.nodes }
