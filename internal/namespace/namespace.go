package namespace

import (
	"slices"
	"strings"
)

// Syntax holds the reserved characters used to write namespaces.
type Syntax struct {
	// Separator is the single character between segments.
	Separator string
	// Parent is the segment that removes the preceding segment.
	Parent string
}

// DefaultSyntax is the syntax used when a Takefile does not override it.
var DefaultSyntax = Syntax{Separator: "/", Parent: ".."}

// Namespace is an immutable target address: a path of segments plus the call
// arguments attached when it was resolved.
type Namespace struct {
	syntax Syntax
	path   []string
	args   []string
}

// Root returns the root namespace (empty path) for the given syntax.
func Root(syntax Syntax) Namespace {
	return Namespace{syntax: syntax}
}

// Syntax returns the syntax the namespace was created with.
func (n Namespace) Syntax() Syntax {
	return n.syntax
}

// IsRoot reports whether the namespace has no segments.
func (n Namespace) IsRoot() bool {
	return len(n.path) == 0
}

// Names returns a copy of the path segments.
func (n Namespace) Names() []string {
	return slices.Clone(n.path)
}

// Args returns a copy of the call arguments.
func (n Namespace) Args() []string {
	return slices.Clone(n.args)
}

// Parent returns the namespace with the last segment dropped. The parent of
// the root is the root. Arguments are not carried over.
func (n Namespace) Parent() Namespace {
	if n.IsRoot() {
		return n
	}
	return Namespace{syntax: n.syntax, path: slices.Clone(n.path[:len(n.path)-1])}
}

// Child returns the namespace with name appended as a new segment. The name is
// taken literally; use Resolve for anything that needs parsing.
func (n Namespace) Child(name string) Namespace {
	path := make([]string, 0, len(n.path)+1)
	path = append(path, n.path...)
	path = append(path, name)
	return Namespace{syntax: n.syntax, path: path}
}

// Equal compares the string forms, optionally including arguments.
func (n Namespace) Equal(other Namespace, withArgs bool) bool {
	if withArgs {
		return n.StringWithArgs() == other.StringWithArgs()
	}
	return n.String() == other.String()
}

// String renders the path without arguments, e.g. `/a/b`. The root renders as
// the bare separator.
func (n Namespace) String() string {
	sep := n.syntax.Separator
	return sep + strings.Join(n.path, sep)
}

// StringWithArgs renders the path followed by `[a,b]` when arguments exist.
func (n Namespace) StringWithArgs() string {
	if len(n.args) == 0 {
		return n.String()
	}
	return n.String() + "[" + strings.Join(n.args, ",") + "]"
}
