package runner

import (
	"github.com/vk/take/internal/config"
	"github.com/vk/take/internal/namespace"
	"github.com/vk/take/internal/target"
)

// DependencyNode is one occurrence of a target in a dependency tree.
type DependencyNode struct {
	DisplayName string
	Namespace   namespace.Namespace
	Target      *target.Target
	Args        []string
	Match       config.MatchData
	Children    []*DependencyNode
	// ShouldExecute is false for repeated occurrences of a namespace; they
	// stay in the tree for display but neither run nor expand.
	ShouldExecute bool
	// Cyclic marks a node whose namespace is already one of its ancestors.
	Cyclic bool
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *DependencyNode) Count() int {
	count := 1
	for _, child := range n.Children {
		count += child.Count()
	}
	return count
}

// BuildDependencyTree resolves ns and its transitive dependencies. The
// returned flag is false when the tree contains a cycle. It performs no
// execution and may be used for display only.
func (r *Runner) BuildDependencyTree(ns namespace.Namespace) (*DependencyNode, bool, error) {
	return r.build(ns, nil, nil, make(map[string]bool))
}

// build expands one node. ancestors holds the namespaces from the requested
// target down to, but excluding, caller; scheduled is the dedup ledger shared
// by the whole build and keyed by namespace path without arguments.
func (r *Runner) build(
	ns namespace.Namespace,
	caller *namespace.Namespace,
	ancestors []namespace.Namespace,
	scheduled map[string]bool,
) (*DependencyNode, bool, error) {
	path := make([]namespace.Namespace, len(ancestors), len(ancestors)+1)
	copy(path, ancestors)
	if caller != nil {
		path = append(path, *caller)
	}

	tgt, match, err := r.targets.Resolve(ns)
	if err != nil {
		return nil, false, err
	}

	node := &DependencyNode{
		DisplayName: ns.StringWithArgs(),
		Namespace:   ns,
		Target:      tgt,
		Args:        ns.Args(),
		Match:       match,
	}
	if ns.IsRoot() {
		node.DisplayName = target.RootName
	}

	safe := true

	key := ns.String()
	if !scheduled[key] {
		node.ShouldExecute = true
		scheduled[key] = true
	}

	for _, ancestor := range path {
		if ancestor.Equal(ns, false) {
			node.Cyclic = true
			safe = false
			break
		}
	}

	if node.ShouldExecute && !node.Cyclic {
		for _, dep := range tgt.Dependencies {
			child, childSafe, err := r.build(dep, &ns, path, scheduled)
			if err != nil {
				return nil, false, err
			}
			safe = safe && childSafe
			node.Children = append(node.Children, child)
		}
	}

	return node, safe, nil
}
