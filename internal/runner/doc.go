// Package runner turns a requested namespace into a dependency tree and
// executes it.
//
// Execution has two phases. BuildDependencyTree resolves every dependency,
// marks repeated dependencies as skipped and flags cycles; it has no side
// effects. Execute refuses cyclic trees outright and otherwise walks the tree,
// running each node's dependencies in parallel or in sequence according to its
// target before invoking the node's own action.
package runner
