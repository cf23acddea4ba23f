// Package target builds the read-only target tree from a Takefile batch and
// resolves namespaces against it.
//
// Every level of the tree is a Tree holding three indices: exact names, regex
// patterns and glob patterns. A lookup tries them in that order and the first
// regex or glob in declaration order wins. The root (default) target lives
// under RootIndex and is only reachable through the root namespace.
package target
