/*
Package namespace provides the immutable, hierarchical path value used to
address targets.

A namespace is written as separator-delimited segments with an optional
argument list, e.g. `/docker/build[api,latest]` with the default separator.
Relative names are resolved against a base namespace, and the parent token
(`..` by default) backtracks one segment during resolution.

All values are copied on derivation; nothing here is shared or mutated.
*/
package namespace
