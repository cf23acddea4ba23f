// Package yamlfile loads Takefile.yaml files into the format-agnostic config
// model.
//
// Command words may reference the invocation: $1..$9 and ${N} are call
// arguments, $@ is every argument, $0 and ${target} the target namespace,
// ${match} the matched name and ${gN} the Nth regex capture group.
package yamlfile
