// Package hcl loads Takefile.hcl files into the format-agnostic config model.
//
// Structure (options, the default target, nested target blocks, deps and
// kinds) is decoded when the file is loaded. The run, shell, env and dir
// attributes stay expressions and are evaluated each time the target runs,
// with the call arguments, regex groups and target namespace in scope.
package hcl
