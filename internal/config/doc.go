// Package config defines the format-agnostic Takefile model: the runner
// options and the ordered batch of target declarations, along with the
// Loader interface implemented by the concrete file formats.
//
// A config.Takefile is the single input of the `target` package. Concrete
// loaders, such as for HCL and YAML, live in separate packages.
package config
