package config

import "strings"

// Takefile is the unified, format-agnostic representation of a loaded Takefile.
type Takefile struct {
	// Path is the file the model was loaded from, if any.
	Path    string
	Options Options
	Targets Batch
}

// Batch is an ordered list of sibling target declarations. Order matters:
// regex and glob entries are tried in declaration order.
type Batch []*TargetConfig

// Kind selects which index of its parent a target name is placed in.
type Kind string

const (
	// KindAuto classifies names with glob metacharacters as globs and
	// everything else as exact.
	KindAuto  Kind = ""
	KindExact Kind = "exact"
	KindRegex Kind = "regex"
	KindGlob  Kind = "glob"
)

// globMetaChars are the characters that make an auto-classified name a glob.
const globMetaChars = "*?["

// ParseKind validates a kind string from a Takefile.
func ParseKind(s string) (Kind, bool) {
	switch k := Kind(strings.ToLower(s)); k {
	case KindAuto, KindExact, KindRegex, KindGlob:
		return k, true
	default:
		return "", false
	}
}

// Resolve returns the concrete kind for name.
func (k Kind) Resolve(name string) Kind {
	if k != KindAuto {
		return k
	}
	if strings.ContainsAny(name, globMetaChars) {
		return KindGlob
	}
	return KindExact
}

// TargetConfig is a single target declaration.
type TargetConfig struct {
	// Name is the target name, or a pattern for regex and glob kinds. The
	// empty name declares the root (default) target.
	Name string
	Kind Kind
	// Description is shown in target listings.
	Description string
	// Deps are the dependency names, resolved relative to the target unless
	// Options.AllDepsAbsolute is set.
	Deps []string
	// ParallelDeps runs the dependencies concurrently.
	ParallelDeps bool
	// DepParent adds the parent target as the first dependency.
	DepParent bool
	Children  Batch
	// Action may be nil for pure grouping targets.
	Action Action
}
