package config

import (
	"strings"
	"unicode/utf8"

	"github.com/vk/take/internal/namespace"
	"github.com/vk/take/internal/shell"
	"github.com/vk/take/internal/takeerr"
)

// Options tunes name resolution and command execution.
type Options struct {
	// Separator is the namespace separator character.
	Separator string
	// Parent is the reserved segment that navigates one level up.
	Parent string
	// AllDepsAbsolute resolves every dependency from the root namespace
	// instead of from the declaring target.
	AllDepsAbsolute bool
	Shell           shell.Options
}

// DefaultOptions returns the options used when a Takefile sets none.
func DefaultOptions() Options {
	return Options{
		Separator: namespace.DefaultSyntax.Separator,
		Parent:    namespace.DefaultSyntax.Parent,
		Shell:     shell.DefaultOptions(),
	}
}

// Syntax returns the namespace syntax described by the options.
func (o Options) Syntax() namespace.Syntax {
	return namespace.Syntax{Separator: o.Separator, Parent: o.Parent}
}

// Root returns the root namespace for these options.
func (o Options) Root() namespace.Namespace {
	return namespace.Root(o.Syntax())
}

// Validate checks that the separator and parent token can be parsed back.
func (o Options) Validate() error {
	if utf8.RuneCountInString(o.Separator) != 1 {
		return takeerr.New(takeerr.KindInvalidConfig, "namespace separator must be a single character, got %q", o.Separator)
	}
	if strings.ContainsAny(o.Separator, "[],") {
		return takeerr.New(takeerr.KindInvalidConfig, "namespace separator %q is reserved", o.Separator)
	}
	if o.Parent == "" {
		return takeerr.New(takeerr.KindInvalidConfig, "parent token cannot be empty")
	}
	if strings.Contains(o.Parent, o.Separator) || strings.ContainsAny(o.Parent, "[],") {
		return takeerr.New(takeerr.KindInvalidConfig, "parent token %q cannot contain the separator or brackets", o.Parent)
	}
	return nil
}
