package config

import (
	"context"

	"github.com/vk/take/internal/shell"
)

// Loader is the interface for a format-specific Takefile loader.
type Loader interface {
	// Load reads the Takefile at path and translates it into the
	// format-agnostic model.
	Load(ctx context.Context, path string) (*Takefile, error)
}

// Shell runs the commands issued by an action. It is satisfied by
// *shell.Executor.
type Shell interface {
	Exec(ctx context.Context, cmd shell.Command) (int, error)
}

// Action is the work a target performs once its dependencies are done.
type Action func(ctx context.Context, inv Invocation) error

// MatchData describes how the last namespace segment matched its target.
type MatchData struct {
	// Full is the matched segment.
	Full string
	// Groups holds the regex capture groups, empty for exact and glob matches.
	Groups []string
}

// Invocation is everything an action receives when it is run.
type Invocation struct {
	// Namespace is the resolved target namespace without arguments.
	Namespace string
	// Args are the call arguments, e.g. `x` and `y` for `task[x,y]`.
	Args  []string
	Match MatchData
	Shell Shell
}

// Argv returns the call arguments followed by the capture groups.
func (inv Invocation) Argv() []string {
	argv := make([]string, 0, len(inv.Args)+len(inv.Match.Groups))
	argv = append(argv, inv.Args...)
	return append(argv, inv.Match.Groups...)
}
