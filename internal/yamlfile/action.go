package yamlfile

import (
	"context"
	"fmt"
	"sort"

	"github.com/vk/take/internal/config"
	"github.com/vk/take/internal/shell"
)

type action struct {
	target string
	run    [][]string
	script string
	dir    string
	env    map[string]string
	echo   *bool
	abort  *bool
}

// newAction returns nil for targets that only group dependencies.
func newAction(n *targetNode) config.Action {
	if len(n.Run) == 0 && n.Shell == "" {
		return nil
	}
	a := &action{
		target: n.Name,
		run:    n.Run,
		script: n.Shell,
		dir:    n.Dir,
		env:    n.Env,
		echo:   n.Echo,
		abort:  n.AbortOnErrorCode,
	}
	return a.execute
}

func (a *action) execute(ctx context.Context, inv config.Invocation) error {
	if inv.Shell == nil {
		return fmt.Errorf("target %s: no shell configured", a.target)
	}
	words := expander{inv: inv}
	script := expander{inv: inv, keepUnknown: true}

	var cmds [][]string
	for _, argv := range a.run {
		cmds = append(cmds, words.words(argv))
	}
	if a.script != "" {
		cmds = append(cmds, []string{"sh", "-c", script.expand(a.script)})
	}

	dir := words.expand(a.dir)
	env := make([]string, 0, len(a.env))
	for k, v := range a.env {
		env = append(env, k+"="+words.expand(v))
	}
	sort.Strings(env)

	for _, argv := range cmds {
		cmd := shell.Command{
			Argv:             argv,
			Dir:              dir,
			Env:              env,
			Echo:             a.echo,
			AbortOnErrorCode: a.abort,
		}
		if _, err := inv.Shell.Exec(ctx, cmd); err != nil {
			return err
		}
	}
	return nil
}
