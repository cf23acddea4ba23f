package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"

	"github.com/vk/take/internal/config"
	"github.com/vk/take/internal/ctxlog"
	"github.com/vk/take/internal/shell"
	"github.com/vk/take/internal/takeerr"
)

// action runs a target's commands. Expressions are kept unevaluated until
// the target is invoked.
type action struct {
	target string
	dir    hcl.Expression
	env    hcl.Expression
	run    hcl.Expression
	shell  hcl.Expression
	echo   *bool
	abort  *bool
}

// newAction returns nil when the target declares neither run nor shell.
func newAction(target string, tb *targetBody) config.Action {
	if isAbsent(tb.Run) && isAbsent(tb.Shell) {
		return nil
	}
	a := &action{
		target: target,
		dir:    tb.Dir,
		env:    tb.Env,
		run:    tb.Run,
		shell:  tb.Shell,
		echo:   tb.Echo,
		abort:  tb.AbortOnError,
	}
	return a.execute
}

func (a *action) execute(ctx context.Context, inv config.Invocation) error {
	cmds, dir, env, err := a.commands(inv)
	if err != nil {
		return takeerr.Wrap(takeerr.KindInvalidTargetDefinition, err, "Target '%s' could not be evaluated: %s", a.target, err)
	}
	if len(cmds) == 0 {
		return nil
	}
	if inv.Shell == nil {
		return fmt.Errorf("target %s: no shell configured", a.target)
	}

	ctxlog.FromContext(ctx).Debug("Running target commands.", "count", len(cmds), "dir", dir)
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

// commands evaluates the action's expressions for one invocation. A shell
// script runs after the explicit commands.
func (a *action) commands(inv config.Invocation) ([][]string, string, []string, error) {
	evalCtx := invocationContext(inv)

	cmds, err := evalCommands(a.run, evalCtx)
	if err != nil {
		return nil, "", nil, fmt.Errorf("run: %w", err)
	}
	script, err := evalString(a.shell, evalCtx)
	if err != nil {
		return nil, "", nil, fmt.Errorf("shell: %w", err)
	}
	if script != "" {
		cmds = append(cmds, []string{"sh", "-c", script})
	}
	dir, err := evalString(a.dir, evalCtx)
	if err != nil {
		return nil, "", nil, fmt.Errorf("dir: %w", err)
	}
	env, err := evalEnv(a.env, evalCtx)
	if err != nil {
		return nil, "", nil, fmt.Errorf("env: %w", err)
	}
	return cmds, dir, env, nil
}
