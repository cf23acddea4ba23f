package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vk/take/internal/ctxlog"
	"github.com/vk/take/internal/render"
)

// Run executes the mode selected by the configuration.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")
	defer func() {
		if err := a.tracing.shutdown(context.WithoutCancel(ctx)); err != nil {
			a.logger.Warn("Failed to flush traces.", "error", err)
		}
	}()

	var err error
	switch {
	case a.cfg.List:
		err = a.list()
	case a.cfg.Deps != "":
		err = a.deps()
	case a.cfg.Watch:
		err = a.watch(ctx)
	default:
		err = a.run(ctx)
	}

	a.logger.Debug("App.Run method finished.", "error", err)
	return err
}

func (a *App) list() error {
	fmt.Fprintln(a.outW, render.Legend(a.styles, false))
	fmt.Fprintln(a.outW, render.Targets(a.runner.Targets(), a.styles))
	return nil
}

// deps prints the dependency tree. Cyclic trees are shown, not rejected.
func (a *App) deps() error {
	ns, err := a.runner.Root().Resolve(a.cfg.Deps)
	if err != nil {
		return err
	}
	node, _, err := a.runner.BuildDependencyTree(ns)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.outW, render.Legend(a.styles, true))
	fmt.Fprintln(a.outW, render.Dependencies(node, a.styles))
	return nil
}

// targets returns the requested names, or the root target when none were given.
func (a *App) targets() []string {
	if len(a.cfg.Targets) > 0 {
		return a.cfg.Targets
	}
	return []string{a.runner.Root().String()}
}

// run executes the requested targets one after the other and reports the
// total time.
func (a *App) run(ctx context.Context) error {
	names := a.targets()
	a.logger.Info("🚀 Running targets.", "targets", names)

	start := time.Now()
	if err := a.runner.Run(ctx, names...); err != nil {
		if errors.Is(err, context.Canceled) {
			a.logger.Warn("Run cancelled.")
		}
		return err
	}
	elapsed := time.Since(start)

	a.logger.Info("🏁 Execution finished.", "duration", elapsed)
	if !a.cfg.Suppressed(SuppressExecTime) {
		fmt.Fprintln(a.outW, render.Executed(a.styles, elapsed))
	}
	return nil
}
