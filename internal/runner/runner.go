package runner

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/vk/take/internal/config"
	"github.com/vk/take/internal/ctxlog"
	"github.com/vk/take/internal/namespace"
	"github.com/vk/take/internal/takeerr"
	"github.com/vk/take/internal/target"
)

// Runner executes targets from a built target tree.
type Runner struct {
	root    namespace.Namespace
	targets *target.Tree
	shell   config.Shell
	tracer  trace.Tracer
}

// Option configures a Runner.
type Option func(*Runner)

// WithShell sets the shell handed to actions.
func WithShell(s config.Shell) Option {
	return func(r *Runner) { r.shell = s }
}

// WithTracer replaces the tracer obtained from the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(r *Runner) { r.tracer = t }
}

// New creates a runner over targets. root must use the same syntax the tree
// was built with.
func New(root namespace.Namespace, targets *target.Tree, opts ...Option) *Runner {
	r := &Runner{
		root:    root,
		targets: targets,
		tracer:  otel.Tracer("take.runner"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Root returns the root namespace names are resolved from.
func (r *Runner) Root() namespace.Namespace {
	return r.root
}

// Targets returns the target tree.
func (r *Runner) Targets() *target.Tree {
	return r.targets
}

// Run resolves each name from the root and executes them strictly one after
// the other, stopping at the first failure.
func (r *Runner) Run(ctx context.Context, names ...string) error {
	for _, name := range names {
		ns, err := r.root.Resolve(name)
		if err != nil {
			return err
		}
		if err := r.Execute(ctx, ns); err != nil {
			return err
		}
	}
	return nil
}

// Execute builds the dependency tree for ns and runs it. A cyclic tree is
// rejected before any action runs.
func (r *Runner) Execute(ctx context.Context, ns namespace.Namespace) error {
	ctx = ctxlog.With(ctx, "run_id", uuid.NewString()[:8], "target", ns.StringWithArgs())
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Building dependency tree.")

	tree, safe, err := r.BuildDependencyTree(ns)
	if err != nil {
		return err
	}
	if !safe {
		logger.Debug("Cyclic dependency detected.")
		return takeerr.New(takeerr.KindCyclicDependency, "Cyclic target dependency detected, aborting")
	}

	logger.Debug("Dependency tree built.", "nodes", tree.Count())
	if err := r.execNode(ctx, tree); err != nil {
		return err
	}
	logger.Debug("Target finished.")
	return nil
}
