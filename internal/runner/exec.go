package runner

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/vk/take/internal/config"
	"github.com/vk/take/internal/ctxlog"
)

// execNode runs a node's dependencies and then its action. Skipped nodes
// return immediately. Once ctx is cancelled, for instance by a failed
// parallel sibling, no further dependency or action is started.
func (r *Runner) execNode(ctx context.Context, node *DependencyNode) error {
	if !node.ShouldExecute {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	ctx, span := r.tracer.Start(ctx, "take.target",
		trace.WithAttributes(
			attribute.String("take.target.name", node.DisplayName),
			attribute.StringSlice("take.target.args", node.Args),
			attribute.Bool("take.parallel_deps", node.Target.ParallelDeps),
			attribute.Int("take.dependencies", len(node.Children)),
		),
	)
	defer span.End()

	if err := r.execChildren(ctx, node); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "dependency failed")
		return err
	}

	if !node.Target.Executes() {
		span.SetStatus(codes.Ok, "")
		return nil
	}
	if err := ctx.Err(); err != nil {
		span.SetStatus(codes.Error, "cancelled")
		return err
	}

	logger := ctxlog.FromContext(ctx).With("node", node.DisplayName)
	logger.Info("▶️ Starting target")
	start := time.Now()

	err := node.Target.Execute(ctx, config.Invocation{
		Namespace: node.Namespace.String(),
		Args:      node.Args,
		Match:     node.Match,
		Shell:     r.shell,
	})
	if err != nil {
		logger.Debug("Target failed.", "error", err, "duration", time.Since(start))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	logger.Info("✅ Finished target", "duration", time.Since(start))
	span.SetStatus(codes.Ok, "")
	return nil
}

// execChildren runs the children concurrently behind an errgroup barrier when
// the node's target asks for parallel dependencies, otherwise one at a time
// in declaration order.
func (r *Runner) execChildren(ctx context.Context, node *DependencyNode) error {
	if len(node.Children) == 0 {
		return nil
	}
	logger := ctxlog.FromContext(ctx)

	if node.Target.ParallelDeps {
		logger.Debug("Running dependencies in parallel.", "node", node.DisplayName, "deps", childNames(node))
		g, gCtx := errgroup.WithContext(ctx)
		for _, child := range node.Children {
			g.Go(func() error {
				return r.execNode(gCtx, child)
			})
		}
		return g.Wait()
	}

	logger.Debug("Running dependencies in sequence.", "node", node.DisplayName, "deps", childNames(node))
	for _, child := range node.Children {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.execNode(ctx, child); err != nil {
			return err
		}
	}
	return nil
}

func childNames(node *DependencyNode) string {
	names := make([]string, len(node.Children))
	for i, child := range node.Children {
		names[i] = child.DisplayName
	}
	return strings.Join(names, ", ")
}
