package hcl

import (
	"context"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"

	"github.com/vk/take/internal/config"
	"github.com/vk/take/internal/ctxlog"
	"github.com/vk/take/internal/takeerr"
)

// translateOptions applies the options block over the defaults.
func translateOptions(b *optionsBlock) config.Options {
	opts := config.DefaultOptions()
	if b == nil {
		return opts
	}
	setIf(&opts.Separator, b.Separator)
	setIf(&opts.Parent, b.Parent)
	setIf(&opts.AllDepsAbsolute, b.AllDepsAbsolute)
	if s := b.Shell; s != nil {
		setIf(&opts.Shell.Echo, s.Echo)
		setIf(&opts.Shell.PrintStdout, s.PrintStdout)
		setIf(&opts.Shell.PrintStderr, s.PrintStderr)
		setIf(&opts.Shell.AbortOnErrorCode, s.AbortOnErrorCode)
	}
	return opts
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// translateTarget decodes a target body and its nested targets.
func translateTarget(ctx context.Context, name string, body hcl.Body) (*config.TargetConfig, error) {
	logger := ctxlog.FromContext(ctx)
	display := name
	if display == "" {
		display = "default"
	}

	var tb targetBody
	if diags := gohcl.DecodeBody(body, nil, &tb); diags.HasErrors() {
		return nil, takeerr.Wrap(takeerr.KindInvalidTargetDefinition, diags, "Target '%s' is invalid: %s", display, diags.Error())
	}

	tc := &config.TargetConfig{Name: name}
	setIf(&tc.Description, tb.Desc)
	setIf(&tc.ParallelDeps, tb.ParallelDeps)
	setIf(&tc.DepParent, tb.DepParent)

	if tb.Kind != nil {
		kind, ok := config.ParseKind(*tb.Kind)
		if !ok {
			return nil, takeerr.New(takeerr.KindInvalidTargetDefinition, "Target '%s' has unknown kind %q", display, *tb.Kind)
		}
		tc.Kind = kind
	}

	deps, err := evalDeps(tb.Deps)
	if err != nil {
		return nil, takeerr.Wrap(takeerr.KindInvalidTargetDefinition, err, "Target '%s' has invalid deps: %s", display, err)
	}
	tc.Deps = deps

	tc.Action = newAction(display, &tb)
	logger.Debug("Translated target.", "target", display, "deps", len(tc.Deps), "children", len(tb.Targets), "has_action", tc.Action != nil)

	for _, child := range tb.Targets {
		ctc, err := translateTarget(ctx, child.Name, child.Body)
		if err != nil {
			return nil, err
		}
		tc.Children = append(tc.Children, ctc)
	}
	return tc, nil
}
