package hcl

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/vk/take/internal/config"
)

// functions are available in every Takefile expression.
var functions = map[string]function.Function{
	"coalesce":  stdlib.CoalesceFunc,
	"concat":    stdlib.ConcatFunc,
	"element":   stdlib.ElementFunc,
	"format":    stdlib.FormatFunc,
	"join":      stdlib.JoinFunc,
	"length":    stdlib.LengthFunc,
	"lookup":    stdlib.LookupFunc,
	"lower":     stdlib.LowerFunc,
	"split":     stdlib.SplitFunc,
	"trimspace": stdlib.TrimSpaceFunc,
	"upper":     stdlib.UpperFunc,
}

// staticContext is used for attributes decoded at load time.
func staticContext() *hcl.EvalContext {
	return &hcl.EvalContext{Functions: functions}
}

// invocationContext exposes an invocation to action expressions.
func invocationContext(inv config.Invocation) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"args":   stringList(inv.Args),
			"groups": stringList(inv.Match.Groups),
			"match":  cty.StringVal(inv.Match.Full),
			"target": cty.StringVal(inv.Namespace),
			"env":    environ(),
		},
		Functions: functions,
	}
}

func stringList(items []string) cty.Value {
	if len(items) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	vals := make([]cty.Value, len(items))
	for i, item := range items {
		vals[i] = cty.StringVal(item)
	}
	return cty.ListVal(vals)
}

// isAbsent reports whether expr is the placeholder gohcl assigns to an
// omitted optional attribute.
func isAbsent(expr hcl.Expression) bool {
	if expr == nil {
		return true
	}
	if len(expr.Variables()) > 0 {
		return false
	}
	val, diags := expr.Value(staticContext())
	return !diags.HasErrors() && val.IsNull()
}

// decode converts val to the cty type implied by the Go value behind goVal
// and stores it there.
func decode(val cty.Value, goVal any) error {
	ty, err := gocty.ImpliedType(goVal)
	if err != nil {
		return gocty.FromCtyValue(val, goVal)
	}
	converted, err := convert.Convert(val, ty)
	if err != nil {
		return fmt.Errorf("cannot convert %s to %s: %w", val.Type().FriendlyName(), ty.FriendlyName(), err)
	}
	return gocty.FromCtyValue(converted, goVal)
}

// evalDeps accepts a single dependency name or a list of names.
func evalDeps(expr hcl.Expression) ([]string, error) {
	if isAbsent(expr) {
		return nil, nil
	}
	val, diags := expr.Value(staticContext())
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return nil, nil
	}
	if val.Type() == cty.String {
		return []string{val.AsString()}, nil
	}
	var deps []string
	if err := decode(val, &deps); err != nil {
		return nil, err
	}
	return deps, nil
}

func evalString(expr hcl.Expression, ctx *hcl.EvalContext) (string, error) {
	val, diags := expr.Value(ctx)
	if diags.HasErrors() {
		return "", diags
	}
	if val.IsNull() {
		return "", nil
	}
	var s string
	if err := decode(val, &s); err != nil {
		return "", err
	}
	return s, nil
}

// evalEnv returns KEY=value pairs sorted by key.
func evalEnv(expr hcl.Expression, ctx *hcl.EvalContext) ([]string, error) {
	val, diags := expr.Value(ctx)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return nil, nil
	}
	var env map[string]string
	if err := decode(val, &env); err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + "=" + env[k]
	}
	return pairs, nil
}

// evalCommands accepts either one command (a list of words) or a list of
// commands.
func evalCommands(expr hcl.Expression, ctx *hcl.EvalContext) ([][]string, error) {
	val, diags := expr.Value(ctx)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return nil, nil
	}
	ty := val.Type()
	if !ty.IsListType() && !ty.IsTupleType() {
		return nil, fmt.Errorf("run must be a list of words or a list of commands, got %s", ty.FriendlyName())
	}
	if val.LengthInt() == 0 {
		return nil, nil
	}

	if val.Index(cty.NumberIntVal(0)).Type().IsPrimitiveType() {
		var argv []string
		if err := decode(val, &argv); err != nil {
			return nil, err
		}
		return [][]string{argv}, nil
	}

	var cmds [][]string
	if err := decode(val, &cmds); err != nil {
		return nil, err
	}
	return cmds, nil
}
