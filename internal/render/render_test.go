package render

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/take/internal/config"
	"github.com/vk/take/internal/runner"
	"github.com/vk/take/internal/target"
)

func noop(context.Context, config.Invocation) error { return nil }

func build(t *testing.T, batch config.Batch) *runner.Runner {
	t.Helper()
	opts := config.DefaultOptions()
	tree, err := target.Build(batch, opts)
	require.NoError(t, err)
	return runner.New(opts.Root(), tree)
}

func lines(s string) []string {
	out := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i := range out {
		out[i] = strings.TrimRight(out[i], " ")
	}
	return out
}

func plain() Styles {
	return NewStyles(&bytes.Buffer{}, false)
}

func TestTargets(t *testing.T) {
	r := build(t, config.Batch{
		{Name: "", Description: "Default", Deps: []string{"build"}},
		{Name: "deploy-*", Action: noop},
		{Name: "build", Description: "Build everything", Action: noop, Children: config.Batch{
			{Name: "docs", Action: noop},
		}},
		{Name: "lint", Action: noop},
	})

	out := Targets(r.Targets(), plain())
	assert.Equal(t, []string{
		"Targets:",
		"root | Default",
		"├── build | Build everything",
		"│   └── docs",
		"├── lint",
		"└── deploy-*",
	}, lines(out))
}

func TestTargets_NoRoot(t *testing.T) {
	r := build(t, config.Batch{
		{Name: "a", Action: noop},
		{Name: "b", Action: noop},
	})

	out := Targets(r.Targets(), plain().WithEmoji(true))
	got := lines(out)
	require.Len(t, got, 3)
	assert.Equal(t, "🔎  Targets:", got[0])
	assert.Contains(t, got[1], "a")
	assert.Contains(t, got[2], "b")
	assert.NotContains(t, out, "root")
}

func TestDependencies(t *testing.T) {
	r := build(t, config.Batch{
		{Name: "top", Deps: []string{"/left", "/right"}},
		{Name: "left", Deps: []string{"/shared"}, Action: noop},
		{Name: "right", Deps: []string{"/shared", "/top"}, Action: noop, Description: "Right side"},
		{Name: "shared", Action: noop},
	})
	ns, err := r.Root().Resolve("top")
	require.NoError(t, err)
	node, safe, err := r.BuildDependencyTree(ns)
	require.NoError(t, err)
	assert.False(t, safe)

	out := Dependencies(node, plain())
	assert.Equal(t, []string{
		"Dependency tree:",
		"/top",
		"├── /left",
		"│   └── /shared",
		"└── /right | Right side",
		"    ├── /shared",
		"    └── /top",
	}, lines(out))
}

func TestStyles_Color(t *testing.T) {
	r := build(t, config.Batch{
		{Name: "a", Deps: []string{"/b", "/b"}},
		{Name: "b", Action: noop},
	})
	ns, err := r.Root().Resolve("a")
	require.NoError(t, err)
	node, _, err := r.BuildDependencyTree(ns)
	require.NoError(t, err)

	colored := NewStyles(&bytes.Buffer{}, true)
	assert.Contains(t, Dependencies(node, colored), "\x1b[")
	assert.Contains(t, Legend(colored, true), "\x1b[")
	assert.NotContains(t, Dependencies(node, plain()), "\x1b[")

	// Each state gets its own style.
	assert.NotEqual(t, colored.Skipped.Render("x"), colored.Action.Render("x"))
	assert.NotEqual(t, colored.Cyclic.Render("x"), colored.Group.Render("x"))
}

func TestLegend(t *testing.T) {
	assert.Equal(t, "Legend: runs an action, groups dependencies", Legend(plain(), false))
	assert.Equal(t, "Legend: runs an action, groups dependencies, already scheduled, cyclic", Legend(plain(), true))
}

func TestDuration(t *testing.T) {
	testCases := []struct {
		in   time.Duration
		want string
	}{
		{0, "0.00s"},
		{1519 * time.Millisecond, "1.52s"},
		{59*time.Second + 994*time.Millisecond, "59.99s"},
		{123400 * time.Millisecond, "2m 3.40s"},
	}
	for _, tc := range testCases {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, Duration(tc.in))
		})
	}

	assert.Equal(t, "✨  Target executed in 1.52s", Executed(plain().WithEmoji(true), 1519*time.Millisecond))
}
