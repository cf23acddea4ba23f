package namespace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/take/internal/takeerr"
)

func TestResolve(t *testing.T) {
	root := Root(DefaultSyntax)
	base := mustResolve(t, root, "a/b")

	testCases := []struct {
		name     string
		from     Namespace
		input    string
		expected string
		args     []string
	}{
		{name: "relative appends to base", from: base, input: "c", expected: "/a/b/c"},
		{name: "absolute ignores base", from: base, input: "/c", expected: "/c"},
		{name: "parent collapses", from: root, input: "a/../b", expected: "/b"},
		{name: "leading parent from root is dropped", from: root, input: "../a", expected: "/a"},
		{name: "leading parent on absolute path is dropped", from: base, input: "/../x", expected: "/x"},
		{name: "parent backtracks into base", from: base, input: "../c", expected: "/a/c"},
		{name: "chained parents", from: base, input: "../../c", expected: "/c"},
		{name: "more parents than segments", from: base, input: "../../../../c", expected: "/c"},
		{name: "trailing parent", from: base, input: "c/..", expected: "/a/b"},
		{name: "consecutive parents after segments", from: root, input: "a/b/c/../..", expected: "/a"},
		{name: "empty segments collapse", from: root, input: "//a///b/", expected: "/a/b"},
		{name: "single separator is root", from: base, input: "/", expected: "/"},
		{name: "arguments", from: root, input: "task[x,y,z]", expected: "/task", args: []string{"x", "y", "z"}},
		{name: "empty argument list", from: root, input: "task[]", expected: "/task"},
		{name: "empty argument kept between commas", from: root, input: "task[a,,b]", expected: "/task", args: []string{"a", "", "b"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ns, err := tc.from.Resolve(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, ns.String())
			if tc.args == nil {
				assert.Empty(t, ns.Args())
			} else {
				assert.Equal(t, tc.args, ns.Args())
			}
		})
	}
}

func TestResolve_EmptyReturnsBase(t *testing.T) {
	root := Root(DefaultSyntax)
	base := mustResolve(t, root, "a/b[q]")

	for _, input := range []string{"", "[x,y]", "[]"} {
		t.Run(input, func(t *testing.T) {
			ns, err := root.ResolveFrom(input, base)
			require.NoError(t, err)
			assert.Equal(t, base.StringWithArgs(), ns.StringWithArgs())
		})
	}
}

func TestResolve_ArgumentRoundTrip(t *testing.T) {
	ns := mustResolve(t, Root(DefaultSyntax), "task[x,y,z]")
	assert.Equal(t, "/task[x,y,z]", ns.StringWithArgs())
	assert.Equal(t, "/task", ns.String())

	again := mustResolve(t, Root(DefaultSyntax), ns.StringWithArgs())
	assert.True(t, ns.Equal(again, true))
}

func TestResolve_ParentEquivalence(t *testing.T) {
	root := Root(DefaultSyntax)
	viaParent := mustResolve(t, root, "a/../b")
	direct := mustResolve(t, root, "b")
	assert.True(t, viaParent.Equal(direct, true))
}

func TestResolve_InvalidNames(t *testing.T) {
	root := Root(DefaultSyntax)
	for _, input := range []string{"a[b", "a]", "a[b]c", "a[b][c]", "a[[b]]"} {
		t.Run(input, func(t *testing.T) {
			_, err := root.Resolve(input)
			require.Error(t, err)
			assert.ErrorIs(t, err, takeerr.ErrInvalidTargetName)
		})
	}
}
