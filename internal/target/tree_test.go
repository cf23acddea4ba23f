package target

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/take/internal/config"
	"github.com/vk/take/internal/takeerr"
)

func TestResolve_Priority(t *testing.T) {
	batch := config.Batch{
		{Name: "f.o", Kind: config.KindRegex, Description: "regex"},
		{Name: "f*", Description: "glob"},
		{Name: "foo", Description: "exact"},
	}
	tree, err := Build(batch, config.DefaultOptions())
	require.NoError(t, err)

	tgt, match, err := tree.Resolve(mustNS(t, "foo"))
	require.NoError(t, err)
	assert.Equal(t, "exact", tgt.Description)
	assert.Equal(t, "foo", match.Full)

	tgt, _, err = tree.Resolve(mustNS(t, "fxo"))
	require.NoError(t, err)
	assert.Equal(t, "regex", tgt.Description)

	tgt, _, err = tree.Resolve(mustNS(t, "fizz"))
	require.NoError(t, err)
	assert.Equal(t, "glob", tgt.Description)
}

func TestResolve_DeclarationOrder(t *testing.T) {
	batch := config.Batch{
		{Name: "^test-(.+)$", Kind: config.KindRegex, Description: "first"},
		{Name: "^test-(unit)$", Kind: config.KindRegex, Description: "second"},
		{Name: "b*", Description: "glob-first"},
		{Name: "ba*", Description: "glob-second"},
	}
	tree, err := Build(batch, config.DefaultOptions())
	require.NoError(t, err)

	tgt, match, err := tree.Resolve(mustNS(t, "test-unit"))
	require.NoError(t, err)
	assert.Equal(t, "first", tgt.Description)
	assert.Equal(t, []string{"unit"}, match.Groups)

	tgt, match, err = tree.Resolve(mustNS(t, "bar"))
	require.NoError(t, err)
	assert.Equal(t, "glob-first", tgt.Description)
	assert.Empty(t, match.Groups)

	names := []string{}
	for _, tgt := range tree.Targets() {
		names = append(names, tgt.Description)
	}
	assert.Equal(t, []string{"first", "second", "glob-first", "glob-second"}, names)
}

func TestResolve_Nested(t *testing.T) {
	batch := config.Batch{
		{
			Name: "^svc-(\\w+)$", Kind: config.KindRegex,
			Children: config.Batch{
				{Name: "deploy"},
				{Name: "^env-(\\w+)$", Kind: config.KindRegex},
			},
		},
	}
	tree, err := Build(batch, config.DefaultOptions())
	require.NoError(t, err)

	tgt, match, err := tree.Resolve(mustNS(t, "svc-api/deploy[fast]"))
	require.NoError(t, err)
	assert.Equal(t, "deploy", tgt.Name)
	assert.Equal(t, "deploy", match.Full)
	assert.Empty(t, match.Groups, "groups from earlier segments are not carried forward")

	_, match, err = tree.Resolve(mustNS(t, "svc-api/env-prod"))
	require.NoError(t, err)
	assert.Equal(t, []string{"prod"}, match.Groups)
}

func TestResolve_Errors(t *testing.T) {
	tree, err := Build(config.Batch{{Name: "a", Children: config.Batch{{Name: "b"}}}}, config.DefaultOptions())
	require.NoError(t, err)

	_, _, err = tree.Resolve(config.DefaultOptions().Root())
	assert.ErrorIs(t, err, takeerr.ErrMissingDefaultTarget)

	_, _, err = tree.Resolve(mustNS(t, "a/c"))
	require.Error(t, err)
	assert.ErrorIs(t, err, takeerr.ErrTargetNotFound)
	assert.Contains(t, err.Error(), "/a/c")

	_, _, err = tree.Resolve(mustNS(t, "b"))
	assert.ErrorIs(t, err, takeerr.ErrTargetNotFound)
}

func TestMatch_RootIndexUnreachable(t *testing.T) {
	tree, err := Build(config.Batch{{Name: ""}}, config.DefaultOptions())
	require.NoError(t, err)

	_, _, ok := tree.Match(RootIndex)
	assert.False(t, ok)

	tgt, _, err := tree.Resolve(config.DefaultOptions().Root())
	require.NoError(t, err)
	assert.Equal(t, RootIndex, tgt.Name)
}
