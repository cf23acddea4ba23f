package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/take/internal/takeerr"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o644))
}

func TestFindTakefile(t *testing.T) {
	t.Run("prefers hcl", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, filepath.Join(dir, "Takefile.yaml"))
		touch(t, filepath.Join(dir, "Takefile.hcl"))

		path, err := FindTakefile(dir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "Takefile.hcl"), path)
	})

	t.Run("yml", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, filepath.Join(dir, "Takefile.yml"))

		path, err := FindTakefile(dir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "Takefile.yml"), path)
	})

	t.Run("directory named like a Takefile is ignored", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, "Takefile.hcl"), 0o755))
		touch(t, filepath.Join(dir, "Takefile.yaml"))

		path, err := FindTakefile(dir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "Takefile.yaml"), path)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := FindTakefile(t.TempDir())
		assert.ErrorIs(t, err, takeerr.ErrInvalidConfig)
	})
}

func TestWatchDirs(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "src", "pkg", "a.go"))
	touch(t, filepath.Join(root, ".git", "objects", "x"))
	touch(t, filepath.Join(root, "README"))

	dirs, err := WatchDirs(root)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		root,
		filepath.Join(root, "src"),
		filepath.Join(root, "src", "pkg"),
	}, dirs)

	_, err = WatchDirs(filepath.Join(root, "missing"))
	assert.Error(t, err)
}
