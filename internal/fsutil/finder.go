// Package fsutil provides file system utility functions.
package fsutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/take/internal/takeerr"
)

// TakefileNames are the file names FindTakefile looks for, in order.
var TakefileNames = []string{"Takefile.hcl", "Takefile.yaml", "Takefile.yml"}

// FindTakefile returns the path of the first Takefile present in dir.
func FindTakefile(dir string) (string, error) {
	for _, name := range TakefileNames {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", takeerr.Wrap(takeerr.KindInvalidConfig, err, "Unable to access %s", path)
		}
	}
	return "", takeerr.New(takeerr.KindInvalidConfig, "No Takefile found in %s (looked for %s)", dir, strings.Join(TakefileNames, ", "))
}

// WatchDirs recursively collects rootPath and its subdirectories, skipping
// hidden directories such as .git.
func WatchDirs(rootPath string) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != rootPath && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		dirs = append(dirs, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dirs, nil
}
