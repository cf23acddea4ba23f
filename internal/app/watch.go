package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vk/take/internal/fsutil"
	"github.com/vk/take/internal/takeerr"
)

// watch runs the requested targets, then runs them again whenever a file
// below the Takefile's directory changes, until ctx is cancelled. Failed runs
// are reported and do not stop watching.
func (a *App) watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	root := filepath.Dir(a.path)
	dirs, err := fsutil.WatchDirs(root)
	if err != nil {
		return fmt.Errorf("failed to list watched directories: %w", err)
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	a.logger.Info("👀 Watching for changes.", "root", root, "dirs", len(dirs))

	a.watchRun(ctx, false)

	takefile, err := filepath.Abs(a.path)
	if err != nil {
		a.logger.Debug("Unable to resolve the Takefile path, comparing it as given.", "path", a.path, "error", err)
		takefile = filepath.Clean(a.path)
	}
	var (
		timer    *time.Timer
		fire     <-chan time.Time
		reloaded bool
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			a.logger.Debug("File changed.", "path", event.Name, "op", event.Op.String())
			if event.Has(fsnotify.Create) {
				// New directories are not watched recursively by fsnotify.
				a.watchNew(watcher, event.Name)
			}
			if a.isTakefile(event.Name, takefile) {
				reloaded = true
			}
			if timer == nil {
				timer = time.NewTimer(a.cfg.WatchDebounce)
			} else {
				timer.Reset(a.cfg.WatchDebounce)
			}
			fire = timer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.logger.Warn("File watcher error.", "error", err)

		case <-fire:
			fire = nil
			a.watchRun(ctx, reloaded)
			reloaded = false
		}
	}
}

// watchRun performs one run in watch mode, reloading the Takefile first when
// it changed.
func (a *App) watchRun(ctx context.Context, reload bool) {
	if reload {
		a.logger.Info("🔄 Takefile changed, reloading.")
		if err := a.load(ctx); err != nil {
			a.report(err)
			return
		}
	}
	if err := a.run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		a.report(err)
	}
}

// report prints a failed watch run without stopping the watcher.
func (a *App) report(err error) {
	a.logger.Debug("Run failed.", "error", err)
	msg := err.Error()
	if te, ok := takeerr.As(err); ok {
		msg = te.Message
	}
	fmt.Fprintln(a.errW, a.styles.Cyclic.Render(msg))
}

// watchNew adds a newly created directory and its subdirectories to the
// watcher. fsnotify does not watch recursively.
func (a *App) watchNew(watcher *fsnotify.Watcher, path string) {
	dirs, err := fsutil.WatchDirs(path)
	if err != nil {
		a.logger.Debug("Not watching new path.", "path", path, "error", err)
		return
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			a.logger.Debug("Unable to watch new directory.", "dir", dir, "error", err)
		}
	}
}

// isTakefile reports whether the event path names the loaded Takefile.
func (a *App) isTakefile(path, takefile string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		a.logger.Debug("Unable to resolve changed path.", "path", path, "error", err)
		abs = filepath.Clean(path)
	}
	return abs == takefile
}
