package app

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/vk/take/internal/config"
	"github.com/vk/take/internal/ctxlog"
	"github.com/vk/take/internal/fsutil"
	"github.com/vk/take/internal/hcl"
	"github.com/vk/take/internal/render"
	"github.com/vk/take/internal/runner"
	"github.com/vk/take/internal/shell"
	"github.com/vk/take/internal/takeerr"
	"github.com/vk/take/internal/target"
	"github.com/vk/take/internal/yamlfile"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	errW    io.Writer
	cfg     *Config
	logger  *slog.Logger
	styles  render.Styles
	loader  config.Loader
	tracing *tracing

	path     string
	takefile *config.Takefile
	runner   *runner.Runner
}

// NewApp is the constructor for the main application. It loads the Takefile
// and builds its targets. A nil loader selects one from the file extension.
func NewApp(outW, errW io.Writer, cfg *Config, loader config.Loader) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, errW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	if cfg.Cwd != "" {
		if err := os.Chdir(cfg.Cwd); err != nil {
			return nil, takeerr.Wrap(takeerr.KindInvalidConfig, err, "Unable to change directory to %s", cfg.Cwd)
		}
		logger.Debug("Changed working directory.", "cwd", cfg.Cwd)
	}

	path := cfg.File
	if path == "" {
		dir := cfg.Directory
		if dir == "" {
			dir = "."
		}
		found, err := fsutil.FindTakefile(dir)
		if err != nil {
			return nil, err
		}
		path = found
	}
	if loader == nil {
		l, err := loaderFor(path)
		if err != nil {
			return nil, err
		}
		loader = l
	}

	tr, err := newTracing(cfg.TraceExporter, errW)
	if err != nil {
		return nil, err
	}

	a := &App{
		outW:    outW,
		errW:    errW,
		cfg:     cfg,
		logger:  logger,
		styles:  render.NewStyles(outW, useColor(cfg.Color, outW)).WithEmoji(cfg.Emojis),
		loader:  loader,
		tracing: tr,
		path:    path,
	}
	if err := a.load(ctx); err != nil {
		_ = tr.shutdown(ctx)
		return nil, err
	}
	return a, nil
}

// load reads the Takefile and rebuilds the target tree and runner.
func (a *App) load(ctx context.Context) error {
	tf, err := a.loader.Load(ctx, a.path)
	if err != nil {
		return err
	}
	if a.cfg.Suppressed(SuppressCmdEcho) {
		tf.Options.Shell.Echo = false
	}
	a.logger.Debug("Takefile loaded.", "path", a.path, "targets", len(tf.Targets))

	tree, err := target.Build(tf.Targets, tf.Options)
	if err != nil {
		return err
	}

	exec := shell.New(tf.Options.Shell, a.outW, a.errW).WithEchoStyle(a.styles.Command)
	a.takefile = tf
	a.runner = runner.New(tf.Options.Root(), tree,
		runner.WithShell(exec),
		runner.WithTracer(a.tracing.tracer()),
	)
	a.logger.Debug("Targets built.", "top_level", tree.Len())
	return nil
}

// Runner returns the application's runner. This is primarily for testing.
func (a *App) Runner() *runner.Runner {
	return a.runner
}

// Path returns the loaded Takefile path.
func (a *App) Path() string {
	return a.path
}

func loaderFor(path string) (config.Loader, error) {
	switch filepath.Ext(path) {
	case ".hcl":
		return hcl.NewLoader(), nil
	case ".yaml", ".yml":
		return yamlfile.NewLoader(), nil
	default:
		return nil, takeerr.New(takeerr.KindInvalidConfig, "Unsupported Takefile format %q (expected .hcl, .yaml or .yml)", path)
	}
}

// useColor resolves the color mode. Auto enables color for terminals unless
// NO_COLOR is set.
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
