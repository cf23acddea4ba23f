package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/vk/take/internal/app"
)

// Version is reported by --version.
var Version = "dev"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

const longHelp = `Take runs targets declared in a Takefile (Takefile.hcl, Takefile.yaml or
Takefile.yml). Targets live in namespaces separated by '/', may take
arguments in brackets and run their dependencies first, either in order or
in parallel.

Examples:
  take                      run the default target
  take build test           run build, then test
  take 'deploy[prod,eu]'    run deploy with two arguments
  take docker/push          run a nested target
  take --deps build         show what build would run
  take -l                   list all targets`

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	var (
		cfg app.Config
		ran bool
	)
	cmd := &cobra.Command{
		Use:           "take [flags] [targets...]",
		Short:         "A namespaced task runner",
		Long:          longHelp,
		Version:       Version,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, targets []string) error {
			cfg.Targets = targets
			ran = true
			return nil
		},
	}
	if args == nil {
		// cobra falls back to os.Args for a nil slice.
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetOut(output)
	cmd.SetErr(output)

	flags := cmd.Flags()
	flags.StringVarP(&cfg.File, "file", "f", "", "Path to the Takefile to use.")
	flags.StringVarP(&cfg.Directory, "directory", "d", "", "Directory to search for a Takefile.")
	flags.StringVarP(&cfg.Cwd, "cwd", "C", "", "Change to this directory before doing anything.")
	flags.BoolVarP(&cfg.List, "list", "l", false, "List all targets.")
	flags.StringVar(&cfg.Deps, "deps", "", "Print the dependency tree of a target instead of running it.")
	flags.BoolVarP(&cfg.Watch, "watch", "w", false, "Re-run the targets whenever a file changes.")
	flags.DurationVar(&cfg.WatchDebounce, "watch-debounce", app.DefaultWatchDebounce, "Quiet period before a watch re-run.")
	flags.StringSliceVarP(&cfg.Suppress, "suppress", "s", nil, "Suppress output: 'exec-time', 'cmd-echo'.")
	flags.BoolVar(&cfg.Emojis, "emojis", false, "Decorate output with emojis.")
	flags.StringVar(&cfg.Color, "color", app.ColorAuto, "Colorize output: 'auto', 'always' or 'never'.")
	flags.StringVar(&cfg.LogLevel, "log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flags.StringVar(&cfg.LogFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	flags.BoolVar(&cfg.Trace, "trace", false, "Print the internal cause of errors.")
	flags.StringVar(&cfg.TraceExporter, "trace-exporter", app.TraceExporterNone, "Export execution spans: 'none' or 'stdout'.")

	if err := cmd.Execute(); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if !ran {
		// --help or --version was handled by cobra.
		return nil, true, nil
	}
	slog.Debug("Arguments parsed successfully.", "targets", cfg.Targets)

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
