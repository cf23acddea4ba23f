package app

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Suppressible outputs.
const (
	SuppressExecTime = "exec-time"
	SuppressCmdEcho  = "cmd-echo"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Trace exporters.
const (
	TraceExporterNone   = "none"
	TraceExporterStdout = "stdout"
)

// DefaultWatchDebounce is how long watch mode waits for file events to
// settle before re-running.
const DefaultWatchDebounce = 200 * time.Millisecond

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// File is an explicit Takefile path. When empty the Takefile is searched
	// for in Directory.
	File      string
	Directory string
	// Cwd is the working directory to switch to before loading.
	Cwd string

	// Targets are run in order. The root target runs when none are given.
	Targets []string
	List    bool
	// Deps prints the dependency tree of the named target instead of running.
	Deps  string
	Watch bool

	Suppress []string
	Emojis   bool
	Color    string

	LogFormat string
	LogLevel  string
	// Trace prints the internal cause of user-facing errors.
	Trace         bool
	TraceExporter string

	WatchDebounce time.Duration
}

// NewConfig applies defaults and validates cfg.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Color == "" {
		cfg.Color = ColorAuto
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.TraceExporter == "" {
		cfg.TraceExporter = TraceExporterNone
	}
	if cfg.WatchDebounce <= 0 {
		cfg.WatchDebounce = DefaultWatchDebounce
	}
	cfg.Color = strings.ToLower(cfg.Color)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	cfg.TraceExporter = strings.ToLower(cfg.TraceExporter)

	if err := oneOf("color", cfg.Color, ColorAuto, ColorAlways, ColorNever); err != nil {
		return nil, err
	}
	if err := oneOf("log-level", cfg.LogLevel, "debug", "info", "warn", "error"); err != nil {
		return nil, err
	}
	if err := oneOf("log-format", cfg.LogFormat, "text", "json"); err != nil {
		return nil, err
	}
	if err := oneOf("trace-exporter", cfg.TraceExporter, TraceExporterNone, TraceExporterStdout); err != nil {
		return nil, err
	}
	for _, s := range cfg.Suppress {
		if err := oneOf("suppress", s, SuppressExecTime, SuppressCmdEcho); err != nil {
			return nil, err
		}
	}

	if cfg.File != "" && cfg.Directory != "" {
		return nil, errors.New("file and directory cannot be used together")
	}
	if cfg.List && cfg.Deps != "" {
		return nil, errors.New("list and deps cannot be used together")
	}
	if cfg.Watch && (cfg.List || cfg.Deps != "") {
		return nil, errors.New("watch cannot be combined with list or deps")
	}

	return &cfg, nil
}

func oneOf(name, value string, allowed ...string) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	return fmt.Errorf("invalid %s %q: must be one of %s", name, value, strings.Join(allowed, ", "))
}

// Suppressed reports whether the given output is suppressed.
func (c *Config) Suppressed(output string) bool {
	return slices.Contains(c.Suppress, output)
}
