// Package shell runs the external commands issued by target actions.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/vk/take/internal/ctxlog"
	"github.com/vk/take/internal/takeerr"
)

const waitDelay = 2 * time.Second

// Options controls how commands are run.
type Options struct {
	// Echo prints each command line before running it.
	Echo bool
	// PrintStdout connects the command's stdout to the executor's stdout.
	// Otherwise the output is discarded.
	PrintStdout bool
	// PrintStderr connects the command's stderr to the executor's stderr.
	PrintStderr bool
	// AbortOnErrorCode turns a non-zero exit code into an error.
	AbortOnErrorCode bool
}

// DefaultOptions echoes commands, shows their output and aborts on failure.
func DefaultOptions() Options {
	return Options{
		Echo:             true,
		PrintStdout:      true,
		PrintStderr:      true,
		AbortOnErrorCode: true,
	}
}

// Command is a single process invocation.
type Command struct {
	Argv []string
	Dir  string
	// Env entries (KEY=value) are appended to the current environment.
	Env []string
	// Echo overrides Options.Echo when set.
	Echo *bool
	// AbortOnErrorCode overrides Options.AbortOnErrorCode when set.
	AbortOnErrorCode *bool
}

// Executor spawns processes according to its Options.
type Executor struct {
	opts      Options
	stdin     io.Reader
	stdout    io.Writer
	stderr    io.Writer
	echoStyle lipgloss.Style
}

// New creates an executor writing to the given streams.
func New(opts Options, stdout, stderr io.Writer) *Executor {
	return &Executor{
		opts:      opts,
		stdin:     os.Stdin,
		stdout:    stdout,
		stderr:    stderr,
		echoStyle: lipgloss.NewStyle(),
	}
}

// WithEchoStyle sets the style used for echoed command lines.
func (e *Executor) WithEchoStyle(style lipgloss.Style) *Executor {
	e.echoStyle = style
	return e
}

// WithStdin replaces the standard input handed to commands.
func (e *Executor) WithStdin(r io.Reader) *Executor {
	e.stdin = r
	return e
}

// Options returns the executor's options.
func (e *Executor) Options() Options {
	return e.opts
}

// Exec runs cmd and returns its exit code. An empty Argv is a no-op. When
// aborting on error codes, a non-zero exit is reported as a process exit error
// carrying the code.
func (e *Executor) Exec(ctx context.Context, cmd Command) (int, error) {
	if len(cmd.Argv) == 0 {
		return 0, nil
	}
	logger := ctxlog.FromContext(ctx).With("argv", cmd.Argv)

	echo := e.opts.Echo
	if cmd.Echo != nil {
		echo = *cmd.Echo
	}
	abort := e.opts.AbortOnErrorCode
	if cmd.AbortOnErrorCode != nil {
		abort = *cmd.AbortOnErrorCode
	}

	if echo {
		fmt.Fprintln(e.stdout, e.echoStyle.Render(Format(cmd.Argv)))
	}

	proc := exec.CommandContext(ctx, cmd.Argv[0], cmd.Argv[1:]...)
	proc.Dir = cmd.Dir
	proc.Stdin = e.stdin
	// Orphaned children may keep the output pipes open after a cancelled
	// command is killed.
	proc.WaitDelay = waitDelay
	if len(cmd.Env) > 0 {
		proc.Env = append(os.Environ(), cmd.Env...)
	}
	if e.opts.PrintStdout {
		proc.Stdout = e.stdout
	}
	if e.opts.PrintStderr {
		proc.Stderr = e.stderr
	}

	logger.Debug("Starting process.", "dir", cmd.Dir)
	err := proc.Run()

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		logger.Debug("Process finished.", "code", 0)
		return 0, nil
	case errors.As(err, &exitErr):
		code := exitErr.ExitCode()
		logger.Debug("Process finished.", "code", code)
		if ctx.Err() != nil {
			return code, ctx.Err()
		}
		if abort {
			return code, &takeerr.Error{
				Kind:     takeerr.KindProcessExit,
				Message:  fmt.Sprintf("Target execution aborted: process exited with code %d", code),
				Internal: err,
				ExitCode: code,
			}
		}
		return code, nil
	default:
		return -1, fmt.Errorf("failed to run %q: %w", cmd.Argv[0], err)
	}
}

// Format renders argv as a shell-like command line, quoting words that need it.
func Format(argv []string) string {
	words := make([]string, len(argv))
	for i, word := range argv {
		if word == "" || strings.ContainsAny(word, " \t\n\"'\\$`|&;<>()*?[]{}") {
			words[i] = "'" + strings.ReplaceAll(word, "'", `'\''`) + "'"
		} else {
			words[i] = word
		}
	}
	return strings.Join(words, " ")
}
