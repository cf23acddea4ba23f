package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/vk/take/internal/app"
	"github.com/vk/take/internal/cli"
	"github.com/vk/take/internal/takeerr"
)

// main is the entrypoint for the take application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Stdout, os.Stderr, os.Args[1:])
	stop()

	if err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			if exitErr.Message != "" {
				fmt.Fprintln(os.Stderr, exitErr.Message)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error
// handling. Failures come back as *cli.ExitError carrying the message to
// print and the exit code.
func run(ctx context.Context, outW, errW io.Writer, args []string) (err error) {
	cfg, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// Internal faults are reported as critical errors instead of crashing.
	defer func() {
		if r := recover(); r != nil {
			msg := fmt.Sprintf("A critical internal error occurred: %v", r)
			if cfg.Trace {
				msg += "\n" + string(debug.Stack())
			}
			err = &cli.ExitError{Code: 1, Message: msg}
		}
	}()

	takeApp, err := app.NewApp(outW, errW, cfg, nil)
	if err != nil {
		return exitError(err, cfg.Trace)
	}
	if err := takeApp.Run(ctx); err != nil {
		return exitError(err, cfg.Trace)
	}
	return nil
}

// exitError turns an application error into the message and code main
// reports. User-facing errors print their message and, when tracing, their
// internal cause.
func exitError(err error, trace bool) *cli.ExitError {
	te, ok := takeerr.As(err)
	if !ok {
		return &cli.ExitError{Code: 1, Message: "Error: " + err.Error()}
	}

	msg := "Error: " + te.Message
	if trace && te.Internal != nil {
		msg += fmt.Sprintf("\nCaused by: %v", te.Internal)
	}
	code := 1
	if te.ExitCode > 0 {
		code = te.ExitCode
	}
	return &cli.ExitError{Code: code, Message: msg}
}
