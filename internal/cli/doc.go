// Package cli turns the take command line into an app.Config. Flags are
// declared with cobra; usage errors come back as an *ExitError with code 2,
// and --help or --version ask the caller to exit cleanly.
package cli
