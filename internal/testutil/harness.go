// Package testutil provides a harness for end-to-end tests that run real
// Takefiles through the application.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/take/internal/app"
)

// RootPlaceholder is replaced by the test's working directory in every file
// written by the harness.
const RootPlaceholder = "{{root}}"

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Root      string
	Stdout    string
	LogOutput string
	Err       error
	App       *app.App
}

// RunIntegrationTest provides a standardized harness for running integration
// tests using a default background context.
func RunIntegrationTest(t *testing.T, files map[string]string, cfg app.Config) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files, cfg)
}

// RunIntegrationTestWithContext writes files into a temporary directory, then
// creates and runs the app there. Unless cfg names a file or directory, the
// Takefile is discovered in that directory.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, cfg app.Config) *HarnessResult {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		content = strings.ReplaceAll(content, RootPlaceholder, root)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	if cfg.File == "" && cfg.Directory == "" {
		cfg.Directory = root
	} else if cfg.File != "" && !filepath.IsAbs(cfg.File) {
		cfg.File = filepath.Join(root, cfg.File)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
	if cfg.Color == "" {
		cfg.Color = app.ColorNever
	}

	outW, logW := &app.SafeBuffer{}, &app.SafeBuffer{}
	result := &HarnessResult{Root: root}

	appConfig, err := app.NewConfig(cfg)
	if err == nil {
		result.App, err = app.NewApp(outW, logW, appConfig, nil)
	}
	if err == nil {
		err = result.App.Run(ctx)
	}

	result.Err = err
	result.Stdout = outW.String()
	result.LogOutput = logW.String()

	if os.Getenv("TAKE_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), result.LogOutput)
	}
	return result
}
