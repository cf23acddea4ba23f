package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// ReadLines returns the lines of a file below the result's root, or nil when
// the file does not exist.
func ReadLines(t *testing.T, result *HarnessResult, name string) []string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(result.Root, name))
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	text := strings.TrimRight(string(data), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// AssertFileExists checks that a target created the named marker file.
func AssertFileExists(t *testing.T, result *HarnessResult, name string) {
	t.Helper()
	_, err := os.Stat(filepath.Join(result.Root, name))
	require.NoError(t, err, "expected %s to have been created", name)
}

// AssertFileMissing checks that no target created the named marker file.
func AssertFileMissing(t *testing.T, result *HarnessResult, name string) {
	t.Helper()
	_, err := os.Stat(filepath.Join(result.Root, name))
	require.True(t, os.IsNotExist(err), "expected %s not to exist", name)
}

// AssertTargetRan checks the log output for a finished target.
func AssertTargetRan(t *testing.T, result *HarnessResult, namespace string) {
	t.Helper()
	require.Contains(t, result.LogOutput, "node="+namespace,
		"expected log output for target %s was not found in logs", namespace)
}
