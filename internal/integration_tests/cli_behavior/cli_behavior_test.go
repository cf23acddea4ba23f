package integration_tests

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/take/internal/cli"
	"github.com/vk/take/internal/testutil"
)

const projectTakefile = `
targets:
  - desc: Build and test
    deps: [test]
  - name: build
    desc: Compile everything
    shell: echo build >> {{root}}/out.log
  - name: test
    deps: [../build, "../build[again]"]
    shell: echo test >> {{root}}/out.log
  - name: docker
    children:
      - name: push
        desc: Push the image
        shell: echo push >> {{root}}/out.log
`

// Test for: help is printed and the program exits cleanly.
func TestCLIBehavior_HelpIsDisplayed(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer

	cfg, exit, err := cli.Parse([]string{"-h"}, &out)

	require.NoError(t, err)
	assert.True(t, exit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "take [flags] [targets...]")
	assert.Contains(t, out.String(), "--deps")
}

// Test for: bad flags exit with usage code 2.
func TestCLIBehavior_BadFlags(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{
		{"--no-such-flag"},
		{"--color", "sometimes"},
		{"-l", "--deps", "build"},
	} {
		var out bytes.Buffer
		_, exit, err := cli.Parse(args, &out)

		assert.False(t, exit, args)
		var exitErr *cli.ExitError
		require.ErrorAs(t, err, &exitErr, args)
		assert.Equal(t, 2, exitErr.Code, args)
	}
}

// Test for: parsed targets are run in order and the run time is reported.
func TestCLIBehavior_RunsParsedTargets(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	cfg, exit, err := cli.Parse([]string{"--color", "never", "docker/push", "test"}, &bytes.Buffer{})
	require.NoError(t, err)
	require.False(t, exit)

	// --- Act ---
	result := testutil.RunIntegrationTest(t, map[string]string{"Takefile.yaml": projectTakefile}, *cfg)

	// --- Assert ---
	require.NoError(t, result.Err)
	assert.Equal(t, []string{"push", "build", "test"}, testutil.ReadLines(t, result, "out.log"))
	assert.Contains(t, result.Stdout, "Target executed in ")
}

// Test for: suppressing the execution time and the command echo.
func TestCLIBehavior_Suppress(t *testing.T) {
	t.Parallel()
	cfg, _, err := cli.Parse([]string{"-s", "exec-time,cmd-echo", "build"}, &bytes.Buffer{})
	require.NoError(t, err)

	result := testutil.RunIntegrationTest(t, map[string]string{"Takefile.yaml": projectTakefile}, *cfg)

	require.NoError(t, result.Err)
	assert.Empty(t, result.Stdout)
}

// Test for: listing targets shows descriptions and nesting without running
// anything.
func TestCLIBehavior_ListTargets(t *testing.T) {
	t.Parallel()
	cfg, _, err := cli.Parse([]string{"-l", "--color", "never"}, &bytes.Buffer{})
	require.NoError(t, err)

	result := testutil.RunIntegrationTest(t, map[string]string{"Takefile.yaml": projectTakefile}, *cfg)

	require.NoError(t, result.Err)
	assert.Contains(t, result.Stdout, "Legend: runs an action, groups dependencies")
	assert.Contains(t, result.Stdout, "root | Build and test")
	assert.Contains(t, result.Stdout, "build | Compile everything")
	assert.Contains(t, result.Stdout, "└── push | Push the image")
	testutil.AssertFileMissing(t, result, "out.log")
}

// Test for: the dependency tree marks duplicates and honors emojis.
func TestCLIBehavior_DependencyTree(t *testing.T) {
	t.Parallel()
	cfg, _, err := cli.Parse([]string{"--deps", "/", "--emojis", "--color", "never"}, &bytes.Buffer{})
	require.NoError(t, err)

	result := testutil.RunIntegrationTest(t, map[string]string{"Takefile.yaml": projectTakefile}, *cfg)

	require.NoError(t, result.Err)
	assert.Contains(t, result.Stdout, "🔧")
	assert.Contains(t, result.Stdout, "Dependency tree:")
	assert.Contains(t, result.Stdout, "└── /test")
	assert.Contains(t, result.Stdout, "├── /build")
	assert.Contains(t, result.Stdout, "└── /build[again]")
	testutil.AssertFileMissing(t, result, "out.log")
}
