package integration_tests

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/take/internal/app"
	"github.com/vk/take/internal/takeerr"
	"github.com/vk/take/internal/testutil"
)

// Test for: a failing dependency stops the rest of a sequential run.
func TestErrorHandling_SequentialFailure_StopsRun(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	takefile := `
targets:
  - name: all
    deps: [/bad, /after]
    shell: touch {{root}}/all.done
  - name: bad
    shell: exit 4
  - name: after
    shell: touch {{root}}/after.done
`

	// --- Act ---
	result := testutil.RunIntegrationTest(t, map[string]string{"Takefile.yaml": takefile}, app.Config{
		Targets: []string{"all", "after"},
	})

	// --- Assert ---
	require.ErrorIs(t, result.Err, takeerr.ErrProcessExit)
	te, ok := takeerr.As(result.Err)
	require.True(t, ok)
	assert.Equal(t, 4, te.ExitCode)
	testutil.AssertFileMissing(t, result, "after.done")
	testutil.AssertFileMissing(t, result, "all.done")
	assert.NotContains(t, result.Stdout, "Target executed in")
}

// Test for: a failing parallel dependency cancels its running siblings.
func TestErrorHandling_ParallelFailure_CancelsSiblings(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	takefile := `
target "all" {
  deps          = ["/bad", "/slow"]
  parallel_deps = true
}

target "bad" {
  shell = "sleep 0.1; exit 1"
}

target "slow" {
  shell = "exec sleep 10"
}
`

	// --- Act ---
	start := time.Now()
	result := testutil.RunIntegrationTest(t, map[string]string{"Takefile.hcl": takefile}, app.Config{
		Targets: []string{"all"},
	})

	// --- Assert ---
	require.ErrorIs(t, result.Err, takeerr.ErrProcessExit)
	assert.Less(t, time.Since(start), 5*time.Second, "slow should have been killed")
}

// Test for: ignoring exit codes lets a run continue past a failing command.
func TestErrorHandling_AbortOnErrorCodeDisabled(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	takefile := `
options {
  shell {
    abort_on_error_code = false
  }
}

target "all" {
  run = [["false"], ["touch", "{{root}}/after.done"]]
}
`

	// --- Act ---
	result := testutil.RunIntegrationTest(t, map[string]string{"Takefile.hcl": takefile}, app.Config{
		Targets: []string{"all"},
	})

	// --- Assert ---
	require.NoError(t, result.Err)
	testutil.AssertFileExists(t, result, "after.done")
}
