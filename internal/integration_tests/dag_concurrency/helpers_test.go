package integration_tests

import "fmt"

// waitFor blocks until the named marker appears, failing after ~5s.
const waitFor = `i=0; while [ ! -f {{root}}/%s ]; do i=$((i+1)); [ $i -gt 100 ] && exit 1; sleep 0.05; done`

func sprintf(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}
