package runner

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vk/take/internal/config"
	"github.com/vk/take/internal/target"
)

// ExecutionRecord holds the start and end times of one action run.
type ExecutionRecord struct {
	Start time.Time
	End   time.Time
	Args  []string
}

// recorder builds actions that record when they ran.
type recorder struct {
	mu    sync.Mutex
	runs  map[string][]ExecutionRecord
	order []string
	sleep time.Duration
}

func newRecorder(sleep time.Duration) *recorder {
	return &recorder{runs: make(map[string][]ExecutionRecord), sleep: sleep}
}

func (r *recorder) action(id string) config.Action {
	return func(ctx context.Context, inv config.Invocation) error {
		start := time.Now()
		if r.sleep > 0 {
			select {
			case <-time.After(r.sleep):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		r.mu.Lock()
		defer r.mu.Unlock()
		r.runs[id] = append(r.runs[id], ExecutionRecord{Start: start, End: time.Now(), Args: inv.Argv()})
		r.order = append(r.order, id)
		return nil
	}
}

func (r *recorder) failing(err error) config.Action {
	return func(context.Context, config.Invocation) error {
		return err
	}
}

func (r *recorder) count(id string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.runs[id])
}

func (r *recorder) record(id string) ExecutionRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.runs[id][0]
}

func (r *recorder) sequence() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.order...)
}

var errBoom = errors.New("boom")

func newTestRunner(t *testing.T, batch config.Batch) *Runner {
	t.Helper()
	opts := config.DefaultOptions()
	tree, err := target.Build(batch, opts)
	require.NoError(t, err)
	return New(opts.Root(), tree)
}
