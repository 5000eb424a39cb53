package worker

import (
	"context"
	"errors"
	"sort"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRunAll_CollectsEveryResult(t *testing.T) {
	tasks := make([]Task[int], 0, 10)
	for i := 0; i < 10; i++ {
		tasks = append(tasks, func(ctx context.Context) (int, error) {
			if i == 3 {
				return 0, errors.New("boom")
			}
			return i, nil
		})
	}

	res := RunAll(context.Background(), 3, 0, tasks)
	require.Len(t, res, 10)

	var vals []int
	failed := 0
	for _, r := range res {
		if r.Err != nil {
			failed++
			continue
		}
		vals = append(vals, r.Value)
	}
	sort.Ints(vals)
	require.Equal(t, 1, failed)
	require.Equal(t, []int{0, 1, 2, 4, 5, 6, 7, 8, 9}, vals)
}

func TestPool_BoundsConcurrency(t *testing.T) {
	var running, peak atomic.Int32
	tasks := make([]Task[struct{}], 8)
	for i := range tasks {
		tasks[i] = func(ctx context.Context) (struct{}, error) {
			n := running.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			running.Add(-1)
			return struct{}{}, nil
		}
	}

	RunAll(context.Background(), 2, 0, tasks)
	require.LessOrEqual(t, peak.Load(), int32(2))
}

func TestPool_RateLimitSpacesStarts(t *testing.T) {
	tasks := make([]Task[time.Time], 3)
	for i := range tasks {
		tasks[i] = func(ctx context.Context) (time.Time, error) { return time.Now(), nil }
	}

	start := time.Now()
	RunAll(context.Background(), 3, 20, tasks)
	// three ticks at 50ms each
	require.GreaterOrEqual(t, time.Since(start), 120*time.Millisecond)
}

func TestPool_CancelStopsWorkers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := NewPool[int](1, 0)
	results := p.Run(ctx)
	cancel()

	select {
	case _, ok := <-results:
		require.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("results channel not closed after cancel")
	}
}
