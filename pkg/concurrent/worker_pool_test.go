package concurrent

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerPool(t *testing.T) {
	const n = 100
	wp := NewWorkerPool[int, int](4, n)
	for i := 0; i < n; i++ {
		require.NoError(t, wp.Submit(context.Background(), i))
	}
	wp.Close()
	wp.Start(context.Background(), func(_ context.Context, job int) int {
		return job * job
	})
	wp.Wait()

	got := []int{}
	for r := range wp.CollectResults() {
		got = append(got, r)
	}
	sort.Ints(got)
	require.Len(t, got, n)
	for i := 0; i < n; i++ {
		assert.Equal(t, i*i, got[i])
	}
	assert.Zero(t, wp.Skipped())
}

func TestWorkerPoolCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	wp := NewWorkerPool[int, int](0, 10)
	assert.ErrorIs(t, wp.Submit(ctx, 1), context.Canceled)

	for i := 0; i < 10; i++ {
		require.NoError(t, wp.Submit(context.Background(), i))
	}
	wp.Close()
	wp.Start(ctx, func(_ context.Context, job int) int {
		return job
	})
	wp.Wait()

	count := 0
	for range wp.CollectResults() {
		count++
	}
	assert.Zero(t, count)
	assert.Equal(t, int64(10), wp.Skipped())
}
