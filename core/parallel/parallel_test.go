package parallel

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunksCoverRange(t *testing.T) {
	for _, tc := range []struct{ items, workers int }{
		{1, 4}, {7, 3}, {10, 10}, {1001, 8}, {5, 0},
	} {
		t.Run(fmt.Sprintf("%d/%d", tc.items, tc.workers), func(t *testing.T) {
			chunks := Chunks(tc.items, tc.workers)
			require.NotEmpty(t, chunks)
			next := 0
			for _, c := range chunks {
				assert.Equal(t, next, c[0])
				assert.Greater(t, c[1], c[0])
				next = c[1]
			}
			assert.Equal(t, tc.items, next)
		})
	}
	assert.Nil(t, Chunks(0, 4))
}

func TestRunVisitsEveryItem(t *testing.T) {
	const n = 5000
	seen := make([]int32, n)
	require.NoError(t, Run(n, 0, func(start, end int) error {
		for i := start; i < end; i++ {
			atomic.AddInt32(&seen[i], 1)
		}
		return nil
	}))
	for i, v := range seen {
		require.Equal(t, int32(1), v, "item %d", i)
	}
}

func TestRunBelowThresholdIsSequential(t *testing.T) {
	calls := 0
	err := Run(10, DefaultThreshold, func(start, end int) error {
		calls++
		assert.Equal(t, 0, start)
		assert.Equal(t, 10, end)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRunReturnsFirstRangeError(t *testing.T) {
	err := Run(4000, 1, func(start, end int) error {
		if start > 0 {
			return fmt.Errorf("row %d", start)
		}
		return nil
	})
	if err == nil {
		// Only one CPU: a single chunk starting at 0.
		assert.Len(t, Chunks(4000, 0), 1)
		return
	}
	assert.Equal(t, fmt.Sprintf("row %d", Chunks(4000, 0)[1][0]), err.Error())
}
