package bench

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/exascience/sortbattle/generate"
	"github.com/exascience/sortbattle/sort"
)

func TestRunDeterministic(t *testing.T) {
	opts := Options{
		Elements:     30,
		Distribution: generate.Random,
		Trials:       12,
		Seed:         77,
		Batches:      4,
		Log:          zaptest.NewLogger(t),
	}
	first, err := Run(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, first, len(sort.IDs()))
	for i, r := range first {
		assert.Equal(t, sort.IDs()[i], r.Algorithm)
		assert.Equal(t, 12, r.Trials)
		assert.LessOrEqual(t, r.Comparisons.Min, r.Comparisons.Median)
		assert.LessOrEqual(t, r.Comparisons.Median, r.Comparisons.Max)
	}

	opts.Batches = 1
	second, err := Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, first, second, "results do not depend on batching")
}

func TestRunDescendingBubble(t *testing.T) {
	results, err := Run(context.Background(), Options{
		Algorithms:   []sort.ID{sort.Bubble, sort.Selection},
		Elements:     20,
		Distribution: generate.Descending,
		Trials:       3,
	})
	require.NoError(t, err)
	require.Len(t, results, 2)

	bubble := results[0]
	assert.Equal(t, sort.Bubble, bubble.Algorithm)
	assert.Equal(t, Summary{Mean: 190, Min: 190, Median: 190, Max: 190}, bubble.Comparisons)
	assert.Equal(t, Summary{Mean: 190, Min: 190, Median: 190, Max: 190}, bubble.Swaps)
	assert.Zero(t, bubble.Writes.Max)

	selection := results[1]
	assert.Equal(t, 190.0, selection.Comparisons.Mean)
	assert.Equal(t, 10.0, selection.Swaps.Mean)
}

func TestRunErrors(t *testing.T) {
	_, err := Run(context.Background(), Options{Elements: 10, Trials: 0})
	assert.Error(t, err)

	_, err = Run(context.Background(), Options{
		Algorithms: []sort.ID{sort.ID(99)},
		Elements:   10,
		Trials:     1,
	})
	assert.ErrorIs(t, err, sort.ErrUnknownAlgorithm)

	_, err = Run(context.Background(), Options{
		Elements:     10,
		Distribution: generate.Distribution(99),
		Trials:       1,
	})
	assert.ErrorIs(t, err, generate.ErrUnknownDistribution)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Run(ctx, Options{Elements: 10, Trials: 5})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMeasurePanic(t *testing.T) {
	inputs := [][]int{{2, 1}, {3, 1, 2}, {1}, {4, 3}}
	failing := func(a []int, s sort.Suspender, r sort.Recorder) bool {
		if len(a) == 3 {
			panic("comparator exploded")
		}
		return sort.InsertionSort(a, s, r)
	}
	for _, batches := range []int{1, 4} {
		var err error
		assert.NotPanics(t, func() {
			_, err = measure(context.Background(), sort.Insertion, failing, inputs, batches)
		})
		assert.ErrorContains(t, err, "comparator exploded", "%d batches", batches)
	}

	r, err := measure(context.Background(), sort.Insertion, sort.InsertionSort, inputs, 2)
	require.NoError(t, err)
	assert.Equal(t, 4, r.Trials)
}

func TestSummarize(t *testing.T) {
	s := summarize([]float64{4, 1, 3, 2, 5})
	assert.Equal(t, 3.0, s.Mean)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 3.0, s.Median)
	assert.Equal(t, 5.0, s.Max)
	assert.InDelta(t, 1.5811, s.StdDev, 1e-4)

	assert.Equal(t, Summary{Mean: 7, Min: 7, Median: 7, Max: 7}, summarize([]float64{7}))
	assert.Equal(t, Summary{}, summarize(nil))
}

func TestForEachBatch(t *testing.T) {
	for _, batches := range []int{0, 1, 3, 8, 100} {
		var mu sync.Mutex
		seen := make([]int, 50)
		err := forEachBatch(len(seen), batches, func(low, high int) error {
			mu.Lock()
			defer mu.Unlock()
			for i := low; i < high; i++ {
				seen[i]++
			}
			return nil
		})
		require.NoError(t, err)
		for i, n := range seen {
			require.Equal(t, 1, n, "trial %d with %d batches", i, batches)
		}
	}
}

func TestForEachBatchErrors(t *testing.T) {
	errLow := errors.New("low")
	errHigh := errors.New("high")
	err := forEachBatch(10, 2, func(low, high int) error {
		if low == 0 {
			return errLow
		}
		return errHigh
	})
	assert.Equal(t, errLow, err, "the left-most error wins")

	assert.Panics(t, func() {
		_ = forEachBatch(10, 2, func(low, high int) error {
			if low > 0 {
				panic("trial failed")
			}
			return nil
		})
	})
}
