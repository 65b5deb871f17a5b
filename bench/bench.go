/*
Package bench measures sorting algorithms headless: every algorithm
runs without delays over the same series of generated arrays, and the
numbers of comparisons, swaps and writes are summarised per algorithm.

Trials are spread over goroutines in batches, the way the batches of a
parallel range loop are formed.
*/
package bench

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	stdsort "sort"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/exascience/sortbattle/control"
	"github.com/exascience/sortbattle/generate"
	"github.com/exascience/sortbattle/internal"
	"github.com/exascience/sortbattle/sort"
	"github.com/exascience/sortbattle/trace"
)

// ErrUnsorted reports an algorithm that completed without sorting its
// input.
var ErrUnsorted = errors.New("run completed with unsorted output")

// Options configures a benchmark.
type Options struct {
	// Algorithms to measure; all algorithms if empty.
	Algorithms   []sort.ID
	Elements     int
	Distribution generate.Distribution
	Trials       int
	// Seed for the generated arrays; the same seed yields the same
	// arrays for every algorithm and every call.
	Seed int64
	// Batches of trials run in parallel; 0 selects a default.
	Batches int
	Log     *zap.Logger
}

// Summary describes the distribution of one counter over all trials.
type Summary struct {
	Mean   float64
	StdDev float64
	Min    float64
	Median float64
	Max    float64
}

// Result holds the summaries of one algorithm.
type Result struct {
	Algorithm   sort.ID
	Trials      int
	Comparisons Summary
	Swaps       Summary
	Writes      Summary
}

/*
Run measures every requested algorithm over opts.Trials arrays and
returns one result per algorithm, in the order requested.

Run stops early with ctx's error when ctx ends, and with an error
wrapping ErrUnsorted if an algorithm leaves its array unsorted. An
algorithm that panics is reported as an error as well.
*/
func Run(ctx context.Context, opts Options) ([]Result, error) {
	if opts.Trials < 1 {
		return nil, fmt.Errorf("invalid number of trials: %d", opts.Trials)
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	ids := opts.Algorithms
	if len(ids) == 0 {
		ids = sort.IDs()
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	inputs := make([][]int, opts.Trials)
	for i := range inputs {
		a, err := generate.Generate(opts.Elements, opts.Distribution, rng)
		if err != nil {
			return nil, err
		}
		inputs[i] = a
	}

	results := make([]Result, 0, len(ids))
	for _, id := range ids {
		f, err := sort.Lookup(id)
		if err != nil {
			return nil, err
		}
		r, err := measure(ctx, id, f, inputs, opts.Batches)
		if err != nil {
			return nil, err
		}
		log.Debug("algorithm measured",
			zap.Stringer("algorithm", id),
			zap.Int("trials", r.Trials),
			zap.Float64("comparisons", r.Comparisons.Mean),
		)
		results = append(results, r)
	}
	return results, nil
}

// measure runs f over every input. A panic in f is returned as an
// error.
func measure(ctx context.Context, id sort.ID, f sort.Func, inputs [][]int, batches int) (r Result, err error) {
	defer func() {
		if p := recover(); p != nil {
			r, err = Result{}, internal.PanicError(internal.WrapPanic(p))
		}
	}()
	n := len(inputs)
	comparisons := make([]float64, n)
	swaps := make([]float64, n)
	writes := make([]float64, n)

	err = forEachBatch(n, batches, func(low, high int) error {
		for i := low; i < high; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			a := append([]int(nil), inputs[i]...)
			e := trace.NewEmitter(a)
			if !f(a, control.Free{}, e) {
				return fmt.Errorf("%v: trial %d was cancelled", id, i)
			}
			e.Finalize()
			if !sort.IntsAreSorted(a) {
				return fmt.Errorf("%w: %v, trial %d", ErrUnsorted, id, i)
			}
			s := e.Snapshot()
			comparisons[i] = float64(s.Comparisons)
			swaps[i] = float64(s.Swaps)
			writes[i] = float64(s.Writes)
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return Result{
		Algorithm:   id,
		Trials:      n,
		Comparisons: summarize(comparisons),
		Swaps:       summarize(swaps),
		Writes:      summarize(writes),
	}, nil
}

func summarize(x []float64) Summary {
	if len(x) == 0 {
		return Summary{}
	}
	sorted := append([]float64(nil), x...)
	stdsort.Float64s(sorted)
	s := Summary{
		Mean:   stat.Mean(x, nil),
		Min:    floats.Min(x),
		Max:    floats.Max(x),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
	}
	if len(x) > 1 {
		s.StdDev = stat.StdDev(x, nil)
	}
	return s
}
