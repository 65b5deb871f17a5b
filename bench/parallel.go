package bench

import (
	"fmt"
	"sync"

	"github.com/exascience/sortbattle/internal"
)

// forEachBatch divides the trials 0..trials into n batches and invokes
// f for each batch in parallel, covering the half-open interval from
// low to high. If n is 0, a default is used that takes
// runtime.GOMAXPROCS(0) into account.
//
// forEachBatch returns only when all batches have terminated,
// returning the left-most error value that is different from nil. If
// one or more batches panic, forEachBatch eventually panics with the
// left-most recovered panic value.
func forEachBatch(trials, n int, f func(low, high int) error) error {
	var recur func(int, int, int) error
	recur = func(low, high, n int) (err error) {
		switch {
		case n == 1:
			return f(low, high)
		case n > 1:
			batchSize := ((high - low - 1) / n) + 1
			half := n / 2
			mid := low + batchSize*half
			if mid >= high {
				return f(low, high)
			}
			var err0, err1 error
			var p interface{}
			var wg sync.WaitGroup
			wg.Add(1)
			go func() {
				defer func() {
					p = internal.WrapPanic(recover())
					wg.Done()
				}()
				err1 = recur(mid, high, n-half)
			}()
			err0 = recur(low, mid, half)
			wg.Wait()
			if p != nil {
				panic(p)
			}
			if err0 != nil {
				err = err0
			} else {
				err = err1
			}
			return
		default:
			panic(fmt.Sprintf("invalid number of batches: %v", n))
		}
	}
	return recur(0, trials, internal.ComputeNofBatches(trials, n))
}
