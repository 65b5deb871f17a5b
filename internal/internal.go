// Package internal holds helpers shared by the run driver and the bench.
package internal

import (
	"errors"
	"fmt"
	"runtime"
	"runtime/debug"
)

// ComputeNofBatches divides a number of trials into batches for
// concurrent execution. If n is 0, a default is used that takes
// runtime.GOMAXPROCS(0) into account. There are never more batches than
// trials, and never fewer than one.
func ComputeNofBatches(trials, n int) (batches int) {
	switch {
	case trials < 0:
		panic(fmt.Sprintf("invalid number of trials: %v", trials))
	case trials == 0:
		return 1
	}
	switch {
	case n == 0:
		batches = runtime.GOMAXPROCS(0)
	case n > 0:
		batches = n
	default:
		panic(fmt.Sprintf("invalid number of batches: %v", n))
	}
	if batches > trials {
		batches = trials
	}
	return
}

type runtimeError struct{ error }

func (runtimeError) RuntimeError() {}

// WrapPanic adds stack trace information to a panic recovered from a
// run or trial goroutine.
func WrapPanic(p interface{}) interface{} {
	if p != nil {
		s := fmt.Sprintf("%v\n%s\nrethrown at", p, debug.Stack())
		if _, isError := p.(error); isError {
			r := errors.New(s)
			if _, isRuntimeError := p.(runtime.Error); isRuntimeError {
				return runtimeError{r}
			}
			return r
		}
		return s
	}
	return nil
}

// PanicError converts a value returned by WrapPanic into an error.
func PanicError(p interface{}) error {
	switch p := p.(type) {
	case nil:
		return nil
	case error:
		return p
	default:
		return fmt.Errorf("%v", p)
	}
}
