package internal

import (
	"errors"
	"runtime"
	"strings"
	"testing"
)

func TestComputeNofBatches(t *testing.T) {
	for _, tc := range []struct{ trials, n, want int }{
		{0, 0, 1},
		{0, 5, 1},
		{10, 3, 3},
		{3, 10, 3},
		{1000, 0, min(runtime.GOMAXPROCS(0), 1000)},
	} {
		if got := ComputeNofBatches(tc.trials, tc.n); got != tc.want {
			t.Errorf("ComputeNofBatches(%d, %d) = %d, expected %d", tc.trials, tc.n, got, tc.want)
		}
	}

	for _, args := range [][2]int{{-1, 0}, {10, -1}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("ComputeNofBatches(%d, %d) did not panic", args[0], args[1])
				}
			}()
			ComputeNofBatches(args[0], args[1])
		}()
	}
}

func TestWrapPanic(t *testing.T) {
	if WrapPanic(nil) != nil {
		t.Error("WrapPanic(nil) is not nil")
	}
	if PanicError(nil) != nil {
		t.Error("PanicError(nil) is not nil")
	}

	s, ok := WrapPanic("boom").(string)
	if !ok || !strings.HasPrefix(s, "boom\n") {
		t.Errorf("unexpected wrapped string %q", s)
	}
	if err := PanicError(WrapPanic("boom")); err == nil || !strings.HasPrefix(err.Error(), "boom") {
		t.Errorf("unexpected error %v", err)
	}

	err := PanicError(WrapPanic(errors.New("failed")))
	if err == nil || !strings.HasPrefix(err.Error(), "failed") {
		t.Errorf("unexpected error %v", err)
	}

	var a []int
	func() {
		defer func() {
			p := WrapPanic(recover())
			if _, ok := p.(runtime.Error); !ok {
				t.Errorf("a wrapped runtime error is not a runtime.Error: %T", p)
			}
		}()
		_ = a[1]
	}()
}
