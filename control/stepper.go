package control

import (
	"sync"
	"sync/atomic"
)

/*
Stepper is a suspender that lets a caller advance a run one step at a
time. The run blocks in Proceed until a step is granted with Step, and
Step only returns once the granted step has been recorded, so the
caller can inspect the state of the run between steps without any
timing assumptions.
*/
type Stepper struct {
	grants chan struct{}
	acks   chan struct{}
	done   chan struct{}
	once   sync.Once
	taken  atomic.Int64
}

// NewStepper returns a stepper that has not granted any steps yet.
func NewStepper() *Stepper {
	return &Stepper{
		grants: make(chan struct{}),
		acks:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Proceed implements the method of the sort.Suspender interface.
func (s *Stepper) Proceed() bool {
	select {
	case <-s.done:
		return false
	case <-s.grants:
	}
	select {
	case <-s.done:
		return false
	default:
	}
	s.taken.Add(1)
	return true
}

// Pace implements the method of the sort.Suspender interface. It
// acknowledges the step that was just recorded.
func (s *Stepper) Pace() {
	select {
	case s.acks <- struct{}{}:
	case <-s.done:
	}
}

// Step grants up to n steps and returns the number of steps that were
// completed. It returns early if the stepper is cancelled.
func (s *Stepper) Step(n int) int {
	for i := 0; i < n; i++ {
		select {
		case s.grants <- struct{}{}:
		case <-s.done:
			return i
		}
		select {
		case <-s.acks:
		case <-s.done:
			return i
		}
	}
	return n
}

// Taken returns the number of steps that were granted and taken.
func (s *Stepper) Taken() int {
	return int(s.taken.Load())
}

// Cancel makes every pending and future Proceed return false.
func (s *Stepper) Cancel() {
	s.once.Do(func() { close(s.done) })
}
