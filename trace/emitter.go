package trace

import (
	"sync"
	"time"
)

// Frequencies of the audio cues: a base tone plus a step per unit of
// value.
const (
	compareBase = 300
	swapBase    = 200
	toneStep    = 10
)

/*
Emitter implements the Recorder of package sort on top of a working
array. It performs the mutations that are reported to it, keeps the
run's counters and settled indices, triggers an audio cue per step and
publishes a snapshot to its observers after every step.

An Emitter is written by the goroutine of a single run, but its
Snapshot method may be called concurrently from any goroutine.
*/
type Emitter struct {
	mu sync.Mutex

	values       []int
	settled      []bool
	nSettled     int
	comparing    [2]int
	hasComparing bool
	comparisons  int
	swaps        int
	writes       int
	start        time.Time
	elapsed      time.Duration
	complete     bool

	now       func() time.Time
	cue       Cue
	observers []Observer
}

// Option configures an Emitter.
type Option func(*Emitter)

// WithClock sets the clock used to sample elapsed time.
func WithClock(now func() time.Time) Option {
	return func(e *Emitter) {
		e.now = now
	}
}

// WithCue sets the cue that is played for every step.
func WithCue(cue Cue) Option {
	return func(e *Emitter) {
		if cue != nil {
			e.cue = cue
		}
	}
}

// WithObserver adds an observer that receives a snapshot after every
// step.
func WithObserver(o Observer) Option {
	return func(e *Emitter) {
		if o != nil {
			e.observers = append(e.observers, o)
		}
	}
}

// NewEmitter creates an emitter for the given working array. The
// emitter mutates values in place.
func NewEmitter(values []int, opts ...Option) *Emitter {
	e := &Emitter{
		values:  values,
		settled: make([]bool, len(values)),
		now:     time.Now,
		cue:     silence{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Begin marks the start of the run. Elapsed time is measured from t.
func (e *Emitter) Begin(t time.Time) {
	e.mu.Lock()
	e.start = t
	e.elapsed = 0
	e.mu.Unlock()
}

// sample recomputes the elapsed time; it never decreases.
func (e *Emitter) sample() {
	if e.start.IsZero() {
		return
	}
	if d := e.now().Sub(e.start); d > e.elapsed {
		e.elapsed = d
	}
}

// Compare implements the method of the sort.Recorder interface.
func (e *Emitter) Compare(i, j int) {
	e.mu.Lock()
	e.comparing = [2]int{i, j}
	e.hasComparing = true
	e.comparisons++
	freq := tone(compareBase, max(e.values[i], e.values[j]))
	e.sample()
	e.mu.Unlock()
	e.cue.Play(freq)
	e.publish()
}

// Swap implements the method of the sort.Recorder interface.
func (e *Emitter) Swap(i, j int) {
	e.mu.Lock()
	e.values[i], e.values[j] = e.values[j], e.values[i]
	e.swaps++
	freq := tone(swapBase, e.values[i])
	e.sample()
	e.mu.Unlock()
	e.cue.Play(freq)
	e.publish()
}

// Assign implements the method of the sort.Recorder interface.
func (e *Emitter) Assign(i, v int) {
	e.mu.Lock()
	e.values[i] = v
	e.writes++
	e.sample()
	e.mu.Unlock()
	e.cue.Play(tone(compareBase, v))
	e.publish()
}

// Probe implements the method of the sort.Recorder interface. A probe
// counts as a comparison.
func (e *Emitter) Probe(i int) {
	e.mu.Lock()
	e.comparing = [2]int{i, i}
	e.hasComparing = true
	e.comparisons++
	freq := tone(compareBase, e.values[i])
	e.sample()
	e.mu.Unlock()
	e.cue.Play(freq)
	e.publish()
}

// Settle implements the method of the sort.Recorder interface. Indices
// outside the working array are ignored.
func (e *Emitter) Settle(indices ...int) {
	e.mu.Lock()
	changed := e.settle(indices...)
	e.mu.Unlock()
	if changed {
		e.publish()
	}
}

func (e *Emitter) settle(indices ...int) (changed bool) {
	for _, i := range indices {
		if i < 0 || i >= len(e.settled) || e.settled[i] {
			continue
		}
		e.settled[i] = true
		e.nSettled++
		changed = true
	}
	return
}

/*
Finalize completes the run: every index is settled, the compared pair
is cleared, the run is flagged complete and elapsed time is sampled a
last time. Finalize must only be called when the algorithm ran to
completion.
*/
func (e *Emitter) Finalize() {
	e.mu.Lock()
	for i := range e.settled {
		e.settled[i] = true
	}
	e.nSettled = len(e.settled)
	e.hasComparing = false
	e.complete = true
	e.sample()
	e.mu.Unlock()
	e.publish()
}

// Snapshot returns a copy of the current state.
func (e *Emitter) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot()
}

func (e *Emitter) snapshot() Snapshot {
	s := Snapshot{
		Values:       append([]int(nil), e.values...),
		HasComparing: e.hasComparing,
		Sorted:       make([]int, 0, e.nSettled),
		Comparisons:  e.comparisons,
		Swaps:        e.swaps,
		Writes:       e.writes,
		Elapsed:      e.elapsed,
		Complete:     e.complete,
	}
	if e.hasComparing {
		s.Comparing = e.comparing
	}
	for i, ok := range e.settled {
		if ok {
			s.Sorted = append(s.Sorted, i)
		}
	}
	return s
}

func (e *Emitter) publish() {
	if len(e.observers) == 0 {
		return
	}
	s := e.Snapshot()
	for _, o := range e.observers {
		o.OnSnapshot(s)
	}
}

func tone(base, value int) float64 {
	return float64(base + value*toneStep)
}
