/*
Package driver runs one sorting algorithm over one working array from
start to completion or cancellation.

A Driver owns its working array and its trace: it clones the initial
array it was given, runs the algorithm on its own goroutine, and
finalises the trace only if the algorithm ran to completion. Two
drivers never share a working array, so any number of them may run
side by side.
*/
package driver

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/exascience/sortbattle/audio"
	"github.com/exascience/sortbattle/control"
	"github.com/exascience/sortbattle/internal"
	"github.com/exascience/sortbattle/sort"
	"github.com/exascience/sortbattle/trace"
)

type phase int

const (
	idle phase = iota
	active
	stopped
	finished
)

var closed = func() chan struct{} {
	c := make(chan struct{})
	close(c)
	return c
}()

// Driver runs one algorithm over a private copy of an initial array.
type Driver struct {
	id        sort.ID
	sortFunc  sort.Func
	log       *zap.Logger
	cue       trace.Cue
	observers []trace.Observer
	signals   *control.Signals
	sleep     control.Sleeper
	now       func() time.Time

	// ctl serialises Start, Stop, Reset and Close.
	ctl sync.Mutex

	mu      sync.Mutex
	initial []int
	working []int
	emitter *trace.Emitter
	phase   phase
	runID   string
	cancel  context.CancelFunc
	done    chan struct{}
	err     error
}

// Option configures a Driver.
type Option func(*Driver)

// WithLogger sets the logger for run lifecycle events.
func WithLogger(log *zap.Logger) Option {
	return func(d *Driver) {
		if log != nil {
			d.log = log
		}
	}
}

// WithCue sets the cue played for every step. The cue is only played
// while the driver's sound signal is on.
func WithCue(cue trace.Cue) Option {
	return func(d *Driver) {
		d.cue = cue
	}
}

// WithObserver adds an observer that receives every snapshot of every
// run of the driver.
func WithObserver(o trace.Observer) Option {
	return func(d *Driver) {
		if o != nil {
			d.observers = append(d.observers, o)
		}
	}
}

// WithSignals sets the signals of the driver, for instance to preset
// speed and sound. By default a driver has its own signals with no
// delay and sound off.
func WithSignals(s *control.Signals) Option {
	return func(d *Driver) {
		if s != nil {
			d.signals = s
		}
	}
}

// WithSleeper replaces the sleeper used for pacing and pause polling.
func WithSleeper(sleep control.Sleeper) Option {
	return func(d *Driver) {
		d.sleep = sleep
	}
}

// WithClock sets the clock used to measure elapsed time.
func WithClock(now func() time.Time) Option {
	return func(d *Driver) {
		if now != nil {
			d.now = now
		}
	}
}

// New creates a driver for the algorithm with the given id. The
// initial array is copied; the driver never modifies it.
func New(id sort.ID, initial []int, opts ...Option) (*Driver, error) {
	f, err := sort.Lookup(id)
	if err != nil {
		return nil, err
	}
	d := &Driver{
		id:       id,
		sortFunc: f,
		log:      zap.NewNop(),
		now:      time.Now,
		initial:  clone(initial),
		done:     closed,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.signals == nil {
		d.signals = control.NewSignals(0, false)
	}
	d.working, d.emitter = d.newEmitter()
	return d, nil
}

func clone(a []int) []int {
	return append([]int(nil), a...)
}

// newEmitter builds a fresh working array and the emitter that owns its
// mutations.
func (d *Driver) newEmitter() ([]int, *trace.Emitter) {
	opts := []trace.Option{trace.WithClock(d.now)}
	if d.cue != nil {
		opts = append(opts, trace.WithCue(audio.Gated(d.cue, d.signals)))
	}
	for _, o := range d.observers {
		opts = append(opts, trace.WithObserver(o))
	}
	working := clone(d.initial)
	return working, trace.NewEmitter(working, opts...)
}

// Algorithm returns the id of the algorithm the driver runs.
func (d *Driver) Algorithm() sort.ID {
	return d.id
}

// Signals returns the signals of the driver.
func (d *Driver) Signals() *control.Signals {
	return d.signals
}

/*
Start starts a run over a fresh copy of the initial array.

If a run is already active, Start only clears the pause signal. After a
run has completed or was stopped, Start does nothing until the driver
is Reset.
*/
func (d *Driver) Start(ctx context.Context) {
	d.ctl.Lock()
	defer d.ctl.Unlock()
	d.mu.Lock()
	defer d.mu.Unlock()

	switch d.phase {
	case active:
		d.signals.SetPaused(false)
		return
	case stopped, finished:
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.runID = uuid.NewString()
	d.cancel = cancel
	d.done = make(chan struct{})
	d.err = nil
	d.phase = active
	d.signals.SetPaused(false)
	d.signals.SetRunning(true)
	d.emitter.Begin(d.now())
	go d.run(runCtx, cancel, d.working, d.emitter, d.done, d.runID)
}

func (d *Driver) run(
	ctx context.Context, cancel context.CancelFunc,
	a []int, e *trace.Emitter, done chan struct{}, runID string,
) {
	log := d.log.With(zap.String("run", runID), zap.Stringer("algorithm", d.id))
	next := stopped
	var err error
	defer func() {
		cancel()
		if p := recover(); p != nil {
			err = internal.PanicError(internal.WrapPanic(p))
			log.Error("run failed", zap.Error(err))
			next = stopped
		}
		d.mu.Lock()
		if d.emitter == e {
			d.phase = next
			d.err = err
		}
		d.mu.Unlock()
		close(done)
	}()

	log.Debug("run started", zap.Int("elements", len(a)))
	ctrl := control.NewController(ctx, d.signals, d.sleep)
	if !d.sortFunc(a, ctrl, e) {
		logSnapshot(log, "run cancelled", e.Snapshot())
		return
	}
	e.Finalize()
	next = finished
	logSnapshot(log, "run complete", e.Snapshot())
}

func logSnapshot(log *zap.Logger, msg string, s trace.Snapshot) {
	log.Info(msg,
		zap.Int("comparisons", s.Comparisons),
		zap.Int("swaps", s.Swaps),
		zap.Int("writes", s.Writes),
		zap.Duration("elapsed", s.Elapsed),
	)
}

// Pause suspends the current run before its next step. All state is
// preserved.
func (d *Driver) Pause() {
	d.signals.SetPaused(true)
}

// Resume continues a paused run.
func (d *Driver) Resume() {
	d.signals.SetPaused(false)
}

// Paused reports whether the pause signal is set.
func (d *Driver) Paused() bool {
	return d.signals.Paused()
}

/*
Stop cancels the current run. The run stops before its next step, and
its working array and trace stay frozen in their last state. Stop does
not wait for the run goroutine to exit; use Wait for that.
*/
func (d *Driver) Stop() {
	d.ctl.Lock()
	defer d.ctl.Unlock()
	d.stop()
}

func (d *Driver) stop() chan struct{} {
	d.signals.SetRunning(false)
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		d.cancel()
	}
	return d.done
}

/*
Reset cancels the current run, if any, waits for it to exit, and
rebuilds the working array and trace from initial. A nil initial array
keeps the previous one. Reset may be called any number of times.
*/
func (d *Driver) Reset(initial []int) {
	d.ctl.Lock()
	defer d.ctl.Unlock()
	<-d.stop()

	d.mu.Lock()
	defer d.mu.Unlock()
	if initial != nil {
		d.initial = clone(initial)
	}
	d.working, d.emitter = d.newEmitter()
	d.phase = idle
	d.runID = ""
	d.cancel = nil
	d.done = closed
	d.err = nil
	d.signals.SetPaused(false)
}

// Close cancels the current run and waits for it to exit.
func (d *Driver) Close() {
	d.ctl.Lock()
	defer d.ctl.Unlock()
	<-d.stop()
}

// Snapshot returns the current state of the run.
func (d *Driver) Snapshot() trace.Snapshot {
	d.mu.Lock()
	e := d.emitter
	d.mu.Unlock()
	return e.Snapshot()
}

// Active reports whether a run is in progress, paused or not.
func (d *Driver) Active() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.phase == active
}

// RunID returns the id of the current run, or "" before the first
// Start after a reset.
func (d *Driver) RunID() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.runID
}

// Done returns a channel that is closed when the current run has
// exited. Without a run, the channel is already closed.
func (d *Driver) Done() <-chan struct{} {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.done
}

/*
Wait waits for the current run to exit. A cancelled run is not an
error; Wait only returns an error if ctx ends first, or if the
algorithm panicked.
*/
func (d *Driver) Wait(ctx context.Context) error {
	select {
	case <-d.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}
