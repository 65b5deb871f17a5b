/*
Package battle races two sorting algorithms over the same initial
array.

A Battle owns one initial array and two drivers. The drivers run
independently on their own goroutines and never share a working array;
the battle only fans the user's commands out to both of them.
*/
package battle

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/exascience/sortbattle/config"
	"github.com/exascience/sortbattle/control"
	"github.com/exascience/sortbattle/driver"
	"github.com/exascience/sortbattle/generate"
	"github.com/exascience/sortbattle/sort"
	"github.com/exascience/sortbattle/trace"
)

// Side names one of the two panels of a battle.
type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

// Battle runs two drivers over one initial array.
type Battle struct {
	elements     int
	distribution generate.Distribution
	log          *zap.Logger
	cue          trace.Cue
	observe      func(Side, sort.ID) trace.Observer
	sleep        control.Sleeper

	mu      sync.Mutex
	rng     *rand.Rand
	initial []int
	drivers [2]*driver.Driver
	signals [2]*control.Signals
}

// Option configures a Battle.
type Option func(*Battle)

// WithLogger sets the logger of the battle and its drivers.
func WithLogger(log *zap.Logger) Option {
	return func(b *Battle) {
		if log != nil {
			b.log = log
		}
	}
}

// WithCue sets the cue that both drivers play while sound is on.
func WithCue(cue trace.Cue) Option {
	return func(b *Battle) {
		b.cue = cue
	}
}

// WithObserver installs an observer per side, created by f.
func WithObserver(f func(Side, sort.ID) trace.Observer) Option {
	return func(b *Battle) {
		b.observe = f
	}
}

// WithSleeper replaces the sleeper of both drivers.
func WithSleeper(sleep control.Sleeper) Option {
	return func(b *Battle) {
		b.sleep = sleep
	}
}

/*
New validates cfg, generates the initial array and creates both
drivers. Invalid settings are rejected before any run exists; the
returned error then wraps config.ErrInvalidConfiguration.

A zero cfg.Seed seeds the generator from the current time.
*/
func New(cfg *config.Config, opts ...Option) (*Battle, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	left, right, err := cfg.Algorithms()
	if err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	b := &Battle{
		elements:     cfg.Elements,
		distribution: cfg.Distribution,
		log:          zap.NewNop(),
		rng:          rand.New(rand.NewSource(seed)),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.initial, err = generate.Generate(b.elements, b.distribution, b.rng); err != nil {
		return nil, err
	}
	for i, id := range [2]sort.ID{left, right} {
		side := Side(i)
		b.signals[i] = control.NewSignals(cfg.SpeedMs, cfg.Sound)
		dopts := []driver.Option{
			driver.WithLogger(b.log.With(zap.Stringer("side", side))),
			driver.WithSignals(b.signals[i]),
			driver.WithSleeper(b.sleep),
		}
		if b.cue != nil {
			dopts = append(dopts, driver.WithCue(b.cue))
		}
		if b.observe != nil {
			dopts = append(dopts, driver.WithObserver(b.observe(side, id)))
		}
		if b.drivers[i], err = driver.New(id, b.initial, dopts...); err != nil {
			return nil, err
		}
	}
	b.log.Info("battle created",
		zap.Stringer("left", left),
		zap.Stringer("right", right),
		zap.Int("elements", b.elements),
		zap.Stringer("distribution", b.distribution),
		zap.Int64("seed", seed),
	)
	return b, nil
}

// Driver returns the driver of one side.
func (b *Battle) Driver(side Side) *driver.Driver {
	return b.drivers[side]
}

// Initial returns a copy of the current initial array.
func (b *Battle) Initial() []int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]int(nil), b.initial...)
}

// Start starts both runs, or resumes them if they are already active.
func (b *Battle) Start(ctx context.Context) {
	for _, d := range b.drivers {
		d.Start(ctx)
	}
}

// Pause pauses both runs.
func (b *Battle) Pause() {
	for _, d := range b.drivers {
		d.Pause()
	}
}

// Resume resumes both runs.
func (b *Battle) Resume() {
	for _, d := range b.drivers {
		d.Resume()
	}
}

// Paused reports whether the battle is paused.
func (b *Battle) Paused() bool {
	return b.signals[Left].Paused()
}

// TogglePause pauses a running battle and resumes a paused one.
func (b *Battle) TogglePause() {
	if b.Paused() {
		b.Resume()
	} else {
		b.Pause()
	}
}

// Active reports whether either run is in progress.
func (b *Battle) Active() bool {
	return b.drivers[Left].Active() || b.drivers[Right].Active()
}

// Complete reports whether both runs have completed.
func (b *Battle) Complete() bool {
	l, r := b.Snapshots()
	return l.Complete && r.Complete
}

// SetSpeed sets the step delay of both runs, clamped to the supported
// range.
func (b *Battle) SetSpeed(ms int) {
	ms = min(max(ms, config.MinSpeedMs), config.MaxSpeedMs)
	for _, s := range b.signals {
		s.SetSpeed(ms)
	}
}

// Speed returns the step delay in milliseconds.
func (b *Battle) Speed() int {
	return b.signals[Left].SpeedMs()
}

// SetSound switches sound on or off for both runs.
func (b *Battle) SetSound(on bool) {
	for _, s := range b.signals {
		s.SetSoundOn(on)
	}
}

// Sound reports whether sound is on.
func (b *Battle) Sound() bool {
	return b.signals[Left].SoundOn()
}

/*
Reset cancels both runs, generates a fresh initial array from the
configured distribution and rebuilds both drivers from it.
*/
func (b *Battle) Reset() error {
	b.mu.Lock()
	initial, err := generate.Generate(b.elements, b.distribution, b.rng)
	if err != nil {
		b.mu.Unlock()
		return err
	}
	b.initial = initial
	b.mu.Unlock()

	for _, d := range b.drivers {
		d.Reset(initial)
	}
	b.log.Debug("battle reset")
	return nil
}

// Snapshots returns the current state of both runs.
func (b *Battle) Snapshots() (left, right trace.Snapshot) {
	return b.drivers[Left].Snapshot(), b.drivers[Right].Snapshot()
}

// Wait waits until both runs have exited.
func (b *Battle) Wait(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, d := range b.drivers {
		d := d
		g.Go(func() error { return d.Wait(gctx) })
	}
	return g.Wait()
}

// Close cancels both runs and waits for them to exit.
func (b *Battle) Close() {
	for _, d := range b.drivers {
		d.Close()
	}
}
