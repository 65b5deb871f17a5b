/*
Package control implements the suspension side of a sorting run: the
signals a user flips (running, paused, speed, sound) and the
controllers that algorithms consult before every step.

Algorithms never see the signals directly. They only receive a
suspender (see package sort), which is the sole point where a run can
be paused, slowed down or cancelled.
*/
package control

import (
	"context"
	"sync/atomic"
	"time"
)

// minPoll is the shortest interval at which a paused run re-checks its
// signals.
const minPoll = time.Millisecond

/*
Signals holds the control signals of one run. Each signal is written by
the boundary (user interaction) and only read by the run, so plain
atomic loads and stores are sufficient.
*/
type Signals struct {
	running atomic.Bool
	paused  atomic.Bool
	sound   atomic.Bool
	speed   atomic.Int64
}

// NewSignals returns signals with the given step delay in milliseconds
// and sound setting. The run is neither running nor paused.
func NewSignals(speedMs int, sound bool) *Signals {
	s := new(Signals)
	s.SetSpeed(speedMs)
	s.SetSoundOn(sound)
	return s
}

// Running reports whether a run may proceed. A run that observes
// false stops at its next step.
func (s *Signals) Running() bool { return s.running.Load() }

// Paused reports whether a running run is held between steps.
func (s *Signals) Paused() bool { return s.paused.Load() }

// SoundOn reports whether steps produce audio cues.
func (s *Signals) SoundOn() bool { return s.sound.Load() }

// SpeedMs returns the step delay in milliseconds.
func (s *Signals) SpeedMs() int { return int(s.speed.Load()) }

// Speed returns the step delay.
func (s *Signals) Speed() time.Duration {
	return time.Duration(s.speed.Load()) * time.Millisecond
}

// SetRunning sets the running signal. Setting it to false cancels the
// runs that read these signals.
func (s *Signals) SetRunning(v bool) { s.running.Store(v) }

// SetPaused sets the paused signal; it takes effect before the next
// step.
func (s *Signals) SetPaused(v bool) { s.paused.Store(v) }

// SetSoundOn switches audio cues on or off.
func (s *Signals) SetSoundOn(v bool) { s.sound.Store(v) }

// SetSpeed sets the step delay in milliseconds. Negative values are
// treated as 0, which disables the delay.
func (s *Signals) SetSpeed(ms int) {
	s.speed.Store(int64(max(ms, 0)))
}

// A Sleeper waits for d, or until ctx is done, whichever comes first.
type Sleeper func(ctx context.Context, d time.Duration)

// Sleep is the default Sleeper, backed by a timer.
func Sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

/*
Controller is the suspender that drives interactive runs. It samples
the signals of its run before every step and paces steps according to
the configured speed.

A Controller exposes no way to change the signals; it only reads them.
*/
type Controller struct {
	ctx     context.Context
	signals *Signals
	sleep   Sleeper
}

// NewController creates a controller for a run with the given signals.
// Cancelling ctx has the same effect as clearing the running signal.
// A nil sleeper selects Sleep.
func NewController(ctx context.Context, signals *Signals, sleep Sleeper) *Controller {
	if sleep == nil {
		sleep = Sleep
	}
	return &Controller{ctx: ctx, signals: signals, sleep: sleep}
}

/*
Proceed implements the method of the sort.Suspender interface.

It returns false as soon as the run is no longer running. While the run
is paused, it sleeps for the current speed (at least a millisecond) and
checks again.
*/
func (c *Controller) Proceed() bool {
	for {
		if !c.signals.Running() || c.ctx.Err() != nil {
			return false
		}
		if !c.signals.Paused() {
			return true
		}
		c.sleep(c.ctx, max(c.signals.Speed(), minPoll))
	}
}

// Pace implements the method of the sort.Suspender interface.
func (c *Controller) Pace() {
	if d := c.signals.Speed(); d > 0 {
		c.sleep(c.ctx, d)
	}
}

// Free is a suspender that never pauses, never delays and never
// cancels. It is used for headless runs.
type Free struct{}

func (Free) Proceed() bool { return true }
func (Free) Pace()         {}
