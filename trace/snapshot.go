// Package trace records the steps of a sorting run and publishes
// snapshots of the working array together with the run's counters.
package trace

import (
	"sort"
	"time"
)

// Snapshot is a copy of the observable state of a run at one instant.
type Snapshot struct {
	Values       []int         `json:"values"`
	Comparing    [2]int        `json:"comparing"`
	HasComparing bool          `json:"has_comparing"`
	Sorted       []int         `json:"sorted"`
	Comparisons  int           `json:"comparisons"`
	Swaps        int           `json:"swaps"`
	Writes       int           `json:"writes"`
	Elapsed      time.Duration `json:"elapsed_ns"`
	Complete     bool          `json:"complete"`
}

// ElapsedSeconds returns the elapsed run time in seconds.
func (s Snapshot) ElapsedSeconds() float64 {
	return s.Elapsed.Seconds()
}

// IsSettled reports whether index i is among the settled indices.
func (s Snapshot) IsSettled(i int) bool {
	k := sort.SearchInts(s.Sorted, i)
	return k < len(s.Sorted) && s.Sorted[k] == i
}

// IsComparing reports whether index i is part of the pair that is
// currently being compared.
func (s Snapshot) IsComparing(i int) bool {
	return s.HasComparing && (s.Comparing[0] == i || s.Comparing[1] == i)
}

// Observer receives a snapshot after every recorded step.
type Observer interface {
	OnSnapshot(Snapshot)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Snapshot)

// OnSnapshot calls f(s).
func (f ObserverFunc) OnSnapshot(s Snapshot) {
	f(s)
}

// Cue turns a step into a sound. Implementations must not block.
type Cue interface {
	Play(frequency float64)
}

// CueFunc adapts a function to the Cue interface.
type CueFunc func(frequency float64)

// Play calls f(frequency).
func (f CueFunc) Play(frequency float64) {
	f(frequency)
}

type silence struct{}

func (silence) Play(float64) {}
