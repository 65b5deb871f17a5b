// Package sortbattle races sorting algorithms against each other, one
// comparison at a time, so that their behaviour can be watched and heard.
//
// Every algorithm reports each comparison, swap and assignment it makes,
// and asks for permission before each of them. A run can therefore be
// paced, paused and cancelled between any two steps, and its progress is
// visible as a series of snapshots.
//
// Sortbattle provides the following subpackages:
//
// sortbattle/sort provides step-emitting implementations of ten classic
// sorting algorithms.
//
// sortbattle/trace records the steps of a run as counters, the positions
// under comparison, and the set of positions that hold their final values.
//
// sortbattle/control provides the pacing, pause and cancellation signals
// that algorithms consult between steps.
//
// sortbattle/driver runs one algorithm over a private copy of an initial
// array, and sortbattle/battle runs two drivers over the same array.
//
// sortbattle/generate produces the initial arrays, sortbattle/audio turns
// steps into short tones, and sortbattle/bench measures algorithms without
// delays over many arrays.
//
// sortbattle/tui and the sortbattle command present a battle in the
// terminal.
package sortbattle
