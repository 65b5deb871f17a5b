package trace

import (
	"encoding/json"
	"io"
	"sync"
)

// Log is an Observer that keeps every snapshot in memory.
type Log struct {
	mu        sync.Mutex
	snapshots []Snapshot
}

// OnSnapshot implements the method of the Observer interface.
func (l *Log) OnSnapshot(s Snapshot) {
	l.mu.Lock()
	l.snapshots = append(l.snapshots, s)
	l.mu.Unlock()
}

// Snapshots returns the snapshots recorded so far.
func (l *Log) Snapshots() []Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Snapshot(nil), l.snapshots...)
}

// Len returns the number of snapshots recorded so far.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.snapshots)
}

// Last returns the most recent snapshot, if any.
func (l *Log) Last() (Snapshot, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.snapshots) == 0 {
		return Snapshot{}, false
	}
	return l.snapshots[len(l.snapshots)-1], true
}

// Record is one line of the output of a JSONWriter. The elapsed time
// is written both in nanoseconds and in seconds.
type Record struct {
	Label     string  `json:"label"`
	Algorithm string  `json:"algorithm"`
	Seconds   float64 `json:"elapsed_seconds"`
	Snapshot
}

/*
JSONWriter is an Observer that writes every snapshot as one line of
JSON to an io.Writer, labelled with the name of the panel and the
algorithm that produced it. Several
emitters may share one JSONWriter.

The first write error is retained and returned by Err; subsequent
snapshots are dropped.
*/
type JSONWriter struct {
	mu  sync.Mutex
	enc *json.Encoder
	err error
}

// NewJSONWriter creates a JSONWriter that writes to w.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{enc: json.NewEncoder(w)}
}

// For returns an Observer that labels snapshots with the given label
// and algorithm.
func (w *JSONWriter) For(label, algorithm string) Observer {
	return ObserverFunc(func(s Snapshot) {
		w.write(Record{Label: label, Algorithm: algorithm, Seconds: s.ElapsedSeconds(), Snapshot: s})
	})
}

func (w *JSONWriter) write(r Record) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return
	}
	w.err = w.enc.Encode(r)
}

// Err returns the first error encountered while writing.
func (w *JSONWriter) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}
