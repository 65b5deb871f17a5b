/*
Package sort provides step-emitting implementations of classic sorting
algorithms.

Each algorithm sorts a slice of ints in increasing order, but instead
of just sorting, it reports every comparison, swap and assignment to a
Recorder, and consults a Suspender before every such step. This makes
a run observable, pausable and cancelable at the granularity of single
comparisons.
*/
package sort

import (
	"errors"
	"fmt"
	"strings"
)

/*
Suspender is consulted by an algorithm around every observable step.

Proceed is called immediately before a comparison, swap or assignment.
It may block while the run is paused, and it reports false when the
run has been cancelled, in which case the algorithm must return
without touching the slice again.

Pace is called after a step has been recorded and implements the
inter-step delay.
*/
type Suspender interface {
	Proceed() bool
	Pace()
}

/*
Recorder receives the steps of an algorithm. The Recorder owns the
mutations of the slice that is being sorted: Swap and Assign must
update the slice that was handed to the algorithm, which only ever
reads from it directly.
*/
type Recorder interface {
	// Compare reports that the elements with index i and j are being
	// compared.
	Compare(i, j int)

	// Swap exchanges the elements with index i and j.
	Swap(i, j int)

	// Assign stores value v at index i.
	Assign(i, v int)

	// Probe reports that the key of the element with index i is being
	// examined, for algorithms that do not compare elements pairwise.
	Probe(i int)

	// Settle reports that the given indices hold their final values.
	Settle(indices ...int)
}

/*
Func is the signature shared by all algorithms in this package. It
sorts a in place, routing every step through s and r, and reports
whether it ran to completion. A false return value means the run was
cancelled through s.
*/
type Func func(a []int, s Suspender, r Recorder) bool

// ID identifies one of the algorithms of this package.
type ID int

const (
	Bubble ID = iota
	Quick
	Merge
	Heap
	Insertion
	Selection
	Shell
	Tim
	Radix
	Counting
)

var names = [...]string{
	Bubble:    "Bubble Sort",
	Quick:     "Quick Sort",
	Merge:     "Merge Sort",
	Heap:      "Heap Sort",
	Insertion: "Insertion Sort",
	Selection: "Selection Sort",
	Shell:     "Shell Sort",
	Tim:       "Tim Sort",
	Radix:     "Radix Sort",
	Counting:  "Counting Sort",
}

var funcs = [...]Func{
	Bubble:    BubbleSort,
	Quick:     QuickSort,
	Merge:     MergeSort,
	Heap:      HeapSort,
	Insertion: InsertionSort,
	Selection: SelectionSort,
	Shell:     ShellSort,
	Tim:       TimSort,
	Radix:     RadixSort,
	Counting:  CountingSort,
}

// ErrUnknownAlgorithm is returned for algorithm names and ids that
// this package does not implement.
var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// IDs returns all algorithm ids in the order they are presented to
// users.
func IDs() []ID {
	ids := make([]ID, len(names))
	for i := range ids {
		ids[i] = ID(i)
	}
	return ids
}

func (id ID) valid() bool {
	return id >= 0 && int(id) < len(names)
}

func (id ID) String() string {
	if !id.valid() {
		return fmt.Sprintf("ID(%d)", int(id))
	}
	return names[id]
}

// Slug returns the short lower-case name of the algorithm, such as
// "bubble" for Bubble Sort.
func (id ID) Slug() string {
	return strings.ToLower(strings.TrimSuffix(id.String(), " Sort"))
}

/*
Parse returns the algorithm with the given name. It accepts display
names ("Quick Sort"), short names ("quick") and dashed names
("quick-sort"), ignoring case.
*/
func Parse(name string) (ID, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, "-", " ")
	key = strings.ReplaceAll(key, "_", " ")
	key = strings.TrimSuffix(key, " sort")
	for i := range names {
		if ID(i).Slug() == key {
			return ID(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// Lookup returns the implementation of the algorithm with the given id.
func Lookup(id ID) (Func, error) {
	if !id.valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnknownAlgorithm, id)
	}
	return funcs[id], nil
}

/*
IntsAreSorted determines whether a slice of ints is already sorted in
increasing order.
*/
func IntsAreSorted(a []int) bool {
	for i := 1; i < len(a); i++ {
		if a[i] < a[i-1] {
			return false
		}
	}
	return true
}

// step performs one observable step: it waits for permission, records
// the step and paces the run. It reports false if the run was
// cancelled before the step could be taken.
func step(s Suspender, record func()) bool {
	if !s.Proceed() {
		return false
	}
	record()
	s.Pace()
	return true
}

func compare(s Suspender, r Recorder, i, j int) bool {
	return step(s, func() { r.Compare(i, j) })
}

func swap(s Suspender, r Recorder, i, j int) bool {
	return step(s, func() { r.Swap(i, j) })
}

func assign(s Suspender, r Recorder, i, v int) bool {
	return step(s, func() { r.Assign(i, v) })
}

func probe(s Suspender, r Recorder, i int) bool {
	return step(s, func() { r.Probe(i) })
}
