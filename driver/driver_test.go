package driver

import (
	"context"
	"go/build"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/exascience/sortbattle/control"
	"github.com/exascience/sortbattle/generate"
	"github.com/exascience/sortbattle/sort"
	"github.com/exascience/sortbattle/trace"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newDriver(t *testing.T, id sort.ID, initial []int, opts ...Option) *Driver {
	t.Helper()
	opts = append([]Option{WithLogger(zaptest.NewLogger(t))}, opts...)
	d, err := New(id, initial, opts...)
	require.NoError(t, err)
	t.Cleanup(d.Close)
	return d
}

// slow returns signals that delay every step by a millisecond.
func slow() *control.Signals {
	return control.NewSignals(1, false)
}

func descending(t *testing.T, n int) []int {
	a, err := generate.Generate(n, generate.Descending, nil)
	require.NoError(t, err)
	return a
}

func TestRunToCompletion(t *testing.T) {
	initial := []int{5, 3, 4, 1, 2}
	d := newDriver(t, sort.Bubble, initial)
	d.Start(context.Background())
	require.NoError(t, d.Wait(context.Background()))

	s := d.Snapshot()
	assert.Equal(t, []int{1, 2, 3, 4, 5}, s.Values)
	assert.Equal(t, 10, s.Comparisons)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, s.Sorted)
	assert.True(t, s.Complete)
	assert.False(t, s.HasComparing)
	assert.False(t, d.Active())
	assert.Equal(t, []int{5, 3, 4, 1, 2}, initial, "the initial array is never modified")

	_, err := uuid.Parse(d.RunID())
	assert.NoError(t, err)
}

func TestAllAlgorithms(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for _, id := range sort.IDs() {
		for _, dist := range generate.Distributions() {
			initial, err := generate.Generate(50, dist, rng)
			require.NoError(t, err)
			d := newDriver(t, id, initial)
			d.Start(context.Background())
			require.NoError(t, d.Wait(context.Background()))

			s := d.Snapshot()
			assert.True(t, s.Complete, "%v on %v", id, dist)
			assert.True(t, sort.IntsAreSorted(s.Values), "%v on %v", id, dist)
			assert.Len(t, s.Sorted, len(initial))
			assert.ElementsMatch(t, initial, s.Values, "%v on %v", id, dist)
		}
	}
}

func TestTrivialArrays(t *testing.T) {
	for _, initial := range [][]int{{}, {42}} {
		d := newDriver(t, sort.Quick, initial)
		d.Start(context.Background())
		require.NoError(t, d.Wait(context.Background()))
		s := d.Snapshot()
		assert.True(t, s.Complete)
		assert.Zero(t, s.Comparisons)
		assert.Len(t, s.Sorted, len(initial))
	}
}

func TestUnknownAlgorithm(t *testing.T) {
	_, err := New(sort.ID(-1), []int{1})
	assert.ErrorIs(t, err, sort.ErrUnknownAlgorithm)
}

func TestIdempotentReset(t *testing.T) {
	initial := []int{4, 2, 3, 1}
	d := newDriver(t, sort.Heap, initial)
	for i := 0; i < 3; i++ {
		d.Reset(nil)
		s := d.Snapshot()
		assert.Zero(t, s.Comparisons)
		assert.Zero(t, s.Swaps)
		assert.Equal(t, initial, s.Values)
		assert.False(t, s.Complete)
	}

	d.Reset([]int{9, 8})
	assert.Equal(t, []int{9, 8}, d.Snapshot().Values)
	assert.Empty(t, d.RunID())
}

func TestStopFreezes(t *testing.T) {
	d := newDriver(t, sort.Bubble, descending(t, 100), WithSignals(slow()))
	d.Start(context.Background())
	require.Eventually(t, func() bool { return d.Snapshot().Comparisons > 5 },
		5*time.Second, time.Millisecond)

	d.Stop()
	require.NoError(t, d.Wait(context.Background()))
	first := d.Snapshot()
	time.Sleep(100 * time.Millisecond)
	second := d.Snapshot()

	assert.Equal(t, first, second)
	assert.False(t, second.Complete)
	assert.False(t, d.Active())

	runID := d.RunID()
	d.Start(context.Background())
	assert.False(t, d.Active(), "a stopped run is not restarted")
	assert.Equal(t, runID, d.RunID())
}

func TestContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	d := newDriver(t, sort.Insertion, descending(t, 100), WithSignals(slow()))
	d.Start(ctx)
	require.Eventually(t, func() bool { return d.Snapshot().Writes > 0 },
		5*time.Second, time.Millisecond)
	cancel()

	<-d.Done()
	assert.False(t, d.Snapshot().Complete)
	assert.False(t, d.Active())
}

func TestPause(t *testing.T) {
	d := newDriver(t, sort.Selection, descending(t, 100), WithSignals(slow()))
	d.Start(context.Background())
	require.Eventually(t, func() bool { return d.Snapshot().Comparisons > 0 },
		5*time.Second, time.Millisecond)

	d.Pause()
	assert.True(t, d.Paused())
	time.Sleep(20 * time.Millisecond)
	first := d.Snapshot()
	time.Sleep(50 * time.Millisecond)
	second := d.Snapshot()
	assert.Equal(t, first.Comparisons, second.Comparisons)
	assert.Equal(t, first.Swaps, second.Swaps)
	assert.True(t, d.Active(), "a paused run is still active")

	d.Resume()
	require.Eventually(t, func() bool { return d.Snapshot().Comparisons > second.Comparisons },
		5*time.Second, time.Millisecond)
}

func TestStartWhileActiveResumes(t *testing.T) {
	d := newDriver(t, sort.Shell, descending(t, 100), WithSignals(slow()))
	d.Start(context.Background())
	runID := d.RunID()
	d.Pause()

	d.Start(context.Background())
	assert.False(t, d.Paused())
	assert.Equal(t, runID, d.RunID(), "no new run is created")
}

func TestResetWhileRunning(t *testing.T) {
	signals := slow()
	d := newDriver(t, sort.Merge, descending(t, 100), WithSignals(signals))
	d.Start(context.Background())
	require.Eventually(t, func() bool { return d.Snapshot().Comparisons > 0 },
		5*time.Second, time.Millisecond)

	d.Reset(nil)
	s := d.Snapshot()
	assert.Zero(t, s.Comparisons)
	assert.Equal(t, descending(t, 100), s.Values)
	assert.False(t, d.Active())

	signals.SetSpeed(0)
	d.Start(context.Background())
	require.NoError(t, d.Wait(context.Background()))
	assert.True(t, d.Snapshot().Complete)
}

func TestWaitTimeout(t *testing.T) {
	d := newDriver(t, sort.Bubble, descending(t, 100), WithSignals(slow()))
	d.Start(context.Background())
	d.Pause()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, d.Wait(ctx), context.DeadlineExceeded)
}

func TestObserverAndSettledMonotonic(t *testing.T) {
	var log trace.Log
	d := newDriver(t, sort.Heap, descending(t, 40), WithObserver(&log))
	d.Start(context.Background())
	require.NoError(t, d.Wait(context.Background()))

	snapshots := log.Snapshots()
	require.NotEmpty(t, snapshots)
	prev := 0
	for _, s := range snapshots {
		assert.GreaterOrEqual(t, len(s.Sorted), prev)
		prev = len(s.Sorted)
	}
	assert.True(t, snapshots[len(snapshots)-1].Complete)
}

func TestElapsedClock(t *testing.T) {
	var mu sync.Mutex
	now := time.Unix(0, 0)
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(10 * time.Millisecond)
		return now
	}
	d := newDriver(t, sort.Insertion, []int{2, 1}, WithClock(clock))
	d.Start(context.Background())
	require.NoError(t, d.Wait(context.Background()))

	// One tick per sampled step: a comparison, two writes and the
	// final sample.
	assert.Equal(t, 40*time.Millisecond, d.Snapshot().Elapsed)
}

type toneRecorder struct {
	mu    sync.Mutex
	tones []float64
}

func (r *toneRecorder) Play(f float64) {
	r.mu.Lock()
	r.tones = append(r.tones, f)
	r.mu.Unlock()
}

func (r *toneRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tones)
}

func TestCueFollowsSoundSignal(t *testing.T) {
	cue := &toneRecorder{}
	signals := control.NewSignals(0, false)
	d := newDriver(t, sort.Bubble, []int{3, 2, 1}, WithCue(cue), WithSignals(signals))
	d.Start(context.Background())
	require.NoError(t, d.Wait(context.Background()))
	assert.Zero(t, cue.count())

	signals.SetSoundOn(true)
	d.Reset(nil)
	d.Start(context.Background())
	require.NoError(t, d.Wait(context.Background()))
	// Three comparisons and three swaps.
	assert.Equal(t, 6, cue.count())
	assert.Same(t, signals, d.Signals())
	assert.Equal(t, sort.Bubble, d.Algorithm())
}

func TestNoDeviceDependency(t *testing.T) {
	pkg, err := build.ImportDir(".", 0)
	require.NoError(t, err)
	for _, path := range pkg.Imports {
		assert.False(t, strings.HasSuffix(path, "/audio/speaker"), "driver imports %s", path)
		assert.False(t, strings.HasPrefix(path, "github.com/hajimehoshi/oto"), "driver imports %s", path)
	}
}
