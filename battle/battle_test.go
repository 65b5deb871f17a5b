package battle

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/exascience/sortbattle/config"
	"github.com/exascience/sortbattle/generate"
	"github.com/exascience/sortbattle/sort"
	"github.com/exascience/sortbattle/trace"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// noDelay skips all pacing.
func noDelay(context.Context, time.Duration) {}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Left = "insertion"
	cfg.Right = "counting"
	cfg.Elements = 40
	cfg.Seed = 5
	cfg.Sound = false
	return cfg
}

func newBattle(t *testing.T, cfg *config.Config, opts ...Option) *Battle {
	t.Helper()
	opts = append([]Option{WithLogger(zaptest.NewLogger(t))}, opts...)
	b, err := New(cfg, opts...)
	require.NoError(t, err)
	t.Cleanup(b.Close)
	return b
}

func TestNewRejectsInvalidConfiguration(t *testing.T) {
	cfg := testConfig()
	cfg.Elements = 5
	_, err := New(cfg)
	assert.ErrorIs(t, err, config.ErrInvalidConfiguration)

	cfg = testConfig()
	cfg.Right = "stooge"
	_, err = New(cfg)
	assert.ErrorIs(t, err, config.ErrInvalidConfiguration)
}

func TestSameInitialArray(t *testing.T) {
	b := newBattle(t, testConfig())
	l, r := b.Snapshots()
	assert.Equal(t, b.Initial(), l.Values)
	assert.Equal(t, l.Values, r.Values)
	assert.Len(t, l.Values, 40)
	assert.Equal(t, sort.Insertion, b.Driver(Left).Algorithm())
	assert.Equal(t, sort.Counting, b.Driver(Right).Algorithm())

	// The same seed yields the same battle.
	other := newBattle(t, testConfig())
	assert.Equal(t, b.Initial(), other.Initial())
}

func TestRunToCompletion(t *testing.T) {
	b := newBattle(t, testConfig(), WithSleeper(noDelay))
	b.Start(context.Background())
	require.NoError(t, b.Wait(context.Background()))

	assert.True(t, b.Complete())
	assert.False(t, b.Active())
	l, r := b.Snapshots()
	assert.Equal(t, l.Values, r.Values)
	assert.True(t, sort.IntsAreSorted(l.Values))
	assert.ElementsMatch(t, b.Initial(), l.Values)
}

func TestSignals(t *testing.T) {
	b := newBattle(t, testConfig())
	b.SetSpeed(0)
	assert.Equal(t, config.MinSpeedMs, b.Speed())
	b.SetSpeed(1000)
	assert.Equal(t, config.MaxSpeedMs, b.Speed())
	b.SetSpeed(42)
	assert.Equal(t, 42, b.Driver(Right).Signals().SpeedMs())

	assert.False(t, b.Sound())
	b.SetSound(true)
	assert.True(t, b.Sound())
	assert.True(t, b.Driver(Right).Signals().SoundOn())

	b.TogglePause()
	assert.True(t, b.Paused())
	assert.True(t, b.Driver(Right).Paused())
	b.TogglePause()
	assert.False(t, b.Paused())
}

func TestPauseAndResume(t *testing.T) {
	cfg := testConfig()
	cfg.SpeedMs = 1
	cfg.Elements = 100
	cfg.Distribution = generate.Descending
	b := newBattle(t, cfg)

	b.Start(context.Background())
	require.Eventually(t, func() bool {
		l, r := b.Snapshots()
		return l.Comparisons > 0 && r.Comparisons > 0
	}, 5*time.Second, time.Millisecond)

	b.Pause()
	time.Sleep(20 * time.Millisecond)
	l1, r1 := b.Snapshots()
	time.Sleep(50 * time.Millisecond)
	l2, r2 := b.Snapshots()
	assert.Equal(t, l1.Comparisons, l2.Comparisons)
	assert.Equal(t, r1.Comparisons, r2.Comparisons)
	assert.True(t, b.Active())

	// Starting again only resumes.
	b.Start(context.Background())
	assert.False(t, b.Paused())
	require.Eventually(t, func() bool {
		l, _ := b.Snapshots()
		return l.Comparisons > l2.Comparisons
	}, 5*time.Second, time.Millisecond)
}

func TestReset(t *testing.T) {
	cfg := testConfig()
	cfg.Seed = 8
	b := newBattle(t, cfg, WithSleeper(noDelay))
	b.Start(context.Background())
	require.NoError(t, b.Wait(context.Background()))
	before := b.Initial()

	for i := 0; i < 3; i++ {
		require.NoError(t, b.Reset())
		l, r := b.Snapshots()
		assert.Zero(t, l.Comparisons+l.Swaps+r.Comparisons+r.Swaps)
		assert.Equal(t, b.Initial(), l.Values)
		assert.Equal(t, b.Initial(), r.Values)
		assert.False(t, b.Complete())
	}
	assert.NotEqual(t, before, b.Initial(), "reset draws a fresh array")

	b.Start(context.Background())
	require.NoError(t, b.Wait(context.Background()))
	assert.True(t, b.Complete())
}

func TestObserverPerSide(t *testing.T) {
	var buf bytes.Buffer
	w := trace.NewJSONWriter(&buf)
	var mu sync.Mutex
	created := map[Side]sort.ID{}
	observe := func(side Side, id sort.ID) trace.Observer {
		mu.Lock()
		created[side] = id
		mu.Unlock()
		return w.For(side.String(), id.String())
	}

	cfg := testConfig()
	cfg.Elements = 10
	b := newBattle(t, cfg, WithSleeper(noDelay), WithObserver(observe))
	b.Start(context.Background())
	require.NoError(t, b.Wait(context.Background()))
	require.NoError(t, w.Err())

	assert.Equal(t, map[Side]sort.ID{Left: sort.Insertion, Right: sort.Counting}, created)

	labels := map[string]bool{}
	var complete int
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var r trace.Record
		require.NoError(t, json.Unmarshal([]byte(line), &r))
		labels[r.Label+"/"+r.Algorithm] = true
		if r.Complete {
			complete++
		}
	}
	assert.Equal(t, map[string]bool{"left/Insertion Sort": true, "right/Counting Sort": true}, labels)
	assert.Equal(t, 2, complete)
}

func TestCue(t *testing.T) {
	var mu sync.Mutex
	var tones int
	cue := trace.CueFunc(func(float64) {
		mu.Lock()
		tones++
		mu.Unlock()
	})
	cfg := testConfig()
	cfg.Sound = true
	b := newBattle(t, cfg, WithSleeper(noDelay), WithCue(cue))
	b.Start(context.Background())
	require.NoError(t, b.Wait(context.Background()))

	l, r := b.Snapshots()
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, l.Comparisons+l.Swaps+l.Writes+r.Comparisons+r.Swaps+r.Writes, tones)
}

func TestSideString(t *testing.T) {
	assert.Equal(t, "left", Left.String())
	assert.Equal(t, "right", Right.String())
}
