/*
Package audio turns the steps of a sorting run into short tones.

A Generator is called synchronously from inside a run, once per step,
so Play never blocks: it synthesises a fixed-length tone and hands it
to a backend on its own goroutine. The number of voices that may sound
at the same time is bounded, and cues beyond that bound are dropped.
*/
package audio

import (
	"encoding/binary"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/exascience/sortbattle/trace"
)

const (
	SampleRate = 44100

	// Duration and Gain of every tone.
	Duration = 50 * time.Millisecond
	Gain     = 0.1

	DefaultMaxVoices = 8
)

// Backend plays raw mono float32 little-endian PCM at SampleRate. Play
// blocks until the sound has finished.
type Backend interface {
	Play(pcm []byte) error
}

// Generator plays one tone per cue on a Backend.
type Generator struct {
	backend   Backend
	log       *zap.Logger
	maxVoices int32

	voices  atomic.Int32
	dropped atomic.Int64

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger for backend failures.
func WithLogger(log *zap.Logger) Option {
	return func(g *Generator) {
		if log != nil {
			g.log = log
		}
	}
}

// WithMaxVoices bounds the number of tones that may sound at once.
func WithMaxVoices(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxVoices = int32(n)
		}
	}
}

// NewGenerator creates a generator on top of backend. A nil backend
// yields a silent generator.
func NewGenerator(backend Backend, opts ...Option) *Generator {
	g := &Generator{
		backend:   backend,
		log:       zap.NewNop(),
		maxVoices: DefaultMaxVoices,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

/*
Play implements the method of the trace.Cue interface. It returns
immediately; the tone is synthesised and played on a separate
goroutine that exits when the tone has finished.
*/
func (g *Generator) Play(frequency float64) {
	if g == nil || g.backend == nil {
		return
	}
	if g.voices.Add(1) > g.maxVoices {
		g.voices.Add(-1)
		g.dropped.Add(1)
		return
	}
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		g.voices.Add(-1)
		return
	}
	g.wg.Add(1)
	g.mu.Unlock()
	go func() {
		defer g.wg.Done()
		defer g.voices.Add(-1)
		pcm := Tone(frequency, Duration, Gain, SampleRate)
		if err := g.backend.Play(pcm); err != nil {
			g.log.Debug("tone skipped", zap.Float64("frequency", frequency), zap.Error(err))
		}
	}()
}

// Dropped returns the number of cues that were dropped because all
// voices were busy.
func (g *Generator) Dropped() int64 {
	return g.dropped.Load()
}

// Close stops accepting cues and waits for the sounding tones to end.
func (g *Generator) Close() {
	if g == nil {
		return
	}
	g.mu.Lock()
	g.closed = true
	g.mu.Unlock()
	g.wg.Wait()
}

// Toggle reports whether sound is switched on.
type Toggle interface {
	SoundOn() bool
}

// Gated returns a cue that forwards to cue only while toggle reports
// that sound is on.
func Gated(cue trace.Cue, toggle Toggle) trace.Cue {
	return trace.CueFunc(func(frequency float64) {
		if cue != nil && toggle.SoundOn() {
			cue.Play(frequency)
		}
	})
}

// Tone synthesises a sine wave of the given frequency, duration and
// gain as mono float32 little-endian samples.
func Tone(frequency float64, d time.Duration, gain float64, rate int) []byte {
	n := int(float64(rate) * d.Seconds())
	buf := make([]byte, n*4)
	for i := 0; i < n; i++ {
		v := gain * math.Sin(2*math.Pi*frequency*float64(i)/float64(rate))
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(float32(v)))
	}
	return buf
}
