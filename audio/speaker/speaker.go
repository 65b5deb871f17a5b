// Package speaker plays tones on the default audio device through oto.
// It is kept apart from package audio because oto needs cgo, and on
// Linux the ALSA headers, to build.
package speaker

import (
	"bytes"
	"errors"
	"time"

	"github.com/hajimehoshi/oto/v2"

	"github.com/exascience/sortbattle/audio"
)

// ErrNotReady is returned while the audio device is still starting up.
var ErrNotReady = errors.New("audio device not ready")

// Backend implements audio.Backend on the default audio device.
type Backend struct {
	ctx   *oto.Context
	ready chan struct{}
}

var _ audio.Backend = (*Backend)(nil)

// New opens the default audio device for mono float32 samples at
// audio.SampleRate.
func New() (*Backend, error) {
	ctx, ready, err := oto.NewContext(audio.SampleRate, 1, oto.FormatFloat32LE)
	if err != nil {
		return nil, err
	}
	return &Backend{ctx: ctx, ready: ready}, nil
}

// Play implements the method of the audio.Backend interface. Tones
// requested before the device is ready are skipped.
func (b *Backend) Play(pcm []byte) error {
	select {
	case <-b.ready:
	default:
		return ErrNotReady
	}
	player := b.ctx.NewPlayer(bytes.NewReader(pcm))
	player.Play()
	for player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}
	return player.Close()
}
