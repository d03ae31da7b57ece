// @focus: #sys { audio }
// Package audio plays a decoded soundtrack alongside terminal playback.
package audio

import (
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
	"github.com/sirupsen/logrus"
)

// SampleRate is the rate soundtracks are extracted at and the speaker runs at
const SampleRate = beep.SampleRate(44100)

// speakerBuffer is the speaker latency
const speakerBuffer = 100 * time.Millisecond

// Player streams one WAV soundtrack to the speaker
type Player struct {
	mu      sync.Mutex
	src     io.ReadCloser
	stream  beep.StreamSeekCloser
	format  beep.Format
	ctrl    *beep.Ctrl
	playing bool
	silent  bool
}

// NewPlayer decodes the WAV header of src; volume is linear 0..1
func NewPlayer(src io.ReadCloser, volume float64) (*Player, error) {
	stream, format, err := wav.Decode(src)
	if err != nil {
		src.Close()
		return nil, fmt.Errorf("decode soundtrack: %w", err)
	}

	return &Player{
		src:    src,
		stream: stream,
		format: format,
		ctrl:   &beep.Ctrl{Streamer: newVolume(stream, volume), Paused: false},
	}, nil
}

// Format returns the decoded stream format
func (p *Player) Format() beep.Format { return p.format }

// Streamer exposes the volume-adjusted, pausable stream
func (p *Player) Streamer() beep.Streamer { return p.ctrl }

// Start initializes the speaker and begins playback
// A missing audio device is not fatal; playback continues silently
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.playing || p.silent {
		return nil
	}

	if err := speaker.Init(p.format.SampleRate, p.format.SampleRate.N(speakerBuffer)); err != nil {
		p.silent = true
		logrus.WithError(err).Warn("Audio device unavailable, continuing without sound")
		return nil
	}

	speaker.Play(p.ctrl)
	p.playing = true
	logrus.WithFields(logrus.Fields{
		"sample_rate": int(p.format.SampleRate),
		"channels":    p.format.NumChannels,
	}).Debug("Soundtrack playback started")
	return nil
}

// Silent reports whether the speaker could not be opened
func (p *Player) Silent() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.silent
}

// SetPaused pauses or resumes playback
func (p *Player) SetPaused(paused bool) {
	speaker.Lock()
	p.ctrl.Paused = paused
	speaker.Unlock()
}

// Close stops playback and releases the decoder
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.playing {
		speaker.Clear()
		p.playing = false
	}
	p.stream.Close()
	return p.src.Close()
}

// newVolume scales s linearly; math.Log2(0) is -Inf so zero is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	if vol > 1 {
		vol = 1
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
