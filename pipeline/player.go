// @lixen: #focus{flow[sink,terminal]}
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/lixenwraith/vidascii/config"
	"github.com/lixenwraith/vidascii/frame"
	"github.com/lixenwraith/vidascii/glyph"
	"github.com/lixenwraith/vidascii/render"
	"github.com/lixenwraith/vidascii/terminal"
	"github.com/sirupsen/logrus"
)

// WaitFunc blocks for d; it returns false when ctx or interrupt ended the wait
type WaitFunc func(ctx context.Context, d time.Duration, interrupt <-chan struct{}) bool

// Player shows frames on a display at the source frame rate
// Pacing is a fixed wait after each frame: no drift correction, no skipping
type Player struct {
	cfg   config.Config
	src   Source
	disp  Display
	sound Soundtrack
	ramp  glyph.Ramp
	mode  terminal.ColorMode
	wait  WaitFunc
	life  lifecycle
}

// NewPlayer takes ownership of src and disp
func NewPlayer(cfg config.Config, src Source, disp Display) (*Player, error) {
	mode, err := cfg.ResolveColorMode()
	if err != nil {
		return nil, err
	}
	return &Player{
		cfg:  cfg,
		src:  src,
		disp: disp,
		ramp: cfg.Ramp(),
		mode: mode,
		wait: sleep,
		life: lifecycle{sink: "terminal"},
	}, nil
}

// SetSoundtrack plays s for the duration of Run; the player closes it
func (p *Player) SetSoundtrack(s Soundtrack) { p.sound = s }

// SetWait replaces the pacing wait
func (p *Player) SetWait(w WaitFunc) { p.wait = w }

// State returns the current lifecycle state
func (p *Player) State() State { return p.life.state }

// Run plays until the source ends, ctx is cancelled or the display is closed
// Cancellation is a normal stop and reported through Result.Interrupted
func (p *Player) Run(ctx context.Context) (res Result, err error) {
	p.life.to(StateOpened)
	defer p.life.to(StateClosed)
	defer p.src.Close()
	defer p.disp.Close()
	if p.sound != nil {
		defer p.sound.Close()
	}

	res.FPS = p.src.FPS()
	interval := Interval(res.FPS)
	logrus.WithFields(p.cfg.Fields()).WithFields(logrus.Fields{
		"interval": interval,
		"mode":     p.mode,
	}).Info("Playing")

	if p.sound != nil {
		if err := p.sound.Start(); err != nil {
			logrus.WithError(err).Warn("Soundtrack unavailable")
		}
	}

	for {
		select {
		case <-ctx.Done():
			res.Interrupted = true
		case <-p.disp.Done():
			res.Interrupted = true
		default:
		}
		if res.Interrupted {
			break
		}

		f, err := p.src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if p.cfg.Strict {
				return res, fmt.Errorf("frame %d: %w", res.Frames+1, err)
			}
			logrus.WithError(err).WithField("frame", res.Frames+1).Warn("Read failed, stopping early")
			res.ReadErr = err
			break
		}
		p.life.to(StateProcessing)

		tf, err := p.render(f)
		if err != nil {
			return res, fmt.Errorf("frame %d: %w", res.Frames+1, err)
		}
		if err := p.disp.Show(tf); err != nil {
			return res, fmt.Errorf("display frame %d: %w", res.Frames+1, err)
		}
		res.Frames++

		if !p.wait(ctx, interval, p.disp.Done()) {
			res.Interrupted = true
			break
		}
	}

	p.life.to(StateFinalizing)
	logrus.WithFields(logrus.Fields{
		"frames":      res.Frames,
		"interrupted": res.Interrupted,
	}).Info("Playback finished")
	return res, nil
}

func (p *Player) render(f *frame.Frame) (render.TextFrame, error) {
	if p.cfg.Color {
		return renderColor(f, p.cfg.Width, p.cfg.Contrast, p.ramp, p.mode)
	}
	return renderPlain(f, p.cfg.Width, p.cfg.Contrast, p.ramp)
}

// sleep is the default WaitFunc
func sleep(ctx context.Context, d time.Duration, interrupt <-chan struct{}) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	case <-interrupt:
		return false
	}
}
