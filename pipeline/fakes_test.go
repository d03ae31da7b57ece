package pipeline

import (
	"context"
	"errors"
	"image"
	"io"
	"os"
	"sync"
	"time"

	"github.com/lixenwraith/vidascii/config"
	"github.com/lixenwraith/vidascii/frame"
	"github.com/lixenwraith/vidascii/render"
)

var errDecode = errors.New("decode failed")

// fakeSource yields n horizontal-gradient RGB frames, then io.EOF
// failAt > 0 returns errDecode in place of that frame
type fakeSource struct {
	n, w, h int
	fps     float64
	count   int
	failAt  int
	served  int
	closed  bool
	solid   bool
}

func newFakeSource(n int, fps float64) *fakeSource {
	return &fakeSource{n: n, w: 64, h: 48, fps: fps, count: n}
}

func (s *fakeSource) Next() (*frame.Frame, error) {
	if s.failAt > 0 && s.served+1 == s.failAt {
		return nil, errDecode
	}
	if s.served >= s.n {
		return nil, io.EOF
	}
	s.served++
	f := frame.New(s.w, s.h, 3)
	for y := 0; y < s.h; y++ {
		row := f.Row(y)
		for x := 0; x < s.w; x++ {
			v := uint8(x * 255 / (s.w - 1))
			if s.solid {
				v = uint8(s.served * 20)
			}
			row[x*3], row[x*3+1], row[x*3+2] = v, v/2, 255-v
		}
	}
	return f, nil
}

func (s *fakeSource) FPS() float64    { return s.fps }
func (s *fakeSource) FrameCount() int { return s.count }
func (s *fakeSource) Close() error    { s.closed = true; return nil }

// fakeWriter records frames; it creates the output file so removal can be observed
type fakeWriter struct {
	path     string
	codec    string
	fps      float64
	w, h     int
	frames   []image.Image
	failAt   int
	closeErr error
	closed   bool
}

func (w *fakeWriter) WriteFrame(img image.Image) error {
	if w.failAt > 0 && len(w.frames)+1 == w.failAt {
		return errors.New("disk full")
	}
	w.frames = append(w.frames, img)
	return nil
}

func (w *fakeWriter) Close() error { w.closed = true; return w.closeErr }

type writerRecorder struct {
	opened *fakeWriter
	failAt int
	closeE error
	openE  error
}

func (r *writerRecorder) factory(path, codec string, fps float64, width, height int) (FrameWriter, error) {
	if r.openE != nil {
		return nil, r.openE
	}
	if err := os.WriteFile(path, []byte("partial"), 0o644); err != nil {
		return nil, err
	}
	r.opened = &fakeWriter{path: path, codec: codec, fps: fps, w: width, h: height, failAt: r.failAt, closeErr: r.closeE}
	return r.opened, nil
}

// fakeDisplay records shown frames; stopAfter > 0 closes Done after that many frames
type fakeDisplay struct {
	shown     []render.TextFrame
	done      chan struct{}
	once      sync.Once
	stopAfter int
	closed    bool
}

func newFakeDisplay() *fakeDisplay { return &fakeDisplay{done: make(chan struct{})} }

func (d *fakeDisplay) Show(tf render.TextFrame) error {
	d.shown = append(d.shown, tf)
	if d.stopAfter > 0 && len(d.shown) >= d.stopAfter {
		d.once.Do(func() { close(d.done) })
	}
	return nil
}

func (d *fakeDisplay) Done() <-chan struct{} { return d.done }
func (d *fakeDisplay) Close() error          { d.closed = true; return nil }

type fakeSound struct{ started, closed bool }

func (s *fakeSound) Start() error { s.started = true; return nil }
func (s *fakeSound) Close() error { s.closed = true; return nil }

// recordWait never blocks; it honors ctx and interrupt like the real wait
type recordWait struct {
	waits []time.Duration
}

func (r *recordWait) wait(ctx context.Context, d time.Duration, interrupt <-chan struct{}) bool {
	r.waits = append(r.waits, d)
	select {
	case <-ctx.Done():
		return false
	case <-interrupt:
		return false
	default:
		return true
	}
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Input = "synthetic.mp4"
	cfg.Width = 20
	return cfg
}
