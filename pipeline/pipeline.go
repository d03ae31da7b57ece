// @lixen: #focus{flow[sink]}
// Package pipeline drives decoded frames through preprocessing and glyph
// mapping into one of two sinks: a video file (Converter) or a terminal
// display (Player).
package pipeline

import (
	"errors"
	"image"
	"math"
	"time"

	"github.com/lixenwraith/vidascii/frame"
	"github.com/lixenwraith/vidascii/glyph"
	"github.com/lixenwraith/vidascii/render"
	"github.com/lixenwraith/vidascii/terminal"
)

// DefaultFPS applies when neither the source nor the configuration has a usable rate
const DefaultFPS = 30.0

var ErrNoFrames = errors.New("no frames decoded")

// Source yields decoded frames until io.EOF
type Source interface {
	Next() (*frame.Frame, error)
	FPS() float64
	FrameCount() int
	Close() error
}

// FrameWriter encodes bitmaps into an output container
type FrameWriter interface {
	WriteFrame(img image.Image) error
	Close() error
}

// WriterFactory opens a FrameWriter for width x height bitmaps
type WriterFactory func(path, codec string, fps float64, width, height int) (FrameWriter, error)

// Display shows text frames; Done closes when the viewer asks to stop
type Display interface {
	Show(tf render.TextFrame) error
	Done() <-chan struct{}
	Close() error
}

// Soundtrack plays alongside a Player run
type Soundtrack interface {
	Start() error
	Close() error
}

// Result summarizes a finished run
type Result struct {
	Frames      int
	FPS         float64
	Width       int // bitmap width for video output
	Height      int
	ReadErr     error // mid-stream read failure that ended the run early
	Interrupted bool
}

// Interval is the per-frame wait for fps, rounded to whole milliseconds
func Interval(fps float64) time.Duration {
	if fps <= 0 || math.IsNaN(fps) || math.IsInf(fps, 0) {
		fps = DefaultFPS
	}
	return time.Duration(math.Round(1000/fps)) * time.Millisecond
}

// renderPlain: resize, contrast-enhanced luma, ramp glyphs
func renderPlain(f *frame.Frame, width int, contrast float64, ramp glyph.Ramp) (render.TextFrame, error) {
	small, err := frame.Resize(f, width)
	if err != nil {
		return render.TextFrame{}, err
	}
	gray := frame.ToGrayscale(small, true, contrast)
	return render.NewTextFrame(glyph.MapPlain(gray, ramp), gray.Width), nil
}

// renderColor: resize, per-channel contrast, colored glyphs
func renderColor(f *frame.Frame, width int, contrast float64, ramp glyph.Ramp, mode terminal.ColorMode) (render.TextFrame, error) {
	small, err := frame.Resize(f, width)
	if err != nil {
		return render.TextFrame{}, err
	}
	enhanced := frame.EnhanceContrast(small, contrast, frame.DefaultBrightness)
	return render.NewTextFrame(glyph.MapColor(enhanced, ramp, mode), enhanced.Width), nil
}
