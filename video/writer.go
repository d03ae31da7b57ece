// @lixen: #focus{io[video,encode]}
package video

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os/exec"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// fourccEncoders maps container fourcc codes to ffmpeg encoder names
var fourccEncoders = map[string]string{
	"mp4v": "mpeg4",
	"xvid": "mpeg4",
	"avc1": "libx264",
	"h264": "libx264",
	"x264": "libx264",
	"mjpg": "mjpeg",
}

// EncoderFor resolves a fourcc code (case-insensitive) to an ffmpeg encoder
func EncoderFor(fourcc string) (string, error) {
	enc, ok := fourccEncoders[strings.ToLower(strings.TrimSpace(fourcc))]
	if !ok {
		return "", fmt.Errorf("unsupported codec %q", fourcc)
	}
	return enc, nil
}

// Writer feeds rgb24 frames to an ffmpeg encoder process
type Writer struct {
	path   string
	width  int
	height int
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr *bytes.Buffer
	buf    []byte
	frames int
	closed bool
}

// NewWriter starts an encoder for width x height frames at fps
func NewWriter(path, fourcc string, fps float64, width, height int) (*Writer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid frame size %dx%d", width, height)
	}
	if fps <= 0 {
		return nil, fmt.Errorf("invalid frame rate %v", fps)
	}
	enc, err := EncoderFor(fourcc)
	if err != nil {
		return nil, err
	}

	rate := strconv.FormatFloat(fps, 'f', -1, 64)
	stderr := &bytes.Buffer{}
	cmd := ffmpeg.Input("pipe:", ffmpeg.KwArgs{
		"format":    "rawvideo",
		"pix_fmt":   "rgb24",
		"s":         fmt.Sprintf("%dx%d", width, height),
		"framerate": rate,
	}).
		Output(path, ffmpeg.KwArgs{
			"c:v":      enc,
			"pix_fmt":  "yuv420p",
			"vf":       "pad=ceil(iw/2)*2:ceil(ih/2)*2",
			"r":        rate,
			"loglevel": "error",
		}).
		OverWriteOutput().
		WithErrorOutput(stderr).
		Compile()

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("encode pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start encoder: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"path":    path,
		"encoder": enc,
		"fps":     fps,
		"width":   width,
		"height":  height,
	}).Debug("Video writer opened")

	return &Writer{
		path:   path,
		width:  width,
		height: height,
		cmd:    cmd,
		stdin:  stdin,
		stderr: stderr,
		buf:    make([]byte, width*height*3),
	}, nil
}

// WriteFrame appends one bitmap; its bounds must match the writer size
func (w *Writer) WriteFrame(img image.Image) error {
	if w.closed {
		return fmt.Errorf("write to closed writer")
	}
	b := img.Bounds()
	if b.Dx() != w.width || b.Dy() != w.height {
		return fmt.Errorf("frame %d is %dx%d, writer expects %dx%d", w.frames+1, b.Dx(), b.Dy(), w.width, w.height)
	}

	packRGB(w.buf, img)
	if _, err := w.stdin.Write(w.buf); err != nil {
		return fmt.Errorf("write frame %d: %w (%s)", w.frames+1, err, w.diagnostic())
	}
	w.frames++
	return nil
}

// Frames returns the number of frames written
func (w *Writer) Frames() int { return w.frames }

// Close flushes the encoder and waits for the container to be finalized
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	w.stdin.Close()
	if err := w.cmd.Wait(); err != nil {
		return fmt.Errorf("encoder: %w (%s)", err, w.diagnostic())
	}
	return nil
}

func (w *Writer) diagnostic() string {
	msg := strings.TrimSpace(w.stderr.String())
	if msg == "" {
		return "encoder reported nothing"
	}
	return msg
}

// packRGB writes img as packed rgb24 into dst
func packRGB(dst []byte, img image.Image) {
	b := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok {
		i := 0
		for y := b.Min.Y; y < b.Max.Y; y++ {
			row := rgba.Pix[rgba.PixOffset(b.Min.X, y):]
			for x := 0; x < b.Dx(); x++ {
				dst[i], dst[i+1], dst[i+2] = row[x*4], row[x*4+1], row[x*4+2]
				i += 3
			}
		}
		return
	}

	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			dst[i], dst[i+1], dst[i+2] = uint8(r>>8), uint8(g>>8), uint8(bl>>8)
			i += 3
		}
	}
}
