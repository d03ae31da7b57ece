// @lixen: #focus{io[video,decode]}
package video

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"

	"github.com/lixenwraith/vidascii/frame"
	"github.com/sirupsen/logrus"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// ErrFrameRead marks a decode pipe failure that is not a clean end of stream
var ErrFrameRead = errors.New("frame read failed")

// Source pulls decoded rgb24 frames from an ffmpeg child process
type Source struct {
	info   Info
	cmd    *exec.Cmd
	stdout io.ReadCloser
	stderr *bytes.Buffer
	buf    []byte
	stop   func() bool

	mu       sync.Mutex
	exited   bool
	killed   bool
	waitOnce sync.Once
	waitErr  error

	closeOnce sync.Once
}

// Open probes path and starts decoding; failures surface before any frame is read
func Open(ctx context.Context, path string) (*Source, error) {
	info, err := Probe(path)
	if err != nil {
		return nil, err
	}

	stderr := &bytes.Buffer{}
	cmd := ffmpeg.Input(path).
		Output("pipe:", ffmpeg.KwArgs{
			"format":   "rawvideo",
			"pix_fmt":  "rgb24",
			"map":      "0:v:0",
			"loglevel": "error",
		}).
		WithErrorOutput(stderr).
		Compile()

	s, err := start(ctx, cmd, stderr, info)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"path":   path,
		"width":  info.Width,
		"height": info.Height,
		"fps":    info.FPS,
		"frames": info.FrameCount,
	}).Debug("Video source opened")
	return s, nil
}

// start runs a decoder whose stdout carries rgb24 frames of info's size
func start(ctx context.Context, cmd *exec.Cmd, stderr *bytes.Buffer, info Info) (*Source, error) {
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("decode pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start decoder: %w", err)
	}

	s := &Source{
		info:   info,
		cmd:    cmd,
		stdout: stdout,
		stderr: stderr,
		buf:    make([]byte, info.Width*info.Height*3),
	}
	s.stop = context.AfterFunc(ctx, func() { s.kill() })
	return s, nil
}

func (s *Source) Info() Info       { return s.info }
func (s *Source) FPS() float64     { return s.info.FPS }
func (s *Source) FrameCount() int  { return s.info.FrameCount }
func (s *Source) Size() (int, int) { return s.info.Width, s.info.Height }

// Next returns the next frame, or io.EOF once the stream is exhausted.
// The returned frame shares a buffer that is overwritten by the following call.
func (s *Source) Next() (*frame.Frame, error) {
	_, err := io.ReadFull(s.stdout, s.buf)
	switch {
	case err == nil:
		return frame.FromRGB(s.info.Width, s.info.Height, s.buf)
	case errors.Is(err, io.EOF):
		// A decoder failing between frames also closes the pipe cleanly
		if werr := s.wait(); werr != nil && !s.wasKilled() {
			return nil, fmt.Errorf("%w: decoder exited: %v: %s", ErrFrameRead, werr, s.diagnostic())
		}
		return nil, io.EOF
	case errors.Is(err, io.ErrUnexpectedEOF):
		s.wait()
		return nil, fmt.Errorf("%w: truncated frame: %s", ErrFrameRead, s.diagnostic())
	default:
		return nil, fmt.Errorf("%w: %v", ErrFrameRead, err)
	}
}

// Close stops the decoder and releases the pipe; safe to call multiple times
func (s *Source) Close() error {
	s.closeOnce.Do(func() {
		s.stop()
		s.kill()
		s.stdout.Close()
		// Killed processes report a signal exit; only the release matters here
		s.wait()
	})
	return nil
}

// wait reaps the decoder once and caches its exit error
func (s *Source) wait() error {
	s.waitOnce.Do(func() {
		s.waitErr = s.cmd.Wait()
		s.mu.Lock()
		s.exited = true
		s.mu.Unlock()
	})
	return s.waitErr
}

func (s *Source) kill() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.exited || s.cmd.Process == nil {
		return
	}
	s.killed = true
	s.cmd.Process.Kill()
}

func (s *Source) wasKilled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.killed
}

func (s *Source) diagnostic() string {
	msg := strings.TrimSpace(s.stderr.String())
	if msg == "" {
		return "decoder reported nothing"
	}
	return msg
}
