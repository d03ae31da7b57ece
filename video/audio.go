// @lixen: #focus{io[video,audio]}
package video

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// AudioStream is a WAV (s16le) rendition of a container's first audio track
type AudioStream struct {
	io.Reader
	cmd    *exec.Cmd
	stdout io.ReadCloser
	stop   func() bool
}

// OpenAudio starts extracting the first audio track as stereo WAV at sampleRate
func OpenAudio(ctx context.Context, path string, sampleRate int) (*AudioStream, error) {
	cmd := ffmpeg.Input(path).
		Output("pipe:", ffmpeg.KwArgs{
			"format":   "wav",
			"acodec":   "pcm_s16le",
			"ac":       "2",
			"ar":       strconv.Itoa(sampleRate),
			"map":      "0:a:0",
			"loglevel": "error",
		}).
		WithErrorOutput(&bytes.Buffer{}).
		Compile()

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("audio pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start audio decoder: %w", err)
	}

	a := &AudioStream{Reader: stdout, cmd: cmd, stdout: stdout}
	a.stop = context.AfterFunc(ctx, func() { cmd.Process.Kill() })
	return a, nil
}

// Close stops extraction
func (a *AudioStream) Close() error {
	a.stop()
	a.cmd.Process.Kill()
	a.stdout.Close()
	a.cmd.Wait()
	return nil
}
