package pipeline

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/lixenwraith/vidascii/video"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func videoWriter(path, codec string, fps float64, width, height int) (FrameWriter, error) {
	w, err := video.NewWriter(path, codec, fps, width, height)
	if err != nil {
		return nil, err
	}
	return w, nil
}

// A 10-frame 30fps solid-color source rendered at 40 columns encodes to
// exactly 10 frames at the source or overridden rate
func TestConverter_EndToEnd(t *testing.T) {
	for _, bin := range []string{"ffmpeg", "ffprobe"} {
		if _, err := exec.LookPath(bin); err != nil {
			t.Skipf("%s not installed", bin)
		}
	}

	tests := []struct {
		name    string
		fps     float64
		wantFPS float64
	}{
		{"source rate", 0, 30},
		{"override", 15, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newFakeSource(10, 30)
			src.solid = true

			cfg := testConfig()
			cfg.Width = 40
			cfg.FPS = tt.fps
			cfg.Output = filepath.Join(t.TempDir(), "out.mp4")
			cfg.TempDir = t.TempDir()

			c, err := NewConverter(cfg, src, videoWriter, builtinChain)
			require.NoError(t, err)
			res, err := c.Run(context.Background())
			require.NoError(t, err)
			assert.Equal(t, 10, res.Frames)

			info, err := video.Probe(cfg.Output)
			require.NoError(t, err)
			assert.Equal(t, 10, info.FrameCount)
			assert.InDelta(t, tt.wantFPS, info.FPS, 0.01)

			entries, err := os.ReadDir(cfg.TempDir)
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}
