package video

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncoderFor(t *testing.T) {
	tests := []struct {
		fourcc string
		want   string
	}{
		{"mp4v", "mpeg4"},
		{"MP4V", "mpeg4"},
		{"avc1", "libx264"},
		{"h264", "libx264"},
		{"mjpg", "mjpeg"},
	}
	for _, tt := range tests {
		got, err := EncoderFor(tt.fourcc)
		require.NoError(t, err, tt.fourcc)
		assert.Equal(t, tt.want, got, tt.fourcc)
	}

	_, err := EncoderFor("vp99")
	assert.Error(t, err)
}

func TestPackRGB(t *testing.T) {
	rgba := image.NewRGBA(image.Rect(0, 0, 2, 2))
	rgba.Set(0, 0, color.RGBA{1, 2, 3, 255})
	rgba.Set(1, 0, color.RGBA{4, 5, 6, 255})
	rgba.Set(0, 1, color.RGBA{7, 8, 9, 255})
	rgba.Set(1, 1, color.RGBA{10, 11, 12, 255})
	want := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}

	dst := make([]byte, 12)
	packRGB(dst, rgba)
	assert.Equal(t, want, dst)

	// Sub-images keep their own origin
	sub := image.NewRGBA(image.Rect(0, 0, 3, 3))
	sub.Set(1, 1, color.RGBA{7, 8, 9, 255})
	packRGB(dst[:3], sub.SubImage(image.Rect(1, 1, 2, 2)))
	assert.Equal(t, []byte{7, 8, 9}, dst[:3])

	gray := image.NewGray(image.Rect(0, 0, 1, 1))
	gray.Pix[0] = 200
	packRGB(dst[:3], gray)
	assert.Equal(t, []byte{200, 200, 200}, dst[:3])
}

func TestNewWriter_Rejects(t *testing.T) {
	_, err := NewWriter("out.mp4", "mp4v", 30, 0, 10)
	assert.Error(t, err)
	_, err = NewWriter("out.mp4", "mp4v", 0, 10, 10)
	assert.Error(t, err)
	_, err = NewWriter("out.mp4", "vp99", 30, 10, 10)
	assert.Error(t, err)
}
