package render

import (
	"errors"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/lixenwraith/vidascii/terminal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
)

type failingFont struct{ name string }

func (f failingFont) Name() string                { return f.name }
func (f failingFont) Face(int) (font.Face, error) { return nil, errors.New("unavailable") }

func TestResolveFont_FallsThrough(t *testing.T) {
	chain := []FontSource{
		failingFont{"first"},
		FileFont(filepath.Join(t.TempDir(), "missing.ttf")),
		SystemFont("definitely-not-installed-font.ttf"),
		Builtin(),
	}
	face, name, err := ResolveFont(chain, 12)
	require.NoError(t, err)
	assert.NotNil(t, face)
	assert.Equal(t, "builtin", name)
}

func TestResolveFont_Exhausted(t *testing.T) {
	_, _, err := ResolveFont([]FontSource{failingFont{"a"}, failingFont{"b"}}, 12)
	assert.ErrorIs(t, err, ErrNoFont)

	_, _, err = ResolveFont(nil, 12)
	assert.ErrorIs(t, err, ErrNoFont)
}

func TestDefaultChain_EndsWithBuiltin(t *testing.T) {
	chain := DefaultChain("a.ttf", "b.ttf")
	require.Len(t, chain, 4)
	assert.Equal(t, "a.ttf", chain[0].Name())
	assert.Equal(t, "builtin", chain[len(chain)-1].Name())
}

func TestRasterize_Geometry(t *testing.T) {
	r, err := NewRasterizer(DefaultRasterOptions(), []FontSource{Builtin()})
	require.NoError(t, err)

	tf := NewTextFrame([]string{"$$$$", "    ", "@@@@"}, 4)
	img := r.Rasterize(tf)

	// cell width = int(12 * 1.2) = 14
	assert.Equal(t, 4*14, img.Bounds().Dx())
	assert.Equal(t, 3*12, img.Bounds().Dy())

	// Corner pixel is background
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, img.RGBAAt(img.Bounds().Dx()-1, 12+6))

	// Some ink landed in the first row
	assert.True(t, hasInk(img.Pix[:img.Stride*12]), "expected dark pixels in first row")
	// The blank row stays blank except for descenders reaching in from above
	assert.False(t, hasInk(img.Pix[img.Stride*20:img.Stride*24]), "expected blank band in the space row")
}

func TestRasterize_Colors(t *testing.T) {
	opts := DefaultRasterOptions()
	opts.Background = terminal.RGB{R: 10, G: 20, B: 30}
	r, err := NewRasterizer(opts, []FontSource{Builtin()})
	require.NoError(t, err)

	img := r.Rasterize(NewTextFrame([]string{" "}, 1))
	assert.Equal(t, color.RGBA{10, 20, 30, 255}, img.RGBAAt(0, 0))
}

func TestNewRasterizer_Invalid(t *testing.T) {
	opts := DefaultRasterOptions()
	opts.FontSize = 0
	_, err := NewRasterizer(opts, DefaultChain())
	assert.Error(t, err)
}

func hasInk(pix []uint8) bool {
	for i := 0; i < len(pix); i += 4 {
		if pix[i] < 128 {
			return true
		}
	}
	return false
}
