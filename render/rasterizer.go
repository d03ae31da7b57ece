// @lixen: #focus{render[raster]}
package render

import (
	"errors"
	"image"
	"image/color"
	"image/draw"

	"github.com/lixenwraith/vidascii/terminal"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// RasterOptions controls bitmap rasterization of text frames
type RasterOptions struct {
	FontSize    int
	CharSpacing float64
	Foreground  terminal.RGB
	Background  terminal.RGB
}

// DefaultRasterOptions draws dark glyphs on a light background
func DefaultRasterOptions() RasterOptions {
	return RasterOptions{
		FontSize:    12,
		CharSpacing: 1.2,
		Foreground:  terminal.RGBBlack,
		Background:  terminal.RGBWhite,
	}
}

// Rasterizer draws text frames onto bitmaps with a fixed cell grid
type Rasterizer struct {
	face     font.Face
	fontName string
	fontSize int
	cellW    int
	baseline int
	fg       *image.Uniform
	bg       *image.Uniform
}

// NewRasterizer resolves a font from chain and prepares the cell geometry
func NewRasterizer(opts RasterOptions, chain []FontSource) (*Rasterizer, error) {
	if opts.FontSize <= 0 || opts.CharSpacing <= 0 {
		return nil, errors.New("font size and char spacing must be positive")
	}
	face, name, err := ResolveFont(chain, opts.FontSize)
	if err != nil {
		return nil, err
	}

	cellW := int(float64(opts.FontSize) * opts.CharSpacing)
	if cellW < 1 {
		cellW = 1
	}

	logrus.WithFields(logrus.Fields{
		"font":       name,
		"font_size":  opts.FontSize,
		"cell_width": cellW,
	}).Debug("Rasterizer ready")

	return &Rasterizer{
		face:     face,
		fontName: name,
		fontSize: opts.FontSize,
		cellW:    cellW,
		baseline: face.Metrics().Ascent.Ceil(),
		fg:       image.NewUniform(rgbaOf(opts.Foreground)),
		bg:       image.NewUniform(rgbaOf(opts.Background)),
	}, nil
}

// FontName reports which chain candidate was resolved
func (r *Rasterizer) FontName() string { return r.fontName }

// Size returns the bitmap dimensions for a cols x rows frame
func (r *Rasterizer) Size(cols, rows int) (int, int) {
	return cols * r.cellW, rows * r.fontSize
}

// Rasterize draws each glyph into its own cell, rows spaced by the font size
func (r *Rasterizer) Rasterize(tf TextFrame) *image.RGBA {
	w, h := r.Size(tf.Cols(), tf.Height())
	img := image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	draw.Draw(img, img.Bounds(), r.bg, image.Point{}, draw.Src)

	d := &font.Drawer{Dst: img, Src: r.fg, Face: r.face}
	for y, row := range tf.Rows() {
		base := y*r.fontSize + r.baseline
		for x := 0; x < len(row) && x < tf.Cols(); x++ {
			if row[x] == ' ' {
				continue
			}
			d.Dot = fixed.P(x*r.cellW, base)
			d.DrawString(row[x : x+1])
		}
	}
	return img
}

func rgbaOf(c terminal.RGB) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}
