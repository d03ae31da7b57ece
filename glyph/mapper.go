// @lixen: #focus{render[glyph]}
package glyph

import (
	"github.com/lixenwraith/vidascii/frame"
	"github.com/lixenwraith/vidascii/terminal"
)

// MapPlain converts every pixel to a ramp glyph, one string per frame row
// RGB frames are reduced with Brightness first
func MapPlain(f *frame.Frame, ramp Ramp) []string {
	rows := make([]string, f.Height)
	buf := make([]byte, f.Width)
	for y := 0; y < f.Height; y++ {
		src := f.Row(y)
		if f.Channels == 1 {
			for x, v := range src {
				buf[x] = ramp.Glyph(v)
			}
		} else {
			for x := 0; x < f.Width; x++ {
				p := src[x*f.Channels:]
				buf[x] = ramp.Glyph(Brightness(p[0], p[1], p[2]))
			}
		}
		rows[y] = string(buf)
	}
	return rows
}

// colorCellSize is the worst-case byte length of one truecolor glyph:
// ESC[38;2;RRR;GGG;BBBm + glyph + ESC[0m
const colorCellSize = 19 + 1 + 4

// MapColor selects glyphs by brightness and wraps each one in a foreground
// escape carrying the pixel's original RGB, followed by a reset.
// Intensity frames are treated as gray RGB.
func MapColor(f *frame.Frame, ramp Ramp, mode terminal.ColorMode) []string {
	rows := make([]string, f.Height)
	buf := make([]byte, 0, f.Width*colorCellSize)
	for y := 0; y < f.Height; y++ {
		src := f.Row(y)
		buf = buf[:0]
		for x := 0; x < f.Width; x++ {
			var c terminal.RGB
			if f.Channels == 1 {
				c = terminal.RGB{R: src[x], G: src[x], B: src[x]}
			} else {
				p := src[x*f.Channels:]
				c = terminal.RGB{R: p[0], G: p[1], B: p[2]}
			}
			g := ramp.Glyph(Brightness(c.R, c.G, c.B))
			buf = terminal.AppendColored(buf, g, c, mode)
		}
		rows[y] = string(buf)
	}
	return rows
}
