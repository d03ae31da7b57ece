// @lixen: #focus{render[glyph]}
// Package glyph quantizes pixel intensities into characters of an ordered ramp.
package glyph

// Ramp is an ordered glyph sequence, index 0 densest/darkest to len-1 sparsest/lightest
// Ramps are single-byte (ASCII) so a glyph index is a byte offset
type Ramp string

// Predefined ramps, shared read-only by every frame
const (
	Short Ramp = "@#S%?*+;:,. "
	Dense Ramp = "$@B%8&WM#*oahkbdpqwmZO0QLCJUYXzcvunxrjft/\\|()1{}[]?-_+~<>i!lI;:,\"^`. "
)

// Select returns Dense when dense is set, Short otherwise
func Select(dense bool) Ramp {
	if dense {
		return Dense
	}
	return Short
}

// Len returns the number of glyphs in the ramp
func (r Ramp) Len() int {
	return len(r)
}

// Index maps an intensity to v*len/256, always within [0, len)
func (r Ramp) Index(v uint8) int {
	return int(v) * len(r) >> 8
}

// Glyph returns the ramp character for intensity v
func (r Ramp) Glyph(v uint8) byte {
	return r[r.Index(v)]
}

// Brightness computes floor(0.299R + 0.587G + 0.114B) in exact integer arithmetic
func Brightness(r, g, b uint8) uint8 {
	return uint8((299*int(r) + 587*int(g) + 114*int(b)) / 1000)
}
