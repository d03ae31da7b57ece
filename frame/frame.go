// Package frame holds the decoded pixel grid and the preprocessing steps that
// normalize it for glyph mapping.
package frame

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
)

var (
	ErrEmptyFrame   = errors.New("frame has zero width or height")
	ErrInvalidWidth = errors.New("target width must be positive")
)

// Frame is a row-major grid of 8-bit samples
// Channels is 1 for intensity frames and 3 for RGB frames
type Frame struct {
	Width    int
	Height   int
	Channels int
	Pix      []uint8
}

// New allocates a zeroed frame
func New(width, height, channels int) *Frame {
	return &Frame{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]uint8, width*height*channels),
	}
}

// FromRGB wraps packed rgb24 data without copying
func FromRGB(width, height int, pix []uint8) (*Frame, error) {
	if want := width * height * 3; len(pix) != want {
		return nil, fmt.Errorf("rgb buffer is %d bytes, want %d for %dx%d", len(pix), want, width, height)
	}
	return &Frame{Width: width, Height: height, Channels: 3, Pix: pix}, nil
}

// FromImage converts any image to an RGB frame, or an intensity frame for *image.Gray
func FromImage(img image.Image) *Frame {
	b := img.Bounds()
	if g, ok := img.(*image.Gray); ok {
		f := New(b.Dx(), b.Dy(), 1)
		for y := 0; y < f.Height; y++ {
			copy(f.Pix[y*f.Width:(y+1)*f.Width], g.Pix[(y+b.Min.Y-g.Rect.Min.Y)*g.Stride+(b.Min.X-g.Rect.Min.X):])
		}
		return f
	}

	rgba, ok := img.(*image.RGBA)
	if !ok {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
		b = rgba.Bounds()
	}

	f := New(b.Dx(), b.Dy(), 3)
	i := 0
	for y := 0; y < f.Height; y++ {
		row := rgba.Pix[(y+b.Min.Y-rgba.Rect.Min.Y)*rgba.Stride+(b.Min.X-rgba.Rect.Min.X)*4:]
		for x := 0; x < f.Width; x++ {
			f.Pix[i] = row[x*4]
			f.Pix[i+1] = row[x*4+1]
			f.Pix[i+2] = row[x*4+2]
			i += 3
		}
	}
	return f
}

// Image exposes the frame as *image.Gray or *image.RGBA (opaque)
func (f *Frame) Image() image.Image {
	rect := image.Rect(0, 0, f.Width, f.Height)
	if f.Channels == 1 {
		g := image.NewGray(rect)
		copy(g.Pix, f.Pix)
		return g
	}

	rgba := image.NewRGBA(rect)
	for i, j := 0, 0; i < len(f.Pix); i, j = i+3, j+4 {
		rgba.Pix[j] = f.Pix[i]
		rgba.Pix[j+1] = f.Pix[i+1]
		rgba.Pix[j+2] = f.Pix[i+2]
		rgba.Pix[j+3] = 0xff
	}
	return rgba
}

// Stride is the byte length of one row
func (f *Frame) Stride() int {
	return f.Width * f.Channels
}

// Row returns the samples of row y
func (f *Frame) Row(y int) []uint8 {
	s := f.Stride()
	return f.Pix[y*s : (y+1)*s]
}

// Empty reports whether the frame has no pixels
func (f *Frame) Empty() bool {
	return f == nil || f.Width <= 0 || f.Height <= 0
}
