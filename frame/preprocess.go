// @lixen: #focus{render[preprocess]}
package frame

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// Luma weights in thousandths (ITU-R BT.601), summing to 1000
const (
	lumaR = 299
	lumaG = 587
	lumaB = 114
)

const (
	DefaultContrast   = 1.5
	DefaultBrightness = 0.0
)

// TargetHeight computes the row count for a width-column grid
// Glyph cells are about twice as tall as wide, so the source ratio is halved
func TargetHeight(srcW, srcH, width int) int {
	if srcW <= 0 || srcH <= 0 || width <= 0 {
		return 0
	}
	h := int(float64(width) * (float64(srcH) / float64(srcW)) / 2)
	if h < 1 {
		h = 1
	}
	return h
}

// Resize resamples f to width columns and TargetHeight rows using bilinear interpolation
func Resize(f *Frame, width int) (*Frame, error) {
	if width <= 0 {
		return nil, ErrInvalidWidth
	}
	if f.Empty() {
		return nil, ErrEmptyFrame
	}

	height := TargetHeight(f.Width, f.Height, width)
	if width == f.Width && height == f.Height {
		return f, nil
	}

	rect := image.Rect(0, 0, width, height)
	var dst draw.Image
	if f.Channels == 1 {
		dst = image.NewGray(rect)
	} else {
		dst = image.NewRGBA(rect)
	}
	draw.BiLinear.Scale(dst, rect, f.Image(), image.Rect(0, 0, f.Width, f.Height), draw.Src, nil)
	return FromImage(dst), nil
}

// contrastLUT precomputes clamp(round(alpha*v + beta), 0, 255) for every sample value
func contrastLUT(alpha, beta float64) *[256]uint8 {
	var lut [256]uint8
	for v := range lut {
		out := math.RoundToEven(alpha*float64(v) + beta)
		switch {
		case out <= 0 || math.IsNaN(out):
			lut[v] = 0
		case out >= 255:
			lut[v] = 255
		default:
			lut[v] = uint8(out)
		}
	}
	return &lut
}

// EnhanceContrast applies the affine remap alpha*v + beta to every channel
// Results saturate at 0 and 255
func EnhanceContrast(f *Frame, alpha, beta float64) *Frame {
	lut := contrastLUT(alpha, beta)
	out := &Frame{Width: f.Width, Height: f.Height, Channels: f.Channels, Pix: make([]uint8, len(f.Pix))}
	for i, v := range f.Pix {
		out.Pix[i] = lut[v]
	}
	return out
}

// Luma returns round(0.299R + 0.587G + 0.114B)
func Luma(r, g, b uint8) uint8 {
	return uint8((lumaR*int(r) + lumaG*int(g) + lumaB*int(b) + 500) / 1000)
}

// ToGrayscale converts to single-channel luma and optionally applies EnhanceContrast
func ToGrayscale(f *Frame, enhance bool, contrast float64) *Frame {
	gray := f
	if f.Channels != 1 {
		gray = New(f.Width, f.Height, 1)
		for i, j := 0, 0; j < len(gray.Pix); i, j = i+f.Channels, j+1 {
			gray.Pix[j] = Luma(f.Pix[i], f.Pix[i+1], f.Pix[i+2])
		}
	}
	if enhance {
		return EnhanceContrast(gray, contrast, DefaultBrightness)
	}
	return gray
}
