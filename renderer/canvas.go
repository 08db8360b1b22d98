// Package renderer draws the pasture scene onto a Canvas.
package renderer

import (
	"image/color"
	"math"
)

// Canvas is a drawing surface in canvas pixel coordinates.
// Colors are non-premultiplied; alpha blends over what is already drawn.
type Canvas interface {
	Clear(c color.NRGBA)
	FillRect(x, y, w, h float64, c color.NRGBA)
	// DrawSprite draws the grazer sprite scaled to w x h. The sprite faces
	// left; mirror flips it to face right.
	DrawSprite(x, y, w, h float64, mirror bool)
	HasSprite() bool
}

// opaque converts a palette color for drawing.
func opaque(c color.RGBA) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
}

// withAlpha returns c with alpha a in [0, 1].
func withAlpha(c color.NRGBA, a float64) color.NRGBA {
	a = math.Max(0, math.Min(1, a))
	c.A = uint8(math.Round(a * 255))
	return c
}

func hex(v uint32) color.NRGBA {
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}
}

var (
	black = color.NRGBA{A: 0xFF}
	white = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
)
