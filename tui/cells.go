// Package tui draws the pasture in a terminal with tcell, two canvas pixels
// per character cell using the upper half block.
package tui

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// HalfBlock is the glyph drawn in every cell: its foreground paints the top
// pixel and its background the bottom one.
const HalfBlock = '▀'

// Cell is one terminal cell worth of pixels.
type Cell struct {
	Top    color.RGBA
	Bottom color.RGBA
}

// Sampler downsamples frames to a cell grid, reusing its buffers.
type Sampler struct {
	small *image.RGBA
	cells []Cell
}

// Sample scales frame to cols x rows cells. The returned slice is row-major
// and reused by the next call.
func (s *Sampler) Sample(frame image.Image, cols, rows int) []Cell {
	if cols <= 0 || rows <= 0 {
		return s.cells[:0]
	}

	bounds := image.Rect(0, 0, cols, rows*2)
	if s.small == nil || s.small.Bounds() != bounds {
		s.small = image.NewRGBA(bounds)
	}
	draw.ApproxBiLinear.Scale(s.small, bounds, frame, frame.Bounds(), draw.Src, nil)

	n := cols * rows
	if cap(s.cells) < n {
		s.cells = make([]Cell, n)
	}
	s.cells = s.cells[:n]
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			s.cells[y*cols+x] = Cell{
				Top:    s.small.RGBAAt(x, 2*y),
				Bottom: s.small.RGBAAt(x, 2*y+1),
			}
		}
	}
	return s.cells
}
