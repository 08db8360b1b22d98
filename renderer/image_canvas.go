package renderer

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// ImageCanvas renders into an in-memory RGBA image.
type ImageCanvas struct {
	img      *image.RGBA
	sprite   image.Image
	mirrored image.Image
}

// NewImageCanvas creates a w x h canvas. A nil sprite leaves HasSprite false.
func NewImageCanvas(w, h int, sprite image.Image) *ImageCanvas {
	c := &ImageCanvas{img: image.NewRGBA(image.Rect(0, 0, w, h))}
	if sprite != nil {
		c.sprite = sprite
		c.mirrored = mirror(sprite)
	}
	return c
}

// Image returns the backing image. It is reused between frames.
func (c *ImageCanvas) Image() *image.RGBA {
	return c.img
}

// Clear implements Canvas.
func (c *ImageCanvas) Clear(col color.NRGBA) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

// FillRect implements Canvas.
func (c *ImageCanvas) FillRect(x, y, w, h float64, col color.NRGBA) {
	r := pixelRect(x, y, w, h).Intersect(c.img.Bounds())
	if r.Empty() || col.A == 0 {
		return
	}
	draw.Draw(c.img, r, image.NewUniform(col), image.Point{}, draw.Over)
}

// DrawSprite implements Canvas.
func (c *ImageCanvas) DrawSprite(x, y, w, h float64, flip bool) {
	if c.sprite == nil {
		return
	}
	src := c.sprite
	if flip {
		src = c.mirrored
	}
	// Nearest neighbor keeps pixel art crisp
	draw.NearestNeighbor.Scale(c.img, pixelRect(x, y, w, h), src, src.Bounds(), draw.Over, nil)
}

// HasSprite implements Canvas.
func (c *ImageCanvas) HasSprite() bool {
	return c.sprite != nil
}

// pixelRect snaps a float rectangle to the pixel grid.
func pixelRect(x, y, w, h float64) image.Rectangle {
	x0, y0 := int(math.Floor(x)), int(math.Floor(y))
	return image.Rect(x0, y0, x0+int(math.Round(w)), y0+int(math.Round(h)))
}

// mirror returns a horizontally flipped copy of img.
func mirror(img image.Image) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out.Set(b.Max.X-1-x, y-b.Min.Y, img.At(x, y))
		}
	}
	return out
}
