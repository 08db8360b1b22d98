package ui

import (
	"image"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pasture/camera"
)

// RaylibCanvas implements renderer.Canvas on the current raylib render
// target, viewed through a camera.
type RaylibCanvas struct {
	cam       *camera.Camera
	sprite    rl.Texture2D
	hasSprite bool
}

// NewRaylibCanvas uploads sprite as a texture. Must be called after the
// raylib window is created. A nil sprite leaves HasSprite false.
func NewRaylibCanvas(cam *camera.Camera, sprite image.Image) *RaylibCanvas {
	c := &RaylibCanvas{cam: cam}
	if sprite != nil {
		img := rl.NewImageFromImage(sprite)
		c.sprite = rl.LoadTextureFromImage(img)
		rl.UnloadImage(img)
		rl.SetTextureFilter(c.sprite, rl.FilterPoint)
		c.hasSprite = true
	}
	return c
}

// Unload releases the sprite texture.
func (c *RaylibCanvas) Unload() {
	if c.hasSprite {
		rl.UnloadTexture(c.sprite)
		c.hasSprite = false
	}
}

// Clear implements renderer.Canvas.
func (c *RaylibCanvas) Clear(col color.NRGBA) {
	rl.ClearBackground(toRL(col))
}

// FillRect implements renderer.Canvas.
func (c *RaylibCanvas) FillRect(x, y, w, h float64, col color.NRGBA) {
	if !c.cam.IsVisible(float32(x), float32(y), float32(w), float32(h)) {
		return
	}
	rl.DrawRectangleRec(c.rect(x, y, w, h), toRL(col))
}

// DrawSprite implements renderer.Canvas.
func (c *RaylibCanvas) DrawSprite(x, y, w, h float64, mirror bool) {
	if !c.hasSprite || !c.cam.IsVisible(float32(x), float32(y), float32(w), float32(h)) {
		return
	}
	src := rl.NewRectangle(0, 0, float32(c.sprite.Width), float32(c.sprite.Height))
	if mirror {
		// Negative source width flips the texture horizontally
		src.Width = -src.Width
	}
	rl.DrawTexturePro(c.sprite, src, c.rect(x, y, w, h), rl.Vector2{}, 0, rl.White)
}

// HasSprite implements renderer.Canvas.
func (c *RaylibCanvas) HasSprite() bool {
	return c.hasSprite
}

func (c *RaylibCanvas) rect(x, y, w, h float64) rl.Rectangle {
	sx, sy := c.cam.WorldToScreen(float32(x), float32(y))
	z := c.cam.Zoom
	return rl.NewRectangle(sx, sy, float32(w)*z, float32(h)*z)
}

func toRL(c color.NRGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}
