// Package assets provides the grazer sprite.
package assets

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

// Built-in sprite size in source pixels. The sprite faces left.
const (
	SpriteCols = 16
	SpriteRows = 17
)

var cowPixels = [SpriteRows]string{
	"................",
	".H..H...........",
	".WWWW...........",
	"WEWWWW..........",
	"WWWWWWWWWWWWWW..",
	"PPPWWWKKWWWWKKW.",
	"PPPWWKKKWWWWKKWK",
	"PNPWWWKKWWWWWWWK",
	".PPWWWWWWWKKWW.K",
	"...WWWWWWKKKWW..",
	"...WWWWWWWWWWW..",
	"...WWWWWWWPPWW..",
	"...WW.WW..PWW.WW",
	"...WW.WW...WW.WW",
	"...WW.WW...WW.WW",
	"...WW.WW...WW.WW",
	"...HH.HH...HH.HH",
}

var cowPalette = map[byte]color.RGBA{
	'W': {R: 0xF5, G: 0xF5, B: 0xF0, A: 0xFF}, // hide
	'K': {R: 0x2B, G: 0x2B, B: 0x2B, A: 0xFF}, // spots
	'E': {R: 0x10, G: 0x10, B: 0x10, A: 0xFF}, // eye
	'P': {R: 0xF4, G: 0xA6, B: 0xB8, A: 0xFF}, // muzzle, udder
	'N': {R: 0xB0, G: 0x60, B: 0x70, A: 0xFF}, // nostril
	'H': {R: 0x6B, G: 0x55, B: 0x45, A: 0xFF}, // horns, hooves
}

// CowSprite returns the built-in pixel-art grazer at its native size.
func CowSprite() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, SpriteCols, SpriteRows))
	for y, row := range cowPixels {
		for x := 0; x < len(row); x++ {
			if c, ok := cowPalette[row[x]]; ok {
				img.SetRGBA(x, y, c)
			}
		}
	}
	return img
}

// LoadSprite decodes a PNG sprite from path.
func LoadSprite(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening sprite: %w", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding sprite %s: %w", path, err)
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("sprite %s is empty", path)
	}
	return img, nil
}

// Sprite returns the sprite at path, or the built-in sprite when path is empty.
func Sprite(path string) (image.Image, error) {
	if path == "" {
		return CowSprite(), nil
	}
	return LoadSprite(path)
}
