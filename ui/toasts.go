package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pasture/notice"
)

// DrawToasts stacks the board's toasts at the top center of the screen,
// newest at the bottom. Each one slides down into place and fades out.
func (r *Renderer) DrawToasts(toasts []notice.Toast, screenWidth int32) {
	const (
		fontSize = 18
		height   = 34
		gap      = 6
		top      = 56
	)

	y := int32(top)
	for _, t := range toasts {
		alpha := uint8(255 * t.Alpha)
		w := rl.MeasureText(t.Msg, fontSize) + r.Theme.Padding*3
		x := (screenWidth - w) / 2
		ty := y - int32(float64(height)*t.Slide)

		bg := r.Theme.PanelBg
		bg.A = uint8(float64(bg.A) * t.Alpha)
		border := rl.Color{R: 255, G: 200, B: 80, A: alpha}

		rl.DrawRectangle(x, ty, w, height, bg)
		rl.DrawRectangleLines(x, ty, w, height, border)
		rl.DrawText(t.Msg, x+r.Theme.Padding+r.Theme.Padding/2, ty+8, fontSize, rl.Color{R: 255, G: 255, B: 255, A: alpha})

		y += height + gap
	}
}
