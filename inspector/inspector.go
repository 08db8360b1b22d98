// Package inspector lets the user click a cow and watch its state live.
package inspector

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pasture/camera"
	"github.com/pthm-cable/pasture/game"
)

// Panel dimensions
const (
	PanelWidth   = 280
	PanelPadding = 10
	HeaderHeight = 30
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorCloseBtn    = rl.Color{R: 180, G: 80, B: 80, A: 255}
	ColorHighlight   = rl.Color{R: 255, G: 220, B: 80, A: 255}
)

// Inspector manages grazer selection and panel rendering.
type Inspector struct {
	selected    uint32
	hasSelected bool
	panelX      int32
	panelY      int32

	// Last drawn view of the selection
	view game.GrazerView
}

// NewInspector creates an inspector whose panel sits in the top-right corner.
func NewInspector(screenWidth int32) *Inspector {
	return &Inspector{
		panelX: screenWidth - PanelWidth - 10,
		panelY: 10,
	}
}

// Resize repositions the panel for a new screen width.
func (ins *Inspector) Resize(screenWidth int32) {
	ins.panelX = screenWidth - PanelWidth - 10
}

// HandleInput selects the cow under a left click and clears the selection
// on right click or Escape. It reports whether the click was consumed.
func (ins *Inspector) HandleInput(p *game.Pasture, cam *camera.Camera) bool {
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) || rl.IsKeyPressed(rl.KeyEscape) {
		ins.Deselect()
		return false
	}
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return false
	}

	mouse := rl.GetMousePosition()
	mx, my := int32(mouse.X), int32(mouse.Y)

	if ins.hasSelected {
		closeX := ins.panelX + PanelWidth - 25
		closeY := ins.panelY + 5
		if mx >= closeX && mx <= closeX+20 && my >= closeY && my <= closeY+20 {
			ins.Deselect()
			return true
		}

		// Clicks on the panel never reach the pasture
		if mx >= ins.panelX && mx <= ins.panelX+PanelWidth &&
			my >= ins.panelY && my <= ins.panelY+ins.panelHeight() {
			return true
		}
	}

	wx, wy := cam.ScreenToWorld(mouse.X, mouse.Y)
	if v, ok := p.GrazerAt(float64(wx), float64(wy)); ok {
		ins.Select(v.ID)
		return true
	}
	return false
}

// Select inspects the grazer with the given ID.
func (ins *Inspector) Select(id uint32) {
	ins.selected = id
	ins.hasSelected = true
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
}

// Selected returns the currently selected grazer ID.
func (ins *Inspector) Selected() (uint32, bool) {
	return ins.selected, ins.hasSelected
}

// Sync refreshes the cached view. A grazer that no longer exists, for
// example after the pasture is cleared, drops the selection.
func (ins *Inspector) Sync(p *game.Pasture) {
	if !ins.hasSelected {
		return
	}
	v, ok := p.Grazer(ins.selected)
	if !ok {
		ins.Deselect()
		return
	}
	ins.view = v
}

// Draw renders the inspector panel if a grazer is selected.
func (ins *Inspector) Draw(ticksPerSecond float64) {
	if !ins.hasSelected {
		return
	}

	height := ins.panelHeight()
	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, height, ColorPanelBg)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(ins.panelX), Y: float32(ins.panelY), Width: PanelWidth, Height: float32(height)},
		1,
		ColorPanelBorder,
	)

	// Header
	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawText("INSPECTOR", ins.panelX+PanelPadding, ins.panelY+7, 16, ColorHeaderText)

	closeX := ins.panelX + PanelWidth - 25
	closeY := ins.panelY + 5
	rl.DrawRectangle(closeX, closeY, 20, 20, ColorCloseBtn)
	rl.DrawText("X", closeX+6, closeY+3, 14, rl.White)

	x := ins.panelX + PanelPadding
	y := ins.panelY + HeaderHeight + PanelPadding

	rl.DrawText(fmt.Sprintf("Cow #%d  %s", ins.view.ID, ins.view.Mode()), x, y, 14, ColorHeaderText)
	y += 22
	rl.DrawLine(x, y, ins.panelX+PanelWidth-PanelPadding, y, ColorPanelBorder)
	y += 8

	for _, f := range ExtractFields(ins.view) {
		if f.Name == "ID" {
			continue
		}
		y += DrawField(x, y, f, ticksPerSecond)
	}
}

// panelHeight sizes the panel to the inspected fields.
func (ins *Inspector) panelHeight() int32 {
	rows := int32(len(ExtractFields(ins.view)) - 1)
	return HeaderHeight + PanelPadding + 22 + 8 + rows*18 + PanelPadding
}

// DrawSelectionHighlight outlines the selected grazer's sprite.
func (ins *Inspector) DrawSelectionHighlight(cam *camera.Camera, spriteW, spriteH float64) {
	if !ins.hasSelected {
		return
	}
	v := ins.view
	sx, sy := cam.WorldToScreen(float32(v.X), float32(v.Y))
	rl.DrawRectangleLinesEx(rl.Rectangle{
		X:      sx - 2,
		Y:      sy - 2,
		Width:  float32(spriteW)*cam.Zoom + 4,
		Height: float32(spriteH)*cam.Zoom + 4,
	}, 2, ColorHighlight)
}
