package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Action is a control requested by the user this frame.
type Action int

const (
	ActionNone Action = iota
	ActionAddCow
	ActionClear
	ActionTogglePause
)

// Button layout
const (
	buttonWidth  = 140
	buttonHeight = 28
	buttonGap    = 8
)

// PauseLabel returns the pause button text for the animation state.
func PauseLabel(running bool) string {
	if running {
		return "Pause Animation"
	}
	return "Resume Animation"
}

// ControlsPanel renders the pasture buttons and, when expanded, the overlay
// toggle list below them.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	expanded bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition moves the panel.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Toggle shows or hides the overlay list.
func (c *ControlsPanel) Toggle() bool {
	c.expanded = !c.expanded
	return c.expanded
}

// Expanded reports whether the overlay list is shown.
func (c *ControlsPanel) Expanded() bool {
	return c.expanded
}

// Contains reports whether a screen point is over the button row.
func (c *ControlsPanel) Contains(x, y int32) bool {
	w := int32(3*buttonWidth + 2*buttonGap)
	return x >= c.x && x <= c.x+w && y >= c.y && y <= c.y+buttonHeight
}

// Draw renders the buttons and returns the action pressed this frame.
func (c *ControlsPanel) Draw(running bool, overlays *OverlayRegistry) Action {
	action := ActionNone
	bx := float32(c.x)
	by := float32(c.y)

	if gui.Button(rl.Rectangle{X: bx, Y: by, Width: buttonWidth, Height: buttonHeight}, "Add Cow") {
		action = ActionAddCow
	}
	bx += buttonWidth + buttonGap
	if gui.Button(rl.Rectangle{X: bx, Y: by, Width: buttonWidth, Height: buttonHeight}, "Clear Pasture") {
		action = ActionClear
	}
	bx += buttonWidth + buttonGap
	if gui.Button(rl.Rectangle{X: bx, Y: by, Width: buttonWidth, Height: buttonHeight}, PauseLabel(running)) {
		action = ActionTogglePause
	}

	if c.expanded {
		c.drawOverlays(c.y+buttonHeight+buttonGap, overlays)
	}
	return action
}

// drawOverlays lists the overlay toggles by category.
func (c *ControlsPanel) drawOverlays(top int32, overlays *OverlayRegistry) {
	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	categories := overlays.Categories()
	totalItems := 0
	for _, cat := range categories {
		totalItems += len(overlays.ByCategory(cat)) + 1 // +1 for category header
	}
	panelHeight := int32(totalItems)*lineHeight + padding*3 + lineHeight // Extra for title

	r.DrawPanel(c.x, top, c.width, panelHeight)

	y := top + padding
	rl.DrawText("Overlays", c.x+padding, y, 16, rl.White)
	y += lineHeight + 4

	for _, category := range categories {
		rl.DrawText(categoryLabel(category), c.x+padding, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		y += lineHeight

		for _, desc := range overlays.ByCategory(category) {
			c.drawToggle(c.x+padding, y, desc, overlays.IsEnabled(desc.ID), c.width-padding*2)
			y += lineHeight
		}

		y += 4 // Gap between categories
	}
}

// drawToggle draws a single overlay toggle line.
func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	r := c.renderer

	statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
	if enabled {
		statusColor = rl.Color{R: 100, G: 200, B: 100, A: 255}
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)

	nameColor := r.Theme.LabelColor
	if enabled {
		nameColor = rl.White
	}
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, nameColor)

	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.Color{R: 150, G: 150, B: 150, A: 255})
	}
}

// categoryLabel returns a display label for a category.
func categoryLabel(cat string) string {
	switch cat {
	case "panels":
		return "Panels"
	case "games":
		return "Games"
	case "debug":
		return "Debug"
	default:
		return cat
	}
}
