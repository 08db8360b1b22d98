package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pasture/minigame"
)

// Board layout
const (
	holeSize    = 72
	holeGap     = 10
	boardCols   = 3
	boardHeader = 58
)

var (
	colorHoleEmpty = rl.Color{R: 92, G: 64, B: 51, A: 255}
	colorHoleCow   = rl.Color{R: 245, G: 245, B: 245, A: 255}
	colorFedFlash  = rl.Color{R: 120, G: 220, B: 120, A: 255}
)

// MinigamePanel draws the Feed-a-Cow board and routes clicks to the game.
type MinigamePanel struct {
	renderer *Renderer
	game     *minigame.Game
}

// NewMinigamePanel creates a panel for g.
func NewMinigamePanel(g *minigame.Game) *MinigamePanel {
	return &MinigamePanel{renderer: NewRenderer(), game: g}
}

// size returns the panel dimensions.
func (m *MinigamePanel) size() (int32, int32) {
	rows := (len(m.game.Holes()) + boardCols - 1) / boardCols
	pad := m.renderer.Theme.Padding
	w := int32(boardCols*holeSize+(boardCols-1)*holeGap) + pad*2
	h := boardHeader + int32(rows*holeSize+(rows-1)*holeGap) + pad*2 + buttonHeight + holeGap
	return w, h
}

// Contains reports whether a screen point is over the panel.
func (m *MinigamePanel) Contains(x, y, screenW, screenH int32) bool {
	w, h := m.size()
	px, py := (screenW-w)/2, (screenH-h)/2
	return x >= px && x <= px+w && y >= py && y <= py+h
}

// Draw renders the board centered on screen.
func (m *MinigamePanel) Draw(screenW, screenH int32) {
	r := m.renderer
	g := m.game
	w, h := m.size()
	px, py := (screenW-w)/2, (screenH-h)/2
	pad := r.Theme.Padding

	r.DrawPanel(px, py, w, h)
	rl.DrawText("Feed-a-Cow", px+pad, py+pad, 18, rl.White)
	rl.DrawText(
		fmt.Sprintf("Score: %d   Time: %ds   Best: %d", g.Score(), g.TimeLeft(), g.HighScore()),
		px+pad, py+pad+24, 14, r.Theme.LabelColor,
	)

	top := py + boardHeader
	for i, hole := range g.Holes() {
		col, row := int32(i%boardCols), int32(i/boardCols)
		rect := rl.Rectangle{
			X:      float32(px + pad + col*(holeSize+holeGap)),
			Y:      float32(top + pad + row*(holeSize+holeGap)),
			Width:  holeSize,
			Height: holeSize,
		}
		m.drawHole(i, rect, hole)
	}

	by := float32(py + h - pad - buttonHeight)
	label := "Start"
	if g.Active() {
		label = "Running..."
	}
	if gui.Button(rl.Rectangle{X: float32(px + pad), Y: by, Width: 110, Height: buttonHeight}, label) {
		g.Start()
	}
	if gui.Button(rl.Rectangle{X: float32(px + pad + 120), Y: by, Width: 110, Height: buttonHeight}, "Reset") {
		g.Reset()
	}
}

// drawHole renders one cell; clicking an up cow feeds it.
func (m *MinigamePanel) drawHole(i int, rect rl.Rectangle, hole minigame.Hole) {
	cx := int32(rect.X + rect.Width/2)
	cy := int32(rect.Y + rect.Height*0.7)

	switch hole.State {
	case minigame.HoleActive:
		if gui.Button(rect, "Moo!") {
			m.game.Feed(i)
		}
		rl.DrawEllipse(cx, cy-14, 18, 12, colorHoleCow)
		rl.DrawCircle(cx-6, cy-16, 3, rl.Black)
		rl.DrawCircle(cx+7, cy-12, 2, rl.Black)
	case minigame.HoleFed:
		flash := colorFedFlash
		flash.A = uint8(255 * hole.FlashAlpha())
		rl.DrawRectangleRec(rect, flash)
		rl.DrawText("Fed!", cx-14, cy-24, 16, rl.White)
	default:
		rl.DrawRectangleLinesEx(rect, 1, m.renderer.Theme.PanelBorder)
	}
	rl.DrawEllipse(cx, cy+10, 26, 8, colorHoleEmpty)
}
