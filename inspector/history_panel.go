package inspector

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pasture/telemetry"
)

// Graph colors
var (
	colorHistoryTitle   = rl.Color{R: 200, G: 200, B: 220, A: 255}
	colorHistoryPanelBg = rl.Color{R: 20, G: 20, B: 30, A: 230}
	colorGraphBg        = rl.Color{R: 15, G: 15, B: 25, A: 255}
	colorGraphGrid      = rl.Color{R: 40, G: 40, B: 50, A: 255}
	colorGraphBorder    = rl.Color{R: 60, G: 60, B: 70, A: 255}
)

var seriesColors = [telemetry.NumSeries]rl.Color{
	telemetry.SeriesGrazers:         {R: 245, G: 245, B: 245, A: 255}, // White
	telemetry.SeriesGrazingFraction: {R: 80, G: 180, B: 80, A: 255},   // Green
	telemetry.SeriesJumps:           {R: 255, G: 150, B: 80, A: 255},  // Orange
	telemetry.SeriesSpeed:           {R: 100, G: 149, B: 237, A: 255}, // Cornflower blue
	telemetry.SeriesGrass:           {R: 173, G: 255, B: 47, A: 255},  // Green-yellow
	telemetry.SeriesStars:           {R: 255, G: 255, B: 140, A: 255}, // Pale yellow
}

// HistoryPanel graphs recent stats windows along the bottom of the screen.
type HistoryPanel struct {
	history *telemetry.History

	panelWidth  int32
	panelHeight int32
	panelX      int32
	panelY      int32

	// Series visibility (toggled by clicking legend)
	seriesVisible [telemetry.NumSeries]bool

	scratch []float64
}

// NewHistoryPanel creates a panel drawing the given history.
func NewHistoryPanel(history *telemetry.History, screenWidth, screenHeight int32) *HistoryPanel {
	p := &HistoryPanel{
		history:     history,
		panelHeight: 170,
		panelX:      10,
	}
	p.Resize(screenWidth, screenHeight)

	p.seriesVisible = [telemetry.NumSeries]bool{
		telemetry.SeriesGrazers:         true,
		telemetry.SeriesGrazingFraction: true,
		telemetry.SeriesJumps:           true,
	}
	return p
}

// Resize updates panel dimensions when the window is resized.
func (p *HistoryPanel) Resize(screenWidth, screenHeight int32) {
	p.panelWidth = screenWidth - 20
	p.panelY = screenHeight - p.panelHeight - 10
}

// HandleInput toggles series by clicking their legend entries. It reports
// whether the click was consumed.
func (p *HistoryPanel) HandleInput() bool {
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return false
	}

	mx := rl.GetMouseX()
	my := rl.GetMouseY()
	if mx < p.panelX || mx > p.panelX+p.panelWidth || my < p.panelY || my > p.panelY+p.panelHeight {
		return false
	}

	legendY := p.panelY + p.panelHeight - 24
	legendX := p.panelX + 10
	for i := 0; i < telemetry.NumSeries; i++ {
		itemX := legendX + int32(i)*90
		if mx >= itemX && mx < itemX+85 && my >= legendY && my < legendY+18 {
			p.seriesVisible[i] = !p.seriesVisible[i]
			break
		}
	}
	return true
}

// Draw renders the panel.
func (p *HistoryPanel) Draw() {
	rl.DrawRectangle(p.panelX, p.panelY, p.panelWidth, p.panelHeight, colorHistoryPanelBg)
	rl.DrawRectangleLines(p.panelX, p.panelY, p.panelWidth, p.panelHeight, colorGraphBorder)
	rl.DrawText("HERD HISTORY", p.panelX+10, p.panelY+6, 14, colorHistoryTitle)

	if p.history.Len() == 0 {
		rl.DrawText("Waiting for the first stats window...", p.panelX+140, p.panelY+70, 14, ColorTextDim)
		return
	}

	graphX := p.panelX + 10
	graphY := p.panelY + 24
	graphW := p.panelWidth - 20
	graphH := p.panelHeight - 54

	p.drawGraph(graphX, graphY, graphW, graphH)
	p.drawLegend(p.panelX+10, p.panelY+p.panelHeight-24)
}

// drawGraph renders each visible series scaled to its own range.
func (p *HistoryPanel) drawGraph(x, y, w, h int32) {
	rl.DrawRectangle(x, y, w, h, colorGraphBg)
	rl.DrawRectangleLines(x, y, w, h, colorGraphBorder)

	for i := int32(1); i < 4; i++ {
		gridY := y + (h * i / 4)
		rl.DrawLine(x, gridY, x+w, gridY, colorGraphGrid)
	}
	for i := int32(1); i < 6; i++ {
		gridX := x + (w * i / 6)
		rl.DrawLine(gridX, y, gridX, y+h, colorGraphGrid)
	}

	if p.history.Len() < 2 {
		return
	}
	for s := 0; s < telemetry.NumSeries; s++ {
		if p.seriesVisible[s] {
			p.drawSeriesLine(x, y, w, h, s)
		}
	}
}

// drawSeriesLine draws one series as a polyline.
func (p *HistoryPanel) drawSeriesLine(x, y, w, h int32, series int) {
	p.scratch = p.history.Series(series, p.scratch)
	minVal, maxVal := p.history.Range(series)
	valueRange := maxVal - minVal
	n := len(p.scratch)

	var prevX, prevY int32
	for i, v := range p.scratch {
		px := x + int32(float64(i)*float64(w)/float64(n-1))
		py := y + h - int32((v-minVal)/valueRange*float64(h))
		if py < y {
			py = y
		}
		if py > y+h {
			py = y + h
		}
		if i > 0 {
			rl.DrawLine(prevX, prevY, px, py, seriesColors[series])
		}
		prevX, prevY = px, py
	}
}

// drawLegend draws the clickable legend with each series' latest value.
func (p *HistoryPanel) drawLegend(x, y int32) {
	for i := 0; i < telemetry.NumSeries; i++ {
		itemX := x + int32(i)*90
		color := seriesColors[i]
		textColor := ColorText
		if !p.seriesVisible[i] {
			color.A = 80
			textColor = ColorTextDim
		}

		rl.DrawRectangle(itemX, y+2, 10, 10, color)
		label := fmt.Sprintf("%s %s", telemetry.SeriesNames[i], formatValue(p.history.Latest(i)))
		rl.DrawText(label, itemX+14, y, 11, textColor)
	}

	hintX := x + int32(telemetry.NumSeries)*90 + 10
	rl.DrawText("(click to toggle)", hintX, y, 10, ColorTextDim)
}

// formatValue formats a series value compactly.
func formatValue(v float64) string {
	if v >= 100 {
		return fmt.Sprintf("%.0f", v)
	}
	if v >= 10 {
		return fmt.Sprintf("%.1f", v)
	}
	return fmt.Sprintf("%.2f", v)
}
