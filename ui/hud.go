package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pasture/telemetry"
)

// HUD renders the pasture counters and status line. It receives counter
// updates from the simulation as a game.Display.
type HUD struct {
	renderer   *Renderer
	population int
	clock      string
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
		clock:    "--:--",
	}
}

// SetPopulation updates the cow counter.
func (h *HUD) SetPopulation(n int) {
	h.population = n
}

// SetClock updates the clock label.
func (h *HUD) SetClock(label string) {
	h.clock = label
}

// CowLabel is the population counter text.
func CowLabel(n int) string {
	if n == 1 {
		return "1 cow"
	}
	return fmt.Sprintf("%d cows", n)
}

// HUDData holds the per-frame values the HUD shows besides its counters.
type HUDData struct {
	Title        string
	Tick         int32
	FPS          int32
	Running      bool
	MinigameHigh int
	Zoom         float32
	ScreenWidth  int32
}

// Draw renders the counters in the top-right corner and the status line.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer

	counters := fmt.Sprintf("%s  |  %s", CowLabel(h.population), h.clock)
	w := rl.MeasureText(counters, 20) + r.Theme.Padding*2
	x := data.ScreenWidth - w - r.Theme.Margin
	r.DrawPanel(x, r.Theme.Margin, w, 32)
	rl.DrawText(counters, x+r.Theme.Padding, r.Theme.Margin+6, 20, rl.White)

	y := int32(48)
	rl.DrawText(data.Title, 10, y, 20, rl.White)
	y += 24

	rl.DrawText(
		fmt.Sprintf("Tick: %d | FPS: %d | Zoom: %.2fx | Best feed: %d", data.Tick, data.FPS, data.Zoom, data.MinigameHigh),
		10, y, 14, rl.LightGray,
	)
	y += 18

	statusText := "Running"
	if !data.Running {
		statusText = "PAUSED"
	}
	rl.DrawText(statusText, 10, y, 16, rl.Yellow)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the per-phase step timing panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	r := p.renderer
	phases := telemetry.Phases()
	height := int32(len(phases))*14 + 20 + 16*2 + r.Theme.Padding*2
	r.DrawPanel(p.x, p.y, 320, height)

	x := p.x + r.Theme.Padding
	y := p.y + r.Theme.Padding

	rl.DrawText("Step Timing", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Avg: %s  P95: %s  Max: %s",
		stats.AvgTickDuration.Round(time.Microsecond),
		stats.P95TickDuration.Round(time.Microsecond),
		stats.MaxTickDuration.Round(time.Microsecond)), x, y, 14, rl.Yellow)
	y += 16
	rl.DrawText(fmt.Sprintf("Ticks/s: %.0f  FPS: %.0f", stats.TicksPerSecond, stats.FPS), x, y, 14, rl.LightGray)
	y += 16

	for _, name := range phases {
		pct := stats.PhasePct[name]

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", name, stats.PhaseAvg[name].Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
