// Palette preview tool - renders the pasture at a chosen hour with sliders.
//
// Usage: go run ./cmd/palettepreview
package main

import (
	"fmt"
	"log/slog"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pasture/assets"
	"github.com/pthm-cable/pasture/camera"
	"github.com/pthm-cable/pasture/clock"
	"github.com/pthm-cable/pasture/config"
	"github.com/pthm-cable/pasture/game"
	"github.com/pthm-cable/pasture/renderer"
	"github.com/pthm-cable/pasture/ui"
)

const (
	windowWidth   = 1000
	windowHeight  = 600
	previewWidth  = 640
	previewHeight = 400
	panelWidth    = windowWidth - previewWidth - 30
)

// PreviewParams holds the scene settings driven by the sliders.
type PreviewParams struct {
	Hour int
	Cows int
	Seed int64
}

func defaultParams() PreviewParams {
	return PreviewParams{Hour: 12, Cows: 3, Seed: 12345}
}

func main() {
	cfg := config.Default()

	sprite, err := assets.Sprite("")
	if err != nil {
		slog.Error("failed to load sprite", "error", err)
		os.Exit(1)
	}

	rl.InitWindow(windowWidth, windowHeight, "Pasture Palette Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	cam := camera.New(previewWidth, previewHeight, float32(cfg.Derived.CanvasW), float32(cfg.Derived.CanvasH))
	canvas := ui.NewRaylibCanvas(cam, sprite)
	defer canvas.Unload()
	scene := renderer.NewScene(cfg)

	params := defaultParams()
	pasture := buildPasture(cfg, params)
	animating := false
	needsRebuild := false

	for !rl.WindowShouldClose() {
		if needsRebuild {
			pasture = buildPasture(cfg, params)
			needsRebuild = false
		}
		if animating {
			pasture.Step()
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Preview
		rl.BeginScissorMode(10, 10, previewWidth, previewHeight)
		rl.PushMatrix()
		rl.Translatef(10, 10, 0)
		scene.Draw(canvas, pasture)
		rl.PopMatrix()
		rl.EndScissorMode()
		rl.DrawRectangleLines(10, 10, previewWidth, previewHeight, rl.DarkGray)

		reading := pasture.Reading()
		statsY := int32(previewHeight + 25)
		rl.DrawText(fmt.Sprintf("Phase: %s  Behavior: %s  Label: %s", reading.Phase, dayText(reading.Day), reading.Label), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Tick: %d  Cows: %d", pasture.Tick(), pasture.Population()), 15, statsY+20, 16, rl.DarkGray)
		drawPhaseStrip(15, statsY+50)

		// Control panel
		panelX := float32(previewWidth + 20)
		panelY := float32(10)

		rl.DrawText("Pasture Preview", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		// Hour slider
		rl.DrawText("Hour (pasture time zone)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newHour := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "23",
			float32(params.Hour), 0, 23,
		)
		rl.DrawText(fmt.Sprintf("%d", params.Hour), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if int(newHour) != params.Hour {
			params.Hour = int(newHour)
			needsRebuild = true
		}
		panelY += 35

		// Cows slider
		rl.DrawText("Initial cows", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newCows := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", fmt.Sprintf("%d", cfg.Pasture.MaxGrazers),
			float32(params.Cows), 0, float32(cfg.Pasture.MaxGrazers),
		)
		rl.DrawText(fmt.Sprintf("%d", params.Cows), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if int(newCows) != params.Cows {
			params.Cows = int(newCows)
			needsRebuild = true
		}
		panelY += 35

		// Seed slider
		rl.DrawText("Seed", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newSeed := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "99999",
			float32(params.Seed), 0, 99999,
		)
		rl.DrawText(fmt.Sprintf("%d", params.Seed), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if int64(newSeed) != params.Seed {
			params.Seed = int64(newSeed)
			needsRebuild = true
		}
		panelY += 45

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(animating, "Stop", "Animate")) {
			animating = !animating
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaultParams()
			needsRebuild = true
		}
		panelY += 55

		// Palette swatches for the selected phase
		pal := reading.Phase.Palette()
		rl.DrawText("Palette:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		drawSwatch(int32(panelX), int32(panelY), "sky", pal.Sky.R, pal.Sky.G, pal.Sky.B)
		panelY += 22
		drawSwatch(int32(panelX), int32(panelY), "ground", pal.Ground.R, pal.Ground.G, pal.Ground.B)

		rl.DrawText("Press C to copy the hour to clipboard as -hour flag", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(fmt.Sprintf("-hour %d -seed %d", params.Hour, params.Seed))
		}

		rl.EndDrawing()
	}
}

// buildPasture creates a pasture pinned to the preview hour.
func buildPasture(base *config.Config, params PreviewParams) *game.Pasture {
	cfg := *base
	cfg.Pasture.InitialGrazers = params.Cows
	return game.New(game.Options{
		Config: &cfg,
		Seed:   params.Seed,
		Clock:  clock.New(clock.FixedHour(params.Hour)),
	})
}

// drawPhaseStrip draws one cell per hour colored by its sky palette, with a
// tick under the behavior daytime hours.
func drawPhaseStrip(x, y int32) {
	const cell = 24
	for h := 0; h < 24; h++ {
		sky := clock.PhaseForHour(h).Palette().Sky
		cx := x + int32(h)*cell
		rl.DrawRectangle(cx, y, cell-2, cell, rl.Color{R: sky.R, G: sky.G, B: sky.B, A: 255})
		rl.DrawText(fmt.Sprintf("%d", h), cx+2, y+cell+2, 10, rl.Gray)
		if clock.IsDaytime(h) {
			rl.DrawRectangle(cx, y+cell+14, cell-2, 3, rl.Orange)
		}
	}
}

func drawSwatch(x, y int32, label string, r, g, b uint8) {
	rl.DrawRectangle(x, y, 16, 16, rl.Color{R: r, G: g, B: b, A: 255})
	rl.DrawRectangleLines(x, y, 16, 16, rl.DarkGray)
	rl.DrawText(fmt.Sprintf("%s #%02X%02X%02X", label, r, g, b), x+24, y, 14, rl.DarkGray)
}

func dayText(day bool) string {
	return toggleText(day, "day", "night")
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
