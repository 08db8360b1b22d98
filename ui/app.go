package ui

import (
	"fmt"
	"image"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pasture/camera"
	"github.com/pthm-cable/pasture/game"
	"github.com/pthm-cable/pasture/inspector"
	"github.com/pthm-cable/pasture/minigame"
	"github.com/pthm-cable/pasture/notice"
	"github.com/pthm-cable/pasture/renderer"
	"github.com/pthm-cable/pasture/telemetry"
)

const controlsLegend = "[A] Add  [C] Clear  [Space] Pause  [Tab] Feed-a-Cow  [O] Overlays  [S] Snapshot  [Arrows/Wheel] Camera  [Home] Reset view"

// AppOptions wires the window to the simulation and its collaborators.
type AppOptions struct {
	Title          string
	Pasture        *game.Pasture
	HUD            *HUD // the pasture's Display
	Notices        *notice.Board
	Minigame       *minigame.Game
	History        *telemetry.History
	Output         *telemetry.OutputManager // nil disables snapshots
	Sprite         image.Image              // nil skips grazers
	StepsPerUpdate int
}

// App drives the window: input, simulation updates and drawing.
type App struct {
	title          string
	pasture        *game.Pasture
	hud            *HUD
	notices        *notice.Board
	minigame       *minigame.Game
	output         *telemetry.OutputManager
	stepsPerUpdate int

	screenWidth  int32
	screenHeight int32

	camera    *camera.Camera
	canvas    *RaylibCanvas
	scene     *renderer.Scene
	renderer  *Renderer
	overlays  *OverlayRegistry
	controls  *ControlsPanel
	herdPanel PanelDescriptor
	perfPanel *PerfPanel
	history   *inspector.HistoryPanel
	inspector *inspector.Inspector
	board     *MinigamePanel
}

// NewApp builds the window UI. Must be called after rl.InitWindow.
func NewApp(opts AppOptions) *App {
	cfg := opts.Pasture.Config()
	w := int32(rl.GetScreenWidth())
	h := int32(rl.GetScreenHeight())

	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}
	history := opts.History
	if history == nil {
		history = &telemetry.History{}
	}

	cam := camera.New(float32(w), float32(h), float32(cfg.Derived.CanvasW), float32(cfg.Derived.CanvasH))

	a := &App{
		title:          opts.Title,
		pasture:        opts.Pasture,
		hud:            opts.HUD,
		notices:        opts.Notices,
		minigame:       opts.Minigame,
		output:         opts.Output,
		stepsPerUpdate: steps,
		screenWidth:    w,
		screenHeight:   h,
		camera:         cam,
		canvas:         NewRaylibCanvas(cam, opts.Sprite),
		scene:          renderer.NewScene(cfg),
		renderer:       NewRenderer(),
		overlays:       NewOverlayRegistry(),
		controls:       NewControlsPanel(10, 10, 220),
		herdPanel:      HerdPanelDescriptor(),
		perfPanel:      NewPerfPanel(10, 140),
		history:        inspector.NewHistoryPanel(history, w, h),
		inspector:      inspector.NewInspector(w),
	}
	if a.hud == nil {
		a.hud = NewHUD()
	}
	if a.notices == nil {
		a.notices = notice.New(cfg.Notice.Duration, cfg.Notice.Fade)
	}
	if a.minigame != nil {
		a.board = NewMinigamePanel(a.minigame)
	}
	return a
}

// Update handles input and advances the simulation, the notices and the
// mini game by one frame.
func (a *App) Update() {
	a.handleInput()

	for i := 0; i < a.stepsPerUpdate; i++ {
		a.pasture.Update()
	}

	dt := float64(rl.GetFrameTime())
	a.notices.Update(dt)
	if a.minigame != nil {
		a.minigame.Update(dt)
	}
	a.inspector.Sync(a.pasture)
	a.pasture.PerfCollector().RecordFrame()
}

// Draw renders the frame.
func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	a.scene.Draw(a.canvas, a.pasture)
	if a.overlays.IsEnabled(OverlayBounds) {
		a.drawBounds()
	}
	sprite := a.pasture.Config().Sprite
	a.inspector.DrawSelectionHighlight(a.camera, sprite.Width, sprite.Height)

	a.drawUI()

	rl.EndDrawing()
}

// drawUI draws the panels over the scene.
func (a *App) drawUI() {
	high := 0
	if a.minigame != nil {
		high = a.minigame.HighScore()
	}
	a.hud.Draw(HUDData{
		Title:        a.title,
		Tick:         a.pasture.Tick(),
		FPS:          rl.GetFPS(),
		Running:      a.pasture.Running(),
		MinigameHigh: high,
		Zoom:         a.camera.Zoom,
		ScreenWidth:  a.screenWidth,
	})

	if a.overlays.IsEnabled(OverlayHerdStats) {
		a.renderer.DrawPanelDescriptor(a.herdPanel, a.pasture.Summary(), a.screenWidth, a.screenHeight)
	}
	if a.overlays.IsEnabled(OverlayPerf) {
		a.perfPanel.Draw(a.pasture.PerfCollector().Stats())
	}
	if a.overlays.IsEnabled(OverlayHistory) {
		a.history.Draw()
	}
	if a.board != nil && a.overlays.IsEnabled(OverlayMinigame) {
		a.board.Draw(a.screenWidth, a.screenHeight)
	}

	a.inspector.Draw(float64(a.pasture.Config().Screen.TargetFPS))
	a.renderer.DrawToasts(a.notices.Visible(), a.screenWidth)

	switch a.controls.Draw(a.pasture.Running(), a.overlays) {
	case ActionAddCow:
		a.addCow()
	case ActionClear:
		a.pasture.Clear()
	case ActionTogglePause:
		a.pasture.Toggle()
	}

	a.hud.DrawControls(a.screenWidth, a.screenHeight, controlsLegend)
}

// drawBounds marks the ground line, resting line and reflection margins.
func (a *App) drawBounds() {
	d := a.pasture.Config().Derived
	spriteW := a.pasture.Config().Sprite.Width

	hline := func(y float64, col rl.Color, label string) {
		x0, sy := a.camera.WorldToScreen(0, float32(y))
		x1, _ := a.camera.WorldToScreen(float32(d.CanvasW), float32(y))
		rl.DrawLineEx(rl.Vector2{X: x0, Y: sy}, rl.Vector2{X: x1, Y: sy}, 1, col)
		rl.DrawText(label, int32(x0)+4, int32(sy)-12, 10, col)
	}
	vline := func(x float64, col rl.Color) {
		sx, y0 := a.camera.WorldToScreen(float32(x), 0)
		_, y1 := a.camera.WorldToScreen(float32(x), float32(d.CanvasH))
		rl.DrawLineEx(rl.Vector2{X: sx, Y: y0}, rl.Vector2{X: sx, Y: y1}, 1, col)
	}

	hline(d.GroundY, rl.Yellow, "ground")
	hline(d.BaseY, rl.Orange, "resting top")
	vline(d.MinX, rl.Red)
	vline(d.MaxX+spriteW, rl.Red)
}

// addCow adds a grazer; a full pasture has already posted its notice.
func (a *App) addCow() {
	if err := a.pasture.AddGrazer(); err != nil {
		slog.Debug("add refused", "error", err)
	}
}

// saveSnapshot writes the pasture state to the output directory.
func (a *App) saveSnapshot() {
	if a.output == nil {
		a.notices.Notify("Snapshots need -output-dir")
		return
	}
	path, err := a.output.WriteSnapshot(a.pasture.Snapshot())
	if err != nil {
		slog.Error("snapshot failed", "error", err)
		a.notices.Notify("Snapshot failed")
		return
	}
	a.notices.Notify(fmt.Sprintf("Saved %s", path))
}

// Unload releases GPU resources.
func (a *App) Unload() {
	a.canvas.Unload()
}
