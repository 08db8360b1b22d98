package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// handleInput processes keyboard and mouse input.
func (a *App) handleInput() {
	// Window resize propagation
	a.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		switch key {
		case rl.KeySpace:
			a.pasture.Toggle()
		case rl.KeyA:
			a.addCow()
		case rl.KeyC:
			a.pasture.Clear()
		case rl.KeyO:
			a.controls.Toggle()
		case rl.KeyS:
			a.saveSnapshot()
		default:
			a.overlays.HandleKeyPress(key)
		}
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && a.stepsPerUpdate > 1 {
		a.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && a.stepsPerUpdate < 10 {
		a.stepsPerUpdate++
	}

	a.handleCameraInput()
	a.handleMouse()
}

// handleMouse routes a click to the topmost panel under the cursor, falling
// through to the inspector.
func (a *App) handleMouse() {
	mx, my := rl.GetMouseX(), rl.GetMouseY()
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		if a.controls.Contains(mx, my) {
			return
		}
		if a.board != nil && a.overlays.IsEnabled(OverlayMinigame) &&
			a.board.Contains(mx, my, a.screenWidth, a.screenHeight) {
			return
		}
		if a.overlays.IsEnabled(OverlayHistory) && a.history.HandleInput() {
			return
		}
	}
	a.inspector.HandleInput(a.pasture, a.camera)
}

// handleResize checks for window resize and propagates new dimensions.
func (a *App) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := int32(rl.GetScreenWidth())
	h := int32(rl.GetScreenHeight())
	if w == a.screenWidth && h == a.screenHeight {
		return
	}
	a.screenWidth = w
	a.screenHeight = h

	a.camera.Resize(float32(w), float32(h))
	a.history.Resize(w, h)
	a.inspector.Resize(w)
}

// handleCameraInput processes camera pan/zoom controls.
func (a *App) handleCameraInput() {
	// Pan speed scales inversely with zoom for natural feel
	panSpeed := float32(8.0) / a.camera.Zoom

	if rl.IsKeyDown(rl.KeyRight) {
		a.camera.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		a.camera.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		a.camera.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		a.camera.Pan(0, -panSpeed)
	}

	// Zoom toward the cursor with the mouse wheel
	if wheelMove := rl.GetMouseWheelMove(); wheelMove != 0 {
		mouse := rl.GetMousePosition()
		a.camera.ZoomAt(mouse.X, mouse.Y, 1+wheelMove*0.1)
	}

	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		a.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		a.camera.ZoomBy(0.8)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		a.camera.Reset()
	}
}
