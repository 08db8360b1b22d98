package camera

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.01
}

func TestNew(t *testing.T) {
	cam := New(1600, 1000, 800, 500)

	// Should be centered on the canvas at the fit-to-window zoom
	if cam.X != 400 || cam.Y != 250 {
		t.Errorf("expected camera at (400, 250), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 2 {
		t.Errorf("expected zoom 2, got %f", cam.Zoom)
	}
	if cam.Zoomed() {
		t.Error("fresh camera should not report zoomed")
	}
}

func TestWorldToScreenFit(t *testing.T) {
	cam := New(800, 500, 800, 500)

	// At 1:1 the canvas maps straight onto the window
	tests := []struct{ wx, wy float32 }{
		{0, 0},
		{400, 250},
		{799, 499},
	}
	for _, tc := range tests {
		sx, sy := cam.WorldToScreen(tc.wx, tc.wy)
		if !near(sx, tc.wx) || !near(sy, tc.wy) {
			t.Errorf("WorldToScreen(%v, %v) = (%v, %v)", tc.wx, tc.wy, sx, sy)
		}
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(800, 500, 800, 500)
	cam.ZoomAt(300, 200, 2.5)

	testCases := []struct{ sx, sy float32 }{
		{400, 250}, // center
		{100, 100}, // top-left
		{700, 450}, // near bottom-right
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if !near(sx, tc.sx) || !near(sy, tc.sy) {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestPanClampsToCanvas(t *testing.T) {
	cam := New(800, 500, 800, 500)

	// At fit zoom there is nowhere to pan
	cam.Pan(-200, 50)
	if cam.X != 400 || cam.Y != 250 {
		t.Errorf("fit view moved to (%f, %f)", cam.X, cam.Y)
	}

	cam.SetZoom(2)
	cam.Pan(-10000, -10000)
	minX, minY, _, _ := cam.VisibleWorldBounds()
	if !near(minX, 0) || !near(minY, 0) {
		t.Errorf("pan past top-left shows (%f, %f), want (0, 0)", minX, minY)
	}

	cam.Pan(10000, 10000)
	_, _, maxX, maxY := cam.VisibleWorldBounds()
	if !near(maxX, 800) || !near(maxY, 500) {
		t.Errorf("pan past bottom-right shows (%f, %f), want (800, 500)", maxX, maxY)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(800, 500, 800, 500)

	if cam.MinZoom != 1 || cam.MaxZoom != 4 {
		t.Errorf("zoom range = [%f, %f], want [1, 4]", cam.MinZoom, cam.MaxZoom)
	}

	cam.SetZoom(0.1) // Below min
	if cam.Zoom != 1 {
		t.Errorf("expected zoom clamped to 1, got %f", cam.Zoom)
	}

	cam.SetZoom(10.0) // Above max
	if cam.Zoom != 4 {
		t.Errorf("expected zoom clamped to 4, got %f", cam.Zoom)
	}
}

func TestMinZoomFitsTighterAxis(t *testing.T) {
	// A window wider than the canvas aspect fits on height
	cam := New(1200, 500, 800, 500)

	if !near(cam.MinZoom, 1) {
		t.Errorf("expected MinZoom 1, got %f", cam.MinZoom)
	}

	// The narrow axis stays centered
	cam.Pan(300, 0)
	if cam.X != 400 {
		t.Errorf("narrow axis moved to %f", cam.X)
	}
}

func TestZoomAtKeepsCursorPoint(t *testing.T) {
	cam := New(800, 500, 800, 500)

	wx, wy := cam.ScreenToWorld(400, 250)
	cam.ZoomAt(400, 250, 2)
	sx, sy := cam.WorldToScreen(wx, wy)
	if !near(sx, 400) || !near(sy, 250) {
		t.Errorf("point under cursor moved to (%f, %f)", sx, sy)
	}
	if !cam.Zoomed() {
		t.Error("expected Zoomed after ZoomAt")
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(800, 500, 800, 500)
	cam.SetZoom(4)

	// Centered, visible range is (300, 187.5) to (500, 312.5)
	if !cam.IsVisible(390, 240, 20, 20) {
		t.Error("center rect should be visible")
	}
	if cam.IsVisible(20, 20, 80, 85) {
		t.Error("corner sprite should not be visible")
	}
	if !cam.IsVisible(250, 250, 80, 10) {
		t.Error("rect overlapping the left edge should be visible")
	}
}

func TestResizeKeepsZoomInRange(t *testing.T) {
	cam := New(800, 500, 800, 500)
	cam.Resize(1600, 1000)

	if cam.MinZoom != 2 {
		t.Errorf("MinZoom after resize = %f, want 2", cam.MinZoom)
	}
	if cam.Zoom != 2 {
		t.Errorf("Zoom after resize = %f, want 2", cam.Zoom)
	}
}

func TestReset(t *testing.T) {
	cam := New(800, 500, 800, 500)
	cam.ZoomAt(100, 100, 3)

	cam.Reset()

	if cam.X != 400 || cam.Y != 250 {
		t.Errorf("expected position (400, 250), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1 {
		t.Errorf("expected zoom 1, got %f", cam.Zoom)
	}
}
