package viewer

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// handleInput processes keyboard and mouse input.
func (v *Viewer) handleInput() {
	v.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	g := v.g
	if rl.IsKeyPressed(rl.KeySpace) {
		g.SetPaused(!g.Paused())
	}
	if rl.IsKeyPressed(rl.KeyN) {
		g.RequestStep()
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) {
		g.SetStepsPerUpdate(g.StepsPerUpdate() - 1)
	}
	if rl.IsKeyPressed(rl.KeyPeriod) {
		g.SetStepsPerUpdate(g.StepsPerUpdate() + 1)
	}

	if rl.IsKeyPressed(rl.KeyLeftBracket) && g.Substeps() > 1 {
		v.setSubsteps(g.Substeps() - 1)
	}
	if rl.IsKeyPressed(rl.KeyRightBracket) {
		v.setSubsteps(g.Substeps() + 1)
	}

	if rl.IsKeyPressed(rl.KeyT) {
		v.toggleBounds()
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		v.controls.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		v.showPerf = !v.showPerf
	}
	v.overlays.HandleKeys()

	v.handleCameraInput()
	v.handleSelection()
}

func (v *Viewer) setSubsteps(n int) {
	if err := v.g.SetSubsteps(n); err != nil {
		slog.Warn("substeps rejected", "substeps", n, "error", err)
	}
}

func (v *Viewer) toggleBounds() {
	if err := v.g.SetBoundsEnabled(!v.g.BoundsEnabled()); err != nil {
		slog.Warn("bounds toggle rejected", "error", err)
	}
}

// handleResize checks for window resize and propagates new dimensions.
func (v *Viewer) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == v.screenWidth && h == v.screenHeight {
		return
	}
	v.screenWidth = w
	v.screenHeight = h
	v.camera.Resize(w, h)
	v.layout()
}

// handleCameraInput processes camera pan/zoom controls.
func (v *Viewer) handleCameraInput() {
	cam := v.camera

	// Pan speed scales inversely with zoom for natural feel
	panSpeed := float32(8.0) / cam.Zoom

	if rl.IsKeyDown(rl.KeyRight) || rl.IsKeyDown(rl.KeyD) {
		cam.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) || rl.IsKeyDown(rl.KeyA) {
		cam.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) || rl.IsKeyDown(rl.KeyS) {
		cam.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) || rl.IsKeyDown(rl.KeyW) {
		cam.Pan(0, -panSpeed)
	}

	// Middle-drag pans by the mouse delta.
	if rl.IsMouseButtonDown(rl.MouseButtonMiddle) {
		d := rl.GetMouseDelta()
		cam.Pan(-d.X/cam.Zoom, -d.Y/cam.Zoom)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		cam.ZoomBy(1 + wheel*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		cam.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		cam.ZoomBy(0.8)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		cam.Reset()
	}
}

// handleSelection selects the body under a left click and clears the
// selection on right click or Escape. Clicks on panels are ignored.
func (v *Viewer) handleSelection() {
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) || rl.IsKeyPressed(rl.KeyEscape) {
		v.g.ClearSelection()
		return
	}
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}

	mouse := rl.GetMousePosition()
	if v.overPanel(mouse) {
		return
	}
	wx, wy := v.camera.ScreenToWorld(mouse.X, mouse.Y)
	if e, ok := v.g.Pick(wx, wy); ok {
		v.g.Select(e)
	} else {
		v.g.ClearSelection()
	}
}

// overPanel reports whether a screen point is over the sim panel or the
// inspector as last drawn.
func (v *Viewer) overPanel(p rl.Vector2) bool {
	for _, r := range v.panelRects {
		if rl.CheckCollisionPointRec(p, r) {
			return true
		}
	}
	return false
}
