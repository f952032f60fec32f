// Package viewer is the windowed front end: it owns the camera and panels,
// turns raylib input into game calls, and draws each frame.
package viewer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tickphys/camera"
	"github.com/pthm-cable/tickphys/game"
	"github.com/pthm-cable/tickphys/renderer"
	"github.com/pthm-cable/tickphys/ui"
)

const controlsLegend = "[Space] pause  [N] step  [,/.] speed  [[/]] substeps  [T] bounds  [Tab] overlays  [P] perf  [Home] camera  [Click] select"

// Viewer renders a game in a raylib window.
type Viewer struct {
	g *game.Game

	camera     *camera.Camera
	background *renderer.BackgroundRenderer
	world      *renderer.WorldRenderer

	overlays  *ui.OverlayRegistry
	hud       *ui.HUD
	controls  *ui.ControlsPanel
	simPanel  *ui.SimPanel
	perfPanel *ui.PerfPanel
	inspector *ui.InspectorPanel
	showPerf  bool

	// Screen areas of the panels drawn last frame, for click filtering
	panelRects []rl.Rectangle

	screenWidth, screenHeight float32
}

// New creates a viewer for g. The raylib window must already be open.
func New(g *game.Game) *Viewer {
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())

	arena := g.Arena()
	cam := camera.New(w, h, camera.Rect{
		MinX: float32(arena.XMin),
		MinY: float32(arena.YMin),
		MaxX: float32(arena.XMax),
		MaxY: float32(arena.YMax),
	})

	v := &Viewer{
		g:            g,
		camera:       cam,
		background:   renderer.NewBackgroundRenderer(cam, 50, 14, 18, 26),
		world:        renderer.NewWorldRenderer(cam),
		overlays:     ui.NewOverlayRegistry(),
		hud:          ui.NewHUD(),
		controls:     ui.NewControlsPanel(10, 100, 220),
		simPanel:     ui.NewSimPanel(0, 0, 240),
		perfPanel:    ui.NewPerfPanel(0, 0),
		inspector:    ui.NewInspectorPanel(0, 0, 280),
		screenWidth:  w,
		screenHeight: h,
	}
	v.layout()
	return v
}

// Run drives update and draw until the window closes or maxTicks is reached
// (0 = unlimited).
func (v *Viewer) Run(maxTicks uint64) error {
	for !rl.WindowShouldClose() {
		v.handleInput()

		if err := v.g.Update(float64(rl.GetFrameTime())); err != nil {
			return err
		}

		v.Draw()

		if maxTicks > 0 && v.g.Tick() >= maxTicks {
			break
		}
	}
	return nil
}

// layout positions the right-hand panels for the current screen size.
func (v *Viewer) layout() {
	w, h := int32(v.screenWidth), int32(v.screenHeight)
	x, y := ui.Place(ui.AnchorTopRight, 240, v.simPanel.Height(), w, h, 10)
	v.simPanel.SetPosition(x, y)
	v.inspector.SetPosition(w-v.inspector.Width()-10, y+v.simPanel.Height()+10)
	v.perfPanel.SetPosition(10, h-200)
}
