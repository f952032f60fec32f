package viewer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/tickphys/components"
	"github.com/pthm-cable/tickphys/inspector"
	"github.com/pthm-cable/tickphys/physics"
	"github.com/pthm-cable/tickphys/ui"
)

// Draw renders one frame.
func (v *Viewer) Draw() {
	v.g.RecordFrame()

	rl.BeginDrawing()

	v.background.Draw(v.overlays.IsEnabled(ui.OverlayGrid))

	if v.overlays.IsEnabled(ui.OverlayBounds) {
		v.world.DrawBounds(v.g.Arena(), v.g.BoundsEnabled())
	}

	floating := v.drawBodies()

	engine := v.g.Engine()
	if v.overlays.IsEnabled(ui.OverlayCollisionPairs) {
		v.world.DrawCollisions(v.g.LastCollisions(), engine.Store())
	}
	if v.overlays.IsEnabled(ui.OverlayVelocity) {
		dt := engine.Settings().DT
		engine.Store().Each(func(b physics.Body) {
			v.world.DrawVelocity(b, dt)
		})
	}

	v.drawUI(floating)

	rl.EndDrawing()
}

// drawBodies draws every body and the selection ring, returning the number
// of floating bodies.
func (v *Viewer) drawBodies() int {
	shade := v.overlays.IsEnabled(ui.OverlayHealth)
	labels := v.overlays.IsEnabled(ui.OverlayBodyIDs)
	selected, hasSelection := v.g.Selected()

	floating := 0
	var selTr *components.Transform
	var selShape *components.Shape
	v.g.EachBody(func(e ecs.Entity, tr *components.Transform, shape *components.Shape) {
		if shape.Kind == components.KindFloating {
			floating++
		}
		v.world.DrawBody(tr, shape, v.g.Health(e), shade)
		if hasSelection && e == selected {
			selTr, selShape = tr, shape
		}
	})

	if labels {
		v.g.Engine().Store().Each(func(b physics.Body) {
			tr := components.Transform{X: float32(b.Position.X), Y: float32(b.Position.Y)}
			v.world.DrawBodyID(&tr, b.ID)
		})
	}

	if selTr != nil {
		v.world.DrawSelection(selTr, selShape)
	}
	return floating
}

// drawUI renders HUD, panels and the inspector.
func (v *Viewer) drawUI(floating int) {
	g := v.g
	last := g.LastTick()
	perf := g.PerfStats()

	v.hud.Draw(ui.HUDData{
		Title:       "tickphys",
		Bodies:      g.BodyCount(),
		Floating:    floating,
		Tick:        g.Tick(),
		SimTime:     float64(g.Tick()) * g.Engine().Settings().DT,
		Collisions:  last.Collisions,
		Overlapping: last.Overlapping,
		Corrections: last.Corrections,
		Substeps:    g.Substeps(),
		Speed:       g.StepsPerUpdate(),
		FPS:         int32(perf.FPS),
		Paused:      g.Paused(),
		Bounds:      g.BoundsEnabled(),
	})
	v.hud.DrawControls(int32(v.screenHeight), controlsLegend)

	v.controls.Draw(v.overlays)

	if v.showPerf {
		v.perfPanel.Draw(perf)
	}

	v.panelRects = v.panelRects[:0]
	v.applySimActions(v.simPanel.Draw(ui.SimState{
		Paused:         g.Paused(),
		Substeps:       g.Substeps(),
		StepsPerUpdate: g.StepsPerUpdate(),
		BoundsEnabled:  g.BoundsEnabled(),
	}))
	v.panelRects = append(v.panelRects, v.simPanel.Rect())

	if view, ok := g.SelectedView(); ok {
		h := v.inspector.Draw(inspector.Sections(&view))
		v.panelRects = append(v.panelRects, v.inspector.Rect(h))
	}
}

// applySimActions forwards sim panel input to the game.
func (v *Viewer) applySimActions(act ui.SimActions) {
	g := v.g
	if act.TogglePause {
		g.SetPaused(!g.Paused())
	}
	if act.Step {
		g.RequestStep()
	}
	if act.ToggleBounds {
		v.toggleBounds()
	}
	if act.Substeps > 0 {
		v.setSubsteps(act.Substeps)
	}
	if act.Speed > 0 {
		g.SetStepsPerUpdate(act.Speed)
	}
}
