package renderer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tickphys/camera"
	"github.com/pthm-cable/tickphys/components"
	"github.com/pthm-cable/tickphys/physics"
)

// Body colors
var (
	ColorSolid        = rl.Color{R: 110, G: 190, B: 240, A: 255}
	ColorFloating     = rl.Color{R: 230, G: 130, B: 220, A: 200}
	ColorOutline      = rl.Color{R: 230, G: 230, B: 240, A: 160}
	ColorHealthLow    = rl.Color{R: 220, G: 80, B: 70, A: 255}
	ColorBounds       = rl.Color{R: 240, G: 200, B: 90, A: 200}
	ColorPairOverlap  = rl.Color{R: 240, G: 70, B: 60, A: 220}
	ColorPairPredict  = rl.Color{R: 240, G: 170, B: 60, A: 140}
	ColorVelocity     = rl.Color{R: 120, G: 240, B: 140, A: 200}
	ColorSelection    = rl.Yellow
	ColorBodyIDLabels = rl.Color{R: 200, G: 200, B: 200, A: 200}
)

// WorldRenderer draws world-space elements through the camera.
type WorldRenderer struct {
	cam *camera.Camera
}

// NewWorldRenderer creates a world renderer.
func NewWorldRenderer(cam *camera.Camera) *WorldRenderer {
	return &WorldRenderer{cam: cam}
}

// DrawBounds outlines the arena rectangle.
func (w *WorldRenderer) DrawBounds(b physics.MapBounds, active bool) {
	x0, y0 := w.cam.WorldToScreen(float32(b.XMin), float32(b.YMin))
	x1, y1 := w.cam.WorldToScreen(float32(b.XMax), float32(b.YMax))
	color := ColorBounds
	if !active {
		color.A = 60
	}
	rl.DrawRectangleLinesEx(rl.Rectangle{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}, 2, color)
}

// DrawBody draws one body. health may be nil; when shade is set a solid
// body's fill fades toward red as it loses health.
func (w *WorldRenderer) DrawBody(tr *components.Transform, shape *components.Shape, health *components.Health, shade bool) {
	if !w.cam.IsVisible(tr.X, tr.Y, shape.Radius) {
		return
	}
	sx, sy := w.cam.WorldToScreen(tr.X, tr.Y)
	r := shape.Radius * w.cam.Zoom

	fill := ColorSolid
	if shape.Kind == components.KindFloating {
		fill = ColorFloating
	} else if shade && health != nil {
		fill = lerpColor(ColorHealthLow, ColorSolid, health.Fraction())
	}

	rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, r, fill)
	rl.DrawCircleLinesV(rl.Vector2{X: sx, Y: sy}, r, ColorOutline)
}

// DrawBodyID labels a body with its store handle.
func (w *WorldRenderer) DrawBodyID(tr *components.Transform, id physics.BodyID) {
	if !w.cam.IsVisible(tr.X, tr.Y, 0) {
		return
	}
	sx, sy := w.cam.WorldToScreen(tr.X, tr.Y)
	rl.DrawText(fmt.Sprint(id), int32(sx)+4, int32(sy)-14, 10, ColorBodyIDLabels)
}

// DrawCollisions links the centers of every listed pair.
func (w *WorldRenderer) DrawCollisions(collisions []physics.Collision, store *physics.Store) {
	for _, c := range collisions {
		a, okA := store.Get(c.A)
		b, okB := store.Get(c.B)
		if !okA || !okB {
			continue
		}
		ax, ay := w.cam.WorldToScreen(float32(a.Position.X), float32(a.Position.Y))
		bx, by := w.cam.WorldToScreen(float32(b.Position.X), float32(b.Position.Y))

		color := ColorPairPredict
		if c.Overlapping {
			color = ColorPairOverlap
		}
		rl.DrawLineEx(rl.Vector2{X: ax, Y: ay}, rl.Vector2{X: bx, Y: by}, 1.5, color)
	}
}

// DrawVelocity draws the displacement a body covers in one tick of length dt,
// scaled up so slow bodies stay readable.
func (w *WorldRenderer) DrawVelocity(b physics.Body, dt float64) {
	const scale = 10
	x, y := float32(b.Position.X), float32(b.Position.Y)
	ex := x + float32(b.Velocity.X*dt*scale)
	ey := y + float32(b.Velocity.Y*dt*scale)

	sx, sy := w.cam.WorldToScreen(x, y)
	tx, ty := w.cam.WorldToScreen(ex, ey)
	rl.DrawLineEx(rl.Vector2{X: sx, Y: sy}, rl.Vector2{X: tx, Y: ty}, 1.5, ColorVelocity)
}

// DrawSelection highlights the selected body.
func (w *WorldRenderer) DrawSelection(tr *components.Transform, shape *components.Shape) {
	sx, sy := w.cam.WorldToScreen(tr.X, tr.Y)
	r := shape.Radius*w.cam.Zoom + 4
	rl.DrawCircleLinesV(rl.Vector2{X: sx, Y: sy}, r, ColorSelection)
	rl.DrawCircleLinesV(rl.Vector2{X: sx, Y: sy}, r+1, ColorSelection)
}

// lerpColor interpolates between two colors.
func lerpColor(a, b rl.Color, t float32) rl.Color {
	return rl.Color{
		R: uint8(float32(a.R) + (float32(b.R)-float32(a.R))*t),
		G: uint8(float32(a.G) + (float32(b.G)-float32(a.G))*t),
		B: uint8(float32(a.B) + (float32(b.B)-float32(a.B))*t),
		A: b.A,
	}
}
