// Package renderer draws the world through the camera: background grid,
// arena bounds, bodies and debug overlays.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tickphys/camera"
)

// BackgroundRenderer clears the screen and draws world grid lines.
type BackgroundRenderer struct {
	cam       *camera.Camera
	baseColor rl.Color
	lineColor rl.Color
	spacing   float32
}

// NewBackgroundRenderer creates a background renderer with grid lines every
// spacing world units.
func NewBackgroundRenderer(cam *camera.Camera, spacing float32, baseR, baseG, baseB uint8) *BackgroundRenderer {
	return &BackgroundRenderer{
		cam:       cam,
		baseColor: rl.Color{R: baseR, G: baseG, B: baseB, A: 255},
		lineColor: rl.Color{R: baseR + 20, G: baseG + 20, B: baseB + 24, A: 255},
		spacing:   spacing,
	}
}

// Draw clears to the base color and, when grid is set, draws grid lines over
// the visible part of the world.
func (b *BackgroundRenderer) Draw(grid bool) {
	rl.ClearBackground(b.baseColor)
	if !grid || b.spacing <= 0 {
		return
	}

	// Skip the grid when lines would be closer than a few pixels.
	if b.spacing*b.cam.Zoom < 4 {
		return
	}

	view := b.cam.VisibleWorldBounds()
	x0 := float32(math.Floor(float64(view.MinX/b.spacing))) * b.spacing
	y0 := float32(math.Floor(float64(view.MinY/b.spacing))) * b.spacing

	for x := x0; x <= view.MaxX; x += b.spacing {
		sx, _ := b.cam.WorldToScreen(x, 0)
		rl.DrawLineV(rl.Vector2{X: sx, Y: 0}, rl.Vector2{X: sx, Y: b.cam.ViewportH}, b.lineColor)
	}
	for y := y0; y <= view.MaxY; y += b.spacing {
		_, sy := b.cam.WorldToScreen(0, y)
		rl.DrawLineV(rl.Vector2{X: 0, Y: sy}, rl.Vector2{X: b.cam.ViewportW, Y: sy}, b.lineColor)
	}
}
