// Package camera provides a 2D camera system for viewport control.
package camera

// Rect is an axis-aligned world rectangle.
type Rect struct {
	MinX, MinY, MaxX, MaxY float32
}

// Width returns the rectangle width.
func (r Rect) Width() float32 { return r.MaxX - r.MinX }

// Height returns the rectangle height.
func (r Rect) Height() float32 { return r.MaxY - r.MinY }

// Center returns the rectangle center.
func (r Rect) Center() (x, y float32) {
	return (r.MinX + r.MaxX) / 2, (r.MinY + r.MaxY) / 2
}

// Camera controls the viewport into the simulation world.
// Supports pan and zoom over a bounded arena; the world does not wrap.
type Camera struct {
	// Position is the camera center in world coordinates
	X, Y float32

	// Zoom level (1.0 = 1:1, 2.0 = 2x magnification)
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// World is the region the camera frames and keeps its center inside.
	World Rect

	// Zoom constraints
	MinZoom, MaxZoom float32
}

// New creates a camera centered on world, zoomed to fit it in the viewport.
func New(viewportW, viewportH float32, world Rect) *Camera {
	c := &Camera{
		ViewportW: viewportW,
		ViewportH: viewportH,
		MaxZoom:   8.0,
	}
	c.SetWorld(world)
	c.Reset()
	return c
}

// FitZoom returns the zoom at which the whole world fits the viewport.
func (c *Camera) FitZoom() float32 {
	w, h := c.World.Width(), c.World.Height()
	if w <= 0 || h <= 0 {
		return 1
	}
	z := c.ViewportW / w
	if zy := c.ViewportH / h; zy < z {
		z = zy
	}
	return z
}

// SetWorld changes the framed region and recomputes zoom limits.
func (c *Camera) SetWorld(world Rect) {
	c.World = world
	c.MinZoom = c.FitZoom() / 2
	c.SetZoom(c.Zoom)
	c.clampCenter()
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	sx = c.ViewportW/2 + (wx-c.X)*c.Zoom
	sy = c.ViewportH/2 + (wy-c.Y)*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	wx = c.X + (sx-c.ViewportW/2)/c.Zoom
	wy = c.Y + (sy-c.ViewportH/2)/c.Zoom
	return wx, wy
}

// IsVisible returns true if a circle at (wx, wy) with given radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfH := c.ViewportH/(2*c.Zoom) + radius
	return absf(wx-c.X) <= halfW && absf(wy-c.Y) <= halfH
}

// Resize updates viewport dimensions and recalculates zoom constraints.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.MinZoom = c.FitZoom() / 2
	c.SetZoom(c.Zoom)
}

// Pan moves the camera by the given delta in screen pixels. The center
// stays inside the world rectangle.
func (c *Camera) Pan(dx, dy float32) {
	c.X += dx / c.Zoom
	c.Y += dy / c.Zoom
	c.clampCenter()
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Reset centers the camera on the world at fit zoom.
func (c *Camera) Reset() {
	c.X, c.Y = c.World.Center()
	c.SetZoom(c.FitZoom())
}

// VisibleWorldBounds returns the world-coordinate bounds of the visible area.
func (c *Camera) VisibleWorldBounds() Rect {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)
	return Rect{MinX: c.X - halfW, MinY: c.Y - halfH, MaxX: c.X + halfW, MaxY: c.Y + halfH}
}

func (c *Camera) clampCenter() {
	c.X = clamp(c.X, c.World.MinX, c.World.MaxX)
	c.Y = clamp(c.Y, c.World.MinY, c.World.MaxY)
}

// absf returns the absolute value of a float32.
func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
