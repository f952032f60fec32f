package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsPanel renders the overlay toggle list.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Draw renders the controls panel and returns the Y below it.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry) int32 {
	if !c.visible {
		return c.y
	}

	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	categories := overlays.Categories()
	totalItems := 0
	for _, cat := range categories {
		totalItems += len(overlays.ByCategory(cat)) + 1
	}
	panelHeight := int32(totalItems)*lineHeight + padding*3 + lineHeight

	r.DrawPanel(c.x, c.y, c.width, panelHeight)

	y := c.y + padding
	rl.DrawText("Overlays", c.x+padding, y, 16, rl.White)
	y += lineHeight + 4

	for _, category := range categories {
		rl.DrawText(categoryLabel(category), c.x+padding, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		y += lineHeight

		for _, desc := range overlays.ByCategory(category) {
			c.drawToggle(c.x+padding, y, desc, overlays.IsEnabled(desc.ID), c.width-padding*2)
			y += lineHeight
		}
		y += 4
	}

	return c.y + panelHeight
}

// drawToggle draws a single overlay toggle line.
func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	r := c.renderer

	statusColor := r.Theme.BoolOff
	nameColor := r.Theme.LabelColor
	if enabled {
		statusColor = r.Theme.BoolOn
		nameColor = rl.White
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, nameColor)

	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.Color{R: 150, G: 150, B: 150, A: 255})
	}
}

// categoryLabel returns a display label for a category.
func categoryLabel(cat string) string {
	switch cat {
	case "world":
		return "World"
	case "debug":
		return "Debug"
	default:
		return cat
	}
}

// SimState is the simulation state shown in the sim panel.
type SimState struct {
	Paused         bool
	Substeps       int
	StepsPerUpdate int
	BoundsEnabled  bool
}

// SimActions reports what the user asked for this frame. Zero values mean
// no change.
type SimActions struct {
	TogglePause  bool
	Step         bool
	ToggleBounds bool
	Substeps     int // new substep count, 0 = unchanged
	Speed        int // new steps per update, 0 = unchanged
}

// MaxSubsteps is the upper end of the substep slider.
const MaxSubsteps = 32

// SimPanel holds the raygui simulation controls.
type SimPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewSimPanel creates a new simulation control panel.
func NewSimPanel(x, y, width int32) *SimPanel {
	return &SimPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (p *SimPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Height returns the panel height.
func (p *SimPanel) Height() int32 {
	return 4*30 + 2*p.renderer.Theme.Padding
}

// Rect returns the panel's screen rectangle.
func (p *SimPanel) Rect() rl.Rectangle {
	return rl.Rectangle{X: float32(p.x), Y: float32(p.y), Width: float32(p.width), Height: float32(p.Height())}
}

// Draw renders the panel and returns the user's actions.
func (p *SimPanel) Draw(s SimState) SimActions {
	var act SimActions
	r := p.renderer
	pad := float32(r.Theme.Padding)

	r.DrawPanel(p.x, p.y, p.width, p.Height())

	x := float32(p.x) + pad
	y := float32(p.y) + pad
	w := float32(p.width) - 2*pad
	half := (w - pad) / 2

	pauseText := "Pause"
	if s.Paused {
		pauseText = "Resume"
	}
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: 24}, pauseText) {
		act.TogglePause = true
	}
	if gui.Button(rl.Rectangle{X: x + half + pad, Y: y, Width: half, Height: 24}, "Step") {
		act.Step = true
	}
	y += 30

	boundsText := "Bounds: off"
	if s.BoundsEnabled {
		boundsText = "Bounds: on"
	}
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: w, Height: 24}, boundsText) {
		act.ToggleBounds = true
	}
	y += 30

	labelW := float32(r.Theme.LabelWidth)
	rl.DrawText("Substeps", int32(x), int32(y)+6, r.Theme.FontSize, r.Theme.LabelColor)
	sub := gui.SliderBar(
		rl.Rectangle{X: x + labelW, Y: y + 2, Width: w - labelW - 30, Height: 20},
		"", fmt.Sprintf("%d", s.Substeps),
		float32(s.Substeps), 1, MaxSubsteps,
	)
	if n := int(sub + 0.5); n != s.Substeps {
		act.Substeps = n
	}
	y += 30

	rl.DrawText("Speed", int32(x), int32(y)+6, r.Theme.FontSize, r.Theme.LabelColor)
	speed := gui.SliderBar(
		rl.Rectangle{X: x + labelW, Y: y + 2, Width: w - labelW - 30, Height: 20},
		"", fmt.Sprintf("%dx", s.StepsPerUpdate),
		float32(s.StepsPerUpdate), 1, 10,
	)
	if n := int(speed + 0.5); n != s.StepsPerUpdate {
		act.Speed = n
	}

	return act
}
