package ui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tickphys/inspector"
)

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a section header and returns the new Y position.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight
}

// DrawLabelValue draws a label and value on the same line.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawBar draws a bar for value in [0, max] with color thresholds.
func (r *Renderer) DrawBar(x, y int32, label string, value, max float32, format string, width int32) int32 {
	ratio := float32(0)
	if max > 0 {
		ratio = clamp01(value / max)
	}

	barX := x + r.Theme.LabelWidth
	barWidth := width - r.Theme.LabelWidth - 50

	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(barX, y+2, barWidth, r.Theme.BarHeight, r.Theme.BarBg)

	barColor := r.Theme.BarFillHigh
	if ratio < 0.3 {
		barColor = r.Theme.BarFillLow
	} else if ratio < 0.6 {
		barColor = r.Theme.BarFillMedium
	}
	rl.DrawRectangle(barX, y+2, int32(float32(barWidth)*ratio), r.Theme.BarHeight, barColor)

	if format == "" {
		format = "%.2f"
	}
	rl.DrawText(fmt.Sprintf(format, value), barX+barWidth+5, y, r.Theme.FontSize, r.Theme.ValueColor)

	return y + r.Theme.LineHeight + 2
}

// DrawAngle draws a compass needle for an angle in radians.
func (r *Renderer) DrawAngle(x, y int32, label string, radians float32) int32 {
	size := int32(32)
	centerX := x + r.Theme.LabelWidth + size/2
	centerY := y + size/2

	rl.DrawText(label+":", x, centerY-r.Theme.FontSize/2, r.Theme.FontSize, r.Theme.LabelColor)

	rl.DrawCircle(centerX, centerY, float32(size/2), r.Theme.AngleBg)
	rl.DrawCircleLines(centerX, centerY, float32(size/2), r.Theme.LabelColor)

	needleLen := float32(size/2 - 3)
	endX := float32(centerX) + needleLen*float32(math.Cos(float64(radians)))
	endY := float32(centerY) + needleLen*float32(math.Sin(float64(radians)))
	rl.DrawLineEx(
		rl.Vector2{X: float32(centerX), Y: float32(centerY)},
		rl.Vector2{X: endX, Y: endY},
		2,
		r.Theme.AngleNeedle,
	)

	degrees := radians * 180 / math.Pi
	rl.DrawText(fmt.Sprintf("%+.0f deg", degrees), centerX+size/2+6, centerY-r.Theme.FontSize/2, r.Theme.FontSize, r.Theme.ValueColor)

	return y + size + 4
}

// DrawBool draws an on/off indicator.
func (r *Renderer) DrawBool(x, y int32, label string, value bool) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)

	color := r.Theme.BoolOff
	text := "no"
	if value {
		color = r.Theme.BoolOn
		text = "yes"
	}
	ix := x + r.Theme.LabelWidth
	rl.DrawRectangle(ix, y+2, 10, 10, color)
	rl.DrawText(text, ix+16, y, r.Theme.FontSize, color)

	return y + r.Theme.LineHeight
}

// DrawField renders an inspector field with its widget.
func (r *Renderer) DrawField(x, y int32, f inspector.Field, width int32) int32 {
	switch f.Widget {
	case inspector.WidgetBar:
		if v, ok := inspector.GetFloatValue(f.Value); ok {
			return r.DrawBar(x, y, f.Name, v, inspector.GetMax(f.Options), f.Options["fmt"], width)
		}
	case inspector.WidgetAngle:
		if v, ok := inspector.GetFloatValue(f.Value); ok {
			return r.DrawAngle(x, y, f.Name, v)
		}
	case inspector.WidgetBool:
		if v, ok := f.Value.(bool); ok {
			return r.DrawBool(x, y, f.Name, v)
		}
	}
	return r.DrawLabelValue(x, y, f.Name, inspector.FormatValue(f.Value, f.Options["fmt"]))
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
