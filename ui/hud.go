package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tickphys/inspector"
	"github.com/pthm-cable/tickphys/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title       string
	Bodies      int
	Floating    int
	Tick        uint64
	SimTime     float64
	Collisions  int
	Overlapping int
	Corrections int
	Substeps    int
	Speed       int
	FPS         int32
	Paused      bool
	Bounds      bool
}

// HUD renders the main heads-up display.
type HUD struct{}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Bodies: %d (%d floating) | Pairs: %d | Overlapping: %d | Corrections: %d",
			data.Bodies, data.Floating, data.Collisions, data.Overlapping, data.Corrections),
		10, 35, 16, rl.LightGray,
	)

	rl.DrawText(
		fmt.Sprintf("Tick: %d (%.1fs) | Substeps: %d | Speed: %dx | FPS: %d",
			data.Tick, data.SimTime, data.Substeps, data.Speed, data.FPS),
		10, 55, 16, rl.LightGray,
	)

	statusText := "Running"
	if data.Paused {
		statusText = "PAUSED"
	}
	if !data.Bounds {
		statusText += " | unbounded"
	}
	rl.DrawText(statusText, 10, 75, 16, rl.Yellow)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders per-phase tick timings.
type PerfPanel struct {
	x, y int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x := p.x
	y := p.y

	rl.DrawText("Tick Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(
		fmt.Sprintf("Avg: %s  Max: %s  (%.0f ticks/s)",
			stats.AvgTickDuration.Round(time.Microsecond),
			stats.MaxTickDuration.Round(time.Microsecond),
			stats.TicksPerSecond),
		x, y, 14, rl.Yellow,
	)
	y += 16

	for _, phase := range telemetry.Phases {
		avg := stats.PhaseAvg[phase]
		pct := stats.PhasePct[phase]

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", phase, avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}

// InspectorPanel renders the selected body's sections.
type InspectorPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewInspectorPanel creates a new inspector panel.
func NewInspectorPanel(x, y, width int32) *InspectorPanel {
	return &InspectorPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (ip *InspectorPanel) SetPosition(x, y int32) {
	ip.x = x
	ip.y = y
}

// Width returns the panel width.
func (ip *InspectorPanel) Width() int32 { return ip.width }

// Rect returns the panel's screen rectangle for a drawn height.
func (ip *InspectorPanel) Rect(height int32) rl.Rectangle {
	return rl.Rectangle{X: float32(ip.x), Y: float32(ip.y), Width: float32(ip.width), Height: float32(height)}
}

// Draw renders the sections and returns the panel height.
func (ip *InspectorPanel) Draw(sections []inspector.Section) int32 {
	r := ip.renderer
	pad := r.Theme.Padding

	// Heights follow the widget sizes in widgets.go.
	height := pad*2 + r.Theme.LineHeight
	for _, s := range sections {
		height += r.Theme.LineHeight + 4
		for _, f := range s.Fields {
			if f.Widget == inspector.WidgetAngle {
				height += 36
			} else {
				height += r.Theme.LineHeight + 2
			}
		}
	}

	r.DrawPanel(ip.x, ip.y, ip.width, height)
	y := ip.y + pad
	rl.DrawText("Inspector", ip.x+pad, y, 16, rl.White)
	y += r.Theme.LineHeight + 4

	for _, s := range sections {
		y = r.DrawSectionHeader(ip.x+pad, y, s.Title)
		for _, f := range s.Fields {
			y = r.DrawField(ip.x+pad, y, f, ip.width-pad*2)
		}
		y += 4
	}
	return height
}
