// Package ui draws the simulation's panels: HUD, overlay toggles, the
// simulation controls and the body inspector. Panel content comes from
// descriptors and registries so it can change alongside the systems.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg         rl.Color
	PanelBorder     rl.Color
	SectionHeader   rl.Color
	LabelColor      rl.Color
	ValueColor      rl.Color
	BarBg           rl.Color
	BarFill         rl.Color
	BarFillLow      rl.Color
	BarFillMedium   rl.Color
	BarFillHigh     rl.Color
	BarFillNegative rl.Color
	BarFillPositive rl.Color
	AngleBg         rl.Color
	AngleNeedle     rl.Color
	BoolOn          rl.Color
	BoolOff         rl.Color
	Padding         int32
	LineHeight      int32
	LabelWidth      int32
	BarHeight       int32
	FontSize        int32
	HeaderFontSize  int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:         rl.Color{R: 20, G: 25, B: 30, A: 240},
		PanelBorder:     rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader:   rl.Yellow,
		LabelColor:      rl.LightGray,
		ValueColor:      rl.LightGray,
		BarBg:           rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFill:         rl.Color{R: 100, G: 150, B: 200, A: 255},
		BarFillLow:      rl.Color{R: 200, G: 100, B: 100, A: 255},
		BarFillMedium:   rl.Color{R: 200, G: 180, B: 100, A: 255},
		BarFillHigh:     rl.Color{R: 100, G: 200, B: 100, A: 255},
		BarFillNegative: rl.Color{R: 200, G: 100, B: 100, A: 255},
		BarFillPositive: rl.Color{R: 100, G: 200, B: 100, A: 255},
		AngleBg:         rl.Color{R: 50, G: 50, B: 60, A: 255},
		AngleNeedle:     rl.Color{R: 255, G: 200, B: 100, A: 255},
		BoolOn:          rl.Color{R: 100, G: 200, B: 100, A: 255},
		BoolOff:         rl.Color{R: 80, G: 80, B: 80, A: 255},
		Padding:         10,
		LineHeight:      16,
		LabelWidth:      70,
		BarHeight:       12,
		FontSize:        12,
		HeaderFontSize:  14,
	}
}

// PanelAnchor specifies where a panel is anchored on screen.
type PanelAnchor int

const (
	AnchorTopLeft PanelAnchor = iota
	AnchorTopRight
	AnchorBottomLeft
	AnchorBottomRight
)

// Place returns the top-left corner of a w x h panel anchored on a screen of
// the given size with margin m.
func Place(anchor PanelAnchor, w, h, screenW, screenH, m int32) (x, y int32) {
	switch anchor {
	case AnchorTopRight:
		return screenW - w - m, m
	case AnchorBottomLeft:
		return m, screenH - h - m
	case AnchorBottomRight:
		return screenW - w - m, screenH - h - m
	default:
		return m, m
	}
}
