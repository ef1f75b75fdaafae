// Package ui draws the colony with raylib and turns mouse and keyboard
// input into game commands. Everything it renders comes from a
// game.Snapshot, so drawing never touches live simulation state.
package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Theme holds UI styling constants.
type Theme struct {
	PanelBg       rl.Color
	PanelBorder   rl.Color
	SectionHeader rl.Color
	LabelColor    rl.Color
	ValueColor    rl.Color
	WarnColor     rl.Color

	// World colors
	Soil        rl.Color
	Tunnel      rl.Color
	Trail       rl.Color
	Nest        rl.Color
	Food        rl.Color
	AntNormal   rl.Color
	AntCarrying rl.Color
	AntSoilFull rl.Color

	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	FontSize       int32
	HeaderFontSize int32
	BarHeight      int32
}

// DefaultTheme returns the standard theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:       rl.Color{R: 20, G: 18, B: 16, A: 220},
		PanelBorder:   rl.Color{R: 90, G: 80, B: 70, A: 255},
		SectionHeader: rl.Color{R: 200, G: 180, B: 140, A: 255},
		LabelColor:    rl.Color{R: 160, G: 160, B: 160, A: 255},
		ValueColor:    rl.RayWhite,
		WarnColor:     rl.Yellow,

		Soil:        rl.Color{R: 58, G: 42, B: 30, A: 255},
		Tunnel:      rl.Color{R: 128, G: 98, B: 70, A: 255},
		Trail:       rl.Color{R: 90, G: 160, B: 255, A: 255},
		Nest:        rl.Color{R: 200, G: 40, B: 40, A: 255},
		Food:        rl.Color{R: 60, G: 200, B: 80, A: 255},
		AntNormal:   rl.Color{R: 15, G: 15, B: 15, A: 255},
		AntCarrying: rl.Color{R: 140, G: 255, B: 120, A: 255},
		AntSoilFull: rl.Color{R: 230, G: 150, B: 60, A: 255},

		Padding:        10,
		LineHeight:     16,
		LabelWidth:     80,
		FontSize:       12,
		HeaderFontSize: 14,
		BarHeight:      10,
	}
}

// Renderer handles panel drawing with consistent styling.
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
	return y + r.Theme.LineHeight + 2
}

// DrawLabelValue draws a label and value on the same line.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawRatioBar draws current/total as a filled bar followed by the raw counts.
func (r *Renderer) DrawRatioBar(x, y int32, label string, current, total, width int32) int32 {
	ratio := float32(0)
	if total > 0 {
		ratio = min(float32(current)/float32(total), 1)
	}

	barX := x + r.Theme.LabelWidth
	barWidth := width - r.Theme.LabelWidth - 60

	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(barX, y+2, barWidth, r.Theme.BarHeight, r.Theme.PanelBorder)
	rl.DrawRectangle(barX, y+2, int32(float32(barWidth)*ratio), r.Theme.BarHeight, r.Theme.SectionHeader)
	rl.DrawText(fmt.Sprintf("%d/%d", current, total), barX+barWidth+5, y, r.Theme.FontSize, r.Theme.ValueColor)

	return y + r.Theme.LineHeight + 2
}
