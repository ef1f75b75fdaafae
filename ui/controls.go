package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// MaxStepsPerUpdate caps the speed slider.
const MaxStepsPerUpdate = 50

// ControlsAction is what the user asked for through the panel this frame.
type ControlsAction struct {
	TogglePause    bool
	Step           bool
	StepsPerUpdate int // 0 = unchanged
}

// ControlsPanel renders the top-right panel with pause and speed controls.
type ControlsPanel struct {
	renderer *Renderer
	width    int32
	height   int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel() *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		width:    230,
		height:   100,
		visible:  true,
	}
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Bounds returns the panel rectangle for a screen of the given width.
func (c *ControlsPanel) Bounds(screenWidth int32) rl.Rectangle {
	if !c.visible {
		return rl.Rectangle{}
	}
	return rl.Rectangle{
		X:      float32(screenWidth - c.width - c.renderer.Theme.Padding),
		Y:      float32(c.renderer.Theme.Padding),
		Width:  float32(c.width),
		Height: float32(c.height),
	}
}

// Draw renders the panel and reports any interaction.
func (c *ControlsPanel) Draw(screenWidth int32, paused bool, steps int) ControlsAction {
	var action ControlsAction
	if !c.visible {
		return action
	}

	r := c.renderer
	b := c.Bounds(screenWidth)
	x, y := int32(b.X), int32(b.Y)
	r.DrawPanel(x, y, c.width, c.height)

	y = r.DrawSectionHeader(x+8, y+6, "Controls")

	label := "Pause"
	if paused {
		label = "Resume"
	}
	if gui.Button(rl.Rectangle{X: float32(x + 8), Y: float32(y), Width: 100, Height: 24}, label) {
		action.TogglePause = true
	}
	if gui.Button(rl.Rectangle{X: float32(x + 118), Y: float32(y), Width: 100, Height: 24}, "Step") {
		action.Step = true
	}
	y += 34

	rl.DrawText(fmt.Sprintf("Speed: %dx", steps), x+8, y, r.Theme.FontSize, r.Theme.LabelColor)
	y += r.Theme.LineHeight
	v := gui.SliderBar(
		rl.Rectangle{X: float32(x + 28), Y: float32(y), Width: float32(c.width - 56), Height: 14},
		"1", fmt.Sprintf("%d", MaxStepsPerUpdate),
		float32(steps), 1, MaxStepsPerUpdate,
	)
	if n := int(v + 0.5); n != steps {
		action.StepsPerUpdate = n
	}
	return action
}
