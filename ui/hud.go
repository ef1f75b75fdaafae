package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title         string
	Tick          int32
	Speed         int
	FPS           int32
	Paused        bool
	Delivered     int
	Exploring     int
	Carrying      int
	SoilFull      int
	FoodSources   int
	FoodRemaining int
	TunnelCells   int
	TotalCells    int
	ScreenWidth   int32
	ScreenHeight  int32
}

// HUD renders the stats panel in the top-left corner.
type HUD struct {
	renderer *Renderer
	width    int32
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer(), width: 220}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	t := r.Theme

	x, y := t.Padding, t.Padding
	h.renderer.DrawPanel(x-4, y-4, h.width, 10*t.LineHeight+12)

	y = r.DrawSectionHeader(x, y, data.Title)
	y = r.DrawLabelValue(x, y, "Tick", fmt.Sprintf("%d", data.Tick))
	y = r.DrawLabelValue(x, y, "Speed", fmt.Sprintf("%dx | %d fps", data.Speed, data.FPS))
	y = r.DrawLabelValue(x, y, "Delivered", fmt.Sprintf("%d", data.Delivered))
	y = r.DrawLabelValue(x, y, "Ants", fmt.Sprintf("%d explore | %d food | %d soil", data.Exploring, data.Carrying, data.SoilFull))
	y = r.DrawLabelValue(x, y, "Food", fmt.Sprintf("%d left in %d", data.FoodRemaining, data.FoodSources))
	y = r.DrawRatioBar(x, y, "Tunnels", int32(data.TunnelCells), int32(data.TotalCells), h.width-8)

	status, color := "Running", t.ValueColor
	if data.Paused {
		status, color = "PAUSED", t.WarnColor
	}
	rl.DrawText(status, x, y+2, t.HeaderFontSize, color)
}

// DrawControls draws the key legend along the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32) {
	rl.DrawText(
		"[SPACE] Pause  [N] Step  [UP/DOWN] Speed  [P] Trails  [TAB] Panel  [CLICK] Add food",
		h.renderer.Theme.Padding, screenHeight-20, h.renderer.Theme.FontSize, rl.LightGray,
	)
}
