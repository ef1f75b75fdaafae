package ui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/burrow/components"
	"github.com/pthm-cable/burrow/game"
	"github.com/pthm-cable/burrow/systems"
)

// View is the interactive window front end for a game.
type View struct {
	game     *game.Game
	renderer *Renderer
	hud      *HUD
	controls *ControlsPanel

	lattice    systems.Lattice
	showTrails bool
	screenW    int32
	screenH    int32
}

// NewView creates a view sized to the fine grid of g.
func NewView(g *game.Game) *View {
	cfg := g.Config()
	return &View{
		game:       g,
		renderer:   NewRenderer(),
		hud:        NewHUD(),
		controls:   NewControlsPanel(),
		lattice:    systems.NewLattice(cfg.World.Width, cfg.World.Height),
		showTrails: true,
		screenW:    int32(cfg.Derived.FineWidth),
		screenH:    int32(cfg.Derived.FineHeight),
	}
}

// ScreenSize returns the window size in pixels.
func (v *View) ScreenSize() (int32, int32) { return v.screenW, v.screenH }

// Update handles keyboard and mouse input, then advances the game.
func (v *View) Update() {
	v.handleInput()
	v.game.Update()
}

func (v *View) handleInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		v.game.TogglePause()
	}
	if rl.IsKeyPressed(rl.KeyN) {
		v.stepOnce()
	}
	if rl.IsKeyPressed(rl.KeyUp) {
		v.game.SetStepsPerUpdate(min(v.game.StepsPerUpdate()+1, MaxStepsPerUpdate))
	}
	if rl.IsKeyPressed(rl.KeyDown) {
		v.game.SetStepsPerUpdate(v.game.StepsPerUpdate() - 1)
	}
	if rl.IsKeyPressed(rl.KeyP) {
		v.showTrails = !v.showTrails
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		v.controls.Toggle()
	}

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		mouse := rl.GetMousePosition()
		if rl.CheckCollisionPointRec(mouse, v.controls.Bounds(v.screenW)) {
			return
		}
		// The window is drawn one pixel per fine unit.
		v.game.AddFoodSource(components.Position{X: int(mouse.X), Y: int(mouse.Y)})
	}
}

// stepOnce advances a single tick even while paused.
func (v *View) stepOnce() {
	mode := v.game.Mode()
	v.game.SetMode(game.ModeActive)
	v.game.Step()
	v.game.SetMode(mode)
}

// Draw renders one frame. Call between rl.BeginDrawing and rl.EndDrawing.
func (v *View) Draw() {
	snap := v.game.Snapshot()
	t := v.renderer.Theme

	rl.ClearBackground(t.Soil)
	v.drawTunnels(&snap)
	if v.showTrails {
		v.drawTrails(&snap)
	}
	v.drawNest(&snap)
	v.drawFood(&snap)
	v.drawAnts(&snap)

	sum := snap.Summary()
	v.hud.Draw(HUDData{
		Title:         "Burrow",
		Tick:          snap.Tick,
		Speed:         v.game.StepsPerUpdate(),
		FPS:           rl.GetFPS(),
		Paused:        snap.Mode == game.ModeSuspended,
		Delivered:     snap.Delivered,
		Exploring:     sum.Exploring,
		Carrying:      sum.CarryingFood,
		SoilFull:      sum.SoilFull,
		FoodSources:   len(snap.Food),
		FoodRemaining: sum.FoodRemaining,
		TunnelCells:   sum.TunnelCells,
		TotalCells:    snap.Width * snap.Height,
		ScreenWidth:   v.screenW,
		ScreenHeight:  v.screenH,
	})
	v.hud.DrawControls(v.screenH)

	action := v.controls.Draw(v.screenW, snap.Mode == game.ModeSuspended, v.game.StepsPerUpdate())
	if action.TogglePause {
		v.game.TogglePause()
	}
	if action.Step {
		v.stepOnce()
	}
	if action.StepsPerUpdate > 0 {
		v.game.SetStepsPerUpdate(action.StepsPerUpdate)
	}
}

func (v *View) drawTunnels(snap *game.Snapshot) {
	s := int32(snap.CellScale)
	for y := 0; y < snap.Height; y++ {
		for x := 0; x < snap.Width; x++ {
			if snap.Tunnel(x, y) {
				rl.DrawRectangle(int32(x)*s, int32(y)*s, s, s, v.renderer.Theme.Tunnel)
			}
		}
	}
}

// drawTrails draws every link above the floor as a line between cell
// centres, brighter for stronger pheromone on a log scale.
func (v *View) drawTrails(snap *game.Snapshot) {
	lo, hi := snap.PheromoneMin, snap.PheromoneMax
	if lo <= 0 || hi <= lo {
		return
	}
	span := math.Log(hi / lo)
	scale := float32(snap.CellScale)
	half := scale / 2
	base := v.renderer.Theme.Trail

	for ly := 0; ly < v.lattice.Height(); ly++ {
		for lx := 0; lx < v.lattice.Width(); lx++ {
			lc := systems.LatticeCoord{X: lx, Y: ly}
			value := snap.Pheromone(lc)
			if value <= lo {
				continue
			}
			a, b, ok := v.lattice.Link(lc)
			if !ok {
				continue
			}
			strength := math.Min(math.Log(value/lo)/span, 1)
			color := base
			color.A = uint8(40 + 215*strength)
			rl.DrawLineEx(
				rl.Vector2{X: float32(a.X)*scale + half, Y: float32(a.Y)*scale + half},
				rl.Vector2{X: float32(b.X)*scale + half, Y: float32(b.Y)*scale + half},
				1.5, color,
			)
		}
	}
}

func (v *View) drawNest(snap *game.Snapshot) {
	t := v.renderer.Theme
	x, y := int32(snap.Nest.X), int32(snap.Nest.Y)
	rl.DrawRectangle(x-4, y-4, 9, 9, t.Nest)
	rl.DrawText(fmt.Sprintf("%d", snap.Delivered), x+8, y-6, t.FontSize, t.ValueColor)
}

func (v *View) drawFood(snap *game.Snapshot) {
	t := v.renderer.Theme
	for _, f := range snap.Food {
		if f.Amount <= 0 {
			continue
		}
		x, y := int32(f.Position.X), int32(f.Position.Y)
		rl.DrawRectangle(x-3, y-3, 7, 7, t.Food)
		rl.DrawText(fmt.Sprintf("%d", f.Amount), x+6, y-6, t.FontSize, t.Food)
	}
}

func (v *View) drawAnts(snap *game.Snapshot) {
	t := v.renderer.Theme
	for _, a := range snap.Ants {
		color := t.AntNormal
		switch a.Category {
		case game.CategoryCarryingFood:
			color = t.AntCarrying
		case game.CategorySoilFull:
			color = t.AntSoilFull
		}
		rl.DrawCircle(int32(a.Position.X), int32(a.Position.Y), 1.5, color)
	}
}
