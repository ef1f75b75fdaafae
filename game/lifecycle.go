package game

import (
	"log/slog"
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/burrow/components"
)

// maxFoodPlacementAttempts bounds the random search for a valid food cell.
const maxFoodPlacementAttempts = 1000

// digNest opens the nest chamber so return trips have a tunnel to end in.
func (g *Game) digNest() {
	g.env.Tunnels.Dig(g.env.Nest.Cell(g.cfg.World.CellScale))
}

// spawnColony creates every ant near the nest with a random heading.
// Jittered positions are clamped to the grid.
func (g *Game) spawnColony() {
	cfg := g.cfg
	jitter := cfg.Colony.SpawnJitter
	w, h := cfg.World.Width, cfg.World.Height

	g.ants = make([]ecs.Entity, 0, cfg.Colony.Ants)
	for i := 0; i < cfg.Colony.Ants; i++ {
		pos := g.env.Nest
		if jitter > 0 {
			pos.X += g.rng.Intn(2*jitter+1) - jitter
			pos.Y += g.rng.Intn(2*jitter+1) - jitter
			pos.X = min(max(pos.X, 0), cfg.Derived.FineWidth-1)
			pos.Y = min(max(pos.Y, 0), cfg.Derived.FineHeight-1)
		}
		heading := g.rng.Float64() * 2 * math.Pi

		ant := components.NewForager(g.env.Nest, heading, w, h)
		stats := components.TripStats{}
		g.ants = append(g.ants, g.antMapper.NewEntity(&pos, &ant, &stats))
	}
}

// spawnInitialFood scatters the configured number of food sources away
// from the edges and the nest.
func (g *Game) spawnInitialFood() {
	cfg := g.cfg
	margin := cfg.Food.SpawnMargin
	spanX := cfg.World.Width - 2*margin
	spanY := cfg.World.Height - 2*margin
	if spanX <= 0 || spanY <= 0 {
		if cfg.Food.InitialSources > 0 {
			slog.Warn("food spawn margin leaves no room", "margin", margin)
		}
		return
	}

	for i := 0; i < cfg.Food.InitialSources; i++ {
		placed := false
		for attempt := 0; attempt < maxFoodPlacementAttempts; attempt++ {
			cell := components.Cell{
				X: margin + g.rng.Intn(spanX),
				Y: margin + g.rng.Intn(spanY),
			}
			if g.farFromNest(cell) {
				g.env.Food.Add(cell.Fine(cfg.World.CellScale), cfg.Food.AmountPerSource)
				placed = true
				break
			}
		}
		if !placed {
			slog.Warn("food source placement failed", "source", i, "attempts", maxFoodPlacementAttempts)
		}
	}
}

// AddFoodSource places a new food source at a fine position.
// It is ignored unless the position lies inside the grid and its cell is
// farther than the minimum nest distance from the nest cell.
func (g *Game) AddFoodSource(pos components.Position) bool {
	scale := g.cfg.World.CellScale
	if pos.X < 0 || pos.Y < 0 {
		return false
	}
	cell := pos.Cell(scale)
	if !g.env.Lattice.Contains(cell) || !g.farFromNest(cell) {
		return false
	}
	g.env.Food.Add(pos, g.cfg.Food.AmountPerSource)
	return true
}

func (g *Game) farFromNest(cell components.Cell) bool {
	nest := g.env.Nest.Cell(g.cfg.World.CellScale)
	return cell.Manhattan(nest) > g.cfg.Food.MinNestDistance
}
