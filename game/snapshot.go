package game

import (
	"github.com/pthm-cable/burrow/components"
	"github.com/pthm-cable/burrow/systems"
	"github.com/pthm-cable/burrow/telemetry"
)

// AntCategory is how an ant should be drawn.
type AntCategory uint8

const (
	CategoryNormal       AntCategory = iota
	CategoryCarryingFood             // Walking home with food
	CategorySoilFull                 // Soil load at capacity
)

// AntView is the drawable state of one ant.
type AntView struct {
	Position components.Position
	Category AntCategory
	State    components.ForagerState
}

// Snapshot is a read-only copy of everything a renderer needs.
// It shares no memory with the running game.
type Snapshot struct {
	Tick      int32
	Mode      Mode
	Width     int // Cells
	Height    int // Cells
	CellScale int

	Tunnels []bool // Width x Height, row-major

	// Pheromones is the Width x 2*Height lattice, row-major. Even row 2y
	// holds horizontal links, with link (x-1,y)-(x,y) at column x, so
	// column 0 of an even row is never a link. Odd row 2y+1 holds vertical
	// link (x,y)-(x,y+1) at column x. systems.Lattice.Link decodes entries.
	Pheromones   []float64
	PheromoneMin float64
	PheromoneMax float64

	Ants      []AntView // Creation order
	Food      []systems.FoodSource
	Nest      components.Position
	Delivered int
}

// Tunnel reports whether cell (x, y) is dug.
func (s *Snapshot) Tunnel(x, y int) bool {
	if x < 0 || x >= s.Width || y < 0 || y >= s.Height {
		return false
	}
	return s.Tunnels[y*s.Width+x]
}

// Pheromone returns the lattice entry at lc.
func (s *Snapshot) Pheromone(lc systems.LatticeCoord) float64 {
	if lc.X < 0 || lc.X >= s.Width || lc.Y < 0 || lc.Y >= 2*s.Height {
		return s.PheromoneMin
	}
	return s.Pheromones[lc.Y*s.Width+lc.X]
}

// Snapshot captures the current state for rendering.
func (g *Game) Snapshot() Snapshot {
	params := g.env.Pheromones.Params()
	snap := Snapshot{
		Tick:         g.tick,
		Mode:         g.mode,
		Width:        g.env.Lattice.W,
		Height:       g.env.Lattice.H,
		CellScale:    g.cfg.World.CellScale,
		Tunnels:      g.env.Tunnels.Values(),
		Pheromones:   g.env.Pheromones.Values(),
		PheromoneMin: params.Min,
		PheromoneMax: params.Max,
		Ants:         make([]AntView, 0, len(g.ants)),
		Food:         g.env.Food.All(),
		Nest:         g.env.Nest,
		Delivered:    g.env.Delivered,
	}

	for _, e := range g.ants {
		pos := g.posMap.Get(e)
		ant := g.antMap.Get(e)
		snap.Ants = append(snap.Ants, AntView{
			Position: *pos,
			Category: g.categorize(ant),
			State:    ant.State(),
		})
	}
	return snap
}

func (g *Game) categorize(ant *components.Forager) AntCategory {
	switch {
	case ant.CarryingFood:
		return CategoryCarryingFood
	case ant.SoilCarried >= g.cfg.Colony.SoilCapacity:
		return CategorySoilFull
	default:
		return CategoryNormal
	}
}

// antRecords builds the per-ant summary rows.
func (g *Game) antRecords() []telemetry.AntRecord {
	records := make([]telemetry.AntRecord, 0, len(g.ants))
	i := 0
	query := g.antFilter.Query()
	for query.Next() {
		pos, ant, stats := query.Get()
		records = append(records, telemetry.AntRecord{
			Index:        i,
			State:        ant.State().String(),
			X:            pos.X,
			Y:            pos.Y,
			SoilCarried:  ant.SoilCarried,
			Trips:        stats.Trips,
			Deliveries:   stats.Deliveries,
			CellsDug:     stats.CellsDug,
			Backtracks:   stats.Backtracks,
			Abandoned:    stats.Abandoned,
			LongestTrail: stats.LongestTrail,
		})
		i++
	}
	return records
}

// SnapshotSummary counts what a HUD shows.
type SnapshotSummary struct {
	Exploring     int // Ants drawn as normal
	CarryingFood  int
	SoilFull      int
	FoodRemaining int
	TunnelCells   int
}

// Summary tallies ants by category, food left and dug cells.
func (s *Snapshot) Summary() SnapshotSummary {
	var sum SnapshotSummary
	for _, a := range s.Ants {
		switch a.Category {
		case CategoryCarryingFood:
			sum.CarryingFood++
		case CategorySoilFull:
			sum.SoilFull++
		default:
			sum.Exploring++
		}
	}
	for _, f := range s.Food {
		sum.FoodRemaining += f.Amount
	}
	for _, dug := range s.Tunnels {
		if dug {
			sum.TunnelCells++
		}
	}
	return sum
}
