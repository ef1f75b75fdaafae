package systems

import (
	"math"

	"github.com/pthm-cable/burrow/components"
	"github.com/pthm-cable/burrow/config"
)

// Event is a set of things that happened during one ant update.
type Event uint16

const (
	EventMoved         Event = 1 << iota // Ant stepped to a neighbouring cell
	EventDug                             // The step dug a fresh cell
	EventBacktracked                     // Ant stepped back along its stack
	EventFoundFood                       // Ant picked up food
	EventDelivered                       // Ant dropped food at the nest
	EventReturnedEmpty                   // Ant reached the nest without food
	EventSoilFull                        // Soil load hit capacity this update
	EventStalled                         // No usable move distribution
	EventExhausted                       // Backtrack stack ran out; ant reset to the nest
	EventBootstrap                       // Heading step off an empty stack
)

// Has reports whether all bits of flag are set.
func (e Event) Has(flag Event) bool { return e&flag == flag }

// ForageParams holds the ant movement model.
type ForageParams struct {
	Scale             int // Fine units per cell
	NestRange         int // Manhattan, fine units
	FoodRange         int // Manhattan, cells
	SoilCapacity      int
	UnlimitedFood     bool
	PheromoneExponent float64
	HeuristicExponent float64
	DiggingCost       float64
	DepositIntensity  float64
}

// ForageParamsFromConfig extracts movement parameters from the config.
func ForageParamsFromConfig(cfg *config.Config) ForageParams {
	return ForageParams{
		Scale:             cfg.World.CellScale,
		NestRange:         cfg.Colony.NestDetectionRange,
		FoodRange:         cfg.Food.DetectionRange,
		SoilCapacity:      cfg.Colony.SoilCapacity,
		UnlimitedFood:     cfg.Food.Unlimited,
		PheromoneExponent: cfg.Forage.PheromoneExponent,
		HeuristicExponent: cfg.Forage.HeuristicExponent,
		DiggingCost:       cfg.Forage.DiggingCost,
		DepositIntensity:  cfg.Pheromone.DepositIntensity,
	}
}

// Environment is the shared world an ant update reads and writes.
// It is owned by the simulation and lent to one ant at a time.
type Environment struct {
	Lattice    Lattice
	Tunnels    *TunnelMap
	Pheromones *PheromoneField
	Food       *FoodSources
	Nest       components.Position
	Delivered  int
	Params     ForageParams

	// Scratch buffers reused across ant updates
	candidates []components.Cell
	weights    []float64
}

// NewEnvironment builds an empty world from the config.
func NewEnvironment(cfg *config.Config) *Environment {
	l := NewLattice(cfg.World.Width, cfg.World.Height)
	return &Environment{
		Lattice:    l,
		Tunnels:    NewTunnelMap(l.W, l.H),
		Pheromones: NewPheromoneField(l, PheromoneParamsFromConfig(cfg)),
		Food:       NewFoodSources(),
		Nest:       components.Position{X: cfg.Derived.NestFineX, Y: cfg.Derived.NestFineY},
		Params:     ForageParamsFromConfig(cfg),
		candidates: make([]components.Cell, 0, 4),
		weights:    make([]float64, 0, 4),
	}
}

// Forage advances one ant by a single decision and reports what happened.
func Forage(pos *components.Position, ant *components.Forager, env *Environment, u Uniform) Event {
	if ant.Returning && !ant.CarryingFood {
		ev := backtrack(pos, ant, env)
		if !ev.Has(EventExhausted) {
			ev |= scanForTargets(pos, ant, env)
		}
		return ev
	}

	scale := env.Params.Scale
	if len(ant.Path) == 0 {
		pos.X += int(math.Round(math.Cos(ant.Heading)))
		pos.Y += int(math.Round(math.Sin(ant.Heading)))
		ant.Visited.Mark(pos.Cell(scale))
		ant.Push(*pos)
		return EventBootstrap
	}

	cur := pos.Cell(scale)
	if !env.Lattice.Contains(cur) {
		// No link leads back into the grid. Restart from the nest with a
		// fresh heading so the next bootstrap step can differ.
		ant.ReturnHome(pos)
		ant.Heading = u.Float64() * 2 * math.Pi
		return EventExhausted
	}

	candidates := env.neighbours(cur, ant)
	weights := env.weights[:0]
	n := 0
	for _, c := range candidates {
		ph, ok := env.Pheromones.Read(cur, c)
		if !ok {
			continue
		}
		h := 1.0
		if !env.Tunnels.IsDug(c) {
			h = 1 / env.Params.DiggingCost
		}
		candidates[n] = c
		n++
		weights = append(weights, Desirability(ph, h, env.Params.PheromoneExponent, env.Params.HeuristicExponent))
	}
	candidates = candidates[:n]
	env.weights = weights
	if len(candidates) == 0 {
		return backtrack(pos, ant, env)
	}

	var ev Event
	if i, ok := Roulette(weights, u); ok {
		next := candidates[i]
		*pos = next.Fine(scale)
		ev |= EventMoved
		if env.Tunnels.Dig(next) {
			ant.SoilCarried++
			ev |= EventDug
		}
		ant.Visited.Mark(next)
		ant.Push(*pos)
	} else {
		ev |= EventStalled
	}

	ev |= scanForTargets(pos, ant, env)

	if !ant.Returning && ant.SoilCarried >= env.Params.SoilCapacity {
		ant.Returning = true
		ev |= EventSoilFull
	}
	return ev
}

// neighbours lists the unvisited in-grid neighbours of cur in left, right,
// up, down order. Food carriers only walk existing tunnels.
func (env *Environment) neighbours(cur components.Cell, ant *components.Forager) []components.Cell {
	out := env.candidates[:0]
	for _, c := range [4]components.Cell{
		{X: cur.X - 1, Y: cur.Y},
		{X: cur.X + 1, Y: cur.Y},
		{X: cur.X, Y: cur.Y - 1},
		{X: cur.X, Y: cur.Y + 1},
	} {
		if !env.Lattice.Contains(c) || ant.Visited.Has(c) {
			continue
		}
		if ant.CarryingFood && !env.Tunnels.IsDug(c) {
			continue
		}
		out = append(out, c)
	}
	env.candidates = out
	return out
}

// backtrack pops the stack until it finds a position different from the
// current one and moves there. An exhausted stack abandons the trip.
func backtrack(pos *components.Position, ant *components.Forager, env *Environment) Event {
	for {
		prev, ok := ant.Pop()
		if !ok {
			ant.ReturnHome(pos)
			return EventExhausted
		}
		if prev != *pos {
			*pos = prev
			return EventBacktracked
		}
	}
}

// scanForTargets handles picking up food while exploring and arriving at
// the nest while returning.
func scanForTargets(pos *components.Position, ant *components.Forager, env *Environment) Event {
	var ev Event
	p := env.Params

	if !ant.Returning {
		if src := env.Food.Find(pos.Cell(p.Scale), p.FoodRange, p.Scale); src != nil {
			if !p.UnlimitedFood {
				src.Amount--
			}
			ant.Returning = true
			ant.CarryingFood = true
			ant.ResetTrip()
			ev |= EventFoundFood
		}
	}

	if ant.Returning && pos.Manhattan(env.Nest) <= p.NestRange {
		if ant.CarryingFood {
			SpreadPheromones(ant, env)
			env.Delivered++
			ev |= EventDelivered
		} else {
			ev |= EventReturnedEmpty
		}
		ant.ReturnHome(pos)
	}
	return ev
}

// SpreadPheromones drains the ant's backtrack stack, depositing an equal
// share of the deposit intensity on every link between consecutive
// positions. Pairs that are not a link (same cell, or off-grid) are
// skipped and do not count toward the share. Returns the number of links
// that received pheromone.
func SpreadPheromones(ant *components.Forager, env *Environment) int {
	scale := env.Params.Scale
	path := ant.Path

	links := 0
	for i := len(path) - 1; i > 0; i-- {
		if _, ok := env.Lattice.Index(path[i].Cell(scale), path[i-1].Cell(scale)); ok {
			links++
		}
	}

	if links > 0 {
		share := env.Params.DepositIntensity / float64(links)
		for i := len(path) - 1; i > 0; i-- {
			env.Pheromones.Deposit(path[i].Cell(scale), path[i-1].Cell(scale), share)
		}
	}

	ant.Path = ant.Path[:0]
	return links
}
