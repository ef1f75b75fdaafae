package game

import (
	"github.com/pthm-cable/burrow/components"
	"github.com/pthm-cable/burrow/systems"
	"github.com/pthm-cable/burrow/telemetry"
)

// Step advances the simulation by exactly one tick unless suspended.
//
// Order within a tick is fixed: depleted food is removed, the lattice
// evaporates, then every ant acts once in creation order. Telemetry runs
// after the core tick.
func (g *Game) Step() {
	if g.mode == ModeSuspended {
		return
	}

	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(telemetry.PhaseFoodPrune)
	if n := g.env.Food.Prune(); n > 0 {
		g.collector.RecordDepleted(n)
	}

	g.perfCollector.StartPhase(telemetry.PhaseEvaporate)
	g.env.Pheromones.Evaporate()

	g.perfCollector.StartPhase(telemetry.PhaseForage)
	updates := g.updateAnts()

	g.tick++

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()

	g.perfCollector.EndTick(updates)
}

// updateAnts runs one decision for every ant and returns how many acted.
func (g *Game) updateAnts() int {
	n := 0
	query := g.antFilter.Query()
	for query.Next() {
		pos, ant, stats := query.Get()
		trail := len(ant.Path)
		ev := systems.Forage(pos, ant, g.env, g.rng)
		recordTrip(stats, ev, trail)
		g.collector.Record(ev)
		n++
	}
	return n
}

// recordTrip folds one update's events into the ant's lifetime counters.
// trail is the stack depth before the update.
func recordTrip(stats *components.TripStats, ev systems.Event, trail int) {
	if ev.Has(systems.EventDug) {
		stats.CellsDug++
	}
	if ev.Has(systems.EventBacktracked) {
		stats.Backtracks++
	}
	if ev.Has(systems.EventExhausted) {
		stats.Abandoned++
	}
	if ev&(systems.EventDelivered|systems.EventReturnedEmpty) != 0 {
		stats.Trips++
	}
	if ev.Has(systems.EventDelivered) {
		stats.Deliveries++
		stats.LongestTrail = max(stats.LongestTrail, int32(trail+1))
	}
}
