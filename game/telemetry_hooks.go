package game

import (
	"log/slog"

	"github.com/pthm-cable/burrow/components"
	"github.com/pthm-cable/burrow/telemetry"
)

// flushTelemetry closes the stats window when it has elapsed.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.sampleColony())
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// sampleColony gathers ant and environment gauges for a stats window.
func (g *Game) sampleColony() telemetry.ColonySample {
	sample := telemetry.ColonySample{
		SoilLoads:      make([]float64, 0, len(g.ants)),
		PathLengths:    make([]float64, 0, len(g.ants)),
		Pheromones:     g.env.Pheromones.View(),
		PheromoneMin:   g.env.Pheromones.Params().Min,
		TunnelCells:    g.env.Tunnels.Count(),
		FoodSources:    g.env.Food.Len(),
		FoodRemaining:  g.env.Food.Remaining(),
		DeliveredTotal: g.env.Delivered,
	}

	query := g.antFilter.Query()
	for query.Next() {
		_, ant, _ := query.Get()
		switch ant.State() {
		case components.StateExploring:
			sample.Exploring++
		case components.StateReturningWithFood:
			sample.ReturningFood++
		case components.StateReturningEmpty:
			sample.ReturningEmpty++
		}
		sample.SoilLoads = append(sample.SoilLoads, float64(ant.SoilCarried))
		sample.PathLengths = append(sample.PathLengths, float64(len(ant.Path)))
	}
	return sample
}
