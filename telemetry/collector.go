// Package telemetry provides colony statistics, CSV output, and tick timing.
package telemetry

import "github.com/pthm-cable/burrow/systems"

// Collector accumulates ant events within tick windows and produces WindowStats.
type Collector struct {
	windowDurationTicks int32

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	foodFound       int
	deliveries      int
	emptyReturns    int
	cellsDug        int
	backtracks      int
	soilFull        int
	stalls          int
	exhausted       int
	sourcesDepleted int
}

// NewCollector creates a new stats collector that flushes every windowTicks ticks.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowDurationTicks: int32(windowTicks)}
}

// Record counts the events of one ant update.
func (c *Collector) Record(ev systems.Event) {
	if ev.Has(systems.EventFoundFood) {
		c.foodFound++
	}
	if ev.Has(systems.EventDelivered) {
		c.deliveries++
	}
	if ev.Has(systems.EventReturnedEmpty) {
		c.emptyReturns++
	}
	if ev.Has(systems.EventDug) {
		c.cellsDug++
	}
	if ev.Has(systems.EventBacktracked) {
		c.backtracks++
	}
	if ev.Has(systems.EventSoilFull) {
		c.soilFull++
	}
	if ev.Has(systems.EventStalled) {
		c.stalls++
	}
	if ev.Has(systems.EventExhausted) {
		c.exhausted++
	}
}

// RecordDepleted counts food sources removed at the start of a tick.
func (c *Collector) RecordDepleted(n int) {
	c.sourcesDepleted += n
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// ColonySample is the state sampled from the simulation at flush time.
type ColonySample struct {
	Exploring      int
	ReturningFood  int
	ReturningEmpty int

	SoilLoads   []float64 // Per ant
	PathLengths []float64 // Per ant, backtrack stack depth

	Pheromones   []float64 // Lattice values
	PheromoneMin float64

	TunnelCells    int
	FoodSources    int
	FoodRemaining  int
	DeliveredTotal int
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, sample ColonySample) WindowStats {
	var rate float64
	if ticks := currentTick - c.windowStartTick; ticks > 0 {
		rate = float64(c.deliveries) * 1000 / float64(ticks)
	}

	soil := Summarize(sample.SoilLoads)
	paths := Summarize(sample.PathLengths)
	lattice := SummarizeLattice(sample.Pheromones, sample.PheromoneMin)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,

		Exploring:      sample.Exploring,
		ReturningFood:  sample.ReturningFood,
		ReturningEmpty: sample.ReturningEmpty,

		FoodFound:       c.foodFound,
		Deliveries:      c.deliveries,
		EmptyReturns:    c.emptyReturns,
		CellsDug:        c.cellsDug,
		Backtracks:      c.backtracks,
		SoilFull:        c.soilFull,
		Stalls:          c.stalls,
		Exhausted:       c.exhausted,
		SourcesDepleted: c.sourcesDepleted,
		DeliveryRate:    rate,

		TunnelCells:    sample.TunnelCells,
		FoodSources:    sample.FoodSources,
		FoodRemaining:  sample.FoodRemaining,
		DeliveredTotal: sample.DeliveredTotal,

		SoilMean: soil.Mean,
		SoilStd:  soil.Std,
		SoilP90:  soil.P90,

		PathMean: paths.Mean,
		PathP50:  paths.P50,
		PathMax:  paths.Max,

		TrailLinks:    lattice.TrailLinks,
		PheromoneMass: lattice.Mass,
		PheromoneMax:  lattice.Max,
		TrailMean:     lattice.TrailMean,
		TrailP90:      lattice.TrailP90,
	}

	c.reset(currentTick)
	return stats
}

func (c *Collector) reset(currentTick int32) {
	*c = Collector{
		windowDurationTicks: c.windowDurationTicks,
		windowStartTick:     currentTick,
	}
}
