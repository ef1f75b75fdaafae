package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated colony statistics for a window of ticks.
type WindowStats struct {
	WindowStartTick int32 `csv:"-"`
	WindowEndTick   int32 `csv:"window_end"`

	// Ant states at window end
	Exploring      int `csv:"exploring"`
	ReturningFood  int `csv:"returning_food"`
	ReturningEmpty int `csv:"returning_empty"`

	// Events during window
	FoodFound       int     `csv:"food_found"`
	Deliveries      int     `csv:"deliveries"`
	EmptyReturns    int     `csv:"empty_returns"`
	CellsDug        int     `csv:"cells_dug"`
	Backtracks      int     `csv:"backtracks"`
	SoilFull        int     `csv:"soil_full"`
	Stalls          int     `csv:"stalls"`
	Exhausted       int     `csv:"exhausted"`
	SourcesDepleted int     `csv:"sources_depleted"`
	DeliveryRate    float64 `csv:"delivery_rate"` // Deliveries per 1000 ticks

	// Colony gauges at window end
	TunnelCells    int `csv:"tunnel_cells"`
	FoodSources    int `csv:"food_sources"`
	FoodRemaining  int `csv:"food_remaining"`
	DeliveredTotal int `csv:"delivered_total"`

	// Soil load distribution across ants
	SoilMean float64 `csv:"soil_mean"`
	SoilStd  float64 `csv:"soil_std"`
	SoilP90  float64 `csv:"soil_p90"`

	// Backtrack stack depth distribution across ants
	PathMean float64 `csv:"path_mean"`
	PathP50  float64 `csv:"path_p50"`
	PathMax  float64 `csv:"path_max"`

	// Pheromone lattice
	TrailLinks    int     `csv:"trail_links"` // Links above the field minimum
	PheromoneMass float64 `csv:"pheromone_mass"`
	PheromoneMax  float64 `csv:"pheromone_max"`
	TrailMean     float64 `csv:"trail_mean"` // Mean over trail links only
	TrailP90      float64 `csv:"trail_p90"`
}

// Quantile returns the empirical p-quantile of values.
// values need not be sorted. Returns 0 for an empty slice.
func Quantile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return stat.Quantile(clampUnit(p), stat.Empirical, sorted, nil)
}

// Distribution summarises values as mean, population std, median, p90 and max.
type Distribution struct {
	Mean, Std, P50, P90, Max float64
}

// Summarize computes a Distribution. An empty slice yields all zeros.
func Summarize(values []float64) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean, std := stat.PopMeanStdDev(sorted, nil)
	return Distribution{
		Mean: mean,
		Std:  std,
		P50:  stat.Quantile(0.5, stat.Empirical, sorted, nil),
		P90:  stat.Quantile(0.9, stat.Empirical, sorted, nil),
		Max:  sorted[len(sorted)-1],
	}
}

// LatticeSummary describes a pheromone lattice relative to its minimum.
type LatticeSummary struct {
	TrailLinks int
	Mass       float64
	Max        float64
	TrailMean  float64
	TrailP90   float64
}

// SummarizeLattice computes lattice totals. Entries at or below min are
// background and excluded from the trail statistics.
func SummarizeLattice(values []float64, min float64) LatticeSummary {
	if len(values) == 0 {
		return LatticeSummary{}
	}
	s := LatticeSummary{
		Mass: floats.Sum(values),
		Max:  floats.Max(values),
	}

	var trail []float64
	for _, v := range values {
		if v > min {
			trail = append(trail, v)
		}
	}
	s.TrailLinks = len(trail)
	if len(trail) > 0 {
		d := Summarize(trail)
		s.TrailMean = d.Mean
		s.TrailP90 = d.P90
	}
	return s
}

func clampUnit(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Int("exploring", s.Exploring),
		slog.Int("returning_food", s.ReturningFood),
		slog.Int("returning_empty", s.ReturningEmpty),
		slog.Int("food_found", s.FoodFound),
		slog.Int("deliveries", s.Deliveries),
		slog.Int("empty_returns", s.EmptyReturns),
		slog.Int("cells_dug", s.CellsDug),
		slog.Int("backtracks", s.Backtracks),
		slog.Int("soil_full", s.SoilFull),
		slog.Int("stalls", s.Stalls),
		slog.Int("exhausted", s.Exhausted),
		slog.Int("sources_depleted", s.SourcesDepleted),
		slog.Float64("delivery_rate", s.DeliveryRate),
		slog.Int("tunnel_cells", s.TunnelCells),
		slog.Int("food_sources", s.FoodSources),
		slog.Int("food_remaining", s.FoodRemaining),
		slog.Int("delivered_total", s.DeliveredTotal),
		slog.Float64("soil_mean", s.SoilMean),
		slog.Float64("soil_std", s.SoilStd),
		slog.Float64("soil_p90", s.SoilP90),
		slog.Float64("path_mean", s.PathMean),
		slog.Float64("path_p50", s.PathP50),
		slog.Float64("path_max", s.PathMax),
		slog.Int("trail_links", s.TrailLinks),
		slog.Float64("pheromone_mass", s.PheromoneMass),
		slog.Float64("pheromone_max", s.PheromoneMax),
		slog.Float64("trail_mean", s.TrailMean),
		slog.Float64("trail_p90", s.TrailP90),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"exploring", s.Exploring,
		"returning_food", s.ReturningFood,
		"returning_empty", s.ReturningEmpty,
		"deliveries", s.Deliveries,
		"food_found", s.FoodFound,
		"cells_dug", s.CellsDug,
		"tunnel_cells", s.TunnelCells,
		"food_remaining", s.FoodRemaining,
		"delivered_total", s.DeliveredTotal,
		"trail_links", s.TrailLinks,
		"trail_p90", s.TrailP90,
	)
}
