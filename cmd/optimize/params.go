// Package main provides CMA-ES optimization for colony foraging parameters.
package main

import (
	"math"

	"github.com/pthm-cable/burrow/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Pheromone lattice
			{Name: "evaporation_fast", Path: "pheromone.evaporation_fast", Min: 0.5, Max: 0.99, Default: 0.9},
			{Name: "evaporation_slow", Path: "pheromone.evaporation_slow", Min: 0.9, Max: 0.999, Default: 0.99},
			{Name: "deposit_intensity", Path: "pheromone.deposit_intensity", Min: 1000, Max: 50000, Default: 20000},
			// Movement model
			{Name: "pheromone_exponent", Path: "forage.pheromone_exponent", Min: 1, Max: 10, Default: 7},
			{Name: "heuristic_exponent", Path: "forage.heuristic_exponent", Min: 0, Max: 5, Default: 2},
			{Name: "digging_cost", Path: "forage.digging_cost", Min: 1, Max: 500, Default: 100},
			// Colony
			{Name: "soil_capacity", Path: "colony.soil_capacity", Min: 10, Max: 500, Default: 100},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = math.Min(math.Max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig writes parameter values into cfg. Order must match Specs.
// The caller must Finalize cfg afterwards.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	cfg.Pheromone.EvaporationFast = clamped[0]
	cfg.Pheromone.EvaporationSlow = clamped[1]
	cfg.Pheromone.DepositIntensity = clamped[2]

	cfg.Forage.PheromoneExponent = clamped[3]
	cfg.Forage.HeuristicExponent = clamped[4]
	cfg.Forage.DiggingCost = clamped[5]

	cfg.Colony.SoilCapacity = int(math.Round(clamped[6]))
}

// ExtractFromConfig reads the current parameter values from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Pheromone.EvaporationFast,
		cfg.Pheromone.EvaporationSlow,
		cfg.Pheromone.DepositIntensity,
		cfg.Forage.PheromoneExponent,
		cfg.Forage.HeuristicExponent,
		cfg.Forage.DiggingCost,
		float64(cfg.Colony.SoilCapacity),
	}
}

// EvalRecord is one row of the optimization log.
type EvalRecord struct {
	Eval              int     `csv:"eval"`
	Fitness           float64 `csv:"fitness"`
	DeliveredMean     float64 `csv:"delivered_mean"`
	DeliveredStd      float64 `csv:"delivered_std"`
	TunnelCellsMean   float64 `csv:"tunnel_cells_mean"`
	EvaporationFast   float64 `csv:"evaporation_fast"`
	EvaporationSlow   float64 `csv:"evaporation_slow"`
	DepositIntensity  float64 `csv:"deposit_intensity"`
	PheromoneExponent float64 `csv:"pheromone_exponent"`
	HeuristicExponent float64 `csv:"heuristic_exponent"`
	DiggingCost       float64 `csv:"digging_cost"`
	SoilCapacity      float64 `csv:"soil_capacity"`
}

// NewEvalRecord fills a log row from clamped parameter values in Specs order.
func NewEvalRecord(eval int, fitness float64, summary EvalSummary, values []float64) EvalRecord {
	return EvalRecord{
		Eval:              eval,
		Fitness:           fitness,
		DeliveredMean:     summary.DeliveredMean,
		DeliveredStd:      summary.DeliveredStd,
		TunnelCellsMean:   summary.TunnelCellsMean,
		EvaporationFast:   values[0],
		EvaporationSlow:   values[1],
		DepositIntensity:  values[2],
		PheromoneExponent: values[3],
		HeuristicExponent: values[4],
		DiggingCost:       values[5],
		SoilCapacity:      values[6],
	}
}
