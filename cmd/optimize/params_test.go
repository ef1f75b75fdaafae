package main

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/pthm-cable/burrow/config"
)

func TestNormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-9 {
			t.Errorf("%s: %g -> %g", pv.Specs[i].Name, raw[i], back[i])
		}
	}
}

func TestClamp(t *testing.T) {
	pv := NewParamVector()
	low := make([]float64, pv.Dim())
	high := make([]float64, pv.Dim())
	for i := range low {
		low[i] = -1e9
		high[i] = 1e9
	}
	for i, v := range pv.Clamp(low) {
		if v != pv.Specs[i].Min {
			t.Errorf("%s low clamp = %g, want %g", pv.Specs[i].Name, v, pv.Specs[i].Min)
		}
	}
	for i, v := range pv.Clamp(high) {
		if v != pv.Specs[i].Max {
			t.Errorf("%s high clamp = %g, want %g", pv.Specs[i].Name, v, pv.Specs[i].Max)
		}
	}
}

func TestDefaultsMatchConfig(t *testing.T) {
	cfg, err := config.Defaults()
	if err != nil {
		t.Fatal(err)
	}
	pv := NewParamVector()
	got := pv.ExtractFromConfig(cfg)
	if len(got) != pv.Dim() {
		t.Fatalf("extracted %d values, want %d", len(got), pv.Dim())
	}
	for i, spec := range pv.Specs {
		if got[i] != spec.Default {
			t.Errorf("%s: config %g, spec default %g", spec.Name, got[i], spec.Default)
		}
	}
}

func TestApplyToConfigFinalizes(t *testing.T) {
	cfg, err := config.Defaults()
	if err != nil {
		t.Fatal(err)
	}
	pv := NewParamVector()

	// Every corner of the search box must produce a valid config.
	for _, pick := range []func(ParamSpec) float64{
		func(s ParamSpec) float64 { return s.Min },
		func(s ParamSpec) float64 { return s.Max },
	} {
		values := make([]float64, pv.Dim())
		for i, spec := range pv.Specs {
			values[i] = pick(spec)
		}
		c := *cfg
		pv.ApplyToConfig(&c, values)
		if err := c.Finalize(); err != nil {
			t.Errorf("config rejected %v: %v", values, err)
		}
		back := pv.ExtractFromConfig(&c)
		for i := range values {
			if math.Abs(back[i]-values[i]) > 0.5 {
				t.Errorf("%s applied as %g, want %g", pv.Specs[i].Name, back[i], values[i])
			}
		}
	}
}

func TestEvalRecordOrder(t *testing.T) {
	pv := NewParamVector()
	values := pv.DefaultVector()
	rec := NewEvalRecord(3, -12, EvalSummary{DeliveredMean: 12}, values)
	if rec.EvaporationFast != values[0] || rec.SoilCapacity != values[6] || rec.DiggingCost != values[5] {
		t.Errorf("record fields out of order: %+v", rec)
	}
}

func smallWorldConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Defaults()
	if err != nil {
		t.Fatal(err)
	}
	cfg.World.Width = 30
	cfg.World.Height = 20
	cfg.Colony.Ants = 10
	cfg.Food.InitialSources = 1
	cfg.Food.SpawnMargin = 2
	cfg.Food.MinNestDistance = 5
	cfg.Telemetry.StatsWindow = 50
	if err := cfg.Finalize(); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestEvaluateSmallWorld(t *testing.T) {
	pv := NewParamVector()
	fe := NewFitnessEvaluator(pv, 200, []int64{1, 2}, smallWorldConfig(t))
	fitness, err := fe.Evaluate(context.Background(), pv.DefaultVector())
	if err != nil {
		t.Fatal(err)
	}
	summary := fe.LastSummary()

	if fitness != -summary.DeliveredMean {
		t.Errorf("fitness %g does not match mean delivered %g", fitness, summary.DeliveredMean)
	}
	if fitness > 0 {
		t.Errorf("fitness = %g, want <= 0", fitness)
	}
	if summary.TunnelCellsMean < 1 {
		t.Errorf("tunnel cells mean = %g, want at least the nest", summary.TunnelCellsMean)
	}

	// Deterministic for fixed seeds.
	if again, _ := fe.Evaluate(context.Background(), pv.DefaultVector()); again != fitness {
		t.Errorf("repeat evaluation = %g, want %g", again, fitness)
	}
}

func TestEvaluateCancelled(t *testing.T) {
	pv := NewParamVector()
	fe := NewFitnessEvaluator(pv, 200, []int64{1, 2, 3}, smallWorldConfig(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := fe.Evaluate(ctx, pv.DefaultVector()); !errors.Is(err, context.Canceled) {
		t.Errorf("Evaluate on cancelled context: err = %v, want context.Canceled", err)
	}
}
