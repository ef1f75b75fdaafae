package main

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/burrow/config"
	"github.com/pthm-cable/burrow/game"
	"github.com/pthm-cable/burrow/telemetry"
)

// EvalSummary aggregates one evaluation across seeds.
type EvalSummary struct {
	DeliveredMean   float64
	DeliveredStd    float64
	TunnelCellsMean float64
}

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int32
	seeds      []int64
	baseConfig *config.Config

	mu          sync.Mutex
	lastSummary EvalSummary
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		maxTicks:   maxTicks,
		seeds:      seeds,
		baseConfig: baseCfg,
	}
}

// LastSummary returns the per-seed aggregate from the most recent evaluation.
func (fe *FitnessEvaluator) LastSummary() EvalSummary {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastSummary
}

// runResult holds the results from a single simulation run.
type runResult struct {
	delivered   int
	tunnelCells int
	windows     []telemetry.WindowStats
}

// Evaluate computes fitness for raw parameter values (lower = better).
// Fitness is the negated mean food delivered over all seeds.
// Parameter sets the config rejects score 0, the worst possible value.
// A cancelled ctx stops every run and returns its error.
func (fe *FitnessEvaluator) Evaluate(ctx context.Context, x []float64) (float64, error) {
	cfg, err := fe.configFor(x)
	if err != nil {
		fe.mu.Lock()
		fe.lastSummary = EvalSummary{}
		fe.mu.Unlock()
		return 0, nil
	}

	results := make([]runResult, len(fe.seeds))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, seed := range fe.seeds {
		g.Go(func() error {
			r, err := fe.runSimulation(gctx, cfg, seed)
			results[i] = r
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	summary := summarizeRuns(results)
	fe.mu.Lock()
	fe.lastSummary = summary
	fe.mu.Unlock()

	return -summary.DeliveredMean, nil
}

// configFor builds a finalized copy of the base config with x applied.
func (fe *FitnessEvaluator) configFor(x []float64) (*config.Config, error) {
	cfg := *fe.baseConfig
	fe.params.ApplyToConfig(&cfg, x)
	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// runSimulation executes a single headless run to maxTicks.
// cfg is shared read-only between concurrent runs.
func (fe *FitnessEvaluator) runSimulation(ctx context.Context, cfg *config.Config, seed int64) (runResult, error) {
	var result runResult

	g := game.NewGameWithOptions(game.Options{
		Seed:           seed,
		StepsPerUpdate: 1,
		Config:         cfg,
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windows = append(result.windows, stats)
		},
	})
	defer g.Unload()

	for g.Tick() < fe.maxTicks {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		g.UpdateHeadless()
	}

	result.delivered = g.Delivered()
	if n := len(result.windows); n > 0 {
		result.tunnelCells = result.windows[n-1].TunnelCells
	}
	return result, nil
}

// summarizeRuns aggregates deliveries and tunnel size across seeds.
func summarizeRuns(results []runResult) EvalSummary {
	if len(results) == 0 {
		return EvalSummary{}
	}
	delivered := make([]float64, len(results))
	tunnels := make([]float64, len(results))
	for i, r := range results {
		delivered[i] = float64(r.delivered)
		tunnels[i] = float64(r.tunnelCells)
	}
	mean, std := stat.PopMeanStdDev(delivered, nil)
	return EvalSummary{
		DeliveredMean:   mean,
		DeliveredStd:    std,
		TunnelCellsMean: stat.Mean(tunnels, nil),
	}
}
