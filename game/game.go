// Package game runs the ant colony: it owns the tunnel grid, pheromone
// lattice, food and nest, and advances every ant once per tick.
package game

import (
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/burrow/components"
	"github.com/pthm-cable/burrow/config"
	"github.com/pthm-cable/burrow/systems"
	"github.com/pthm-cable/burrow/telemetry"
)

// Mode controls whether Step advances the simulation.
type Mode uint8

const (
	ModeActive    Mode = iota // Ticks advance
	ModeSuspended             // Step is a no-op
)

func (m Mode) String() string {
	if m == ModeSuspended {
		return "suspended"
	}
	return "active"
}

// Options configures game initialization.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindow    int // Ticks per telemetry window (0 = config)
	OutputDir      string
	StepsPerUpdate int // Ticks per Update call (0 = 1)
	Config         *config.Config
	StatsCallback  func(telemetry.WindowStats) // Called on every window flush
}

// Game holds the complete simulation state.
type Game struct {
	cfg *config.Config
	rng *rand.Rand

	world     *ecs.World
	antMapper *ecs.Map3[components.Position, components.Forager, components.TripStats]
	antFilter *ecs.Filter3[components.Position, components.Forager, components.TripStats]
	posMap    *ecs.Map1[components.Position]
	antMap    *ecs.Map1[components.Forager]
	ants      []ecs.Entity // Creation order

	env *systems.Environment

	tick           int32
	mode           Mode
	stepsPerUpdate int
	rngSeed        int64

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)
}

// NewGame creates a game from the global config with a fixed seed.
func NewGame() *Game {
	return NewGameWithOptions(Options{Seed: 42})
}

// NewGameWithOptions creates a new game instance.
func NewGameWithOptions(opts Options) *Game {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	world := ecs.NewWorld()

	statsWindow := opts.StatsWindow
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}
	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	g := &Game{
		cfg:            cfg,
		rng:            rand.New(rand.NewSource(opts.Seed)),
		world:          world,
		antMapper:      ecs.NewMap3[components.Position, components.Forager, components.TripStats](world),
		antFilter:      ecs.NewFilter3[components.Position, components.Forager, components.TripStats](world),
		posMap:         ecs.NewMap1[components.Position](world),
		antMap:         ecs.NewMap1[components.Forager](world),
		env:            systems.NewEnvironment(cfg),
		stepsPerUpdate: steps,
		rngSeed:        opts.Seed,
		collector:      telemetry.NewCollector(statsWindow),
		perfCollector:  telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		logStats:       opts.LogStats,
		statsCallback:  opts.StatsCallback,
	}

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			slog.Error("failed to create output manager", "error", err)
		} else {
			g.outputManager = om
			if err := om.WriteConfig(cfg); err != nil {
				slog.Error("failed to write config", "error", err)
			}
		}
	}

	g.digNest()
	g.spawnInitialFood()
	g.spawnColony()

	return g
}

// Update runs StepsPerUpdate ticks. Suspended games do not advance.
func (g *Game) Update() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.Step()
	}
}

// UpdateHeadless is Update for runs without a window.
func (g *Game) UpdateHeadless() {
	g.Update()
}

// Tick returns the number of ticks simulated so far.
func (g *Game) Tick() int32 { return g.tick }

// Mode returns the current run mode.
func (g *Game) Mode() Mode { return g.mode }

// SetMode switches between active and suspended.
func (g *Game) SetMode(m Mode) { g.mode = m }

// TogglePause flips between active and suspended.
func (g *Game) TogglePause() {
	if g.mode == ModeActive {
		g.mode = ModeSuspended
	} else {
		g.mode = ModeActive
	}
}

// StepsPerUpdate returns the number of ticks each Update runs.
func (g *Game) StepsPerUpdate() int { return g.stepsPerUpdate }

// SetStepsPerUpdate changes the simulation speed. Values below 1 are clamped.
func (g *Game) SetStepsPerUpdate(n int) {
	g.stepsPerUpdate = max(n, 1)
}

// Delivered returns the total food dropped at the nest.
func (g *Game) Delivered() int { return g.env.Delivered }

// Config returns the configuration the game was built with.
func (g *Game) Config() *config.Config { return g.cfg }

// Seed returns the RNG seed.
func (g *Game) Seed() int64 { return g.rngSeed }

// PerfCollector exposes tick timing so the window loop can record frames.
func (g *Game) PerfCollector() *telemetry.PerfCollector { return g.perfCollector }

// Unload writes the end-of-run summary and closes telemetry output.
func (g *Game) Unload() {
	if g.outputManager == nil {
		return
	}
	if err := g.outputManager.WriteAnts(g.antRecords()); err != nil {
		slog.Error("failed to write ant summary", "error", err)
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
