package game

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/burrow/components"
	"github.com/pthm-cable/burrow/config"
	"github.com/pthm-cable/burrow/systems"
	"github.com/pthm-cable/burrow/telemetry"
)

func testConfig(t *testing.T, mutate func(*config.Config)) *config.Config {
	t.Helper()
	cfg, err := config.Defaults()
	if err != nil {
		t.Fatal(err)
	}
	if mutate != nil {
		mutate(cfg)
	}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("config: %v", err)
	}
	return cfg
}

// corridorConfig is a one-row world with the nest at the left end.
func corridorConfig(t *testing.T) *config.Config {
	return testConfig(t, func(c *config.Config) {
		c.World.Width = 21
		c.World.Height = 1
		c.Colony.NestX = 0
		c.Colony.NestY = 0
		c.Colony.Ants = 1
		c.Colony.SpawnJitter = 0
		c.Food.InitialSources = 0
		c.Food.AmountPerSource = 1
		c.Food.DetectionRange = 0
	})
}

func TestCorridorForagingScenario(t *testing.T) {
	g := NewGameWithOptions(Options{Seed: 7, Config: corridorConfig(t)})
	if !g.AddFoodSource(components.Position{X: 100, Y: 0}) {
		t.Fatal("food at cell 20 rejected")
	}

	// Explore until the food is picked up.
	for g.Snapshot().Food[0].Amount > 0 {
		if g.Tick() > 200 {
			t.Fatal("food never found")
		}
		g.Step()
	}
	snap := g.Snapshot()
	if len(snap.Food) != 1 {
		t.Fatal("depleted source removed before the next tick")
	}
	if snap.Ants[0].Category != CategoryCarryingFood {
		t.Errorf("ant category = %v, want carrying food", snap.Ants[0].Category)
	}

	g.Step()
	if n := len(g.Snapshot().Food); n != 0 {
		t.Fatalf("depleted source still present after next tick (%d sources)", n)
	}

	for g.Delivered() == 0 {
		if g.Tick() > 500 {
			t.Fatal("food never delivered")
		}
		g.Step()
	}

	snap = g.Snapshot()
	if snap.Delivered != 1 {
		t.Errorf("delivered = %d, want 1", snap.Delivered)
	}
	for x := 0; x <= 20; x++ {
		if !snap.Tunnel(x, 0) {
			t.Errorf("cell %d not dug", x)
		}
	}
	// The carrier walked home from around cell 19 to cell 5, where the nest comes in range.
	lat := systems.NewLattice(21, 1)
	for x := 6; x <= 19; x++ {
		lc, _ := lat.Index(components.Cell{X: x - 1}, components.Cell{X: x})
		if v := snap.Pheromone(lc); v <= snap.PheromoneMin {
			t.Errorf("link %d-%d pheromone %g, want above min", x-1, x, v)
		}
	}
	if snap.Ants[0].Position != snap.Nest || snap.Ants[0].State != components.StateExploring {
		t.Errorf("ant not reset after delivery: %+v", snap.Ants[0])
	}
}

func TestEdgeNestKeepsAntsInGrid(t *testing.T) {
	cfg := testConfig(t, func(c *config.Config) {
		c.Colony.NestX = 0
		c.Colony.NestY = 0
		c.Colony.Ants = 200
		c.Colony.SoilCapacity = 5
	})
	g := NewGameWithOptions(Options{Seed: 11, Config: cfg})

	for i, a := range g.Snapshot().Ants {
		p := a.Position
		if p.X < 0 || p.Y < 0 || p.X >= cfg.Derived.FineWidth || p.Y >= cfg.Derived.FineHeight {
			t.Fatalf("ant %d spawned off the grid at %+v", i, p)
		}
	}

	// The first step off an edge truncates back into cell 0, so check cells.
	inGrid := func(p components.Position) bool {
		c := p.Cell(cfg.World.CellScale)
		return c.X >= 0 && c.Y >= 0 && c.X < cfg.World.Width && c.Y < cfg.World.Height
	}

	for tick := 0; tick < 1000; tick++ {
		g.Step()
		if tick%50 != 0 {
			continue
		}
		for i, a := range g.Snapshot().Ants {
			if !inGrid(a.Position) {
				t.Fatalf("tick %d: ant %d off the grid at %+v", g.Tick(), i, a.Position)
			}
		}
	}
}

func TestAntsActInCreationOrder(t *testing.T) {
	g := NewGameWithOptions(Options{Seed: 1, Config: testConfig(t, nil)})

	var order []ecs.Entity
	query := g.antFilter.Query()
	for query.Next() {
		order = append(order, query.Entity())
	}
	if !reflect.DeepEqual(order, g.ants) {
		t.Fatal("query order differs from creation order")
	}
}

func TestLaterAntSeesEarlierDig(t *testing.T) {
	cfg := testConfig(t, func(c *config.Config) {
		c.World.Width = 3
		c.World.Height = 1
		c.Colony.NestX = 0
		c.Colony.NestY = 0
		c.Colony.Ants = 2
		c.Colony.SpawnJitter = 0
		c.Colony.NestDetectionRange = 0
		c.Food.InitialSources = 0
	})
	g := NewGameWithOptions(Options{Seed: 1, Config: cfg})

	// Both ants stand in cell 1 with cell 2 as their only way forward.
	start := components.Cell{X: 1}.Fine(cfg.World.CellScale)
	for _, e := range g.ants {
		pos, ant, _ := g.antMapper.Get(e)
		*pos = start
		ant.Visited.Mark(components.Cell{X: 0})
		ant.Visited.Mark(components.Cell{X: 1})
		ant.Push(start)
	}

	g.Step()

	want := components.Cell{X: 2}.Fine(cfg.World.CellScale)
	for i, e := range g.ants {
		pos, ant, stats := g.antMapper.Get(e)
		if *pos != want {
			t.Fatalf("ant %d at %+v, want %+v", i, *pos, want)
		}
		wantDug := int32(0)
		if i == 0 {
			wantDug = 1
		}
		if stats.CellsDug != wantDug || ant.SoilCarried != int(wantDug) {
			t.Errorf("ant %d dug %d (soil %d), want %d", i, stats.CellsDug, ant.SoilCarried, wantDug)
		}
	}
}

func TestInitialColony(t *testing.T) {
	cfg := testConfig(t, nil)
	g := NewGameWithOptions(Options{Seed: 1, Config: cfg})
	snap := g.Snapshot()

	if len(snap.Ants) != cfg.Colony.Ants {
		t.Fatalf("ants = %d, want %d", len(snap.Ants), cfg.Colony.Ants)
	}
	nest := snap.Nest
	if nest != (components.Position{X: 450, Y: 300}) {
		t.Errorf("nest = %+v, want window centre", nest)
	}
	for i, a := range snap.Ants {
		if dx, dy := a.Position.X-nest.X, a.Position.Y-nest.Y; dx < -5 || dx > 5 || dy < -5 || dy > 5 {
			t.Errorf("ant %d spawned at %+v, outside jitter", i, a.Position)
		}
		if a.Category != CategoryNormal {
			t.Errorf("ant %d category = %v", i, a.Category)
		}
	}

	if !snap.Tunnel(90, 60) {
		t.Error("nest cell not dug")
	}
	if len(snap.Food) != 3 {
		t.Fatalf("food sources = %d, want 3", len(snap.Food))
	}
	for _, f := range snap.Food {
		c := f.Position.Cell(cfg.World.CellScale)
		if c.X < 6 || c.X >= 174 || c.Y < 6 || c.Y >= 114 {
			t.Errorf("food at %+v inside the edge margin", c)
		}
		if c.Manhattan(components.Cell{X: 90, Y: 60}) <= 10 {
			t.Errorf("food at %+v too close to the nest", c)
		}
		if f.Amount != 50 {
			t.Errorf("food amount = %d, want 50", f.Amount)
		}
	}
}

func TestAddFoodSource(t *testing.T) {
	g := NewGameWithOptions(Options{Seed: 1, Config: testConfig(t, func(c *config.Config) {
		c.Food.InitialSources = 0
	})})

	tests := []struct {
		name string
		pos  components.Position
		want bool
	}{
		{"far", components.Position{X: 100, Y: 100}, true},
		{"at nest", components.Position{X: 450, Y: 300}, false},
		{"exactly min distance", components.Position{X: 500, Y: 300}, false}, // 10 cells
		{"just beyond", components.Position{X: 505, Y: 300}, true},           // 11 cells
		{"outside right", components.Position{X: 900, Y: 10}, false},
		{"negative", components.Position{X: -3, Y: 10}, false},
	}
	added := 0
	for _, tt := range tests {
		if got := g.AddFoodSource(tt.pos); got != tt.want {
			t.Errorf("%s: AddFoodSource(%+v) = %v, want %v", tt.name, tt.pos, got, tt.want)
		}
		if tt.want {
			added++
		}
	}

	food := g.Snapshot().Food
	if len(food) != added {
		t.Fatalf("food sources = %d, want %d", len(food), added)
	}
	if food[0].Position != (components.Position{X: 100, Y: 100}) || food[0].Amount != 50 {
		t.Errorf("first source = %+v", food[0])
	}
}

func TestSuspendedStepIsNoop(t *testing.T) {
	g := NewGameWithOptions(Options{Seed: 3, Config: testConfig(t, nil), StepsPerUpdate: 4})
	g.Update()
	if g.Tick() != 4 {
		t.Fatalf("tick = %d after Update, want 4", g.Tick())
	}

	g.TogglePause()
	if g.Mode() != ModeSuspended {
		t.Fatalf("mode = %v, want suspended", g.Mode())
	}
	before := g.Snapshot()
	g.Step()
	g.Update()
	after := g.Snapshot()

	if after.Tick != before.Tick {
		t.Errorf("tick advanced while suspended: %d -> %d", before.Tick, after.Tick)
	}
	if !reflect.DeepEqual(before.Ants, after.Ants) || !reflect.DeepEqual(before.Pheromones, after.Pheromones) {
		t.Error("state changed while suspended")
	}

	// Food can still be added while paused.
	if !g.AddFoodSource(components.Position{X: 50, Y: 50}) {
		t.Error("AddFoodSource rejected while suspended")
	}

	g.SetMode(ModeActive)
	g.Step()
	if g.Tick() != 5 {
		t.Errorf("tick = %d after resume, want 5", g.Tick())
	}
}

func TestDeterministicForSeed(t *testing.T) {
	run := func() Snapshot {
		g := NewGameWithOptions(Options{Seed: 99, Config: testConfig(t, nil)})
		for i := 0; i < 300; i++ {
			g.Step()
		}
		return g.Snapshot()
	}
	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Error("two runs with the same seed diverged")
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	g := NewGameWithOptions(Options{Seed: 5, Config: testConfig(t, nil)})
	snap := g.Snapshot()
	snap.Tunnels[0] = true
	snap.Pheromones[0] = 1e9
	snap.Food[0].Amount = 0

	fresh := g.Snapshot()
	if fresh.Tunnels[0] || fresh.Pheromones[0] == 1e9 || fresh.Food[0].Amount == 0 {
		t.Error("snapshot shares memory with the game")
	}
}

func TestAntCategories(t *testing.T) {
	cfg := testConfig(t, func(c *config.Config) { c.Colony.Ants = 3 })
	g := NewGameWithOptions(Options{Seed: 1, Config: cfg})

	carrier := g.antMap.Get(g.ants[1])
	carrier.Returning = true
	carrier.CarryingFood = true
	carrier.SoilCarried = cfg.Colony.SoilCapacity // carrying wins
	digger := g.antMap.Get(g.ants[2])
	digger.Returning = true
	digger.SoilCarried = cfg.Colony.SoilCapacity

	want := []AntCategory{CategoryNormal, CategoryCarryingFood, CategorySoilFull}
	for i, a := range g.Snapshot().Ants {
		if a.Category != want[i] {
			t.Errorf("ant %d category = %v, want %v", i, a.Category, want[i])
		}
	}
}

func TestTelemetryWindows(t *testing.T) {
	dir := t.TempDir()
	var windows []telemetry.WindowStats
	g := NewGameWithOptions(Options{
		Seed:        2,
		Config:      testConfig(t, nil),
		StatsWindow: 10,
		OutputDir:   dir,
		StatsCallback: func(s telemetry.WindowStats) {
			windows = append(windows, s)
		},
	})
	for i := 0; i < 30; i++ {
		g.Step()
	}
	g.Unload()

	if len(windows) != 3 {
		t.Fatalf("windows = %d, want 3", len(windows))
	}
	for i, w := range windows {
		if w.WindowEndTick != int32(10*(i+1)) {
			t.Errorf("window %d ends at %d", i, w.WindowEndTick)
		}
		if got := w.Exploring + w.ReturningFood + w.ReturningEmpty; got != 100 {
			t.Errorf("window %d accounts for %d ants, want 100", i, got)
		}
	}
	if windows[2].TunnelCells < 1 {
		t.Error("tunnel gauge missing")
	}

	for _, name := range []string{"config.yaml", "telemetry.csv", "perf.csv", "ants.csv"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}
}

func TestSnapshotSummary(t *testing.T) {
	cfg := testConfig(t, func(c *config.Config) { c.Colony.Ants = 3 })
	g := NewGameWithOptions(Options{Seed: 1, Config: cfg})

	carrier := g.antMap.Get(g.ants[0])
	carrier.Returning = true
	carrier.CarryingFood = true

	snap := g.Snapshot()
	sum := snap.Summary()
	if sum.CarryingFood != 1 || sum.Exploring != 2 || sum.SoilFull != 0 {
		t.Errorf("ant counts = %+v", sum)
	}
	if sum.FoodRemaining != 3*cfg.Food.AmountPerSource {
		t.Errorf("food remaining = %d, want %d", sum.FoodRemaining, 3*cfg.Food.AmountPerSource)
	}
	if sum.TunnelCells != 1 {
		t.Errorf("tunnel cells = %d, want the nest only", sum.TunnelCells)
	}
}
