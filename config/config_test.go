package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}

	if cfg.World.Width != 180 || cfg.World.Height != 120 || cfg.World.CellScale != 5 {
		t.Errorf("world = %+v, want 180x120 scale 5", cfg.World)
	}
	if cfg.Derived.FineWidth != 900 || cfg.Derived.FineHeight != 600 {
		t.Errorf("fine size = %dx%d, want 900x600", cfg.Derived.FineWidth, cfg.Derived.FineHeight)
	}
	if cfg.Derived.NestCellX != 90 || cfg.Derived.NestCellY != 60 {
		t.Errorf("nest cell = (%d,%d), want (90,60)", cfg.Derived.NestCellX, cfg.Derived.NestCellY)
	}
	if cfg.Derived.NestFineX != 450 || cfg.Derived.NestFineY != 300 {
		t.Errorf("nest anchor = (%d,%d), want (450,300)", cfg.Derived.NestFineX, cfg.Derived.NestFineY)
	}
	if cfg.Pheromone.Min != 1 || cfg.Pheromone.Max != 2000 {
		t.Errorf("pheromone bounds = [%g,%g], want [1,2000]", cfg.Pheromone.Min, cfg.Pheromone.Max)
	}
}

func TestLoadMergesUserFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "small.yaml")
	data := "world:\n  width: 21\n  height: 1\ncolony:\n  nest_x: 0\n  nest_y: 0\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.World.Width != 21 || cfg.World.Height != 1 {
		t.Errorf("world = %dx%d, want 21x1", cfg.World.Width, cfg.World.Height)
	}
	// Untouched keys keep their defaults.
	if cfg.World.CellScale != 5 {
		t.Errorf("cell_scale = %d, want default 5", cfg.World.CellScale)
	}
	if cfg.Derived.NestFineX != 0 || cfg.Derived.NestFineY != 0 {
		t.Errorf("nest anchor = (%d,%d), want (0,0)", cfg.Derived.NestFineX, cfg.Derived.NestFineY)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero width", func(c *Config) { c.World.Width = 0 }, "world: dimensions"},
		{"bad scale", func(c *Config) { c.World.CellScale = 0 }, "cell_scale"},
		{"nest outside", func(c *Config) { c.Colony.NestX = 500 }, "nest_x"},
		{"inverted bounds", func(c *Config) { c.Pheromone.Max = 0.5 }, "must exceed min"},
		{"fast rate above one", func(c *Config) { c.Pheromone.EvaporationFast = 1.5 }, "evaporation_fast"},
		{"zero digging cost", func(c *Config) { c.Forage.DiggingCost = 0 }, "digging_cost"},
		{"zero soil capacity", func(c *Config) { c.Colony.SoilCapacity = 0 }, "soil_capacity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Defaults()
			if err != nil {
				t.Fatal(err)
			}
			tt.mutate(cfg)
			err = cfg.Finalize()
			if err == nil {
				t.Fatalf("expected error containing %q", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Food.Unlimited = true
	cfg.Forage.DiggingCost = 42

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load written config: %v", err)
	}
	if !got.Food.Unlimited || got.Forage.DiggingCost != 42 {
		t.Errorf("round trip lost overrides: food=%+v forage=%+v", got.Food, got.Forage)
	}
}
