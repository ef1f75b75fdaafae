// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	World     WorldConfig     `yaml:"world"`
	Colony    ColonyConfig    `yaml:"colony"`
	Food      FoodConfig      `yaml:"food"`
	Pheromone PheromoneConfig `yaml:"pheromone"`
	Forage    ForageConfig    `yaml:"forage"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
// The window size is always the fine-coordinate extent of the world.
type ScreenConfig struct {
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds the tunnel grid dimensions.
type WorldConfig struct {
	Width     int `yaml:"width"`      // Grid width in cells
	Height    int `yaml:"height"`     // Grid height in cells
	CellScale int `yaml:"cell_scale"` // Fine units per cell
}

// ColonyConfig holds nest and ant parameters.
type ColonyConfig struct {
	Ants               int `yaml:"ants"`
	NestX              int `yaml:"nest_x"`               // Nest cell column (-1 = centre)
	NestY              int `yaml:"nest_y"`               // Nest cell row (-1 = centre)
	SpawnJitter        int `yaml:"spawn_jitter"`         // Max fine offset from the nest at spawn
	NestDetectionRange int `yaml:"nest_detection_range"` // Manhattan range in fine units
	SoilCapacity       int `yaml:"soil_capacity"`        // Dug cells before an ant turns back
}

// FoodConfig holds food source parameters.
type FoodConfig struct {
	InitialSources  int  `yaml:"initial_sources"`
	AmountPerSource int  `yaml:"amount_per_source"`
	MinNestDistance int  `yaml:"min_nest_distance"` // Sources must be strictly farther than this (cells)
	DetectionRange  int  `yaml:"detection_range"`   // Manhattan range in cells
	SpawnMargin     int  `yaml:"spawn_margin"`      // Initial sources keep this many cells from the edge
	Unlimited       bool `yaml:"unlimited"`         // Sources never deplete
}

// PheromoneConfig holds pheromone lattice parameters.
type PheromoneConfig struct {
	Min              float64 `yaml:"min"`
	Max              float64 `yaml:"max"`
	DepositIntensity float64 `yaml:"deposit_intensity"` // Total mass spread over a delivery path
	EvaporationFast  float64 `yaml:"evaporation_fast"`  // Multiplier above max/2
	EvaporationSlow  float64 `yaml:"evaporation_slow"`  // Multiplier above min
}

// ForageConfig holds the ant movement model.
type ForageConfig struct {
	PheromoneExponent float64 `yaml:"pheromone_exponent"`
	HeuristicExponent float64 `yaml:"heuristic_exponent"`
	DiggingCost       float64 `yaml:"digging_cost"` // Undug cells have heuristic 1/digging_cost
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         int `yaml:"stats_window"` // Ticks per stats window
	PerfCollectorWindow int `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	FineWidth  int // World.Width * World.CellScale
	FineHeight int // World.Height * World.CellScale
	NestCellX  int // Resolved nest cell
	NestCellY  int
	NestFineX  int // Nest anchor in fine units
	NestFineY  int
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg, err := Defaults()
	if err != nil {
		return nil, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Finalize(); err != nil {
		return nil, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

// Defaults returns the embedded defaults without validation.
// Callers that modify the result must call Finalize before use.
func Defaults() (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	return cfg, nil
}

// Finalize validates the configuration and recomputes derived values.
func (c *Config) Finalize() error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.computeDerived()
	return nil
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.World.Width > 0 && c.World.Height > 0,
		"world: dimensions must be positive, got %dx%d", c.World.Width, c.World.Height)
	check(c.World.CellScale > 0, "world: cell_scale must be positive, got %d", c.World.CellScale)

	check(c.Colony.Ants >= 0, "colony: ants must not be negative, got %d", c.Colony.Ants)
	check(c.Colony.NestX >= -1 && c.Colony.NestX < c.World.Width,
		"colony: nest_x %d outside grid width %d", c.Colony.NestX, c.World.Width)
	check(c.Colony.NestY >= -1 && c.Colony.NestY < c.World.Height,
		"colony: nest_y %d outside grid height %d", c.Colony.NestY, c.World.Height)
	check(c.Colony.SpawnJitter >= 0, "colony: spawn_jitter must not be negative")
	check(c.Colony.NestDetectionRange >= 0, "colony: nest_detection_range must not be negative")
	check(c.Colony.SoilCapacity > 0, "colony: soil_capacity must be positive, got %d", c.Colony.SoilCapacity)

	check(c.Food.InitialSources >= 0, "food: initial_sources must not be negative")
	check(c.Food.AmountPerSource > 0, "food: amount_per_source must be positive, got %d", c.Food.AmountPerSource)
	check(c.Food.MinNestDistance >= 0, "food: min_nest_distance must not be negative")
	check(c.Food.DetectionRange >= 0, "food: detection_range must not be negative")
	check(c.Food.SpawnMargin >= 0, "food: spawn_margin must not be negative")

	check(c.Pheromone.Min > 0, "pheromone: min must be positive, got %g", c.Pheromone.Min)
	check(c.Pheromone.Max > c.Pheromone.Min,
		"pheromone: max %g must exceed min %g", c.Pheromone.Max, c.Pheromone.Min)
	check(c.Pheromone.DepositIntensity >= 0, "pheromone: deposit_intensity must not be negative")
	check(c.Pheromone.EvaporationFast > 0 && c.Pheromone.EvaporationFast <= 1,
		"pheromone: evaporation_fast must be in (0, 1], got %g", c.Pheromone.EvaporationFast)
	check(c.Pheromone.EvaporationSlow > 0 && c.Pheromone.EvaporationSlow <= 1,
		"pheromone: evaporation_slow must be in (0, 1], got %g", c.Pheromone.EvaporationSlow)

	check(c.Forage.PheromoneExponent >= 0, "forage: pheromone_exponent must not be negative")
	check(c.Forage.HeuristicExponent >= 0, "forage: heuristic_exponent must not be negative")
	check(c.Forage.DiggingCost > 0, "forage: digging_cost must be positive, got %g", c.Forage.DiggingCost)

	check(c.Telemetry.StatsWindow > 0, "telemetry: stats_window must be positive")

	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.FineWidth = c.World.Width * c.World.CellScale
	c.Derived.FineHeight = c.World.Height * c.World.CellScale

	c.Derived.NestCellX = c.Colony.NestX
	if c.Derived.NestCellX < 0 {
		c.Derived.NestCellX = c.World.Width / 2
	}
	c.Derived.NestCellY = c.Colony.NestY
	if c.Derived.NestCellY < 0 {
		c.Derived.NestCellY = c.World.Height / 2
	}
	c.Derived.NestFineX = c.Derived.NestCellX * c.World.CellScale
	c.Derived.NestFineY = c.Derived.NestCellY * c.World.CellScale
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
