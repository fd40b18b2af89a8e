package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Window capacities are fixed properties of the model, not tunables.
const (
	TrendWindowCap     = 10
	ValuationWindowCap = 30
	AnchorWindowCap    = 50
	YearWindowCap      = 365
)

// Config holds the engine parameters.
type Config struct {
	// InitialPrice seeds the price and pre-fills every rolling window.
	InitialPrice float64 `yaml:"initial_price"`
	// ActionsPerDay is the number of price-process ticks in one action batch.
	ActionsPerDay int `yaml:"actions_per_day"`
	// SimulationDays is the total run length; the clock is terminal once
	// day reaches it.
	SimulationDays int `yaml:"simulation_days"`
	// BaseVolatility is the half-width of the uniform per-tick noise draw,
	// as a fraction of price.
	BaseVolatility float64 `yaml:"base_volatility"`
	// DemandSensitivity scales how hard one unit of demand moves price.
	DemandSensitivity float64 `yaml:"demand_sensitivity"`
	// BootstrapDays is the length of the demand-free warmup period.
	BootstrapDays int `yaml:"bootstrap_days"`
	// Seed fully determines the noise sequence; equal seeds give equal runs.
	Seed int64 `yaml:"seed"`
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		InitialPrice:      50,
		ActionsPerDay:     24,
		SimulationDays:    365,
		BaseVolatility:    0.02,
		DemandSensitivity: 0.1,
		BootstrapDays:     30,
		Seed:              1,
	}
}

// LoadConfig reads a YAML config file, filling unset fields from defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// normalized fills non-positive fields from defaults so a zero-value Config
// is still runnable.
func (c Config) normalized() Config {
	def := DefaultConfig()
	if c.InitialPrice <= 0 {
		c.InitialPrice = def.InitialPrice
	}
	if c.ActionsPerDay <= 0 {
		c.ActionsPerDay = def.ActionsPerDay
	}
	if c.SimulationDays <= 0 {
		c.SimulationDays = def.SimulationDays
	}
	if c.BaseVolatility < 0 {
		c.BaseVolatility = def.BaseVolatility
	}
	if c.DemandSensitivity == 0 {
		c.DemandSensitivity = def.DemandSensitivity
	}
	if c.BootstrapDays <= 0 {
		c.BootstrapDays = def.BootstrapDays
	}
	return c
}
