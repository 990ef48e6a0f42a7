// Package config provides YAML-tunable engine parameters. Everything
// the behavioral spec left open — bankruptcy grace, loan terms, tick
// pacing — lives here rather than as hard-coded formulas.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full engine configuration.
type Config struct {
	Seed    int64         `yaml:"seed"` // 0 = derive from wall clock at new-game time
	Clock   ClockConfig   `yaml:"clock"`
	Economy EconomyConfig `yaml:"economy"`
	Soil    SoilConfig    `yaml:"soil"`
}

// ClockConfig controls real-time tick pacing. Speed multipliers scale
// the base interval down; they never change simulation semantics.
type ClockConfig struct {
	BaseTickMillis int `yaml:"base_tick_millis"`
}

// BaseInterval returns the 1x tick cadence.
func (c ClockConfig) BaseInterval() time.Duration {
	return time.Duration(c.BaseTickMillis) * time.Millisecond
}

// EconomyConfig holds the ledger and loan tunables.
type EconomyConfig struct {
	StartingCash int64      `yaml:"starting_cash"`
	GraceDays    int        `yaml:"grace_days"` // ticks of negative cash before the loan pathway fires
	HardFloor    int64      `yaml:"hard_floor"` // immediate breach threshold (negative)
	Loan         LoanConfig `yaml:"loan"`
}

// LoanConfig is the standing loan offer extended on bankruptcy.
type LoanConfig struct {
	Principal    int64   `yaml:"principal"`
	InterestRate float64 `yaml:"interest_rate"`
	TermDays     int     `yaml:"term_days"`
	MaxActive    int     `yaml:"max_active"`
}

// SoilConfig holds player-facing soil interaction tunables. The
// per-day dynamics constants live in the farm package defaults.
type SoilConfig struct {
	WaterCost   int64   `yaml:"water_cost"`   // per-cell irrigation price
	WaterAmount float64 `yaml:"water_amount"` // moisture added per watering
}

// Default returns the baseline configuration the engine runs with
// when no file is supplied.
func Default() Config {
	return Config{
		Clock: ClockConfig{BaseTickMillis: 1000},
		Economy: EconomyConfig{
			StartingCash: 50000,
			GraceDays:    7,
			HardFloor:    -25000,
			Loan: LoanConfig{
				Principal:    20000,
				InterestRate: 0.06,
				TermDays:     112,
				MaxActive:    2,
			},
		},
		Soil: SoilConfig{
			WaterCost:   20,
			WaterAmount: 25,
		},
	}
}

// Load reads a YAML file over the defaults, so a partial file only
// overrides what it names.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Clock.BaseTickMillis <= 0 {
		return fmt.Errorf("config: base_tick_millis must be positive")
	}
	if c.Economy.GraceDays < 0 {
		return fmt.Errorf("config: grace_days must be non-negative")
	}
	if c.Economy.HardFloor >= 0 {
		return fmt.Errorf("config: hard_floor must be negative")
	}
	if c.Economy.Loan.TermDays <= 0 {
		return fmt.Errorf("config: loan term_days must be positive")
	}
	if c.Economy.Loan.MaxActive < 0 {
		return fmt.Errorf("config: loan max_active must be non-negative")
	}
	return nil
}
