// Package config provides 12-factor configuration for the math tools.
//
// Configuration is loaded from environment variables with sensible
// defaults. The per-request JSON payload always wins over these values;
// the environment only tunes behavior the payload does not specify.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all tool configuration.
type Config struct {
	Solver  SolverConfig
	ODE     ODEConfig
	Plot    PlotConfig
	Logging LogConfig
}

// SolverConfig holds numeric root-finding configuration.
type SolverConfig struct {
	// Seeds is the number of starting points for the local root search.
	Seeds int `envconfig:"SOLVER_SEEDS" default:"10"`
	// ScanPoints is the sample count of the sign-change fallback scan.
	ScanPoints int `envconfig:"SOLVER_SCAN_POINTS" default:"1000"`
	// Tolerance is the absolute residual and deduplication tolerance.
	Tolerance float64 `envconfig:"SOLVER_TOLERANCE" default:"1e-10"`
	// MaxIter bounds a single Newton iteration.
	MaxIter int `envconfig:"SOLVER_MAX_ITER" default:"50"`
}

// ODEConfig holds defaults for initial value problems.
type ODEConfig struct {
	Method    string  `envconfig:"ODE_METHOD" default:"RK45"`
	NumPoints int     `envconfig:"ODE_NUM_POINTS" default:"100"`
	MaxStep   float64 `envconfig:"ODE_MAX_STEP" default:"0.1"`
	Tolerance float64 `envconfig:"ODE_TOLERANCE" default:"1e-6"`
}

// PlotConfig holds plot rendering defaults.
type PlotConfig struct {
	Samples int     `envconfig:"PLOT_SAMPLES" default:"1000"`
	Width   float64 `envconfig:"PLOT_WIDTH" default:"800"`
	Height  float64 `envconfig:"PLOT_HEIGHT" default:"600"`
	// OutputPath is used when the request does not name one.
	OutputPath string `envconfig:"PLOT_OUTPUT_PATH" default:"plot.png"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Solver: SolverConfig{
			Seeds:      10,
			ScanPoints: 1000,
			Tolerance:  1e-10,
			MaxIter:    50,
		},
		ODE: ODEConfig{
			Method:    "RK45",
			NumPoints: 100,
			MaxStep:   0.1,
			Tolerance: 1e-6,
		},
		Plot: PlotConfig{
			Samples:    1000,
			Width:      800,
			Height:     600,
			OutputPath: "plot.png",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}
