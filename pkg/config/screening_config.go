package config

import (
	"github.com/quantbench/stock-screener/internal/screener"
)

const (
	// MaxWorkers bounds the load fan-out regardless of what the config asks for
	MaxWorkers = 16
)

// ScreeningConfig holds everything one screening run needs.
type ScreeningConfig struct {
	// UniverseDir is the directory of per-symbol CSV files to screen.
	UniverseDir string `json:"universe_dir"`

	// OutputDir is where reports are written.
	OutputDir string `json:"output_dir"`

	// Formats selects report outputs: csv, json, xlsx, console.
	Formats []string `json:"formats"`

	Engine screener.EngineConfig `json:"engine"`
}

// NewDefaultScreeningConfig returns a screening configuration with
// standard parameters.
func NewDefaultScreeningConfig() *ScreeningConfig {
	return &ScreeningConfig{
		UniverseDir: "data/universe",
		OutputDir:   "results",
		Formats:     []string{"csv", "console"},
		Engine:      screener.DefaultEngineConfig(),
	}
}

// Validate validates the configuration
func (c *ScreeningConfig) Validate() error {
	return NewScreenerValidator().Validate(c)
}
