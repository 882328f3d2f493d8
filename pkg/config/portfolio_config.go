package config

import (
	"github.com/quantbench/stock-screener/internal/portfolio"
)

// PortfolioConfig holds everything one portfolio simulation cycle needs.
type PortfolioConfig struct {
	// Screening drives the candidate list the simulator trades from.
	Screening ScreeningConfig `json:"screening"`

	// Strategy names the preset to trade, e.g. "breakout-long".
	Strategy string `json:"strategy"`

	// InitialCapital is the simulated account's starting cash.
	InitialCapital float64 `json:"initial_capital"`

	// CommissionRate is the per-fill commission as a fraction of
	// notional, e.g. 0.0005 for 5 bps.
	CommissionRate float64 `json:"commission_rate"`

	// Risk overrides the preset's sizing parameters when non-zero.
	Risk portfolio.RiskConfig `json:"risk"`

	// StateFile persists open positions and equity between cycles.
	StateFile string `json:"state_file"`
}

// NewDefaultPortfolioConfig returns a portfolio configuration with
// standard parameters.
func NewDefaultPortfolioConfig() *PortfolioConfig {
	return &PortfolioConfig{
		Screening:      *NewDefaultScreeningConfig(),
		Strategy:       "breakout-long",
		InitialCapital: 100000,
		CommissionRate: 0.0005,
		Risk:           portfolio.DefaultRiskConfig(),
		StateFile:      "results/portfolio_state.json",
	}
}

// Validate validates the configuration
func (c *PortfolioConfig) Validate() error {
	return NewScreenerValidator().Validate(c)
}
