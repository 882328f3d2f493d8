package config

import (
	"fmt"
	"strings"
)

// ScreenerValidator implements validation for screening and portfolio
// configurations.
type ScreenerValidator struct{}

// NewScreenerValidator creates a new screener validator
func NewScreenerValidator() *ScreenerValidator {
	return &ScreenerValidator{}
}

// Validate performs validation on a run configuration.
func (v *ScreenerValidator) Validate(cfg Config) error {
	switch c := cfg.(type) {
	case *ScreeningConfig:
		return v.validateScreening(c)
	case *PortfolioConfig:
		return v.validatePortfolio(c)
	default:
		return fmt.Errorf("unsupported configuration type %T", cfg)
	}
}

func (v *ScreenerValidator) validateScreening(cfg *ScreeningConfig) error {
	if strings.TrimSpace(cfg.UniverseDir) == "" {
		return fmt.Errorf("universe directory must be set")
	}

	if strings.TrimSpace(cfg.Engine.Benchmark) == "" {
		return fmt.Errorf("benchmark symbol must be set")
	}

	if cfg.Engine.MinBars <= 0 {
		return fmt.Errorf("min bars must be positive, got: %d", cfg.Engine.MinBars)
	}

	if cfg.Engine.RSThreshold < 0 || cfg.Engine.RSThreshold > 100 {
		return fmt.Errorf("RS threshold must be between 0 and 100, got: %.2f", cfg.Engine.RSThreshold)
	}

	if cfg.Engine.Workers < 0 || cfg.Engine.Workers > MaxWorkers {
		return fmt.Errorf("workers must be between 0 and %d, got: %d", MaxWorkers, cfg.Engine.Workers)
	}

	for _, format := range cfg.Formats {
		switch strings.ToLower(format) {
		case "csv", "json", "xlsx", "console":
		default:
			return fmt.Errorf("unknown report format: %s", format)
		}
	}

	return nil
}

func (v *ScreenerValidator) validatePortfolio(cfg *PortfolioConfig) error {
	if err := v.validateScreening(&cfg.Screening); err != nil {
		return err
	}

	if strings.TrimSpace(cfg.Strategy) == "" {
		return fmt.Errorf("strategy name must be set")
	}

	if cfg.InitialCapital <= 0 {
		return fmt.Errorf("initial capital must be positive, got: %.2f", cfg.InitialCapital)
	}

	if cfg.CommissionRate < 0 || cfg.CommissionRate > 0.05 {
		return fmt.Errorf("commission rate must be between 0 and 0.05, got: %.4f", cfg.CommissionRate)
	}

	if cfg.Risk.RiskFraction < 0 || cfg.Risk.RiskFraction > 0.10 {
		return fmt.Errorf("risk fraction must be between 0 and 0.10, got: %.4f", cfg.Risk.RiskFraction)
	}

	if cfg.Risk.MaxAllocationFraction < 0 || cfg.Risk.MaxAllocationFraction > 1 {
		return fmt.Errorf("max allocation fraction must be between 0 and 1, got: %.4f", cfg.Risk.MaxAllocationFraction)
	}

	return nil
}
