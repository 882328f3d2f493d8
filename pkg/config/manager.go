package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// ScreenerConfigManager implements Manager for screening and portfolio
// configurations.
type ScreenerConfigManager struct {
	validator Validator
}

// NewScreenerConfigManager creates a new configuration manager
func NewScreenerConfigManager() *ScreenerConfigManager {
	return &ScreenerConfigManager{
		validator: NewScreenerValidator(),
	}
}

// LoadScreeningConfig builds a screening configuration from defaults,
// an optional JSON file and command line overrides, in that order.
func (m *ScreenerConfigManager) LoadScreeningConfig(configFile string, overrides map[string]interface{}) (*ScreeningConfig, error) {
	cfg := NewDefaultScreeningConfig()

	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	applyScreeningOverrides(cfg, overrides)

	if err := m.validator.Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadPortfolioConfig builds a portfolio configuration from defaults,
// an optional JSON file and command line overrides, in that order.
func (m *ScreenerConfigManager) LoadPortfolioConfig(configFile string, overrides map[string]interface{}) (*PortfolioConfig, error) {
	cfg := NewDefaultPortfolioConfig()

	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	applyScreeningOverrides(&cfg.Screening, overrides)

	if strategy, ok := overrides["strategy"].(string); ok && strategy != "" {
		cfg.Strategy = strategy
	}
	if capital, ok := overrides["capital"].(float64); ok && capital > 0 {
		cfg.InitialCapital = capital
	}
	if commission, ok := overrides["commission"].(float64); ok && commission >= 0 {
		cfg.CommissionRate = commission
	}
	if stateFile, ok := overrides["state_file"].(string); ok && stateFile != "" {
		cfg.StateFile = stateFile
	}

	if err := m.validator.Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func applyScreeningOverrides(cfg *ScreeningConfig, overrides map[string]interface{}) {
	if dir, ok := overrides["universe_dir"].(string); ok && dir != "" {
		cfg.UniverseDir = dir
	}
	if benchmark, ok := overrides["benchmark"].(string); ok && benchmark != "" {
		cfg.Engine.Benchmark = strings.ToUpper(benchmark)
	}
	if workers, ok := overrides["workers"].(int); ok && workers > 0 {
		cfg.Engine.Workers = workers
	}
	if minBars, ok := overrides["min_bars"].(int); ok && minBars > 0 {
		cfg.Engine.MinBars = minBars
	}
	if threshold, ok := overrides["rs_threshold"].(float64); ok && threshold > 0 {
		cfg.Engine.RSThreshold = threshold
	}
	if outputDir, ok := overrides["output_dir"].(string); ok && outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if formats, ok := overrides["formats"].(string); ok && formats != "" {
		cfg.Formats = splitFormats(formats)
	}
}

func splitFormats(formats string) []string {
	parts := strings.Split(formats, ",")
	var out []string
	for _, part := range parts {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// loadFromFile loads configuration from a JSON file over the defaults
// already present in cfg.
func loadFromFile(configFile string, cfg interface{}) error {
	data, err := os.ReadFile(configFile)
	if err != nil {
		return fmt.Errorf("could not read config file: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("could not parse config file: %w", err)
	}

	return nil
}
