package config

// Package config provides configuration management for screening and
// portfolio simulation runs.

// Config is the contract every run configuration satisfies.
type Config interface {
	// Validate validates the configuration
	Validate() error
}

// Validator validates a configuration
type Validator interface {
	Validate(cfg Config) error
}

// Manager loads and validates configurations from defaults, file and
// command line overrides.
type Manager interface {
	LoadScreeningConfig(configFile string, overrides map[string]interface{}) (*ScreeningConfig, error)
	LoadPortfolioConfig(configFile string, overrides map[string]interface{}) (*PortfolioConfig, error)
}
