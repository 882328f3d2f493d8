package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadScreeningConfig_Defaults(t *testing.T) {
	manager := NewScreenerConfigManager()
	cfg, err := manager.LoadScreeningConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "data/universe", cfg.UniverseDir)
	assert.Equal(t, "results", cfg.OutputDir)
	assert.Equal(t, []string{"csv", "console"}, cfg.Formats)
	assert.Equal(t, "SPY", cfg.Engine.Benchmark)
	assert.Equal(t, 200, cfg.Engine.MinBars)
	assert.Equal(t, 85.0, cfg.Engine.RSThreshold)
	assert.Equal(t, 4, cfg.Engine.Workers)
}

func TestLoadScreeningConfig_FromFile(t *testing.T) {
	path := writeConfigFile(t, `{
		"universe_dir": "testdata/universe",
		"output_dir": "out",
		"formats": ["json"],
		"engine": {
			"benchmark": "QQQ",
			"min_bars": 260,
			"rs_threshold": 90,
			"workers": 8
		}
	}`)

	manager := NewScreenerConfigManager()
	cfg, err := manager.LoadScreeningConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "testdata/universe", cfg.UniverseDir)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, []string{"json"}, cfg.Formats)
	assert.Equal(t, "QQQ", cfg.Engine.Benchmark)
	assert.Equal(t, 260, cfg.Engine.MinBars)
	assert.Equal(t, 90.0, cfg.Engine.RSThreshold)
	assert.Equal(t, 8, cfg.Engine.Workers)
}

func TestLoadScreeningConfig_OverridesWinOverFile(t *testing.T) {
	path := writeConfigFile(t, `{"engine": {"benchmark": "QQQ"}}`)

	manager := NewScreenerConfigManager()
	cfg, err := manager.LoadScreeningConfig(path, map[string]interface{}{
		"benchmark":    "iwm",
		"universe_dir": "elsewhere",
		"workers":      2,
		"min_bars":     100,
		"rs_threshold": 70.0,
		"formats":      "csv, XLSX ,console",
	})
	require.NoError(t, err)

	// Benchmark is uppercased on the way in.
	assert.Equal(t, "IWM", cfg.Engine.Benchmark)
	assert.Equal(t, "elsewhere", cfg.UniverseDir)
	assert.Equal(t, 2, cfg.Engine.Workers)
	assert.Equal(t, 100, cfg.Engine.MinBars)
	assert.Equal(t, 70.0, cfg.Engine.RSThreshold)
	assert.Equal(t, []string{"csv", "xlsx", "console"}, cfg.Formats)
}

func TestLoadScreeningConfig_MissingFile(t *testing.T) {
	manager := NewScreenerConfigManager()
	_, err := manager.LoadScreeningConfig(filepath.Join(t.TempDir(), "absent.json"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file")
}

func TestLoadScreeningConfig_InvalidJSON(t *testing.T) {
	path := writeConfigFile(t, `{not json`)
	manager := NewScreenerConfigManager()
	_, err := manager.LoadScreeningConfig(path, nil)
	require.Error(t, err)
}

func TestLoadScreeningConfig_ValidationFailures(t *testing.T) {
	cases := []struct {
		name      string
		overrides map[string]interface{}
		file      string
	}{
		{"unknown format", map[string]interface{}{"formats": "pdf"}, ""},
		{"bad threshold", map[string]interface{}{"rs_threshold": 150.0}, ""},
		{"too many workers", map[string]interface{}{"workers": 64}, ""},
		{"empty benchmark", nil, `{"engine": {"benchmark": "  ", "min_bars": 200, "workers": 4}}`},
		{"zero min bars", nil, `{"engine": {"benchmark": "SPY", "min_bars": 0, "workers": 4}}`},
	}

	manager := NewScreenerConfigManager()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := ""
			if tc.file != "" {
				path = writeConfigFile(t, tc.file)
			}
			_, err := manager.LoadScreeningConfig(path, tc.overrides)
			assert.Error(t, err)
		})
	}
}

func TestLoadPortfolioConfig_Defaults(t *testing.T) {
	manager := NewScreenerConfigManager()
	cfg, err := manager.LoadPortfolioConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "breakout-long", cfg.Strategy)
	assert.Equal(t, 100000.0, cfg.InitialCapital)
	assert.Equal(t, 0.0005, cfg.CommissionRate)
	assert.Equal(t, "results/portfolio_state.json", cfg.StateFile)
	assert.Equal(t, "SPY", cfg.Screening.Engine.Benchmark)
}

func TestLoadPortfolioConfig_Overrides(t *testing.T) {
	manager := NewScreenerConfigManager()
	cfg, err := manager.LoadPortfolioConfig("", map[string]interface{}{
		"strategy":   "trend-follow",
		"capital":    50000.0,
		"commission": 0.001,
		"state_file": "state/run1.json",
		"benchmark":  "qqq",
	})
	require.NoError(t, err)

	assert.Equal(t, "trend-follow", cfg.Strategy)
	assert.Equal(t, 50000.0, cfg.InitialCapital)
	assert.Equal(t, 0.001, cfg.CommissionRate)
	assert.Equal(t, "state/run1.json", cfg.StateFile)
	assert.Equal(t, "QQQ", cfg.Screening.Engine.Benchmark)
}

func TestLoadPortfolioConfig_ValidationFailures(t *testing.T) {
	manager := NewScreenerConfigManager()

	_, err := manager.LoadPortfolioConfig("", map[string]interface{}{"commission": 0.5})
	assert.Error(t, err)

	path := writeConfigFile(t, `{"initial_capital": -100}`)
	_, err = manager.LoadPortfolioConfig(path, nil)
	assert.Error(t, err)

	path = writeConfigFile(t, `{"risk": {"risk_fraction": 0.5}}`)
	_, err = manager.LoadPortfolioConfig(path, nil)
	assert.Error(t, err)
}

func TestValidatorRejectsUnknownType(t *testing.T) {
	validator := NewScreenerValidator()
	err := validator.Validate(nil)
	assert.Error(t, err)
}
