package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/quantbench/stock-screener/internal/strategy"
)

// PortfolioFlags holds all command line flags for the portfolio command
type PortfolioFlags struct {
	// Configuration
	ConfigFile  *string
	UniverseDir *string
	Benchmark   *string
	EnvFile     *string

	// Simulation parameters
	Strategy   *string
	Capital    *float64
	Commission *float64
	StateFile  *string

	// Output options
	OutputDir   *string
	ConsoleOnly *bool

	// Monitoring
	MetricsAddr *string

	ShowVersion *bool
	ShowHelp    *bool
}

// NewPortfolioFlags creates and registers all portfolio flags
func NewPortfolioFlags() *PortfolioFlags {
	return &PortfolioFlags{
		ConfigFile:  flag.String("config", "", "JSON configuration file (optional)"),
		UniverseDir: flag.String("universe-dir", "", "Directory of per-symbol CSV files"),
		Benchmark:   flag.String("benchmark", "", "Benchmark symbol for RS scoring (default SPY)"),
		EnvFile:     flag.String("env", ".env", "Environment file"),

		Strategy:   flag.String("strategy", "", fmt.Sprintf("Strategy preset: %s", strings.Join(strategy.Names(), ", "))),
		Capital:    flag.Float64("capital", 0, "Initial capital (default 100000)"),
		Commission: flag.Float64("commission", -1, "Commission rate per fill (default 0.0005)"),
		StateFile:  flag.String("state-file", "", "Portfolio state file (default results/portfolio_state.json)"),

		OutputDir:   flag.String("output", "", "Report output directory (default results)"),
		ConsoleOnly: flag.Bool("console-only", false, "Print to console without writing files"),

		MetricsAddr: flag.String("metrics-addr", "", "Address for Prometheus metrics and health endpoints (optional)"),

		ShowVersion: flag.Bool("version", false, "Show version"),
		ShowHelp:    flag.Bool("help", false, "Show help"),
	}
}

// Overrides converts the set flags into config manager overrides.
func (f *PortfolioFlags) Overrides() map[string]interface{} {
	overrides := make(map[string]interface{})
	if *f.UniverseDir != "" {
		overrides["universe_dir"] = *f.UniverseDir
	}
	if *f.Benchmark != "" {
		overrides["benchmark"] = *f.Benchmark
	}
	if *f.Strategy != "" {
		overrides["strategy"] = *f.Strategy
	}
	if *f.Capital > 0 {
		overrides["capital"] = *f.Capital
	}
	if *f.Commission >= 0 {
		overrides["commission"] = *f.Commission
	}
	if *f.StateFile != "" {
		overrides["state_file"] = *f.StateFile
	}
	if *f.OutputDir != "" {
		overrides["output_dir"] = *f.OutputDir
	}
	return overrides
}

// PrintUsageExamples prints common invocations
func PrintUsageExamples() {
	fmt.Println("EXAMPLES:")
	fmt.Println("  portfolio -universe-dir data/universe -strategy breakout-long")
	fmt.Println("  portfolio -universe-dir data/universe -strategy parabolic-short -capital 250000")
	fmt.Println("  portfolio -config configs/portfolio.json")
	fmt.Println()
}
