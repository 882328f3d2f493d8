package main

import (
	"flag"
	"fmt"
)

// ScreenerFlags holds all command line flags for the screener command
type ScreenerFlags struct {
	// Configuration
	ConfigFile  *string
	UniverseDir *string
	Benchmark   *string
	EnvFile     *string

	// Engine parameters
	Workers     *int
	MinBars     *int
	RSThreshold *float64

	// Output options
	OutputDir   *string
	Formats     *string
	ConsoleOnly *bool

	// Monitoring
	MetricsAddr *string

	ShowVersion *bool
	ShowHelp    *bool
}

// NewScreenerFlags creates and registers all screener flags
func NewScreenerFlags() *ScreenerFlags {
	return &ScreenerFlags{
		ConfigFile:  flag.String("config", "", "JSON configuration file (optional)"),
		UniverseDir: flag.String("universe-dir", "", "Directory of per-symbol CSV files"),
		Benchmark:   flag.String("benchmark", "", "Benchmark symbol for RS scoring (default SPY)"),
		EnvFile:     flag.String("env", ".env", "Environment file"),

		Workers:     flag.Int("workers", 0, "Concurrent symbol loaders (default 4, max 16)"),
		MinBars:     flag.Int("min-bars", 0, "Minimum bars required per symbol (default 200)"),
		RSThreshold: flag.Float64("rs-threshold", 0, "RS percentile for the bonus condition (default 85)"),

		OutputDir:   flag.String("output", "", "Report output directory (default results)"),
		Formats:     flag.String("formats", "", "Comma-separated report formats: csv,json,xlsx,console"),
		ConsoleOnly: flag.Bool("console-only", false, "Print to console without writing files"),

		MetricsAddr: flag.String("metrics-addr", "", "Address for Prometheus metrics and health endpoints (optional)"),

		ShowVersion: flag.Bool("version", false, "Show version"),
		ShowHelp:    flag.Bool("help", false, "Show help"),
	}
}

// Overrides converts the set flags into config manager overrides.
func (f *ScreenerFlags) Overrides() map[string]interface{} {
	overrides := make(map[string]interface{})
	if *f.UniverseDir != "" {
		overrides["universe_dir"] = *f.UniverseDir
	}
	if *f.Benchmark != "" {
		overrides["benchmark"] = *f.Benchmark
	}
	if *f.Workers > 0 {
		overrides["workers"] = *f.Workers
	}
	if *f.MinBars > 0 {
		overrides["min_bars"] = *f.MinBars
	}
	if *f.RSThreshold > 0 {
		overrides["rs_threshold"] = *f.RSThreshold
	}
	if *f.OutputDir != "" {
		overrides["output_dir"] = *f.OutputDir
	}
	if *f.Formats != "" {
		overrides["formats"] = *f.Formats
	}
	if *f.ConsoleOnly {
		overrides["formats"] = "console"
	}
	return overrides
}

// PrintUsageExamples prints common invocations
func PrintUsageExamples() {
	fmt.Println("EXAMPLES:")
	fmt.Println("  screener -universe-dir data/universe")
	fmt.Println("  screener -universe-dir data/universe -benchmark QQQ -formats csv,xlsx")
	fmt.Println("  screener -config configs/screening.json -console-only")
	fmt.Println()
}
