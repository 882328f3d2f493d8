package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/quantbench/stock-screener/internal/errors"
	"github.com/quantbench/stock-screener/internal/monitoring"
	"github.com/quantbench/stock-screener/internal/screener"
	"github.com/quantbench/stock-screener/pkg/config"
	"github.com/quantbench/stock-screener/pkg/data"
	"github.com/quantbench/stock-screener/pkg/reporting"
)

const (
	AppName    = "Stock Screener"
	AppVersion = "1.0.0"
)

func main() {
	flags := NewScreenerFlags()
	flag.Parse()

	if *flags.ShowVersion {
		fmt.Printf("%s v%s\n", AppName, AppVersion)
		return
	}

	if *flags.ShowHelp {
		printUsageHelp()
		return
	}

	printHeader()
	loadEnvironment(*flags.EnvFile)

	manager := config.NewScreenerConfigManager()
	cfg, err := manager.LoadScreeningConfig(*flags.ConfigFile, flags.Overrides())
	if err != nil {
		log.Fatalf("❌ Configuration error: %v", err)
	}

	zlog, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("❌ Logger error: %v", err)
	}
	defer zlog.Sync()
	sugar := zlog.Sugar()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	health := monitoring.NewHealthChecker()
	if *flags.MetricsAddr != "" {
		startMonitoringServer(*flags.MetricsAddr, health)
	}

	provider := data.NewCachedProvider(data.NewCSVProvider(sugar))
	store := data.NewUniverseStore(ctx, cfg.UniverseDir, provider)

	engine := screener.NewEngine(cfg.Engine, store, sugar)

	start := time.Now()
	report, err := engine.Run(ctx)
	if err != nil {
		health.RecordError(err)
		if errors.IsConfiguration(err) {
			log.Fatalf("❌ Screening aborted: %v", err)
		}
		log.Fatalf("❌ Screening failed: %v", err)
	}
	health.RecordRun(report.Processed)

	if err := writeReports(cfg, report); err != nil {
		log.Fatalf("❌ Report error: %v", err)
	}

	fmt.Printf("✅ Screening complete in %s\n", time.Since(start).Round(time.Millisecond))

	// Zero qualifying symbols is a valid outcome, not an error.
	if len(report.Results) == 0 {
		fmt.Println("📭 No symbols qualified this run")
	}
}

func writeReports(cfg *config.ScreeningConfig, report *screener.RunReport) error {
	reporter := reporting.NewDefaultReporter()

	for _, format := range cfg.Formats {
		switch strings.ToLower(format) {
		case "console":
			reporter.OutputScreeningResults(report)
		case "csv":
			path := reporter.ScreeningReportPath(cfg.OutputDir, "csv")
			if err := reporter.WriteScreeningCSV(report, path); err != nil {
				return err
			}
			fmt.Printf("💾 CSV report: %s\n", path)
		case "json":
			path := reporter.ScreeningReportPath(cfg.OutputDir, "json")
			if err := reporter.WriteScreeningJSON(report, path); err != nil {
				return err
			}
			fmt.Printf("💾 JSON report: %s\n", path)
		case "xlsx":
			path := reporter.ScreeningReportPath(cfg.OutputDir, "xlsx")
			if err := reporter.WriteScreeningXLSX(report, path); err != nil {
				return err
			}
			fmt.Printf("💾 Excel report: %s\n", path)
		}
	}
	return nil
}

func startMonitoringServer(addr string, health *monitoring.HealthChecker) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", monitoring.NewMetricsHandler())
	mux.Handle("/health", health)

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
			log.Printf("⚠️  Monitoring server error: %v", err)
		}
	}()
	fmt.Printf("📡 Metrics at http://%s/metrics\n", addr)
}

func printHeader() {
	fmt.Printf("🎯 %s v%s\n", strings.ToUpper(AppName), AppVersion)
	fmt.Printf("%s\n\n", strings.Repeat("=", 50))
}

func printUsageHelp() {
	fmt.Printf("%s v%s - Trend Template Stock Screening\n\n", AppName, AppVersion)
	fmt.Printf("USAGE:\n  screener [OPTIONS]\n\n")
	PrintUsageExamples()
	flag.PrintDefaults()
}

func loadEnvironment(envFile string) {
	if err := godotenv.Load(envFile); err != nil {
		log.Printf("⚠️  Could not load %s (%v)", envFile, err)
	}
}
