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
	"github.com/quantbench/stock-screener/internal/logger"
	"github.com/quantbench/stock-screener/internal/monitoring"
	"github.com/quantbench/stock-screener/internal/screener"
	"github.com/quantbench/stock-screener/internal/simulator"
	"github.com/quantbench/stock-screener/internal/strategy"
	"github.com/quantbench/stock-screener/pkg/config"
	"github.com/quantbench/stock-screener/pkg/data"
	"github.com/quantbench/stock-screener/pkg/reporting"
	"github.com/quantbench/stock-screener/pkg/types"
)

const (
	AppName    = "Portfolio Simulator"
	AppVersion = "1.0.0"
)

func main() {
	flags := NewPortfolioFlags()
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
	cfg, err := manager.LoadPortfolioConfig(*flags.ConfigFile, flags.Overrides())
	if err != nil {
		log.Fatalf("❌ Configuration error: %v", err)
	}

	params, err := strategy.ByName(cfg.Strategy)
	if err != nil {
		log.Fatalf("❌ Strategy error: %v", err)
	}
	if cfg.Risk.RiskFraction > 0 {
		params.Risk = cfg.Risk
	}

	zlog, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("❌ Logger error: %v", err)
	}
	defer zlog.Sync()
	sugar := zlog.Sugar()

	tradeLog, err := logger.NewLogger(params.Name)
	if err != nil {
		log.Fatalf("❌ Trade log error: %v", err)
	}
	defer tradeLog.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	health := monitoring.NewHealthChecker()
	if *flags.MetricsAddr != "" {
		startMonitoringServer(*flags.MetricsAddr, health)
	}

	if err := runCycle(ctx, cfg, params, sugar, tradeLog, health); err != nil {
		health.RecordError(err)
		if errors.IsConfiguration(err) {
			log.Fatalf("❌ Cycle aborted: %v", err)
		}
		log.Fatalf("❌ Cycle failed: %v", err)
	}
}

// runCycle performs one full screen-then-trade cycle: screening run,
// state restore, entry processing, mark-to-market, reports, state save.
func runCycle(ctx context.Context, cfg *config.PortfolioConfig, params strategy.Params,
	sugar *zap.SugaredLogger, tradeLog *logger.Logger, health *monitoring.HealthChecker) error {

	start := time.Now()

	provider := data.NewCachedProvider(data.NewCSVProvider(sugar))
	store := data.NewUniverseStore(ctx, cfg.Screening.UniverseDir, provider)

	engine := screener.NewEngine(cfg.Screening.Engine, store, sugar)
	report, err := engine.Run(ctx)
	if err != nil {
		return err
	}
	health.RecordRun(report.Processed)
	tradeLog.LogScreeningSummary(report.Benchmark, report.Processed, report.Skipped,
		len(report.Results), time.Since(start))

	sim := simulator.New(params, cfg.InitialCapital, cfg.CommissionRate, sugar)
	if err := sim.RestoreState(cfg.StateFile); err != nil {
		return err
	}

	// Candidates plus already-open symbols need fresh series for ATR
	// stops and the day's mark.
	series, cycleDate := loadCycleSeries(ctx, store, report, sim, sugar)
	if cycleDate.IsZero() {
		cycleDate = time.Now().UTC()
	}

	heldBefore := make(map[string]struct{})
	for _, p := range sim.OpenPositions() {
		heldBefore[p.Symbol] = struct{}{}
	}

	opened := sim.ProcessSignals(report, series, cycleDate)
	for _, p := range sim.OpenPositions() {
		if _, held := heldBefore[p.Symbol]; !held {
			tradeLog.LogEntry(p.Symbol, p.Side.String(), p.Quantity, p.EntryPrice, p.StopLoss, p.ProfitTarget)
		}
	}

	prices := make(map[string]float64, len(series))
	for symbol, bars := range series {
		if len(bars) > 0 {
			prices[symbol] = bars[len(bars)-1].Close
		}
	}

	closedToday := sim.MarkToMarket(prices, cycleDate)
	for _, rec := range closedToday {
		tradeLog.LogExit(rec.Symbol, rec.ExitReason.String(), rec.ExitPrice, rec.RealizedPnL, rec.HoldingDays)
	}

	if err := sim.SaveState(cfg.StateFile); err != nil {
		return err
	}

	writeReports(cfg, params.Name, sim)

	fmt.Printf("✅ Cycle complete in %s: %d opened, %d closed, equity $%.2f\n",
		time.Since(start).Round(time.Millisecond), opened, len(closedToday), sim.Equity())
	return nil
}

// loadCycleSeries fetches series for every screening candidate and
// every symbol already held. Load failures only exclude that symbol.
func loadCycleSeries(ctx context.Context, store *data.UniverseStore, report *screener.RunReport,
	sim *simulator.Simulator, sugar *zap.SugaredLogger) (map[string][]types.OHLCV, time.Time) {

	wanted := make(map[string]struct{}, len(report.Results))
	for _, row := range report.Results {
		wanted[row.Symbol] = struct{}{}
	}
	for _, p := range sim.OpenPositions() {
		wanted[p.Symbol] = struct{}{}
	}

	series := make(map[string][]types.OHLCV, len(wanted))
	var latest time.Time
	for symbol := range wanted {
		bars, err := store.Load(ctx, symbol)
		if err != nil || len(bars) == 0 {
			sugar.Warnw("series unavailable for cycle", "symbol", symbol, "error", err)
			continue
		}
		series[symbol] = bars
		if ts := bars[len(bars)-1].Timestamp; ts.After(latest) {
			latest = ts
		}
	}
	return series, latest
}

func writeReports(cfg *config.PortfolioConfig, strategyName string, sim *simulator.Simulator) {
	reporter := reporting.NewDefaultReporter()
	perf := sim.Performance()

	reporter.OutputPerformance(perf, strategyName)
	reporter.OutputClosedPositions(sim.ClosedPositions())

	tradesPath := reporter.ClosedPositionsPath(cfg.Screening.OutputDir, strategyName)
	if err := reporter.WriteClosedPositionsCSV(sim.ClosedPositions(), tradesPath); err != nil {
		log.Printf("⚠️  Could not write trade log: %v", err)
	} else {
		fmt.Printf("💾 Trade log: %s\n", tradesPath)
	}

	perfPath := reporter.ScreeningReportPath(cfg.Screening.OutputDir, "json")
	perfPath = strings.Replace(perfPath, "screening_", "performance_", 1)
	if err := reporter.WritePerformanceJSON(perf, perfPath); err != nil {
		log.Printf("⚠️  Could not write performance report: %v", err)
	} else {
		fmt.Printf("💾 Performance report: %s\n", perfPath)
	}
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
	fmt.Printf("%s v%s - Paper Trading over Screening Results\n\n", AppName, AppVersion)
	fmt.Printf("USAGE:\n  portfolio [OPTIONS]\n\n")
	PrintUsageExamples()
	flag.PrintDefaults()
}

func loadEnvironment(envFile string) {
	if err := godotenv.Load(envFile); err != nil {
		log.Printf("⚠️  Could not load %s (%v)", envFile, err)
	}
}
