package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/quantbench/stock-screener/internal/errors"
	"github.com/quantbench/stock-screener/internal/marketdata"
	"github.com/quantbench/stock-screener/pkg/data"
)

const (
	AppName    = "Universe Fetcher"
	AppVersion = "1.0.0"

	// DefaultLookbackDays covers one year of RS windows plus warm-up
	// for the 200-day average, in calendar days.
	DefaultLookbackDays = 550
)

func main() {
	symbolsFlag := flag.String("symbols", "", "Comma-separated symbols, e.g. AAPL,MSFT,SPY")
	symbolsFile := flag.String("symbols-file", "", "File with one symbol per line")
	outDir := flag.String("output", "data/universe", "Universe directory to write CSV files into")
	lookback := flag.Int("lookback-days", DefaultLookbackDays, "Calendar days of history to fetch")
	rpm := flag.Int("rpm", 0, "Requests per minute cap (default 120)")
	envFile := flag.String("env", ".env", "Environment file")
	showVersion := flag.Bool("version", false, "Show version")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s v%s\n", AppName, AppVersion)
		return
	}

	fmt.Printf("🎯 %s v%s\n", strings.ToUpper(AppName), AppVersion)
	fmt.Printf("%s\n\n", strings.Repeat("=", 50))

	if err := godotenv.Load(*envFile); err != nil {
		log.Printf("⚠️  Could not load %s (%v)", *envFile, err)
	}

	symbols, err := collectSymbols(*symbolsFlag, *symbolsFile)
	if err != nil {
		log.Fatalf("❌ Symbol list error: %v", err)
	}
	if len(symbols) == 0 {
		log.Fatalf("❌ No symbols given (use -symbols or -symbols-file)")
	}

	zlog, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("❌ Logger error: %v", err)
	}
	defer zlog.Sync()
	sugar := zlog.Sugar()

	fetchCfg := marketdata.DefaultFetchConfig()
	if *rpm > 0 {
		fetchCfg.RequestsPerMinute = *rpm
	}

	provider, err := marketdata.NewAlpacaProvider(fetchCfg, sugar)
	if err != nil {
		log.Fatalf("❌ Provider error: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -*lookback)

	fetched, failed := 0, 0
	for _, symbol := range symbols {
		if ctx.Err() != nil {
			log.Fatalf("❌ Interrupted after %d symbols", fetched)
		}

		bars, err := provider.Fetch(ctx, symbol, start, end)
		if err != nil {
			if se, ok := err.(*errors.ScreenerError); ok && se.IsFatal() {
				log.Fatalf("❌ Fetch aborted: %v", err)
			}
			sugar.Warnw("fetch failed, symbol skipped", "symbol", symbol, "error", err)
			failed++
			continue
		}
		if len(bars) == 0 {
			sugar.Warnw("no bars returned, symbol skipped", "symbol", symbol)
			failed++
			continue
		}

		path := filepath.Join(*outDir, strings.ToUpper(symbol)+".csv")
		if err := data.WriteSeriesCSV(bars, path); err != nil {
			log.Fatalf("❌ Write error for %s: %v", symbol, err)
		}
		fmt.Printf("💾 %s: %d bars -> %s\n", strings.ToUpper(symbol), len(bars), path)
		fetched++
	}

	fmt.Printf("\n✅ Fetched %d symbols (%d failed) into %s\n", fetched, failed, *outDir)
	if fetched == 0 {
		os.Exit(1)
	}
}

func collectSymbols(list, file string) ([]string, error) {
	seen := make(map[string]struct{})
	var symbols []string

	add := func(raw string) {
		symbol := strings.ToUpper(strings.TrimSpace(raw))
		if symbol == "" || strings.HasPrefix(symbol, "#") {
			return
		}
		if _, dup := seen[symbol]; dup {
			return
		}
		seen[symbol] = struct{}{}
		symbols = append(symbols, symbol)
	}

	for _, raw := range strings.Split(list, ",") {
		add(raw)
	}

	if file != "" {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		for _, line := range strings.Split(string(content), "\n") {
			add(line)
		}
	}

	return symbols, nil
}
