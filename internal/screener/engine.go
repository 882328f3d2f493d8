package screener

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	scrErrors "github.com/quantbench/stock-screener/internal/errors"
	"github.com/quantbench/stock-screener/internal/monitoring"
	"github.com/quantbench/stock-screener/pkg/types"
)

// TotalConditions is the trend template's seven conditions plus the
// derived relative-strength bonus condition.
const TotalConditions = NumTrendConditions + 1

// EngineConfig holds screening run parameters.
type EngineConfig struct {
	// Benchmark is the symbol RS scores are computed against, e.g. SPY.
	Benchmark string `json:"benchmark"`

	// MinBars is the engine-wide admission threshold. Symbols below it
	// are excluded from the ranked table entirely, not zero-filled.
	MinBars int `json:"min_bars"`

	// RSThreshold is the percentile needed for the bonus condition.
	RSThreshold float64 `json:"rs_threshold"`

	// Workers bounds the load fan-out.
	Workers int `json:"workers"`

	TrendTemplate    TrendTemplateConfig `json:"trend_template"`
	RelativeStrength RSConfig            `json:"relative_strength"`
}

// DefaultEngineConfig returns the standard screening parameters.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Benchmark:        "SPY",
		MinBars:          200,
		RSThreshold:      85,
		Workers:          4,
		TrendTemplate:    DefaultTrendTemplateConfig(),
		RelativeStrength: DefaultRSConfig(),
	}
}

// ScreeningResult is one ranked row of a screening run.
type ScreeningResult struct {
	Symbol   string
	Vector   ConditionVector
	RSScore  float64
	RSBonus  bool
	MetCount int
}

// RunReport is the full outcome of one screening run.
type RunReport struct {
	Results     []ScreeningResult
	GeneratedAt time.Time
	Benchmark   string

	Processed   int
	Skipped     int
	SkipReasons map[string]string
}

// Engine orchestrates indicator computation, trend template evaluation
// and RS ranking across a universe.
type Engine struct {
	cfg       EngineConfig
	source    SeriesSource
	evaluator *TrendTemplateEvaluator
	ranker    *RelativeStrengthRanker
	logger    *zap.SugaredLogger
}

// NewEngine creates a screening engine over the given series source.
func NewEngine(cfg EngineConfig, source SeriesSource, logger *zap.SugaredLogger) *Engine {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Engine{
		cfg:       cfg,
		source:    source,
		evaluator: NewTrendTemplateEvaluator(cfg.TrendTemplate),
		ranker:    NewRelativeStrengthRanker(cfg.RelativeStrength, logger),
		logger:    logger,
	}
}

// Run executes one screening pass. Per-symbol failures degrade to skips;
// only configuration-level problems (no universe, no benchmark data)
// return an error.
func (e *Engine) Run(ctx context.Context) (*RunReport, error) {
	start := time.Now()

	symbols, err := e.source.Symbols()
	if err != nil {
		return nil, scrErrors.Wrap(err, scrErrors.ErrorCategoryConfiguration, "engine", "list universe")
	}
	if len(symbols) == 0 {
		return nil, scrErrors.New(scrErrors.ErrorCategoryConfiguration, "engine", "list universe", "universe is empty")
	}

	benchmark, err := e.source.Load(ctx, e.cfg.Benchmark)
	if err != nil {
		return nil, scrErrors.Wrap(err, scrErrors.ErrorCategoryConfiguration, "engine", "load benchmark").
			WithSymbol(e.cfg.Benchmark)
	}

	report := &RunReport{
		GeneratedAt: start.UTC(),
		Benchmark:   e.cfg.Benchmark,
		SkipReasons: make(map[string]string),
	}

	// Fan out the I/O-bound loads; every worker result is purely local.
	universe := e.loadUniverse(ctx, symbols, report)

	// Aggregation from here on is single-threaded.
	evaluations := make(map[string]Evaluation, len(universe))
	for symbol, data := range universe {
		evaluations[symbol] = e.evaluator.Evaluate(data)
	}

	rsScores := e.ranker.Rank(universe, benchmark)
	if len(rsScores) == 0 {
		e.logger.Warnw("RS ranking unavailable, defaulting every symbol to neutral",
			"neutral", NeutralRSScore)
	}

	for symbol, eval := range evaluations {
		rs, ok := rsScores[symbol]
		if !ok {
			rs = NeutralRSScore
		}

		row := ScreeningResult{
			Symbol:  symbol,
			Vector:  eval.Vector,
			RSScore: rs,
			RSBonus: rs >= e.cfg.RSThreshold,
		}
		row.MetCount = eval.MetCount()
		if row.RSBonus {
			row.MetCount++
		}
		report.Results = append(report.Results, row)
	}

	sortResults(report.Results)
	report.Processed = len(report.Results)

	monitoring.RecordScreeningRun(report.Processed, time.Since(start))
	e.logger.Infow("screening run complete",
		"processed", report.Processed,
		"skipped", report.Skipped,
		"duration", time.Since(start))

	return report, nil
}

// loadUniverse fans the per-symbol loads out over the worker pool and
// collects admissible series. Failures and short histories become skip
// entries in the report.
func (e *Engine) loadUniverse(ctx context.Context, symbols []string, report *RunReport) map[string][]types.OHLCV {
	pool := NewWorkerPool(ctx, e.cfg.Workers, len(symbols), e.source)
	pool.Start()

	go func() {
		// Stop must run on every exit path or Results() never closes
		// and the collector below blocks forever.
		defer pool.Stop()
		for _, symbol := range symbols {
			if symbol == e.cfg.Benchmark {
				continue
			}
			if err := pool.Submit(LoadJob{Symbol: symbol}); err != nil {
				return
			}
		}
	}()

	universe := make(map[string][]types.OHLCV, len(symbols))
	for result := range pool.Results() {
		if result.Err != nil {
			e.skip(report, result.Symbol, "load failed: "+result.Err.Error())
			continue
		}
		if len(result.Data) < e.cfg.MinBars {
			e.skip(report, result.Symbol, "insufficient history")
			continue
		}
		universe[result.Symbol] = result.Data
	}
	return universe
}

func (e *Engine) skip(report *RunReport, symbol, reason string) {
	report.Skipped++
	report.SkipReasons[symbol] = reason
	monitoring.RecordSymbolSkipped(reason)
	e.logger.Infow("symbol skipped", "symbol", symbol, "reason", reason)
}

// sortResults orders rows by met count descending, RS percentile
// descending, then symbol ascending so a fixed snapshot always produces
// the same table.
func sortResults(results []ScreeningResult) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].MetCount != results[j].MetCount {
			return results[i].MetCount > results[j].MetCount
		}
		if results[i].RSScore != results[j].RSScore {
			return results[i].RSScore > results[j].RSScore
		}
		return results[i].Symbol < results[j].Symbol
	})
}
