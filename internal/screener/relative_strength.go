package screener

import (
	"sort"

	"go.uber.org/zap"

	"github.com/quantbench/stock-screener/pkg/types"
)

// NeutralRSScore is the default score callers substitute when ranking
// produced no result for a symbol.
const NeutralRSScore = 50.0

// RSConfig holds the relative strength formula parameters.
// The quarter windows and 0.4/0.2/0.2/0.2 weights come straight from the
// IBD-style weighted RS formula and are deliberately configurable rather
// than derived.
type RSConfig struct {
	Windows [4]int     `json:"windows"`
	Weights [4]float64 `json:"weights"`

	// MinBars is the history needed for the enhanced four-window score.
	MinBars int `json:"min_bars"`

	// FallbackWindow is the single lookback used by RankSimple when full
	// history is unavailable.
	FallbackWindow int `json:"fallback_window"`
}

// DefaultRSConfig returns the standard relative strength parameters.
func DefaultRSConfig() RSConfig {
	return RSConfig{
		Windows:        [4]int{63, 126, 189, 252},
		Weights:        [4]float64{0.4, 0.2, 0.2, 0.2},
		MinBars:        253,
		FallbackWindow: 63,
	}
}

// RelativeStrengthRanker computes cross-sectional RS percentiles for a
// universe against a benchmark.
type RelativeStrengthRanker struct {
	cfg    RSConfig
	logger *zap.SugaredLogger
}

// NewRelativeStrengthRanker creates a ranker with the given config.
func NewRelativeStrengthRanker(cfg RSConfig, logger *zap.SugaredLogger) *RelativeStrengthRanker {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &RelativeStrengthRanker{cfg: cfg, logger: logger}
}

// weightedScore computes the blended trailing-return score for one series.
// Returns false when any window lacks history.
func (r *RelativeStrengthRanker) weightedScore(data []types.OHLCV) (float64, bool) {
	if len(data) < r.cfg.MinBars {
		return 0, false
	}
	score := 0.0
	for i, window := range r.cfg.Windows {
		ret, ok := types.TrailingReturn(data, window)
		if !ok {
			return 0, false
		}
		score += r.cfg.Weights[i] * ret
	}
	return score, true
}

// Rank computes the enhanced RS percentile for every symbol with enough
// history. Scores are each symbol's weighted trailing return relative to
// the benchmark's, percentile-ranked within this run's universe.
//
// Fewer than two scored symbols yields an empty map; callers treat every
// symbol as NeutralRSScore in that case. A benchmark score of exactly
// zero would make the ratio meaningless, so the run is degraded the same
// way rather than dividing by zero.
func (r *RelativeStrengthRanker) Rank(universe map[string][]types.OHLCV, benchmark []types.OHLCV) map[string]float64 {
	benchScore, ok := r.weightedScore(benchmark)
	if !ok {
		r.logger.Warnw("benchmark history insufficient for RS ranking", "bars", len(benchmark))
		return map[string]float64{}
	}
	if benchScore == 0 {
		r.logger.Warnw("benchmark score is exactly zero, skipping RS ranking")
		return map[string]float64{}
	}

	raw := make(map[string]float64, len(universe))
	for _, symbol := range sortedSymbols(universe) {
		score, ok := r.weightedScore(universe[symbol])
		if !ok {
			r.logger.Debugw("symbol skipped in RS ranking", "symbol", symbol, "reason", "insufficient history")
			continue
		}
		raw[symbol] = score / benchScore * 100
	}

	return percentileRanks(raw)
}

// RankSimple is the fallback ranker: the percentile of each symbol's raw
// trailing return over a single window, with no benchmark adjustment.
func (r *RelativeStrengthRanker) RankSimple(universe map[string][]types.OHLCV) map[string]float64 {
	raw := make(map[string]float64, len(universe))
	for _, symbol := range sortedSymbols(universe) {
		ret, ok := types.TrailingReturn(universe[symbol], r.cfg.FallbackWindow)
		if !ok {
			continue
		}
		raw[symbol] = ret
	}
	return percentileRanks(raw)
}

// percentileRanks converts raw values into 0-100 percentile ranks using
// the average-rank convention for ties. Fewer than two entries yields an
// empty map since a percentile of a singleton carries no information.
func percentileRanks(raw map[string]float64) map[string]float64 {
	if len(raw) < 2 {
		return map[string]float64{}
	}

	type entry struct {
		symbol string
		value  float64
	}
	entries := make([]entry, 0, len(raw))
	for symbol, value := range raw {
		entries = append(entries, entry{symbol, value})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].value != entries[j].value {
			return entries[i].value < entries[j].value
		}
		return entries[i].symbol < entries[j].symbol
	})

	n := float64(len(entries))
	out := make(map[string]float64, len(entries))
	i := 0
	for i < len(entries) {
		j := i
		for j < len(entries) && entries[j].value == entries[i].value {
			j++
		}
		// 1-based ranks i+1..j averaged across the tie group.
		avgRank := float64(i+1+j) / 2
		pct := avgRank / n * 100
		for k := i; k < j; k++ {
			out[entries[k].symbol] = pct
		}
		i = j
	}
	return out
}

func sortedSymbols(universe map[string][]types.OHLCV) []string {
	symbols := make([]string, 0, len(universe))
	for symbol := range universe {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}
