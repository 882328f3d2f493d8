package screener

import (
	"fmt"

	"github.com/quantbench/stock-screener/internal/indicators"
	"github.com/quantbench/stock-screener/pkg/types"
)

// NumTrendConditions is the number of boolean conditions in the trend template.
const NumTrendConditions = 7

// TrendTemplateConfig holds the tunable thresholds of the trend template.
// The defaults are the classic Minervini parameters.
type TrendTemplateConfig struct {
	MA20Window  int `json:"ma20_window"`
	MA50Window  int `json:"ma50_window"`
	MA150Window int `json:"ma150_window"`
	MA200Window int `json:"ma200_window"`

	// MA150Lookback and MA200Lookback are how far back each moving average
	// is compared against itself to confirm an uptrend.
	MA150Lookback int `json:"ma150_lookback"`
	MA200Lookback int `json:"ma200_lookback"`

	// RangeWindow is the lookback for the 52-week low/high conditions.
	RangeWindow  int     `json:"range_window"`
	LowMultiple  float64 `json:"low_multiple"`
	HighMultiple float64 `json:"high_multiple"`

	// MinBars is the recommended history length. Evaluation below this
	// still returns a full vector, it just fails most conditions.
	MinBars int `json:"min_bars"`
}

// DefaultTrendTemplateConfig returns the standard trend template parameters.
func DefaultTrendTemplateConfig() TrendTemplateConfig {
	return TrendTemplateConfig{
		MA20Window:    20,
		MA50Window:    50,
		MA150Window:   150,
		MA200Window:   200,
		MA150Lookback: 60,
		MA200Lookback: 20,
		RangeWindow:   252,
		LowMultiple:   1.30,
		HighMultiple:  0.75,
		MinBars:       200,
	}
}

// ConditionVector is the outcome of one trend template evaluation.
// Conditions are 1-based to match the published template numbering.
type ConditionVector struct {
	Met [NumTrendConditions]bool
}

// Condition returns the outcome of condition id (1..7).
func (v ConditionVector) Condition(id int) bool {
	if id < 1 || id > NumTrendConditions {
		return false
	}
	return v.Met[id-1]
}

// MetCount returns the number of satisfied conditions.
func (v ConditionVector) MetCount() int {
	count := 0
	for _, ok := range v.Met {
		if ok {
			count++
		}
	}
	return count
}

// EvaluationFailure describes why an evaluation could not run cleanly.
type EvaluationFailure struct {
	Reason        string
	BarsAvailable int
}

func (f *EvaluationFailure) Error() string {
	return fmt.Sprintf("trend template evaluation degraded: %s (%d bars)", f.Reason, f.BarsAvailable)
}

// Evaluation pairs the condition vector with an optional failure so
// degraded runs are explicit instead of hiding behind an all-false vector.
type Evaluation struct {
	Vector  ConditionVector
	Failure *EvaluationFailure
}

// MetCount is a convenience passthrough to the vector.
func (e Evaluation) MetCount() int {
	return e.Vector.MetCount()
}

// TrendTemplateEvaluator evaluates the trend template for a single symbol.
type TrendTemplateEvaluator struct {
	cfg TrendTemplateConfig
}

// NewTrendTemplateEvaluator creates an evaluator with the given config.
func NewTrendTemplateEvaluator(cfg TrendTemplateConfig) *TrendTemplateEvaluator {
	return &TrendTemplateEvaluator{cfg: cfg}
}

// Evaluate runs all seven conditions against one symbol's series.
// Evaluation is total: it never returns an error and always produces a
// full vector. Conditions that cannot be computed are false. The engine
// runs this across thousands of symbols, so one bad series must degrade
// to an all-false vector instead of aborting the batch.
func (e *TrendTemplateEvaluator) Evaluate(data []types.OHLCV) Evaluation {
	if len(data) == 0 {
		return Evaluation{Failure: &EvaluationFailure{Reason: "empty series"}}
	}

	var result Evaluation
	if len(data) < e.cfg.MinBars {
		result.Failure = &EvaluationFailure{
			Reason:        "insufficient history",
			BarsAvailable: len(data),
		}
	}

	closes := types.Closes(data)
	close := closes[len(closes)-1]

	ma20 := indicators.SMA(closes, e.cfg.MA20Window)
	ma50 := indicators.SMA(closes, e.cfg.MA50Window)
	ma150 := indicators.SMA(closes, e.cfg.MA150Window)
	ma200 := indicators.SMA(closes, e.cfg.MA200Window)

	ma20Now := indicators.Last(ma20)
	ma50Now := indicators.Last(ma50)
	ma150Now := indicators.Last(ma150)
	ma200Now := indicators.Last(ma200)
	ma150Past := indicators.At(ma150, e.cfg.MA150Lookback)
	ma200Past := indicators.At(ma200, e.cfg.MA200Lookback)

	// 1. Price above both long moving averages, stacked correctly.
	result.Vector.Met[0] = indicators.IsValid(ma150Now) && indicators.IsValid(ma200Now) &&
		close > ma150Now && ma150Now > ma200Now

	// 2. MA150 trending up versus its own value MA150Lookback bars ago.
	result.Vector.Met[1] = indicators.IsValid(ma150Now) && indicators.IsValid(ma150Past) &&
		ma150Now > ma150Past

	// 3. MA200 trending up versus its own value MA200Lookback bars ago.
	result.Vector.Met[2] = indicators.IsValid(ma200Now) && indicators.IsValid(ma200Past) &&
		ma200Now > ma200Past

	// 4. Price above the intermediate moving average.
	result.Vector.Met[3] = indicators.IsValid(ma50Now) && close > ma50Now

	// 5. Price at least LowMultiple times the 52-week low.
	if low, ok := types.LowestLow(data, e.cfg.RangeWindow); ok && low > 0 {
		result.Vector.Met[4] = close >= e.cfg.LowMultiple*low
	}

	// 6. Price within reach of the 52-week high.
	if high, ok := types.HighestHigh(data, e.cfg.RangeWindow); ok && high > 0 {
		result.Vector.Met[5] = close >= e.cfg.HighMultiple*high
	}

	// 7. Price above the short moving average.
	result.Vector.Met[6] = indicators.IsValid(ma20Now) && close > ma20Now

	return result
}
