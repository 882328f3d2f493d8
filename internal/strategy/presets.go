package strategy

import (
	"fmt"
	"sort"

	"github.com/quantbench/stock-screener/internal/portfolio"
)

// Presets are the named parameterizations standing in for what used to
// be one script per setup. Numbers are trading heuristics carried over
// as-is, not derived.

// BreakoutLong holds multi-week breakouts in leading names.
func BreakoutLong() Params {
	return Params{
		Name:               "breakout-long",
		Side:               portfolio.SideLong,
		MinMetCount:        7,
		MinRSScore:         85,
		MaxCandidates:      5,
		MaxHoldingDays:     20,
		StopATRMultiple:    2.0,
		TargetRiskMultiple: 3.0,
		ATRWindow:          14,
		SlippageRate:       0.001,
		Risk:               portfolio.DefaultRiskConfig(),
	}
}

// EpisodicPivot is a short-swing long around catalyst gaps.
func EpisodicPivot() Params {
	return Params{
		Name:               "episodic-pivot",
		Side:               portfolio.SideLong,
		MinMetCount:        5,
		MinRSScore:         70,
		MaxCandidates:      3,
		MaxHoldingDays:     6,
		StopATRMultiple:    1.5,
		TargetRiskMultiple: 2.0,
		ATRWindow:          14,
		SlippageRate:       0.002,
		Risk:               portfolio.DefaultRiskConfig(),
	}
}

// ParabolicShort fades overextended weak names for a quick mean
// reversion, held only a few days.
func ParabolicShort() Params {
	return Params{
		Name:               "parabolic-short",
		Side:               portfolio.SideShort,
		MinMetCount:        0,
		MaxRSScore:         30,
		MaxCandidates:      3,
		MaxHoldingDays:     3,
		StopATRMultiple:    1.5,
		TargetRiskMultiple: 2.0,
		ATRWindow:          14,
		SlippageRate:       0.002,
		Risk:               portfolio.DefaultRiskConfig(),
	}
}

// TrendFollow is the patient template-driven position trade.
func TrendFollow() Params {
	return Params{
		Name:               "trend-follow",
		Side:               portfolio.SideLong,
		MinMetCount:        6,
		MinRSScore:         80,
		MaxCandidates:      8,
		MaxHoldingDays:     0, // no time exit, trailing stop decides
		StopATRMultiple:    2.5,
		TargetRiskMultiple: 0, // no fixed target
		ATRWindow:          14,
		SlippageRate:       0.001,
		Risk:               portfolio.DefaultRiskConfig(),
	}
}

var presets = map[string]func() Params{
	"breakout-long":   BreakoutLong,
	"episodic-pivot":  EpisodicPivot,
	"parabolic-short": ParabolicShort,
	"trend-follow":    TrendFollow,
}

// ByName returns a preset by its registered name.
func ByName(name string) (Params, error) {
	preset, ok := presets[name]
	if !ok {
		return Params{}, fmt.Errorf("unknown strategy %q (available: %v)", name, Names())
	}
	return preset(), nil
}

// Names lists the registered preset names, sorted.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
