package strategy

import (
	"github.com/quantbench/stock-screener/internal/portfolio"
	"github.com/quantbench/stock-screener/internal/screener"
)

// Params is one parameterized trading setup: an entry filter over
// screening rows, a sizing rule, and an exit rule. Every setup the
// screener trades is an instance of this one type rather than its own
// module.
type Params struct {
	Name string          `json:"name"`
	Side portfolio.Side  `json:"side"`

	// Entry filter over the ranked screening table.
	MinMetCount int     `json:"min_met_count"`
	MinRSScore  float64 `json:"min_rs_score"`
	// MaxRSScore filters for weak symbols on the short side; 0 disables.
	MaxRSScore float64 `json:"max_rs_score"`

	// MaxCandidates caps how many new entries one cycle may open.
	MaxCandidates int `json:"max_candidates"`

	// Exit rule.
	MaxHoldingDays     int     `json:"max_holding_days"`
	StopATRMultiple    float64 `json:"stop_atr_multiple"`
	TargetRiskMultiple float64 `json:"target_risk_multiple"`
	ATRWindow          int     `json:"atr_window"`

	// SlippageRate is applied unfavorably to the entry fill.
	SlippageRate float64 `json:"slippage_rate"`

	Risk portfolio.RiskConfig `json:"risk"`
}

// WantsEntry reports whether a screening row passes the entry filter.
func (p Params) WantsEntry(row screener.ScreeningResult) bool {
	if row.MetCount < p.MinMetCount {
		return false
	}
	if p.MinRSScore > 0 && row.RSScore < p.MinRSScore {
		return false
	}
	if p.MaxRSScore > 0 && row.RSScore > p.MaxRSScore {
		return false
	}
	return true
}

// EntryFill applies the slippage convention to the reference price:
// longs pay up, shorts fill down.
func (p Params) EntryFill(price float64) float64 {
	if p.Side == portfolio.SideShort {
		return price * (1 - p.SlippageRate)
	}
	return price * (1 + p.SlippageRate)
}
