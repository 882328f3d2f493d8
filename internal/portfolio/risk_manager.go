package portfolio

import "math"

// RiskConfig holds position-sizing parameters.
type RiskConfig struct {
	// RiskFraction is the share of capital put at risk per position
	// (distance from entry to stop), typically 2%.
	RiskFraction float64 `json:"risk_fraction"`

	// MaxAllocationFraction caps the position's notional value,
	// typically 10% of capital.
	MaxAllocationFraction float64 `json:"max_allocation_fraction"`

	// DefaultAllocationFraction is the fallback used when the
	// entry-to-stop distance is degenerate (zero or negative). A fixed
	// 5% allocation keeps the position deliberately small without
	// disguising the degenerate input as a zero-size signal.
	DefaultAllocationFraction float64 `json:"default_allocation_fraction"`
}

// DefaultRiskConfig returns the standard sizing parameters.
func DefaultRiskConfig() RiskConfig {
	return RiskConfig{
		RiskFraction:              0.02,
		MaxAllocationFraction:     0.10,
		DefaultAllocationFraction: 0.05,
	}
}

// RiskManager computes position sizes and protective stop levels.
type RiskManager struct {
	cfg RiskConfig
}

// NewRiskManager creates a risk manager with the given config.
func NewRiskManager(cfg RiskConfig) *RiskManager {
	return &RiskManager{cfg: cfg}
}

// PositionSize returns the share quantity for a new position:
// min(riskCapital/stopDistance, maxAllocation/entry). The result
// satisfies both the per-trade risk budget and the allocation cap.
// A degenerate stop distance falls back to DefaultAllocationFraction.
func (r *RiskManager) PositionSize(capital, entry, stop float64) float64 {
	if capital <= 0 || entry <= 0 {
		return 0
	}

	maxShares := capital * r.cfg.MaxAllocationFraction / entry

	dist := math.Abs(entry - stop)
	if dist <= 0 {
		return math.Floor(capital * r.cfg.DefaultAllocationFraction / entry)
	}

	riskShares := capital * r.cfg.RiskFraction / dist
	return math.Floor(math.Min(riskShares, maxShares))
}

// StopFromATR derives an initial stop level a multiple of ATR away from
// entry, on the unfavorable side.
func (r *RiskManager) StopFromATR(entry, atr, multiple float64, side Side) float64 {
	if atr <= 0 || multiple <= 0 {
		return 0
	}
	if side == SideShort {
		return entry + atr*multiple
	}
	return entry - atr*multiple
}

// TargetFromRisk derives a profit target as a multiple of the initial
// risk (entry-to-stop distance) on the favorable side.
func (r *RiskManager) TargetFromRisk(entry, stop, multiple float64, side Side) float64 {
	dist := math.Abs(entry - stop)
	if dist <= 0 || multiple <= 0 {
		return 0
	}
	if side == SideShort {
		return entry - dist*multiple
	}
	return entry + dist*multiple
}
