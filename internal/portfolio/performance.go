package portfolio

import (
	"math"
	"time"
)

// EquityPoint is one sample of the portfolio's daily equity curve.
type EquityPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Equity    float64   `json:"equity"`

	// Exposure is invested notional / equity, 0..1+.
	Exposure float64 `json:"exposure"`
}

// PerformanceReport aggregates return, drawdown and trade statistics
// over closed positions and the equity curve.
type PerformanceReport struct {
	StartEquity      float64 `json:"start_equity"`
	EndEquity        float64 `json:"end_equity"`
	TotalReturn      float64 `json:"total_return"`
	AnnualizedReturn float64 `json:"annualized_return"`
	MaxDrawdown      float64 `json:"max_drawdown"`

	SharpeRatio      float64 `json:"sharpe_ratio"`
	AnnualizedSharpe float64 `json:"annualized_sharpe"`
	SortinoRatio     float64 `json:"sortino_ratio"`
	CalmarRatio      float64 `json:"calmar_ratio"`

	ProfitFactor float64 `json:"profit_factor"`
	WinRate      float64 `json:"win_rate"`

	TotalTrades   int `json:"total_trades"`
	WinningTrades int `json:"winning_trades"`
	LosingTrades  int `json:"losing_trades"`

	MaxExposure    float64 `json:"max_exposure"`
	AvgExposure    float64 `json:"avg_exposure"`
	AvgHoldingDays float64 `json:"avg_holding_days"`
}

// PerformanceAnalyzer computes a PerformanceReport from the simulator's
// outputs.
type PerformanceAnalyzer struct{}

// NewPerformanceAnalyzer creates an analyzer.
func NewPerformanceAnalyzer() *PerformanceAnalyzer {
	return &PerformanceAnalyzer{}
}

// Analyze computes all statistics. Both inputs may be empty; the report
// degrades to zeros rather than erroring.
func (a *PerformanceAnalyzer) Analyze(closed []ClosedPositionRecord, curve []EquityPoint) *PerformanceReport {
	report := &PerformanceReport{}

	a.tradeStats(report, closed)
	a.curveStats(report, curve)

	if report.MaxDrawdown > 0 {
		report.CalmarRatio = report.AnnualizedReturn / report.MaxDrawdown
	} else if report.AnnualizedReturn > 0 {
		report.CalmarRatio = math.Inf(1)
	}

	return report
}

// tradeStats fills the per-trade statistics from the closed log.
func (a *PerformanceAnalyzer) tradeStats(report *PerformanceReport, closed []ClosedPositionRecord) {
	if len(closed) == 0 {
		return
	}

	var returns []float64
	totalProfit := 0.0
	totalLoss := 0.0
	totalHolding := 0

	for _, rec := range closed {
		if rec.RealizedPnL > 0 {
			report.WinningTrades++
			totalProfit += rec.RealizedPnL
		} else {
			report.LosingTrades++
			totalLoss += math.Abs(rec.RealizedPnL)
		}
		totalHolding += rec.HoldingDays

		if denom := rec.EntryPrice * rec.Quantity; denom > 0 {
			returns = append(returns, rec.RealizedPnL/denom)
		}
	}

	report.TotalTrades = len(closed)
	report.WinRate = float64(report.WinningTrades) / float64(report.TotalTrades) * 100
	report.AvgHoldingDays = float64(totalHolding) / float64(report.TotalTrades)

	switch {
	case totalLoss > 0:
		report.ProfitFactor = totalProfit / totalLoss
	case totalProfit > 0:
		report.ProfitFactor = math.Inf(1)
	}

	report.SharpeRatio = sharpe(returns)
}

// curveStats fills equity-curve derived statistics.
func (a *PerformanceAnalyzer) curveStats(report *PerformanceReport, curve []EquityPoint) {
	if len(curve) == 0 {
		return
	}

	first := curve[0]
	last := curve[len(curve)-1]
	report.StartEquity = first.Equity
	report.EndEquity = last.Equity
	if first.Equity > 0 {
		report.TotalReturn = (last.Equity - first.Equity) / first.Equity
	}

	// Max drawdown from running peak.
	peak := first.Equity
	for _, point := range curve {
		if point.Equity > peak {
			peak = point.Equity
		}
		if peak > 0 {
			if dd := (peak - point.Equity) / peak; dd > report.MaxDrawdown {
				report.MaxDrawdown = dd
			}
		}
		if point.Exposure > report.MaxExposure {
			report.MaxExposure = point.Exposure
		}
		report.AvgExposure += point.Exposure
	}
	report.AvgExposure /= float64(len(curve))

	if len(curve) < 2 {
		return
	}

	duration := last.Timestamp.Sub(first.Timestamp)
	years := duration.Hours() / (24 * 365.25)
	if years > 0 && first.Equity > 0 {
		report.AnnualizedReturn = math.Pow(last.Equity/first.Equity, 1.0/years) - 1.0
	}

	// Annualized Sharpe scales the per-trade Sharpe by the sampling
	// frequency estimated from the curve.
	if duration > 0 {
		avgInterval := duration / time.Duration(len(curve)-1)
		periodsPerYear := float64(time.Duration(24*365.25)*time.Hour) / float64(avgInterval)
		report.AnnualizedSharpe = report.SharpeRatio * math.Sqrt(periodsPerYear)
	}

	report.SortinoRatio = sortino(curve)
}

// sharpe computes mean/stdev of the given returns, risk-free rate 0.
func sharpe(returns []float64) float64 {
	if len(returns) == 0 {
		return 0
	}

	avg := 0.0
	for _, r := range returns {
		avg += r
	}
	avg /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		variance += (r - avg) * (r - avg)
	}
	variance /= float64(len(returns))
	stdDev := math.Sqrt(variance)

	if stdDev < 1e-10 {
		return 0
	}
	return avg / stdDev
}

// sortino computes mean return over downside deviation from the equity
// curve. All-positive returns yield +Inf.
func sortino(curve []EquityPoint) float64 {
	returns := make([]float64, 0, len(curve)-1)
	for i := 1; i < len(curve); i++ {
		if curve[i-1].Equity > 0 {
			returns = append(returns, (curve[i].Equity-curve[i-1].Equity)/curve[i-1].Equity)
		}
	}
	if len(returns) == 0 {
		return 0
	}

	avg := 0.0
	for _, r := range returns {
		avg += r
	}
	avg /= float64(len(returns))

	downsideVariance := 0.0
	downsideCount := 0
	for _, r := range returns {
		if r < 0 {
			downsideVariance += r * r
			downsideCount++
		}
	}
	if downsideCount == 0 || downsideVariance == 0 {
		return math.Inf(1)
	}

	downsideStdDev := math.Sqrt(downsideVariance / float64(downsideCount))
	return avg / downsideStdDev
}
