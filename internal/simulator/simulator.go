// Package simulator ties the screening engine's ranked output to the
// paper-trading portfolio: entry selection, sizing, simulated fills and
// daily mark-to-market.
package simulator

import (
	"time"

	"go.uber.org/zap"

	"github.com/quantbench/stock-screener/internal/indicators"
	"github.com/quantbench/stock-screener/internal/portfolio"
	"github.com/quantbench/stock-screener/internal/screener"
	"github.com/quantbench/stock-screener/internal/strategy"
	"github.com/quantbench/stock-screener/pkg/types"
)

// Simulator runs one strategy's paper portfolio.
type Simulator struct {
	params         strategy.Params
	cash           float64
	commissionRate float64
	tracker        *portfolio.PositionTracker
	risk           *portfolio.RiskManager
	orders         *portfolio.OrderManager
	curve          []portfolio.EquityPoint
	logger         *zap.SugaredLogger
}

// New creates a simulator with starting capital and a per-fill
// commission rate.
func New(params strategy.Params, capital, commissionRate float64, logger *zap.SugaredLogger) *Simulator {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Simulator{
		params:         params,
		cash:           capital,
		commissionRate: commissionRate,
		tracker:        portfolio.NewPositionTracker(commissionRate, logger),
		risk:           portfolio.NewRiskManager(params.Risk),
		orders:         portfolio.NewOrderManager(commissionRate),
		logger:         logger,
	}
}

// ProcessSignals walks the ranked screening table top-down and opens up
// to MaxCandidates new positions that pass the strategy's entry filter.
// Series are needed to derive the ATR-based stop; symbols without one
// are passed over.
func (s *Simulator) ProcessSignals(report *screener.RunReport, series map[string][]types.OHLCV, date time.Time) int {
	opened := 0
	for _, row := range report.Results {
		if opened >= s.params.MaxCandidates {
			break
		}
		if !s.params.WantsEntry(row) {
			continue
		}
		if s.tracker.HasOpen(row.Symbol) {
			continue
		}

		data, ok := series[row.Symbol]
		if !ok || len(data) == 0 {
			continue
		}
		lastClose := data[len(data)-1].Close
		atr := indicators.Last(indicators.ATR(data, s.params.ATRWindow))
		if !indicators.IsValid(atr) {
			s.logger.Debugw("no ATR available, entry skipped", "symbol", row.Symbol)
			continue
		}

		if s.openPosition(row.Symbol, lastClose, atr, date) {
			opened++
		}
	}
	return opened
}

// openPosition sizes, fills and registers one entry. Returns false when
// sizing or the simulated fill produced nothing.
func (s *Simulator) openPosition(symbol string, lastClose, atr float64, date time.Time) bool {
	entry := s.params.EntryFill(lastClose)
	stop := s.risk.StopFromATR(entry, atr, s.params.StopATRMultiple, s.params.Side)
	target := s.risk.TargetFromRisk(entry, stop, s.params.TargetRiskMultiple, s.params.Side)

	qty := s.risk.PositionSize(s.equity(), entry, stop)
	if qty <= 0 {
		return false
	}

	side := portfolio.OrderBuy
	if s.params.Side == portfolio.SideShort {
		side = portfolio.OrderSell
	}
	order := s.orders.Submit(symbol, side, portfolio.OrderMarket, qty, 0)
	fill, err := s.orders.Execute(order.ID, entry, date)
	if err != nil || fill == nil {
		s.logger.Warnw("entry fill failed", "symbol", symbol, "err", err)
		return false
	}

	notional := fill.Price * fill.Quantity
	if s.params.Side == portfolio.SideShort {
		s.cash += notional - fill.Commission
	} else {
		s.cash -= notional + fill.Commission
	}

	position := portfolio.NewPosition(symbol, s.params.Name, s.params.Side,
		fill.Quantity, stop, target, s.params.MaxHoldingDays)
	position.EntryCommission = fill.Commission
	return s.tracker.Open(position, fill.Price, date)
}

// MarkToMarket applies one day's closes: trailing stops ratchet, exits
// settle into cash, and an equity point is appended.
func (s *Simulator) MarkToMarket(prices map[string]float64, date time.Time) []portfolio.ClosedPositionRecord {
	exited := s.tracker.UpdatePrices(prices, date)

	for _, rec := range exited {
		notional := rec.ExitPrice * rec.Quantity
		commission := notional * s.commissionRate
		if rec.Side == portfolio.SideShort {
			s.cash -= notional + commission
		} else {
			s.cash += notional - commission
		}
	}

	equity := s.equity()
	exposure := 0.0
	if equity > 0 {
		exposure = s.tracker.GrossExposure() / equity
	}
	s.curve = append(s.curve, portfolio.EquityPoint{
		Timestamp: date,
		Equity:    equity,
		Exposure:  exposure,
	})

	return exited
}

// equity is cash plus the signed market value of open positions.
func (s *Simulator) equity() float64 {
	return s.cash + s.tracker.MarketValue()
}

// Equity returns the current portfolio equity.
func (s *Simulator) Equity() float64 {
	return s.equity()
}

// EquityCurve returns the recorded daily equity points.
func (s *Simulator) EquityCurve() []portfolio.EquityPoint {
	return s.curve
}

// OpenPositions exposes the tracker's open set.
func (s *Simulator) OpenPositions() []portfolio.Position {
	return s.tracker.OpenPositions()
}

// ClosedPositions exposes the closed position log.
func (s *Simulator) ClosedPositions() []portfolio.ClosedPositionRecord {
	return s.tracker.ClosedPositions()
}

// Performance computes the aggregate report over the run so far.
func (s *Simulator) Performance() *portfolio.PerformanceReport {
	return portfolio.NewPerformanceAnalyzer().Analyze(s.ClosedPositions(), s.curve)
}
