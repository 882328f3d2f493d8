package portfolio

import (
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/quantbench/stock-screener/internal/monitoring"
)

// PositionTracker owns every open position and the append-only closed
// position log. Positions are mutated only through the tracker.
type PositionTracker struct {
	mu             sync.Mutex
	open           map[string]*Position // keyed by symbol
	closed         []ClosedPositionRecord
	commissionRate float64
	logger         *zap.SugaredLogger
}

// NewPositionTracker creates an empty tracker. The commission rate is
// the per-fill fraction of notional charged on the exit leg.
func NewPositionTracker(commissionRate float64, logger *zap.SugaredLogger) *PositionTracker {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &PositionTracker{
		open:           make(map[string]*Position),
		commissionRate: commissionRate,
		logger:         logger,
	}
}

// Open registers a pending position and activates it at the fill price.
// An existing open position for the same symbol is left untouched and
// the new one is discarded, since one position per symbol is the rule.
func (t *PositionTracker) Open(p *Position, fillPrice float64, fillDate time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.open[p.Symbol]; exists {
		t.logger.Debugw("position already open, entry ignored", "symbol", p.Symbol)
		return false
	}

	p.Activate(fillPrice, fillDate)
	t.open[p.Symbol] = p
	t.logger.Infow("position opened",
		"symbol", p.Symbol,
		"strategy", p.Strategy,
		"side", p.Side.String(),
		"entry", fillPrice,
		"quantity", p.Quantity,
		"stop", p.StopLoss)
	monitoring.SetOpenPositions(p.Strategy, t.countByStrategyLocked(p.Strategy))
	return true
}

// Adopt registers an already-active position without re-activating it.
// Used when rehydrating persisted state between simulation cycles.
func (t *PositionTracker) Adopt(p *Position) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if p.State != StateActive {
		return false
	}
	if _, exists := t.open[p.Symbol]; exists {
		return false
	}
	t.open[p.Symbol] = p
	monitoring.SetOpenPositions(p.Strategy, t.countByStrategyLocked(p.Strategy))
	return true
}

// UpdatePrices applies one day's closes to every open position,
// ratcheting stops and moving positions that exit into the closed log.
// Symbols missing from prices keep their last known state.
func (t *PositionTracker) UpdatePrices(prices map[string]float64, date time.Time) []ClosedPositionRecord {
	t.mu.Lock()
	defer t.mu.Unlock()

	var exited []ClosedPositionRecord
	for _, symbol := range t.openSymbolsLocked() {
		p := t.open[symbol]
		price, ok := prices[symbol]
		if !ok {
			continue
		}

		state := p.Update(price, date)
		if !state.IsTerminal() {
			continue
		}
		exited = append(exited, t.closeLocked(p, price, date))
	}
	return exited
}

// CloseManually closes one open position at the given price.
func (t *PositionTracker) CloseManually(symbol string, price float64, date time.Time) (ClosedPositionRecord, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, ok := t.open[symbol]
	if !ok {
		return ClosedPositionRecord{}, false
	}
	p.CloseManually(price)
	return t.closeLocked(p, price, date), true
}

// closeLocked snapshots a terminal position into the closed log and
// removes it from the open set. Callers hold the lock.
func (t *PositionTracker) closeLocked(p *Position, exitPrice float64, exitDate time.Time) ClosedPositionRecord {
	commission := p.EntryCommission + exitPrice*p.Quantity*t.commissionRate
	record := ClosedPositionRecord{
		Symbol:      p.Symbol,
		Strategy:    p.Strategy,
		Side:        p.Side,
		EntryDate:   p.EntryDate,
		ExitDate:    exitDate,
		EntryPrice:  p.EntryPrice,
		ExitPrice:   exitPrice,
		Quantity:    p.Quantity,
		RealizedPnL: p.pnl(exitPrice) - commission,
		Commission:  commission,
		HoldingDays: p.BarsHeld,
		ExitReason:  p.State,
	}

	delete(t.open, p.Symbol)
	t.closed = append(t.closed, record)

	t.logger.Infow("position closed",
		"symbol", record.Symbol,
		"strategy", record.Strategy,
		"reason", record.ExitReason.String(),
		"pnl", record.RealizedPnL,
		"holding_days", record.HoldingDays)
	monitoring.RecordPositionClosed(record.Strategy, record.ExitReason.String())
	monitoring.SetOpenPositions(record.Strategy, t.countByStrategyLocked(record.Strategy))

	return record
}

// OpenPositions returns copies of all open positions, sorted by symbol.
func (t *PositionTracker) OpenPositions() []Position {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Position, 0, len(t.open))
	for _, symbol := range t.openSymbolsLocked() {
		out = append(out, *t.open[symbol])
	}
	return out
}

// ClosedPositions returns the closed position log.
func (t *PositionTracker) ClosedPositions() []ClosedPositionRecord {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]ClosedPositionRecord, len(t.closed))
	copy(out, t.closed)
	return out
}

// HasOpen reports whether symbol currently has an open position.
func (t *PositionTracker) HasOpen(symbol string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.open[symbol]
	return ok
}

// MarketValue sums the signed notional of open positions at their last
// known prices. Shorts contribute negatively, as a liability.
func (t *PositionTracker) MarketValue() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	total := 0.0
	for _, p := range t.open {
		notional := p.CurrentPrice * p.Quantity
		if p.Side == SideShort {
			notional = -notional
		}
		total += notional
	}
	return total
}

// GrossExposure sums the absolute notional of open positions.
func (t *PositionTracker) GrossExposure() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	total := 0.0
	for _, p := range t.open {
		total += p.CurrentPrice * p.Quantity
	}
	return total
}

func (t *PositionTracker) openSymbolsLocked() []string {
	symbols := make([]string, 0, len(t.open))
	for symbol := range t.open {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}

func (t *PositionTracker) countByStrategyLocked(strategyName string) int {
	count := 0
	for _, p := range t.open {
		if p.Strategy == strategyName {
			count++
		}
	}
	return count
}
