package portfolio

import (
	"math"
	"time"
)

// Side is the direction of a position.
type Side int

const (
	SideLong Side = iota
	SideShort
)

func (s Side) String() string {
	switch s {
	case SideLong:
		return "LONG"
	case SideShort:
		return "SHORT"
	default:
		return "UNKNOWN"
	}
}

// PositionState is a position's lifecycle state. All states after
// StateActive are terminal.
type PositionState int

const (
	StatePending PositionState = iota
	StateActive
	StateStoppedOut
	StateTargetHit
	StateTimeExit
	StateManuallyClosed
)

func (s PositionState) String() string {
	switch s {
	case StatePending:
		return "PENDING"
	case StateActive:
		return "ACTIVE"
	case StateStoppedOut:
		return "STOPPED_OUT"
	case StateTargetHit:
		return "TARGET_HIT"
	case StateTimeExit:
		return "TIME_EXIT"
	case StateManuallyClosed:
		return "MANUALLY_CLOSED"
	default:
		return "UNKNOWN"
	}
}

// IsTerminal reports whether the state ends the position's lifecycle.
func (s PositionState) IsTerminal() bool {
	return s != StatePending && s != StateActive
}

// Position is one simulated holding. Owned exclusively by the
// PositionTracker; callers receive copies or read-only views.
type Position struct {
	Symbol   string
	Strategy string
	Side     Side
	State    PositionState

	EntryDate  time.Time
	EntryPrice float64
	Quantity   float64

	// EntryCommission is the commission paid on the entry fill. The
	// tracker adds the exit leg when it closes the position.
	EntryCommission float64

	StopLoss     float64
	ProfitTarget float64

	// trailDistance is the entry-to-initial-stop distance captured at
	// activation. The trailing ratchet keeps the stop this far behind
	// the best price seen.
	trailDistance float64

	CurrentPrice  float64
	UnrealizedPnL float64
	BarsHeld      int

	// MaxHoldingDays is the strategy's time-based exit; 0 disables it.
	MaxHoldingDays int
}

// NewPosition creates a pending position awaiting its fill.
func NewPosition(symbol, strategyName string, side Side, quantity, stopLoss, profitTarget float64, maxHoldingDays int) *Position {
	return &Position{
		Symbol:         symbol,
		Strategy:       strategyName,
		Side:           side,
		State:          StatePending,
		Quantity:       quantity,
		StopLoss:       stopLoss,
		ProfitTarget:   profitTarget,
		MaxHoldingDays: maxHoldingDays,
	}
}

// Activate transitions Pending -> Active once the entry fill is confirmed.
func (p *Position) Activate(fillPrice float64, fillDate time.Time) {
	if p.State != StatePending {
		return
	}
	p.State = StateActive
	p.EntryPrice = fillPrice
	p.EntryDate = fillDate
	p.CurrentPrice = fillPrice
	p.trailDistance = math.Abs(fillPrice - p.StopLoss)
}

// TrailDistance reports the captured trailing distance.
func (p *Position) TrailDistance() float64 {
	return p.trailDistance
}

// SetTrailDistance restores the trailing distance when rehydrating a
// persisted position. Activation overwrites it.
func (p *Position) SetTrailDistance(d float64) {
	p.trailDistance = d
}

// pnl computes signed profit for the position at price.
func (p *Position) pnl(price float64) float64 {
	if p.Side == SideShort {
		return (p.EntryPrice - price) * p.Quantity
	}
	return (price - p.EntryPrice) * p.Quantity
}

// ratchetStop moves the stop in the favorable direction only. A long
// stop never decreases, a short stop never increases.
func (p *Position) ratchetStop(price float64) {
	if p.trailDistance <= 0 {
		return
	}
	if p.Side == SideLong {
		if candidate := price - p.trailDistance; candidate > p.StopLoss {
			p.StopLoss = candidate
		}
		return
	}
	if candidate := price + p.trailDistance; candidate < p.StopLoss {
		p.StopLoss = candidate
	}
}

// stopHit reports whether price crosses the stop level.
func (p *Position) stopHit(price float64) bool {
	if p.StopLoss <= 0 {
		return false
	}
	if p.Side == SideLong {
		return price <= p.StopLoss
	}
	return price >= p.StopLoss
}

// targetHit reports whether price crosses the profit target favorably.
func (p *Position) targetHit(price float64) bool {
	if p.ProfitTarget <= 0 {
		return false
	}
	if p.Side == SideLong {
		return price >= p.ProfitTarget
	}
	return price <= p.ProfitTarget
}

// Update applies one daily price to an active position: exit checks
// first against the pre-ratchet stop, then the trailing ratchet.
// Returns the terminal state reached this bar, or StateActive.
//
// The stop is evaluated before the target so a bar that touches both
// counts as a stop-out, the conservative reading of a daily close.
func (p *Position) Update(price float64, date time.Time) PositionState {
	if p.State != StateActive {
		return p.State
	}

	p.CurrentPrice = price
	p.UnrealizedPnL = p.pnl(price)
	p.BarsHeld++

	switch {
	case p.stopHit(price):
		p.State = StateStoppedOut
	case p.targetHit(price):
		p.State = StateTargetHit
	case p.MaxHoldingDays > 0 && p.BarsHeld >= p.MaxHoldingDays:
		p.State = StateTimeExit
	default:
		p.ratchetStop(price)
	}

	return p.State
}

// CloseManually forces an active or pending position closed.
func (p *Position) CloseManually(price float64) PositionState {
	if p.State.IsTerminal() {
		return p.State
	}
	p.CurrentPrice = price
	p.UnrealizedPnL = p.pnl(price)
	p.State = StateManuallyClosed
	return p.State
}

// ClosedPositionRecord is the append-only exit snapshot consumed by the
// performance analyzer.
type ClosedPositionRecord struct {
	Symbol      string
	Strategy    string
	Side        Side
	EntryDate   time.Time
	ExitDate    time.Time
	EntryPrice  float64
	ExitPrice   float64
	Quantity    float64
	RealizedPnL float64
	Commission  float64
	HoldingDays int
	ExitReason  PositionState
}
