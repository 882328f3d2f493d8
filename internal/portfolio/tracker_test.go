package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_OnePositionPerSymbol(t *testing.T) {
	tracker := NewPositionTracker(0, nil)

	first := NewPosition("ZZZZ", "breakout-long", SideLong, 100, 95, 115, 0)
	require.True(t, tracker.Open(first, 100, day(0)))
	assert.True(t, tracker.HasOpen("ZZZZ"))

	second := NewPosition("ZZZZ", "breakout-long", SideLong, 50, 90, 0, 0)
	assert.False(t, tracker.Open(second, 101, day(1)))
	assert.Len(t, tracker.OpenPositions(), 1)
}

func TestTracker_UpdatePricesClosesExits(t *testing.T) {
	tracker := NewPositionTracker(0, nil)

	winner := NewPosition("WIN", "breakout-long", SideLong, 100, 95, 110, 0)
	loser := NewPosition("LOSE", "breakout-long", SideLong, 100, 95, 110, 0)
	require.True(t, tracker.Open(winner, 100, day(0)))
	require.True(t, tracker.Open(loser, 100, day(0)))

	closed := tracker.UpdatePrices(map[string]float64{"WIN": 111, "LOSE": 94}, day(1))

	require.Len(t, closed, 2)
	bySymbol := map[string]ClosedPositionRecord{}
	for _, rec := range closed {
		bySymbol[rec.Symbol] = rec
	}

	assert.Equal(t, StateTargetHit, bySymbol["WIN"].ExitReason)
	assert.InDelta(t, 1100.0, bySymbol["WIN"].RealizedPnL, 1e-9)
	assert.Equal(t, StateStoppedOut, bySymbol["LOSE"].ExitReason)
	assert.InDelta(t, -600.0, bySymbol["LOSE"].RealizedPnL, 1e-9)

	assert.Empty(t, tracker.OpenPositions())
	assert.Len(t, tracker.ClosedPositions(), 2)
}

func TestTracker_CommissionNetsIntoClosedRecord(t *testing.T) {
	tracker := NewPositionTracker(0.001, nil)

	p := NewPosition("ZZZZ", "breakout-long", SideLong, 100, 95, 110, 0)
	p.EntryCommission = 10
	require.True(t, tracker.Open(p, 100, day(0)))

	closed := tracker.UpdatePrices(map[string]float64{"ZZZZ": 110}, day(1))
	require.Len(t, closed, 1)

	rec := closed[0]
	// Entry leg 10 plus exit leg 110*100*0.001 = 11.
	assert.InDelta(t, 21.0, rec.Commission, 1e-9)
	assert.InDelta(t, 1000.0-21.0, rec.RealizedPnL, 1e-9)
}

func TestTracker_MissingPriceKeepsPosition(t *testing.T) {
	tracker := NewPositionTracker(0, nil)

	p := NewPosition("ZZZZ", "breakout-long", SideLong, 100, 95, 0, 0)
	require.True(t, tracker.Open(p, 100, day(0)))

	closed := tracker.UpdatePrices(map[string]float64{"OTHER": 50}, day(1))
	assert.Empty(t, closed)
	assert.True(t, tracker.HasOpen("ZZZZ"))
}

func TestTracker_CloseManually(t *testing.T) {
	tracker := NewPositionTracker(0, nil)

	p := NewPosition("ZZZZ", "breakout-long", SideLong, 100, 95, 0, 0)
	require.True(t, tracker.Open(p, 100, day(0)))

	rec, ok := tracker.CloseManually("ZZZZ", 104, day(5))
	require.True(t, ok)
	assert.Equal(t, StateManuallyClosed, rec.ExitReason)
	assert.InDelta(t, 400.0, rec.RealizedPnL, 1e-9)
	assert.False(t, tracker.HasOpen("ZZZZ"))

	_, ok = tracker.CloseManually("ZZZZ", 104, day(6))
	assert.False(t, ok)
}

func TestTracker_MarketValueAndExposure(t *testing.T) {
	tracker := NewPositionTracker(0, nil)

	long := NewPosition("LONG", "breakout-long", SideLong, 100, 95, 0, 0)
	short := NewPosition("SHRT", "parabolic-short", SideShort, 50, 110, 0, 0)
	require.True(t, tracker.Open(long, 100, day(0)))
	require.True(t, tracker.Open(short, 100, day(0)))

	// Signed value nets the short against the long; gross exposure adds
	// their magnitudes.
	assert.InDelta(t, 100*100-50*100, tracker.MarketValue(), 1e-9)
	assert.InDelta(t, 100*100+50*100, tracker.GrossExposure(), 1e-9)
}

func TestTracker_AdoptActivePosition(t *testing.T) {
	tracker := NewPositionTracker(0, nil)

	p := NewPosition("ZZZZ", "breakout-long", SideLong, 100, 95, 0, 0)
	p.Activate(100, day(0))
	require.True(t, tracker.Adopt(p))
	assert.True(t, tracker.HasOpen("ZZZZ"))

	// Pending positions and duplicates are refused.
	pending := NewPosition("YYYY", "breakout-long", SideLong, 10, 9, 0, 0)
	assert.False(t, tracker.Adopt(pending))
	dup := NewPosition("ZZZZ", "breakout-long", SideLong, 10, 9, 0, 0)
	dup.Activate(100, day(0))
	assert.False(t, tracker.Adopt(dup))
}
