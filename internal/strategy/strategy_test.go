package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantbench/stock-screener/internal/portfolio"
	"github.com/quantbench/stock-screener/internal/screener"
)

func row(metCount int, rs float64) screener.ScreeningResult {
	return screener.ScreeningResult{Symbol: "ZZZZ", MetCount: metCount, RSScore: rs}
}

func TestWantsEntry_LongFilter(t *testing.T) {
	p := BreakoutLong()

	assert.True(t, p.WantsEntry(row(8, 92)))
	assert.True(t, p.WantsEntry(row(7, 85)))
	assert.False(t, p.WantsEntry(row(6, 95)), "met count below minimum")
	assert.False(t, p.WantsEntry(row(8, 80)), "RS below minimum")
}

func TestWantsEntry_ShortFilterUsesMaxRS(t *testing.T) {
	p := ParabolicShort()

	assert.True(t, p.WantsEntry(row(0, 10)))
	assert.True(t, p.WantsEntry(row(2, 30)))
	assert.False(t, p.WantsEntry(row(0, 55)), "RS above the weakness ceiling")
}

func TestEntryFill_SlippageIsUnfavorable(t *testing.T) {
	long := BreakoutLong()
	short := ParabolicShort()

	assert.Greater(t, long.EntryFill(100), 100.0, "long pays up")
	assert.Less(t, short.EntryFill(100), 100.0, "short fills down")
}

func TestByName_KnownAndUnknown(t *testing.T) {
	for _, name := range Names() {
		p, err := ByName(name)
		require.NoError(t, err)
		assert.Equal(t, name, p.Name)
		assert.Greater(t, p.MaxCandidates, 0)
		assert.Greater(t, p.ATRWindow, 0)
		assert.Greater(t, p.Risk.RiskFraction, 0.0)
	}

	_, err := ByName("no-such-strategy")
	assert.Error(t, err)
}

func TestPresets_SideConsistency(t *testing.T) {
	long, _ := ByName("breakout-long")
	assert.Equal(t, portfolio.SideLong, long.Side)

	short, _ := ByName("parabolic-short")
	assert.Equal(t, portfolio.SideShort, short.Side)
	assert.Greater(t, short.MaxRSScore, 0.0)

	trend, _ := ByName("trend-follow")
	assert.Zero(t, trend.MaxHoldingDays, "trend following has no time exit")
	assert.Zero(t, trend.TargetRiskMultiple, "trend following has no fixed target")
}
