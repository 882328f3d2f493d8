package simulator

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantbench/stock-screener/internal/portfolio"
	"github.com/quantbench/stock-screener/internal/screener"
	"github.com/quantbench/stock-screener/internal/strategy"
	"github.com/quantbench/stock-screener/pkg/types"
)

func day(n int) time.Time {
	return time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func seriesAround(close float64, n int) []types.OHLCV {
	bars := make([]types.OHLCV, n)
	for i := range bars {
		bars[i] = types.OHLCV{
			Open:      close,
			High:      close + 2,
			Low:       close - 2,
			Close:     close,
			Volume:    1_000_000,
			Timestamp: day(i - n),
		}
	}
	return bars
}

func qualifyingReport(symbols ...string) *screener.RunReport {
	report := &screener.RunReport{
		GeneratedAt: day(0),
		Benchmark:   "SPY",
	}
	for _, symbol := range symbols {
		report.Results = append(report.Results, screener.ScreeningResult{
			Symbol:   symbol,
			RSScore:  95,
			RSBonus:  true,
			MetCount: 8,
		})
	}
	return report
}

func TestProcessSignals_OpensQualifyingPositions(t *testing.T) {
	sim := New(strategy.BreakoutLong(), 100_000, 0, nil)

	series := map[string][]types.OHLCV{
		"ZZZZ": seriesAround(100, 30),
	}
	opened := sim.ProcessSignals(qualifyingReport("ZZZZ"), series, day(0))

	require.Equal(t, 1, opened)
	positions := sim.OpenPositions()
	require.Len(t, positions, 1)

	p := positions[0]
	assert.Equal(t, "ZZZZ", p.Symbol)
	assert.Equal(t, portfolio.StateActive, p.State)
	assert.Greater(t, p.Quantity, 0.0)
	assert.Less(t, p.StopLoss, p.EntryPrice)
	assert.Greater(t, p.ProfitTarget, p.EntryPrice)

	// Cash went down by the notional; equity is preserved.
	assert.Less(t, sim.Equity(), 100_000.01)
	assert.InDelta(t, 100_000, sim.Equity(), 1.0)
}

func TestProcessSignals_RespectsMaxCandidates(t *testing.T) {
	params := strategy.BreakoutLong()
	params.MaxCandidates = 2
	sim := New(params, 1_000_000, 0, nil)

	series := map[string][]types.OHLCV{
		"AAAA": seriesAround(50, 30),
		"BBBB": seriesAround(60, 30),
		"CCCC": seriesAround(70, 30),
	}
	opened := sim.ProcessSignals(qualifyingReport("AAAA", "BBBB", "CCCC"), series, day(0))

	assert.Equal(t, 2, opened)
	assert.Len(t, sim.OpenPositions(), 2)
}

func TestProcessSignals_FiltersWeakRows(t *testing.T) {
	sim := New(strategy.BreakoutLong(), 100_000, 0, nil)

	report := qualifyingReport("ZZZZ")
	report.Results[0].MetCount = 5
	series := map[string][]types.OHLCV{"ZZZZ": seriesAround(100, 30)}

	assert.Zero(t, sim.ProcessSignals(report, series, day(0)))
	assert.Empty(t, sim.OpenPositions())
}

func TestProcessSignals_SkipsSymbolsWithoutSeries(t *testing.T) {
	sim := New(strategy.BreakoutLong(), 100_000, 0, nil)

	opened := sim.ProcessSignals(qualifyingReport("ZZZZ"), map[string][]types.OHLCV{}, day(0))
	assert.Zero(t, opened)
}

func TestMarkToMarket_StopExitSettlesCash(t *testing.T) {
	sim := New(strategy.BreakoutLong(), 100_000, 0, nil)

	series := map[string][]types.OHLCV{"ZZZZ": seriesAround(100, 30)}
	require.Equal(t, 1, sim.ProcessSignals(qualifyingReport("ZZZZ"), series, day(0)))

	p := sim.OpenPositions()[0]
	crashPrice := p.StopLoss - 1

	closed := sim.MarkToMarket(map[string]float64{"ZZZZ": crashPrice}, day(1))
	require.Len(t, closed, 1)
	assert.Equal(t, portfolio.StateStoppedOut, closed[0].ExitReason)
	assert.Negative(t, closed[0].RealizedPnL)
	assert.Empty(t, sim.OpenPositions())

	// Equity reflects the realized loss and nothing else.
	expected := 100_000 + closed[0].RealizedPnL
	assert.InDelta(t, expected, sim.Equity(), 1.0)

	curve := sim.EquityCurve()
	require.Len(t, curve, 1)
	assert.InDelta(t, expected, curve[0].Equity, 1.0)
	assert.Zero(t, curve[0].Exposure)
}

func TestMarkToMarket_WinningRunImprovesEquity(t *testing.T) {
	sim := New(strategy.TrendFollow(), 100_000, 0, nil)

	series := map[string][]types.OHLCV{"ZZZZ": seriesAround(100, 30)}
	require.Equal(t, 1, sim.ProcessSignals(qualifyingReport("ZZZZ"), series, day(0)))

	sim.MarkToMarket(map[string]float64{"ZZZZ": 105}, day(1))
	sim.MarkToMarket(map[string]float64{"ZZZZ": 112}, day(2))

	assert.Greater(t, sim.Equity(), 100_000.0)
	require.Len(t, sim.EquityCurve(), 2)
	assert.Greater(t, sim.EquityCurve()[1].Equity, sim.EquityCurve()[0].Equity)
}

func TestCommission_ReducesEquityOnRoundTrip(t *testing.T) {
	free := New(strategy.BreakoutLong(), 100_000, 0, nil)
	paid := New(strategy.BreakoutLong(), 100_000, 0.001, nil)

	series := map[string][]types.OHLCV{"ZZZZ": seriesAround(100, 30)}
	require.Equal(t, 1, free.ProcessSignals(qualifyingReport("ZZZZ"), series, day(0)))
	require.Equal(t, 1, paid.ProcessSignals(qualifyingReport("ZZZZ"), series, day(0)))

	stop := free.OpenPositions()[0].StopLoss - 1
	freeClosed := free.MarkToMarket(map[string]float64{"ZZZZ": stop}, day(1))
	paidClosed := paid.MarkToMarket(map[string]float64{"ZZZZ": stop}, day(1))

	assert.Less(t, paid.Equity(), free.Equity())

	// The closed record carries both legs and its PnL is net of them.
	require.Len(t, freeClosed, 1)
	require.Len(t, paidClosed, 1)
	assert.Zero(t, freeClosed[0].Commission)
	assert.Positive(t, paidClosed[0].Commission)
	assert.InDelta(t, freeClosed[0].RealizedPnL-paidClosed[0].Commission,
		paidClosed[0].RealizedPnL, 1e-6)
	assert.InDelta(t, free.Equity()-paidClosed[0].Commission, paid.Equity(), 1e-6)
}

func TestStateRoundTrip(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.json")

	sim := New(strategy.TrendFollow(), 100_000, 0.001, nil)
	series := map[string][]types.OHLCV{"ZZZZ": seriesAround(100, 30)}
	require.Equal(t, 1, sim.ProcessSignals(qualifyingReport("ZZZZ"), series, day(0)))
	sim.MarkToMarket(map[string]float64{"ZZZZ": 104}, day(1))

	require.NoError(t, sim.SaveState(statePath))

	restored := New(strategy.TrendFollow(), 0, 0.001, nil)
	require.NoError(t, restored.RestoreState(statePath))

	require.Len(t, restored.OpenPositions(), 1)
	original := sim.OpenPositions()[0]
	adopted := restored.OpenPositions()[0]

	assert.Equal(t, original.Symbol, adopted.Symbol)
	assert.InDelta(t, original.EntryPrice, adopted.EntryPrice, 1e-9)
	assert.InDelta(t, original.StopLoss, adopted.StopLoss, 1e-9)
	assert.InDelta(t, original.Quantity, adopted.Quantity, 1e-9)
	assert.Positive(t, adopted.EntryCommission)
	assert.InDelta(t, original.EntryCommission, adopted.EntryCommission, 1e-9)
	assert.Equal(t, original.BarsHeld, adopted.BarsHeld)
	assert.InDelta(t, sim.Equity(), restored.Equity(), 1e-6)
	assert.Len(t, restored.EquityCurve(), 1)
}

func TestRestoreState_MissingFileStartsFresh(t *testing.T) {
	sim := New(strategy.BreakoutLong(), 100_000, 0, nil)

	require.NoError(t, sim.RestoreState(filepath.Join(t.TempDir(), "absent.json")))
	assert.InDelta(t, 100_000.0, sim.Equity(), 1e-9)
	assert.Empty(t, sim.OpenPositions())
}

func TestRestoreState_StrategyMismatchRejected(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.json")

	sim := New(strategy.BreakoutLong(), 100_000, 0, nil)
	require.NoError(t, sim.SaveState(statePath))

	other := New(strategy.ParabolicShort(), 100_000, 0, nil)
	assert.Error(t, other.RestoreState(statePath))
}
