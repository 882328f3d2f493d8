package indicators

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantbench/stock-screener/pkg/types"
)

func makeBars(closes []float64) []types.OHLCV {
	bars := make([]types.OHLCV, len(closes))
	base := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		bars[i] = types.OHLCV{
			Open:      c,
			High:      c + 1,
			Low:       c - 1,
			Close:     c,
			Volume:    1000,
			Timestamp: base.AddDate(0, 0, i),
		}
	}
	return bars
}

func TestSMA_WarmupAndValues(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	out := SMA(values, 3)

	require.Len(t, out, len(values))
	assert.False(t, IsValid(out[0]))
	assert.False(t, IsValid(out[1]))
	assert.InDelta(t, 2.0, out[2], 1e-9)
	assert.InDelta(t, 3.0, out[3], 1e-9)
	assert.InDelta(t, 4.0, out[4], 1e-9)
}

func TestSMA_WindowLargerThanInput(t *testing.T) {
	out := SMA([]float64{1, 2}, 5)
	require.Len(t, out, 2)
	for _, v := range out {
		assert.False(t, IsValid(v))
	}
}

func TestEMA_SeededFromSMA(t *testing.T) {
	values := []float64{10, 10, 10, 10, 10, 10}
	out := EMA(values, 3)

	require.Len(t, out, len(values))
	assert.False(t, IsValid(out[1]))
	// Constant input keeps the EMA at the input level.
	for i := 2; i < len(out); i++ {
		assert.InDelta(t, 10.0, out[i], 1e-9)
	}
}

func TestEMA_ReactsFasterThanSMA(t *testing.T) {
	values := make([]float64, 30)
	for i := range values {
		values[i] = 100
	}
	values[29] = 120

	ema := EMA(values, 10)
	sma := SMA(values, 10)
	assert.Greater(t, ema[29], sma[29])
}

func TestTrueRange_FirstBar(t *testing.T) {
	bars := makeBars([]float64{100, 101, 102})
	tr := TrueRange(bars)

	require.Len(t, tr, 3)
	// First bar has no previous close, high-low is used.
	assert.InDelta(t, bars[0].High-bars[0].Low, tr[0], 1e-9)
	for i := 1; i < len(tr); i++ {
		assert.True(t, IsValid(tr[i]))
		assert.GreaterOrEqual(t, tr[i], 0.0)
	}
}

func TestATR_WarmupLength(t *testing.T) {
	bars := makeBars([]float64{100, 101, 99, 102, 103, 101, 104, 105})
	atr := ATR(bars, 5)

	require.Len(t, atr, len(bars))
	for i := 0; i < 4; i++ {
		assert.False(t, IsValid(atr[i]), "index %d should be warm-up", i)
	}
	for i := 4; i < len(atr); i++ {
		assert.True(t, IsValid(atr[i]))
		assert.Greater(t, atr[i], 0.0)
	}
}

func TestRSI_Range(t *testing.T) {
	values := []float64{44, 44.34, 44.09, 44.15, 43.61, 44.33, 44.83, 45.1,
		45.42, 45.84, 46.08, 45.89, 46.03, 45.61, 46.28, 46.28, 46.0, 46.03}
	out := RSI(values, 14)

	require.Len(t, out, len(values))
	for _, v := range out {
		if IsValid(v) {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 100.0)
		}
	}
	assert.True(t, IsValid(out[len(out)-1]))
}

func TestRSI_AllGainsStaysBelowHundred(t *testing.T) {
	values := make([]float64, 30)
	for i := range values {
		values[i] = 100 + 15*float64(i)
	}
	out := RSI(values, 14)

	// Monotonic rise means no losses. The loss floor keeps RSI finite
	// and below 100.
	last := out[len(out)-1]
	require.True(t, IsValid(last))
	assert.Greater(t, last, 90.0)
	assert.Less(t, last, 100.0)
}

func TestADX_WarmupAndRange(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + 10*math.Sin(float64(i)/5)
	}
	bars := makeBars(closes)
	out := ADX(bars, 14)

	require.Len(t, out, len(bars))
	last := out[len(out)-1]
	require.True(t, IsValid(last))
	assert.GreaterOrEqual(t, last, 0.0)
	assert.LessOrEqual(t, last, 100.0)
}

func TestADX_TooShortNeverPanics(t *testing.T) {
	bars := makeBars([]float64{100, 101, 102})
	out := ADX(bars, 14)

	require.Len(t, out, 3)
	for _, v := range out {
		assert.False(t, IsValid(v))
	}
}

func TestHistoricalVolatility_ConstantSeriesIsZero(t *testing.T) {
	values := make([]float64, 40)
	for i := range values {
		values[i] = 50
	}
	out := HistoricalVolatility(values, 20, false)

	last := out[len(out)-1]
	require.True(t, IsValid(last))
	assert.InDelta(t, 0.0, last, 1e-9)
}

func TestHistoricalVolatility_Annualized(t *testing.T) {
	values := make([]float64, 40)
	for i := range values {
		values[i] = 100 + float64(i%2) // alternating, nonzero variance
	}
	raw := HistoricalVolatility(values, 20, false)
	ann := HistoricalVolatility(values, 20, true)

	lastRaw := raw[len(raw)-1]
	lastAnn := ann[len(ann)-1]
	require.True(t, IsValid(lastRaw))
	require.True(t, IsValid(lastAnn))
	assert.InDelta(t, lastRaw*math.Sqrt(TradingDaysPerYear), lastAnn, 1e-6)
}

func TestLastAndAt(t *testing.T) {
	series := []float64{1, 2, 3}

	assert.InDelta(t, 3.0, Last(series), 1e-9)
	assert.InDelta(t, 3.0, At(series, 0), 1e-9)
	assert.InDelta(t, 1.0, At(series, 2), 1e-9)
	assert.False(t, IsValid(At(series, 3)))
	assert.False(t, IsValid(Last(nil)))
}

func TestEmptyInputsNeverPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		SMA(nil, 10)
		EMA(nil, 10)
		RSI(nil, 14)
		ATR(nil, 14)
		ADX(nil, 14)
		TrueRange(nil)
		HistoricalVolatility(nil, 20, true)
	})
}
