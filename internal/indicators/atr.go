package indicators

import (
	"math"

	"github.com/quantbench/stock-screener/pkg/types"
)

// TrueRange calculates the true range series:
// max(high-low, |high-prevClose|, |low-prevClose|).
// The first bar has no previous close, so its true range is high-low.
func TrueRange(data []types.OHLCV) []float64 {
	out := make([]float64, len(data))
	for i, bar := range data {
		if i == 0 {
			out[i] = bar.High - bar.Low
			continue
		}
		prevClose := data[i-1].Close
		tr := bar.High - bar.Low
		if hc := math.Abs(bar.High - prevClose); hc > tr {
			tr = hc
		}
		if lc := math.Abs(bar.Low - prevClose); lc > tr {
			tr = lc
		}
		out[i] = tr
	}
	return out
}

// ATR calculates the Average True Range as a simple rolling mean of the
// true range over window bars. The first window-1 outputs are NaN.
func ATR(data []types.OHLCV, window int) []float64 {
	if window <= 0 || len(data) < window {
		return nanSeries(len(data))
	}
	return rollingMean(TrueRange(data), window)
}
