package indicators

import (
	"math"

	"github.com/quantbench/stock-screener/pkg/types"
)

// ADX calculates the Average Directional Index over window bars.
// Directional movement (+DM, -DM) is derived from high/low deltas,
// smoothed by a simple rolling mean, combined into DX and smoothed
// again over window to produce ADX. The warm-up prefix is NaN.
func ADX(data []types.OHLCV, window int) []float64 {
	out := nanSeries(len(data))
	if window <= 0 || len(data) < 2*window {
		return out
	}

	plusDM := nanSeries(len(data))
	minusDM := nanSeries(len(data))
	for i := 1; i < len(data); i++ {
		upMove := data[i].High - data[i-1].High
		downMove := data[i-1].Low - data[i].Low

		plusDM[i] = 0
		minusDM[i] = 0
		if upMove > downMove && upMove > 0 {
			plusDM[i] = upMove
		}
		if downMove > upMove && downMove > 0 {
			minusDM[i] = downMove
		}
	}

	smoothTR := rollingMean(TrueRange(data), window)
	smoothPlusDM := rollingMean(plusDM, window)
	smoothMinusDM := rollingMean(minusDM, window)

	dx := nanSeries(len(data))
	for i := window; i < len(data); i++ {
		tr := smoothTR[i]
		if math.IsNaN(tr) || tr == 0 ||
			math.IsNaN(smoothPlusDM[i]) || math.IsNaN(smoothMinusDM[i]) {
			continue
		}
		plusDI := 100 * smoothPlusDM[i] / tr
		minusDI := 100 * smoothMinusDM[i] / tr
		sum := plusDI + minusDI
		if sum == 0 {
			dx[i] = 0
			continue
		}
		dx[i] = 100 * math.Abs(plusDI-minusDI) / sum
	}

	return rollingMean(dx, window)
}
