package indicators

import "math"

// TradingDaysPerYear is the annualization base for daily bars.
const TradingDaysPerYear = 252

// HistoricalVolatility calculates the rolling standard deviation of log
// returns over window bars, expressed as a percentage. When annualize is
// set the value is scaled by sqrt(252). The warm-up prefix is NaN.
func HistoricalVolatility(values []float64, window int, annualize bool) []float64 {
	out := nanSeries(len(values))
	if window <= 0 || len(values) < window+1 {
		return out
	}

	logReturns := nanSeries(len(values))
	for i := 1; i < len(values); i++ {
		if values[i-1] <= 0 || values[i] <= 0 {
			continue
		}
		logReturns[i] = math.Log(values[i] / values[i-1])
	}

	stdevs := rollingStdDev(logReturns, window)
	scale := 100.0
	if annualize {
		scale *= math.Sqrt(TradingDaysPerYear)
	}
	for i := range stdevs {
		if !math.IsNaN(stdevs[i]) {
			out[i] = stdevs[i] * scale
		}
	}
	return out
}
