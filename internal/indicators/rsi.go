package indicators

import "math"

// RSI calculates the Relative Strength Index over window bars using
// simple rolling means of positive and negative deltas.
// A zero average loss is treated as 1 so the ratio stays finite and
// the index saturates toward 100. The first window outputs are NaN.
func RSI(values []float64, window int) []float64 {
	out := nanSeries(len(values))
	if window <= 0 || len(values) < window+1 {
		return out
	}

	gains := nanSeries(len(values))
	losses := nanSeries(len(values))
	for i := 1; i < len(values); i++ {
		delta := values[i] - values[i-1]
		if delta > 0 {
			gains[i] = delta
			losses[i] = 0
		} else {
			gains[i] = 0
			losses[i] = math.Abs(delta)
		}
	}

	avgGains := rollingMean(gains, window)
	avgLosses := rollingMean(losses, window)

	for i := window; i < len(values); i++ {
		avgGain := avgGains[i]
		avgLoss := avgLosses[i]
		if math.IsNaN(avgGain) || math.IsNaN(avgLoss) {
			continue
		}
		if avgLoss == 0 {
			avgLoss = 1
		}
		rs := avgGain / avgLoss
		out[i] = 100 - (100 / (1 + rs))
	}
	return out
}
