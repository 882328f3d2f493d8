package indicators

import "math"

// Series functions return one output per input bar. Values inside the
// warm-up prefix are NaN so callers can line indicator output up against
// the original series without index juggling. Insufficient input yields
// an all-NaN series of the same length, never an error.

// NaN is the sentinel used for warm-up and unavailable values.
func NaN() float64 {
	return math.NaN()
}

// IsValid reports whether an indicator value is usable.
func IsValid(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// nanSeries allocates a series of n NaN values.
func nanSeries(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// rollingMean computes the simple rolling mean of values over window bars.
// Output is NaN until a full window is available or while the window
// contains NaN inputs.
func rollingMean(values []float64, window int) []float64 {
	out := nanSeries(len(values))
	if window <= 0 || len(values) < window {
		return out
	}
	for i := window - 1; i < len(values); i++ {
		sum := 0.0
		valid := true
		for j := i - window + 1; j <= i; j++ {
			if math.IsNaN(values[j]) {
				valid = false
				break
			}
			sum += values[j]
		}
		if valid {
			out[i] = sum / float64(window)
		}
	}
	return out
}

// rollingStdDev computes the population standard deviation over window bars.
func rollingStdDev(values []float64, window int) []float64 {
	out := nanSeries(len(values))
	if window <= 0 || len(values) < window {
		return out
	}
	means := rollingMean(values, window)
	for i := window - 1; i < len(values); i++ {
		if math.IsNaN(means[i]) {
			continue
		}
		variance := 0.0
		valid := true
		for j := i - window + 1; j <= i; j++ {
			if math.IsNaN(values[j]) {
				valid = false
				break
			}
			d := values[j] - means[i]
			variance += d * d
		}
		if valid {
			out[i] = math.Sqrt(variance / float64(window))
		}
	}
	return out
}

// Last returns the most recent value of a series, or NaN for an empty one.
func Last(series []float64) float64 {
	if len(series) == 0 {
		return math.NaN()
	}
	return series[len(series)-1]
}

// At returns series[len-1-offset], or NaN when out of range.
// Offset 0 is the latest bar, offset 20 the value 20 bars ago.
func At(series []float64, offset int) float64 {
	idx := len(series) - 1 - offset
	if offset < 0 || idx < 0 {
		return math.NaN()
	}
	return series[idx]
}
