package indicators

// SMA calculates the Simple Moving Average over window bars.
// The first window-1 outputs are NaN.
func SMA(values []float64, window int) []float64 {
	return rollingMean(values, window)
}

// EMA calculates the Exponential Moving Average over window bars.
// The series is seeded with the SMA of the first window values.
func EMA(values []float64, window int) []float64 {
	out := nanSeries(len(values))
	if window <= 0 || len(values) < window {
		return out
	}

	seed := 0.0
	for _, v := range values[:window] {
		seed += v
	}
	seed /= float64(window)
	out[window-1] = seed

	multiplier := 2.0 / float64(window+1)
	for i := window; i < len(values); i++ {
		out[i] = (values[i]-out[i-1])*multiplier + out[i-1]
	}
	return out
}
