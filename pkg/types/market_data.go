package types

import "time"

// OHLCV is a single daily price bar for one symbol.
// Invariant: High >= max(Open, Close, Low) and Volume >= 0.
type OHLCV struct {
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
	Timestamp time.Time
}

// Ticker is the latest known price for a symbol.
type Ticker struct {
	Symbol    string
	Price     float64
	Volume    float64
	Timestamp time.Time
}

// Closes extracts the close column from a series.
func Closes(data []OHLCV) []float64 {
	out := make([]float64, len(data))
	for i, bar := range data {
		out[i] = bar.Close
	}
	return out
}

// LowestLow returns the minimum low over the last n bars.
// Returns 0 and false when fewer than n bars are available.
func LowestLow(data []OHLCV, n int) (float64, bool) {
	if n <= 0 || len(data) < n {
		return 0, false
	}
	low := data[len(data)-n].Low
	for _, bar := range data[len(data)-n:] {
		if bar.Low < low {
			low = bar.Low
		}
	}
	return low, true
}

// HighestHigh returns the maximum high over the last n bars.
// Returns 0 and false when fewer than n bars are available.
func HighestHigh(data []OHLCV, n int) (float64, bool) {
	if n <= 0 || len(data) < n {
		return 0, false
	}
	high := data[len(data)-n].High
	for _, bar := range data[len(data)-n:] {
		if bar.High > high {
			high = bar.High
		}
	}
	return high, true
}

// TrailingReturn computes the simple return over the last n bars,
// comparing the latest close to the close n bars earlier.
// Returns 0 and false when history is insufficient or the base close is zero.
func TrailingReturn(data []OHLCV, n int) (float64, bool) {
	if n <= 0 || len(data) < n+1 {
		return 0, false
	}
	base := data[len(data)-1-n].Close
	if base == 0 {
		return 0, false
	}
	return (data[len(data)-1].Close - base) / base, true
}
