package data

import (
	"fmt"
	"time"

	"github.com/quantbench/stock-screener/pkg/types"
)

// DefaultSeriesFilter implements SeriesFilter for common operations.
type DefaultSeriesFilter struct{}

// NewDefaultSeriesFilter creates a new default series filter
func NewDefaultSeriesFilter() *DefaultSeriesFilter {
	return &DefaultSeriesFilter{}
}

// FilterByDateRange filters data to a specific date range, inclusive on
// both ends.
func (f *DefaultSeriesFilter) FilterByDateRange(data []types.OHLCV, start, end time.Time) []types.OHLCV {
	if len(data) == 0 {
		return data
	}

	var filtered []types.OHLCV
	for _, bar := range data {
		if (bar.Timestamp.After(start) || bar.Timestamp.Equal(start)) &&
			(bar.Timestamp.Before(end) || bar.Timestamp.Equal(end)) {
			filtered = append(filtered, bar)
		}
	}
	return filtered
}

// FilterLastN returns the trailing n bars.
func (f *DefaultSeriesFilter) FilterLastN(data []types.OHLCV, n int) []types.OHLCV {
	if n <= 0 || len(data) <= n {
		return data
	}
	return data[len(data)-n:]
}

// ValidateTimeSequence ensures data is in strictly ascending date order
// with no duplicate dates.
func (f *DefaultSeriesFilter) ValidateTimeSequence(data []types.OHLCV) error {
	for i := 1; i < len(data); i++ {
		if data[i].Timestamp.Before(data[i-1].Timestamp) {
			return fmt.Errorf("data not in chronological order at index %d: %s comes after %s",
				i, data[i].Timestamp.Format(time.RFC3339), data[i-1].Timestamp.Format(time.RFC3339))
		}
		if data[i].Timestamp.Equal(data[i-1].Timestamp) {
			return fmt.Errorf("duplicate timestamp at index %d: %s",
				i, data[i].Timestamp.Format(time.RFC3339))
		}
	}
	return nil
}
