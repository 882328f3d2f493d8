package data

import (
	"time"

	"github.com/quantbench/stock-screener/pkg/types"
)

// Package data is the PriceSeriesStore: per-symbol OHLCV histories
// loaded from CSV files keyed by ticker. Schema normalization happens
// here, at the loading boundary, so the screening core always receives
// a validated canonical series.

// SeriesProvider loads a full price series from one source path.
type SeriesProvider interface {
	// LoadSeries loads daily bars from the given file, oldest first.
	LoadSeries(path string) ([]types.OHLCV, error)

	// ValidateSeries checks the integrity of a loaded series.
	ValidateSeries(data []types.OHLCV) error

	// GetName returns the name of the provider.
	GetName() string
}

// SeriesCache caches loaded series within a run.
type SeriesCache interface {
	Get(key string) ([]types.OHLCV, bool)
	Set(key string, data []types.OHLCV)
	Clear()
	Size() int
}

// SeriesFilter filters and validates series.
type SeriesFilter interface {
	FilterByDateRange(data []types.OHLCV, start, end time.Time) []types.OHLCV
	ValidateTimeSequence(data []types.OHLCV) error
}

// ColumnSchema maps canonical column roles onto a CSV header. Headers
// are matched case-insensitively and common aliases (time/timestamp for
// date) are accepted, so files from different download tools normalize
// to the same shape.
type ColumnSchema struct {
	// Aliases per canonical column, tried in order, lower-case.
	DateAliases   []string
	OpenAliases   []string
	HighAliases   []string
	LowAliases    []string
	CloseAliases  []string
	VolumeAliases []string

	// DateFormats tried in order when parsing the date column. All
	// dates are interpreted as UTC.
	DateFormats []string
}

// DefaultColumnSchema accepts the column spellings seen across common
// price history exports.
func DefaultColumnSchema() ColumnSchema {
	return ColumnSchema{
		DateAliases:   []string{"date", "time", "timestamp", "datetime"},
		OpenAliases:   []string{"open"},
		HighAliases:   []string{"high"},
		LowAliases:    []string{"low"},
		CloseAliases:  []string{"close", "adj close", "adj_close"},
		VolumeAliases: []string{"volume", "vol"},
		DateFormats: []string{
			"2006-01-02",
			"2006-01-02 15:04:05",
			time.RFC3339,
			"01/02/2006",
		},
	}
}
