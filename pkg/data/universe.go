package data

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/quantbench/stock-screener/internal/errors"
	"github.com/quantbench/stock-screener/pkg/types"
)

// UniverseStore exposes a directory of per-symbol CSV files as a
// screening universe. Each file is named SYMBOL.csv; the symbol is
// derived from the file name, uppercased.
type UniverseStore struct {
	dir      string
	provider SeriesProvider
	filter   SeriesFilter
	ctx      context.Context
}

// NewUniverseStore creates a universe store over dir backed by the
// given provider. The context is used for per-symbol loads submitted
// through the worker pool.
func NewUniverseStore(ctx context.Context, dir string, provider SeriesProvider) *UniverseStore {
	return &UniverseStore{
		dir:      dir,
		provider: provider,
		filter:   NewDefaultSeriesFilter(),
		ctx:      ctx,
	}
}

// Symbols lists the symbols available in the universe directory,
// sorted for deterministic iteration.
func (u *UniverseStore) Symbols() ([]string, error) {
	entries, err := os.ReadDir(u.dir)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorCategoryConfiguration,
			"universe", "read directory")
	}

	var symbols []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.EqualFold(filepath.Ext(name), ".csv") {
			continue
		}
		symbol := strings.ToUpper(strings.TrimSuffix(name, filepath.Ext(name)))
		if symbol == "" {
			continue
		}
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols, nil
}

// Load reads the price series for a symbol from its CSV file.
func (u *UniverseStore) Load(ctx context.Context, symbol string) ([]types.OHLCV, error) {
	if ctx == nil {
		ctx = u.ctx
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrorCategoryDataUnavailable,
			"universe", "load").WithSymbol(symbol)
	}
	path := u.PathFor(symbol)
	data, err := u.provider.LoadSeries(path)
	if err != nil {
		if se, ok := err.(*errors.ScreenerError); ok {
			return nil, se.WithSymbol(symbol)
		}
		return nil, errors.Wrap(err, errors.ErrorCategoryDataUnavailable,
			"universe", "load").WithSymbol(symbol)
	}

	// Out-of-order or duplicate dates would silently corrupt every
	// moving average downstream, so they fail the load instead.
	if err := u.filter.ValidateTimeSequence(data); err != nil {
		return nil, errors.Wrap(err, errors.ErrorCategoryDataUnavailable,
			"universe", "validate series").WithSymbol(symbol)
	}
	return data, nil
}

// PathFor returns the expected file path for a symbol. Both the
// uppercase and lowercase spellings are checked; uppercase wins when
// both exist.
func (u *UniverseStore) PathFor(symbol string) string {
	upper := filepath.Join(u.dir, strings.ToUpper(symbol)+".csv")
	if _, err := os.Stat(upper); err == nil {
		return upper
	}
	lower := filepath.Join(u.dir, strings.ToLower(symbol)+".csv")
	if _, err := os.Stat(lower); err == nil {
		return lower
	}
	return upper
}
