package data

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	scrErrors "github.com/quantbench/stock-screener/internal/errors"
	"github.com/quantbench/stock-screener/pkg/types"
)

func writeUniverseFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

const oneBarCSV = `date,open,high,low,close,volume
2024-01-02,100,105,99,104,1000
`

func TestUniverseSymbols(t *testing.T) {
	dir := t.TempDir()
	writeUniverseFile(t, dir, "msft.csv", oneBarCSV)
	writeUniverseFile(t, dir, "AAPL.csv", oneBarCSV)
	writeUniverseFile(t, dir, "NVDA.csv", oneBarCSV)
	writeUniverseFile(t, dir, "notes.txt", "ignore me")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir.csv"), 0755))

	store := NewUniverseStore(context.Background(), dir, NewCSVProvider(nil))
	symbols, err := store.Symbols()
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "MSFT", "NVDA"}, symbols)
}

func TestUniverseSymbols_MissingDir(t *testing.T) {
	store := NewUniverseStore(context.Background(),
		filepath.Join(t.TempDir(), "absent"), NewCSVProvider(nil))
	_, err := store.Symbols()
	require.Error(t, err)
	assert.True(t, scrErrors.IsConfiguration(err))
}

func TestUniverseLoad(t *testing.T) {
	dir := t.TempDir()
	writeUniverseFile(t, dir, "aapl.csv", oneBarCSV)

	store := NewUniverseStore(context.Background(), dir, NewCSVProvider(nil))

	// Uppercase request resolves the lowercase file.
	data, err := store.Load(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Len(t, data, 1)
	assert.Equal(t, 104.0, data[0].Close)

	_, err = store.Load(context.Background(), "TSLA")
	require.Error(t, err)
	assert.True(t, scrErrors.IsDataUnavailable(err))
}

func TestUniverseLoad_RejectsUnorderedSeries(t *testing.T) {
	dir := t.TempDir()
	writeUniverseFile(t, dir, "BACK.csv", `date,open,high,low,close,volume
2024-01-03,104,108,103,107,1100
2024-01-02,100,105,99,104,1000
`)
	writeUniverseFile(t, dir, "DUPE.csv", `date,open,high,low,close,volume
2024-01-02,100,105,99,104,1000
2024-01-02,100,105,99,104,1000
`)

	store := NewUniverseStore(context.Background(), dir, NewCSVProvider(nil))

	_, err := store.Load(context.Background(), "BACK")
	require.Error(t, err)
	assert.True(t, scrErrors.IsDataUnavailable(err))

	_, err = store.Load(context.Background(), "DUPE")
	require.Error(t, err)
	assert.True(t, scrErrors.IsDataUnavailable(err))
}

func TestUniverseLoad_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	writeUniverseFile(t, dir, "AAPL.csv", oneBarCSV)

	store := NewUniverseStore(context.Background(), dir, NewCSVProvider(nil))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Load(ctx, "AAPL")
	require.Error(t, err)
}

func TestFilterByDateRange(t *testing.T) {
	day := func(n int) time.Time {
		return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
	}
	data := []types.OHLCV{
		{Timestamp: day(0), Close: 1},
		{Timestamp: day(1), Close: 2},
		{Timestamp: day(2), Close: 3},
		{Timestamp: day(3), Close: 4},
	}

	filter := NewDefaultSeriesFilter()

	got := filter.FilterByDateRange(data, day(1), day(2))
	require.Len(t, got, 2)
	assert.Equal(t, 2.0, got[0].Close)
	assert.Equal(t, 3.0, got[1].Close)

	// Bounds are inclusive.
	got = filter.FilterByDateRange(data, day(0), day(3))
	assert.Len(t, got, 4)

	got = filter.FilterByDateRange(data, day(10), day(20))
	assert.Empty(t, got)
}

func TestFilterLastN(t *testing.T) {
	data := []types.OHLCV{{Close: 1}, {Close: 2}, {Close: 3}}
	filter := NewDefaultSeriesFilter()

	got := filter.FilterLastN(data, 2)
	require.Len(t, got, 2)
	assert.Equal(t, 2.0, got[0].Close)

	assert.Len(t, filter.FilterLastN(data, 10), 3)
	assert.Len(t, filter.FilterLastN(data, 0), 3)
}

func TestValidateTimeSequence(t *testing.T) {
	day := func(n int) time.Time {
		return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
	}
	filter := NewDefaultSeriesFilter()

	ok := []types.OHLCV{{Timestamp: day(0)}, {Timestamp: day(1)}, {Timestamp: day(2)}}
	assert.NoError(t, filter.ValidateTimeSequence(ok))

	backwards := []types.OHLCV{{Timestamp: day(1)}, {Timestamp: day(0)}}
	assert.Error(t, filter.ValidateTimeSequence(backwards))

	duplicates := []types.OHLCV{{Timestamp: day(0)}, {Timestamp: day(0)}}
	assert.Error(t, filter.ValidateTimeSequence(duplicates))

	assert.NoError(t, filter.ValidateTimeSequence(nil))
}
