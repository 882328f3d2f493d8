package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	scrErrors "github.com/quantbench/stock-screener/internal/errors"
	"github.com/quantbench/stock-screener/pkg/types"
)

// CSVProvider implements SeriesProvider for per-symbol CSV files.
type CSVProvider struct {
	schema ColumnSchema
	logger *zap.SugaredLogger
}

// NewCSVProvider creates a provider with the default column schema.
func NewCSVProvider(logger *zap.SugaredLogger) *CSVProvider {
	return NewCSVProviderWithSchema(DefaultColumnSchema(), logger)
}

// NewCSVProviderWithSchema creates a provider with a custom schema.
func NewCSVProviderWithSchema(schema ColumnSchema, logger *zap.SugaredLogger) *CSVProvider {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &CSVProvider{schema: schema, logger: logger}
}

// GetName returns the name of the provider.
func (p *CSVProvider) GetName() string {
	return "CSV Provider"
}

// columnIndexes resolves the canonical columns against a header row.
// Matching is case-insensitive with alias support.
type columnIndexes struct {
	date, open, high, low, close, volume int
}

func (p *CSVProvider) resolveHeader(header []string) (columnIndexes, error) {
	lookup := make(map[string]int, len(header))
	for i, name := range header {
		lookup[strings.ToLower(strings.TrimSpace(name))] = i
	}

	find := func(aliases []string, canonical string) (int, error) {
		for _, alias := range aliases {
			if idx, ok := lookup[alias]; ok {
				return idx, nil
			}
		}
		return 0, scrErrors.New(scrErrors.ErrorCategoryDataUnavailable, "data", "resolve header",
			fmt.Sprintf("missing column %q", canonical))
	}

	var idx columnIndexes
	var err error
	if idx.date, err = find(p.schema.DateAliases, "date"); err != nil {
		return idx, err
	}
	if idx.open, err = find(p.schema.OpenAliases, "open"); err != nil {
		return idx, err
	}
	if idx.high, err = find(p.schema.HighAliases, "high"); err != nil {
		return idx, err
	}
	if idx.low, err = find(p.schema.LowAliases, "low"); err != nil {
		return idx, err
	}
	if idx.close, err = find(p.schema.CloseAliases, "close"); err != nil {
		return idx, err
	}
	if idx.volume, err = find(p.schema.VolumeAliases, "volume"); err != nil {
		return idx, err
	}
	return idx, nil
}

// parseDate tries each configured format, always interpreting as UTC.
func (p *CSVProvider) parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, format := range p.schema.DateFormats {
		if ts, err := time.ParseInLocation(format, raw, time.UTC); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}

// LoadSeries loads one symbol's history. Malformed rows are skipped
// with a log line; a missing file or unusable header is a
// DataUnavailable error the engine turns into a symbol skip.
func (p *CSVProvider) LoadSeries(path string) ([]types.OHLCV, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, scrErrors.Wrap(err, scrErrors.ErrorCategoryDataUnavailable, "data", "open series file")
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, scrErrors.Wrap(err, scrErrors.ErrorCategoryDataUnavailable, "data", "read header")
	}
	idx, err := p.resolveHeader(header)
	if err != nil {
		return nil, err
	}
	minColumns := maxIndex(idx) + 1

	var data []types.OHLCV
	lineNum := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, scrErrors.Wrap(err, scrErrors.ErrorCategoryDataUnavailable, "data", "read row")
		}
		lineNum++

		if len(record) < minColumns {
			p.logger.Debugw("row has too few columns, skipping", "path", path, "line", lineNum)
			continue
		}

		timestamp, err := p.parseDate(record[idx.date])
		if err != nil {
			p.logger.Debugw("invalid date, skipping row", "path", path, "line", lineNum, "err", err)
			continue
		}

		open, err1 := strconv.ParseFloat(strings.TrimSpace(record[idx.open]), 64)
		high, err2 := strconv.ParseFloat(strings.TrimSpace(record[idx.high]), 64)
		low, err3 := strconv.ParseFloat(strings.TrimSpace(record[idx.low]), 64)
		close, err4 := strconv.ParseFloat(strings.TrimSpace(record[idx.close]), 64)
		volume, err5 := strconv.ParseFloat(strings.TrimSpace(record[idx.volume]), 64)
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil || err5 != nil {
			p.logger.Debugw("non-numeric field, skipping row", "path", path, "line", lineNum)
			continue
		}

		if open <= 0 || high <= 0 || low <= 0 || close <= 0 || volume < 0 {
			p.logger.Debugw("non-positive price, skipping row", "path", path, "line", lineNum)
			continue
		}
		if high < open || high < close || high < low || low > open || low > close {
			p.logger.Debugw("inconsistent OHLC row, skipping", "path", path, "line", lineNum)
			continue
		}

		data = append(data, types.OHLCV{
			Timestamp: timestamp,
			Open:      open,
			High:      high,
			Low:       low,
			Close:     close,
			Volume:    volume,
		})
	}

	return data, nil
}

// ValidateSeries checks the integrity of a loaded series: positive and
// consistent prices, ascending unique dates.
func (p *CSVProvider) ValidateSeries(data []types.OHLCV) error {
	if len(data) == 0 {
		return scrErrors.New(scrErrors.ErrorCategoryDataUnavailable, "data", "validate", "no data provided")
	}

	for i, bar := range data {
		if bar.Open <= 0 || bar.High <= 0 || bar.Low <= 0 || bar.Close <= 0 {
			return fmt.Errorf("invalid price data at index %d: prices must be positive", i)
		}
		if bar.High < bar.Low {
			return fmt.Errorf("invalid price data at index %d: high (%.4f) cannot be less than low (%.4f)",
				i, bar.High, bar.Low)
		}
		if bar.High < bar.Open || bar.High < bar.Close {
			return fmt.Errorf("invalid price data at index %d: high (%.4f) must be >= open (%.4f) and close (%.4f)",
				i, bar.High, bar.Open, bar.Close)
		}
		if bar.Low > bar.Open || bar.Low > bar.Close {
			return fmt.Errorf("invalid price data at index %d: low (%.4f) must be <= open (%.4f) and close (%.4f)",
				i, bar.Low, bar.Open, bar.Close)
		}
		if i > 0 && !bar.Timestamp.After(data[i-1].Timestamp) {
			return fmt.Errorf("invalid timestamp sequence at index %d: dates must be strictly ascending", i)
		}
	}
	return nil
}

func maxIndex(idx columnIndexes) int {
	max := idx.date
	for _, v := range []int{idx.open, idx.high, idx.low, idx.close, idx.volume} {
		if v > max {
			max = v
		}
	}
	return max
}
