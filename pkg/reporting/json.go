package reporting

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/quantbench/stock-screener/internal/portfolio"
	"github.com/quantbench/stock-screener/internal/screener"
)

// DefaultJSONFormatter implements JSON output functionality
type DefaultJSONFormatter struct{}

// NewDefaultJSONFormatter creates a new JSON formatter
func NewDefaultJSONFormatter() *DefaultJSONFormatter {
	return &DefaultJSONFormatter{}
}

// screeningDocument mirrors the CSV table in a records-oriented layout.
type screeningDocument struct {
	GeneratedAt time.Time         `json:"generated_at"`
	Benchmark   string            `json:"benchmark"`
	Processed   int               `json:"processed"`
	Skipped     int               `json:"skipped"`
	SkipReasons map[string]string `json:"skip_reasons,omitempty"`
	Results     []screeningRecord `json:"results"`
}

type screeningRecord struct {
	Rank       int     `json:"rank"`
	Symbol     string  `json:"symbol"`
	MetCount   int     `json:"met_count"`
	Conditions []bool  `json:"conditions"`
	RSScore    float64 `json:"rs_score"`
	RSBonus    bool    `json:"rs_bonus"`
}

// WriteScreeningJSON writes the ranked screening table to a JSON file.
func (f *DefaultJSONFormatter) WriteScreeningJSON(report *screener.RunReport, path string) error {
	doc := screeningDocument{
		GeneratedAt: report.GeneratedAt,
		Benchmark:   report.Benchmark,
		Processed:   report.Processed,
		Skipped:     report.Skipped,
		SkipReasons: report.SkipReasons,
		Results:     make([]screeningRecord, 0, len(report.Results)),
	}

	for i, r := range report.Results {
		conditions := make([]bool, screener.NumTrendConditions)
		for c := 1; c <= screener.NumTrendConditions; c++ {
			conditions[c-1] = r.Vector.Condition(c)
		}
		doc.Results = append(doc.Results, screeningRecord{
			Rank:       i + 1,
			Symbol:     r.Symbol,
			MetCount:   r.MetCount,
			Conditions: conditions,
			RSScore:    r.RSScore,
			RSBonus:    r.RSBonus,
		})
	}

	return writeJSONFile(doc, path)
}

// performanceDocument is the serialized shape of a performance report.
type performanceDocument struct {
	GeneratedAt time.Time                    `json:"generated_at"`
	Performance *portfolio.PerformanceReport `json:"performance"`
}

// WritePerformanceJSON writes a performance report to a JSON file.
func (f *DefaultJSONFormatter) WritePerformanceJSON(report *portfolio.PerformanceReport, path string) error {
	return writeJSONFile(performanceDocument{
		GeneratedAt: time.Now().UTC(),
		Performance: report,
	}, path)
}

func writeJSONFile(doc interface{}, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal report: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}
