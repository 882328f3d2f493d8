package reporting

import (
	"github.com/quantbench/stock-screener/internal/portfolio"
	"github.com/quantbench/stock-screener/internal/screener"
)

// DefaultReporter implements the complete Reporter interface
type DefaultReporter struct {
	console *DefaultConsoleReporter
	csv     *DefaultCSVReporter
	excel   *DefaultExcelReporter
	json    *DefaultJSONFormatter
	paths   *DefaultPathManager
}

// NewDefaultReporter creates a new default reporter with all functionality
func NewDefaultReporter() *DefaultReporter {
	return &DefaultReporter{
		console: NewDefaultConsoleReporter(),
		csv:     NewDefaultCSVReporter(),
		excel:   NewDefaultExcelReporter(),
		json:    NewDefaultJSONFormatter(),
		paths:   NewDefaultPathManager(),
	}
}

// Console output methods
func (r *DefaultReporter) OutputScreeningResults(report *screener.RunReport) {
	r.console.OutputScreeningResults(report)
}

func (r *DefaultReporter) OutputPerformance(report *portfolio.PerformanceReport, strategy string) {
	r.console.OutputPerformance(report, strategy)
}

func (r *DefaultReporter) OutputClosedPositions(records []portfolio.ClosedPositionRecord) {
	r.console.OutputClosedPositions(records)
}

// File output methods
func (r *DefaultReporter) WriteScreeningCSV(report *screener.RunReport, path string) error {
	return r.csv.WriteScreeningCSV(report, path)
}

func (r *DefaultReporter) WriteScreeningJSON(report *screener.RunReport, path string) error {
	return r.json.WriteScreeningJSON(report, path)
}

func (r *DefaultReporter) WriteScreeningXLSX(report *screener.RunReport, path string) error {
	return r.excel.WriteScreeningXLSX(report, path)
}

func (r *DefaultReporter) WriteClosedPositionsCSV(records []portfolio.ClosedPositionRecord, path string) error {
	return r.csv.WriteClosedPositionsCSV(records, path)
}

func (r *DefaultReporter) WritePerformanceJSON(report *portfolio.PerformanceReport, path string) error {
	return r.json.WritePerformanceJSON(report, path)
}

// Path management methods
func (r *DefaultReporter) ScreeningReportPath(outputDir, format string) string {
	return r.paths.ScreeningReportPath(outputDir, format)
}

func (r *DefaultReporter) ClosedPositionsPath(outputDir, strategy string) string {
	return r.paths.ClosedPositionsPath(outputDir, strategy)
}

func (r *DefaultReporter) EnsureDirectoryExists(path string) error {
	return r.paths.EnsureDirectoryExists(path)
}
