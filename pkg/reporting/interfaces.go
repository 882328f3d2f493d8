package reporting

// Package reporting provides output generation for screening and
// portfolio simulation results.

import (
	"github.com/quantbench/stock-screener/internal/portfolio"
	"github.com/quantbench/stock-screener/internal/screener"
)

// ConsoleReporter defines interface for console output
type ConsoleReporter interface {
	OutputScreeningResults(report *screener.RunReport)
	OutputPerformance(report *portfolio.PerformanceReport, strategy string)
	OutputClosedPositions(records []portfolio.ClosedPositionRecord)
}

// FileReporter defines interface for file output
type FileReporter interface {
	WriteScreeningCSV(report *screener.RunReport, path string) error
	WriteScreeningJSON(report *screener.RunReport, path string) error
	WriteScreeningXLSX(report *screener.RunReport, path string) error
	WriteClosedPositionsCSV(records []portfolio.ClosedPositionRecord, path string) error
	WritePerformanceJSON(report *portfolio.PerformanceReport, path string) error
}

// PathManager defines interface for output path management
type PathManager interface {
	ScreeningReportPath(outputDir, format string) string
	EnsureDirectoryExists(path string) error
}

// Reporter combines all reporting interfaces
type Reporter interface {
	ConsoleReporter
	FileReporter
	PathManager
}
