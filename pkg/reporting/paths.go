package reporting

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultPathManager implements path management functionality
type DefaultPathManager struct{}

// NewDefaultPathManager creates a new path manager
func NewDefaultPathManager() *DefaultPathManager {
	return &DefaultPathManager{}
}

// ScreeningReportPath returns the dated report path for a format, e.g.
// results/screening_2026-09-01.csv.
func (p *DefaultPathManager) ScreeningReportPath(outputDir, format string) string {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = "csv"
	}
	name := fmt.Sprintf("screening_%s.%s", time.Now().UTC().Format("2006-01-02"), format)
	return filepath.Join(outputDir, name)
}

// ClosedPositionsPath returns the dated trade log path.
func (p *DefaultPathManager) ClosedPositionsPath(outputDir, strategy string) string {
	s := strings.ToLower(strings.TrimSpace(strategy))
	if s == "" {
		s = "unknown"
	}
	name := fmt.Sprintf("trades_%s_%s.csv", s, time.Now().UTC().Format("2006-01-02"))
	return filepath.Join(outputDir, name)
}

// EnsureDirectoryExists creates directory if it doesn't exist
func (p *DefaultPathManager) EnsureDirectoryExists(path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		return os.MkdirAll(dir, 0755)
	}
	return nil
}
