package reporting

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/quantbench/stock-screener/internal/portfolio"
	"github.com/quantbench/stock-screener/internal/screener"
)

// DefaultCSVReporter implements CSV output functionality
type DefaultCSVReporter struct{}

// NewDefaultCSVReporter creates a new CSV reporter
func NewDefaultCSVReporter() *DefaultCSVReporter {
	return &DefaultCSVReporter{}
}

// screeningHeader is the column layout shared by the CSV and XLSX
// writers. Condition columns are 1-based to match the rule numbering in
// documentation.
func screeningHeader() []string {
	header := []string{"Rank", "Symbol", "Met_Count"}
	for i := 1; i <= screener.NumTrendConditions; i++ {
		header = append(header, fmt.Sprintf("C%d", i))
	}
	header = append(header, "RS_Score", "RS_Bonus")
	return header
}

func screeningRow(rank int, r screener.ScreeningResult) []string {
	row := []string{
		strconv.Itoa(rank),
		r.Symbol,
		strconv.Itoa(r.MetCount),
	}
	for i := 1; i <= screener.NumTrendConditions; i++ {
		row = append(row, boolMark(r.Vector.Condition(i)))
	}
	row = append(row,
		strconv.FormatFloat(r.RSScore, 'f', 2, 64),
		boolMark(r.RSBonus),
	)
	return row
}

func boolMark(ok bool) string {
	if ok {
		return "1"
	}
	return "0"
}

// WriteScreeningCSV writes the ranked screening table to a CSV file.
func (r *DefaultCSVReporter) WriteScreeningCSV(report *screener.RunReport, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(screeningHeader()); err != nil {
		return err
	}

	for i, result := range report.Results {
		if err := w.Write(screeningRow(i+1, result)); err != nil {
			return err
		}
	}

	return w.Error()
}

// WriteClosedPositionsCSV writes the trade log to a CSV file.
func (r *DefaultCSVReporter) WriteClosedPositionsCSV(records []portfolio.ClosedPositionRecord, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{
		"Symbol",
		"Strategy",
		"Side",
		"Entry_Date",
		"Exit_Date",
		"Entry_Price",
		"Exit_Price",
		"Quantity",
		"Realized_PnL_$",
		"Commission_$",
		"Holding_Days",
		"Exit_Reason",
		"Win_Loss",
	}); err != nil {
		return err
	}

	for _, rec := range records {
		winLoss := "W"
		if rec.RealizedPnL < 0 {
			winLoss = "L"
		}

		row := []string{
			rec.Symbol,
			rec.Strategy,
			rec.Side.String(),
			rec.EntryDate.Format("2006-01-02"),
			rec.ExitDate.Format("2006-01-02"),
			strconv.FormatFloat(rec.EntryPrice, 'f', 4, 64),
			strconv.FormatFloat(rec.ExitPrice, 'f', 4, 64),
			strconv.FormatFloat(rec.Quantity, 'f', 0, 64),
			strconv.FormatFloat(rec.RealizedPnL, 'f', 2, 64),
			strconv.FormatFloat(rec.Commission, 'f', 2, 64),
			strconv.Itoa(rec.HoldingDays),
			rec.ExitReason.String(),
			winLoss,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
