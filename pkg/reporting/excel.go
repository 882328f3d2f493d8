package reporting

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/quantbench/stock-screener/internal/screener"
)

// DefaultExcelReporter implements Excel output functionality
type DefaultExcelReporter struct{}

// NewDefaultExcelReporter creates a new Excel reporter
func NewDefaultExcelReporter() *DefaultExcelReporter {
	return &DefaultExcelReporter{}
}

// ExcelStyles holds Excel formatting styles
type ExcelStyles struct {
	HeaderStyle  int
	BaseStyle    int
	PassStyle    int
	FailStyle    int
	PercentStyle int
}

// WriteScreeningXLSX writes the ranked screening table to an Excel
// workbook with a results sheet and a run summary sheet.
func (r *DefaultExcelReporter) WriteScreeningXLSX(report *screener.RunReport, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	fx := excelize.NewFile()
	defer fx.Close()

	const resultsSheet = "Results"
	const summarySheet = "Run Summary"

	fx.SetSheetName(fx.GetSheetName(0), resultsSheet)
	fx.NewSheet(summarySheet)

	styles, err := r.createExcelStyles(fx)
	if err != nil {
		return err
	}

	if err := r.writeResultsSheet(fx, resultsSheet, report, styles); err != nil {
		return err
	}

	if err := r.writeSummarySheet(fx, summarySheet, report, styles); err != nil {
		return err
	}

	return fx.SaveAs(path)
}

func (r *DefaultExcelReporter) createExcelStyles(fx *excelize.File) (ExcelStyles, error) {
	var styles ExcelStyles
	var err error

	styles.HeaderStyle, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:   true,
			Size:   11,
			Color:  "FFFFFF",
			Family: "Calibri",
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"2F4F4F"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return styles, err
	}

	styles.BaseStyle, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 10, Family: "Calibri"},
	})
	if err != nil {
		return styles, err
	}

	styles.PassStyle, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 10, Family: "Calibri", Color: "006100"},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"C6EFCE"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return styles, err
	}

	styles.FailStyle, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 10, Family: "Calibri", Color: "9C0006"},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"FFC7CE"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return styles, err
	}

	styles.PercentStyle, err = fx.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 10, Family: "Calibri"},
		NumFmt:    2,
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	return styles, err
}

func (r *DefaultExcelReporter) writeResultsSheet(fx *excelize.File, sheet string, report *screener.RunReport, styles ExcelStyles) error {
	header := screeningHeader()
	for col, title := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := fx.SetCellValue(sheet, cell, title); err != nil {
			return err
		}
		if err := fx.SetCellStyle(sheet, cell, cell, styles.HeaderStyle); err != nil {
			return err
		}
	}

	for i, result := range report.Results {
		row := i + 2
		values := []interface{}{i + 1, result.Symbol, result.MetCount}
		for c := 1; c <= screener.NumTrendConditions; c++ {
			if result.Vector.Condition(c) {
				values = append(values, "PASS")
			} else {
				values = append(values, "FAIL")
			}
		}
		values = append(values, result.RSScore, boolMark(result.RSBonus))

		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := fx.SetCellValue(sheet, cell, value); err != nil {
				return err
			}

			style := styles.BaseStyle
			switch v := value.(type) {
			case string:
				if v == "PASS" {
					style = styles.PassStyle
				} else if v == "FAIL" {
					style = styles.FailStyle
				}
			case float64:
				style = styles.PercentStyle
			}
			if err := fx.SetCellStyle(sheet, cell, cell, style); err != nil {
				return err
			}
		}
	}

	fx.SetColWidth(sheet, "A", "A", 6)
	fx.SetColWidth(sheet, "B", "B", 10)
	return nil
}

func (r *DefaultExcelReporter) writeSummarySheet(fx *excelize.File, sheet string, report *screener.RunReport, styles ExcelStyles) error {
	rows := [][]interface{}{
		{"Generated At", report.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
		{"Benchmark", report.Benchmark},
		{"Symbols Processed", report.Processed},
		{"Symbols Skipped", report.Skipped},
		{"Qualifying Symbols", len(report.Results)},
	}

	rowNum := 1
	for _, pair := range rows {
		for col, value := range pair {
			cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
			if err != nil {
				return err
			}
			if err := fx.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
		rowNum++
	}

	if len(report.SkipReasons) > 0 {
		rowNum++
		cell, _ := excelize.CoordinatesToCellName(1, rowNum)
		fx.SetCellValue(sheet, cell, "Skip Reasons")
		fx.SetCellStyle(sheet, cell, cell, styles.HeaderStyle)
		rowNum++
		for symbol, reason := range report.SkipReasons {
			symCell, _ := excelize.CoordinatesToCellName(1, rowNum)
			reasonCell, _ := excelize.CoordinatesToCellName(2, rowNum)
			fx.SetCellValue(sheet, symCell, symbol)
			fx.SetCellValue(sheet, reasonCell, reason)
			rowNum++
		}
	}

	fx.SetColWidth(sheet, "A", "A", 22)
	fx.SetColWidth(sheet, "B", "B", 40)
	return nil
}
