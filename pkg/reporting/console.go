package reporting

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/quantbench/stock-screener/internal/portfolio"
	"github.com/quantbench/stock-screener/internal/screener"
)

// maxConsoleRows caps the ranked table printed to the terminal. Full
// results go to the file reports.
const maxConsoleRows = 25

// DefaultConsoleReporter implements console output functionality
type DefaultConsoleReporter struct{}

// NewDefaultConsoleReporter creates a new console reporter
func NewDefaultConsoleReporter() *DefaultConsoleReporter {
	return &DefaultConsoleReporter{}
}

// OutputScreeningResults prints the ranked screening table.
func (r *DefaultConsoleReporter) OutputScreeningResults(report *screener.RunReport) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle(fmt.Sprintf("SCREENING RESULTS vs %s", report.Benchmark))
	t.SetStyle(table.StyleRounded)

	t.AppendHeader(table.Row{"#", "Symbol", "Met", "Conditions", "RS", "RS Bonus"})

	rows := report.Results
	truncated := false
	if len(rows) > maxConsoleRows {
		rows = rows[:maxConsoleRows]
		truncated = true
	}

	for i, result := range rows {
		t.AppendRow(table.Row{
			i + 1,
			result.Symbol,
			fmt.Sprintf("%d/%d", result.MetCount, screener.TotalConditions),
			conditionString(result.Vector),
			fmt.Sprintf("%.1f", result.RSScore),
			checkMark(result.RSBonus),
		})
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 3, Align: text.AlignCenter},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignCenter},
	})

	t.Render()

	if truncated {
		fmt.Printf("   ... %d more rows in the file report\n", len(report.Results)-maxConsoleRows)
	}
	fmt.Printf("📊 Processed: %d   Skipped: %d   Qualifying: %d\n\n",
		report.Processed, report.Skipped, len(report.Results))
}

// OutputPerformance prints a performance summary table.
func (r *DefaultConsoleReporter) OutputPerformance(report *portfolio.PerformanceReport, strategy string) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle(fmt.Sprintf("PERFORMANCE: %s", strategy))
	t.SetStyle(table.StyleRounded)

	t.AppendRows([]table.Row{
		{"💰 Start Equity", fmt.Sprintf("$%.2f", report.StartEquity)},
		{"💰 End Equity", fmt.Sprintf("$%.2f", report.EndEquity)},
		{"📈 Total Return", fmt.Sprintf("%.2f%%", report.TotalReturn*100)},
		{"📈 Annualized Return", fmt.Sprintf("%.2f%%", report.AnnualizedReturn*100)},
		{"📉 Max Drawdown", fmt.Sprintf("%.2f%%", report.MaxDrawdown*100)},
	})

	t.AppendSeparator()

	t.AppendRows([]table.Row{
		{"📊 Sharpe Ratio", fmt.Sprintf("%.2f (Ann: %.2f)", report.SharpeRatio, report.AnnualizedSharpe)},
		{"📊 Sortino Ratio", fmt.Sprintf("%.2f", report.SortinoRatio)},
		{"📊 Calmar Ratio", fmt.Sprintf("%.2f", report.CalmarRatio)},
		{"💹 Profit Factor", fmt.Sprintf("%.2f", report.ProfitFactor)},
	})

	t.AppendSeparator()

	t.AppendRows([]table.Row{
		{"🔄 Total Trades", fmt.Sprintf("%d", report.TotalTrades)},
		{"✅ Winning Trades", fmt.Sprintf("%d (%.1f%%)", report.WinningTrades, report.WinRate*100)},
		{"❌ Losing Trades", fmt.Sprintf("%d", report.LosingTrades)},
		{"🎯 Max Exposure", fmt.Sprintf("%.1f%%", report.MaxExposure*100)},
		{"🎯 Avg Exposure", fmt.Sprintf("%.1f%%", report.AvgExposure*100)},
		{"⏱️ Avg Holding Days", fmt.Sprintf("%.1f", report.AvgHoldingDays)},
	})

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 20, WidthMax: 20, Align: text.AlignLeft},
		{Number: 2, WidthMin: 20, WidthMax: 30, Align: text.AlignLeft},
	})

	t.Render()
	fmt.Println()
}

// OutputClosedPositions prints the trade log.
func (r *DefaultConsoleReporter) OutputClosedPositions(records []portfolio.ClosedPositionRecord) {
	if len(records) == 0 {
		fmt.Println("📭 No closed positions")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("CLOSED POSITIONS")
	t.SetStyle(table.StyleRounded)

	t.AppendHeader(table.Row{"Symbol", "Side", "Entry", "Exit", "Qty", "PnL $", "Days", "Reason"})

	for _, rec := range records {
		t.AppendRow(table.Row{
			rec.Symbol,
			rec.Side.String(),
			fmt.Sprintf("%.2f", rec.EntryPrice),
			fmt.Sprintf("%.2f", rec.ExitPrice),
			fmt.Sprintf("%.0f", rec.Quantity),
			fmt.Sprintf("%.2f", rec.RealizedPnL),
			rec.HoldingDays,
			rec.ExitReason.String(),
		})
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
	})

	t.Render()
	fmt.Println()
}

func conditionString(v screener.ConditionVector) string {
	out := make([]byte, screener.NumTrendConditions)
	for i := 1; i <= screener.NumTrendConditions; i++ {
		if v.Condition(i) {
			out[i-1] = '+'
		} else {
			out[i-1] = '-'
		}
	}
	return string(out)
}

func checkMark(ok bool) string {
	if ok {
		return "✅"
	}
	return "·"
}
