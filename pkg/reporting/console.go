package reporting

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/rexaitrading/hybrid-ai-trading/internal/audit"
)

// Summary aggregates a run's audit trail into headline numbers.
type Summary struct {
	TotalDecisions int
	Filled         int
	Blocked        int
	Ignored        int
	Rejected       int
	Errors         int
	ByReason       map[string]int
	FinalEquity    float64
}

// Summarize folds an audit record series into a Summary.
func Summarize(records []audit.Record) Summary {
	s := Summary{ByReason: make(map[string]int)}
	for _, rec := range records {
		s.TotalDecisions++
		switch rec.Status {
		case "filled":
			s.Filled++
		case "blocked":
			s.Blocked++
		case "ignored":
			s.Ignored++
		case "rejected":
			s.Rejected++
		case "error":
			s.Errors++
		}
		if rec.Reason != "" {
			s.ByReason[rec.Reason]++
		}
		s.FinalEquity = rec.Equity
	}
	return s
}

// ConsoleReporter renders run summaries and decision logs to stdout.
type ConsoleReporter struct{}

// NewConsoleReporter creates a console reporter.
func NewConsoleReporter() *ConsoleReporter {
	return &ConsoleReporter{}
}

// PrintSummary renders the headline numbers.
func (r *ConsoleReporter) PrintSummary(s Summary) {
	fmt.Println("\n" + strings.Repeat("=", 50))
	fmt.Println("📊 TRADING SESSION SUMMARY")
	fmt.Println(strings.Repeat("=", 50))

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRows([]table.Row{
		{"Total Decisions", s.TotalDecisions},
		{"Filled", s.Filled},
		{"Blocked", s.Blocked},
		{"Ignored", s.Ignored},
		{"Rejected", s.Rejected},
		{"Errors", s.Errors},
		{"Final Equity", fmt.Sprintf("$%.2f", s.FinalEquity)},
	})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
	})
	t.SetStyle(table.StyleLight)
	t.Render()

	if len(s.ByReason) > 0 {
		fmt.Println("\nDecisions by reason:")
		rt := table.NewWriter()
		rt.SetOutputMirror(os.Stdout)
		rt.AppendHeader(table.Row{"Reason", "Count"})
		for reason, count := range s.ByReason {
			rt.AppendRow(table.Row{reason, count})
		}
		rt.SortBy([]table.SortBy{{Name: "Count", Mode: table.DscNumeric}})
		rt.SetStyle(table.StyleLight)
		rt.Render()
	}
}

// PrintRecords renders the full decision log, most recent last.
func (r *ConsoleReporter) PrintRecords(records []audit.Record) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Timestamp", "Symbol", "Side", "Size", "Price", "Status", "Reason"})
	for _, rec := range records {
		t.AppendRow(table.Row{
			rec.Timestamp,
			rec.Symbol,
			rec.Side,
			fmt.Sprintf("%.4f", rec.Size),
			fmt.Sprintf("%.2f", rec.Price),
			rec.Status,
			rec.Reason,
		})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}
