package reporting

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/rexaitrading/hybrid-ai-trading/internal/audit"
)

// ExcelReporter writes the decision log and summary to a workbook.
type ExcelReporter struct{}

// NewExcelReporter creates an Excel reporter.
func NewExcelReporter() *ExcelReporter {
	return &ExcelReporter{}
}

// WriteReport writes a Decisions sheet and a Summary sheet to path.
func (r *ExcelReporter) WriteReport(records []audit.Record, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	fx := excelize.NewFile()
	defer fx.Close()

	const decisionsSheet = "Decisions"
	const summarySheet = "Summary"

	fx.SetSheetName(fx.GetSheetName(0), decisionsSheet)
	if _, err := fx.NewSheet(summarySheet); err != nil {
		return err
	}

	headerStyle, err := fx.NewStyle(&excelize.Style{
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
		return err
	}

	if err := r.writeDecisionsSheet(fx, decisionsSheet, records, headerStyle); err != nil {
		return err
	}
	if err := r.writeSummarySheet(fx, summarySheet, Summarize(records), headerStyle); err != nil {
		return err
	}

	return fx.SaveAs(path)
}

func (r *ExcelReporter) writeDecisionsSheet(fx *excelize.File, sheet string, records []audit.Record, headerStyle int) error {
	headers := []string{"Timestamp", "Symbol", "Side", "Size", "Price", "Status", "Reason", "Equity"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := fx.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	lastCol, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := fx.SetCellStyle(sheet, "A1", lastCol, headerStyle); err != nil {
		return err
	}

	for i, rec := range records {
		row := i + 2
		values := []interface{}{
			time.UnixMilli(rec.Timestamp).UTC().Format(time.RFC3339),
			rec.Symbol,
			rec.Side,
			rec.Size,
			rec.Price,
			rec.Status,
			rec.Reason,
			rec.Equity,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := fx.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	return fx.SetColWidth(sheet, "A", "A", 22)
}

func (r *ExcelReporter) writeSummarySheet(fx *excelize.File, sheet string, s Summary, headerStyle int) error {
	if err := fx.SetCellValue(sheet, "A1", "Metric"); err != nil {
		return err
	}
	if err := fx.SetCellValue(sheet, "B1", "Value"); err != nil {
		return err
	}
	if err := fx.SetCellStyle(sheet, "A1", "B1", headerStyle); err != nil {
		return err
	}

	rows := [][2]interface{}{
		{"Total Decisions", s.TotalDecisions},
		{"Filled", s.Filled},
		{"Blocked", s.Blocked},
		{"Ignored", s.Ignored},
		{"Rejected", s.Rejected},
		{"Errors", s.Errors},
		{"Final Equity", s.FinalEquity},
	}
	for i, pair := range rows {
		row := i + 2
		if err := fx.SetCellValue(sheet, fmt.Sprintf("A%d", row), pair[0]); err != nil {
			return err
		}
		if err := fx.SetCellValue(sheet, fmt.Sprintf("B%d", row), pair[1]); err != nil {
			return err
		}
	}

	return fx.SetColWidth(sheet, "A", "B", 20)
}
