package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nao1215/leadfinder/internal/model"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet that holds one row per analyzed website.
const SheetName = "Leads"

// xlsxHeader is the first row of the Leads sheet.
var xlsxHeader = []any{
	"URL", "Status", "Timestamp",
	"Emails", "Phones", "Social Links",
	"Performance", "Accessibility", "Best Practices", "SEO",
	"High Issues", "Medium Issues", "Low Issues", "Design Issues",
	"Error",
}

// XLSXWriter outputs a report as a spreadsheet for manual outreach work.
type XLSXWriter struct {
	baseWriter
}

// NewXLSXWriter creates an XLSXWriter that outputs to the given writer.
func NewXLSXWriter(output io.Writer) *XLSXWriter {
	return &XLSXWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report as an XLSX workbook with a single Leads sheet.
func (w *XLSXWriter) Write(report *Report) (n int, err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return 0, fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &xlsxHeader); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return 0, fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetRowStyle(SheetName, 1, 1, bold); err != nil {
		return 0, fmt.Errorf("failed to style header: %w", err)
	}
	if err := f.SetColWidth(SheetName, "A", "A", 45); err != nil {
		return 0, fmt.Errorf("failed to size columns: %w", err)
	}

	row := 2
	for _, r := range report.Results {
		if r == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return 0, err
		}
		values := xlsxRow(r)
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return 0, fmt.Errorf("failed to write row %d: %w", row, err)
		}
		row++
	}

	written, err := f.WriteTo(w.output)
	return int(written), err
}

// xlsxRow converts a result into the Leads sheet columns.
// Error results leave the analysis columns empty.
func xlsxRow(r *model.AnalysisResult) []any {
	values := make([]any, len(xlsxHeader))
	values[0] = r.URL
	values[1] = string(r.Status)
	values[2] = r.Timestamp.Format(time.RFC3339)

	if !r.IsSuccess() {
		values[14] = r.Error
		return values
	}

	values[3] = strings.Join(r.ContactInfo.Emails, "\n")
	values[4] = strings.Join(r.ContactInfo.Phones, "\n")
	values[5] = strings.Join(r.ContactInfo.SocialLinks, "\n")

	if r.PageSpeed != nil {
		values[6] = r.PageSpeed.Performance
		values[7] = r.PageSpeed.Accessibility
		values[8] = r.PageSpeed.BestPractices
		values[9] = r.PageSpeed.SEO
	}

	counts := make(map[model.Severity]int)
	descriptions := make([]string, 0, len(r.DesignIssues))
	for _, issue := range r.DesignIssues {
		counts[issue.Severity]++
		descriptions = append(descriptions, issue.Description)
	}
	values[10] = counts[model.SeverityHigh]
	values[11] = counts[model.SeverityMedium]
	values[12] = counts[model.SeverityLow]
	values[13] = strings.Join(descriptions, "\n")

	return values
}
