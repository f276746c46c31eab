package excel

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/peoplehub/recognition-system/internal/core/ports"
)

const (
	sheetSummary     = "Summary"
	sheetDepartments = "Department Analytics"
	sheetLogs        = "Approval Logs"
)

// AdminReport writes the three-sheet admin report workbook to w.
func (e *Exporter) AdminReport(w io.Writer, data *ports.ReportData) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), sheetSummary)

	summaryRows := [][]any{
		{"Metric", "Value"},
		{"Total Nominations", data.Summary.TotalNominations},
		{"Coordinator Approved", data.Summary.CoordinatorApproved},
		{"Committee Finalists", data.Summary.CommitteeFinalists},
		{"Final Winners", data.Summary.FinalWinners},
		{"Total Rejections", data.Summary.TotalRejections},
		{"Employees Not Nominated", data.Summary.EmployeesNotNominated},
	}
	for i, row := range summaryRows {
		if err := setRow(f, sheetSummary, i+1, row); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(sheetDepartments); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	if err := setRow(f, sheetDepartments, 1, []any{"Department", "Nomination Count"}); err != nil {
		return err
	}
	for i, d := range data.DepartmentCounts {
		if err := setRow(f, sheetDepartments, i+2, []any{d.Department, d.Count}); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(sheetLogs); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	if err := setRow(f, sheetLogs, 1, []any{"Employee", "Department", "Stage", "Action By", "Date"}); err != nil {
		return err
	}
	for i, log := range data.ApprovalLogs {
		row := []any{
			log.Employee,
			log.Department,
			log.Stage,
			log.ActionBy,
			log.Date.Format("2006-01-02"),
		}
		if err := setRow(f, sheetLogs, i+2, row); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write admin report workbook: %w", err)
	}
	return nil
}
