package excel

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/peoplehub/recognition-system/internal/core/ports"
)

func TestAdminReport_Sheets(t *testing.T) {
	data := &ports.ReportData{
		Summary: ports.AnalyticsSummary{
			TotalNominations:      12,
			CoordinatorApproved:   8,
			CommitteeFinalists:    4,
			FinalWinners:          1,
			TotalRejections:       3,
			EmployeesNotNominated: 40,
		},
		DepartmentCounts: []ports.DepartmentCount{
			{Department: "Engineering", Count: 7},
			{Department: "Finance", Count: 5},
		},
		ApprovalLogs: []ports.ApprovalLogRow{
			{
				Employee: "nora", Department: "Engineering", Stage: "Initial Nomination",
				ActionBy: "alice", Date: time.Date(2026, time.February, 2, 0, 0, 0, 0, time.UTC),
			},
		},
	}

	var buf bytes.Buffer
	if err := NewExporter().AdminReport(&buf, data); err != nil {
		t.Fatalf("AdminReport returned error: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	for _, sheet := range []string{sheetSummary, sheetDepartments, sheetLogs} {
		if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
			t.Fatalf("sheet %q missing", sheet)
		}
	}

	summary, err := f.GetRows(sheetSummary)
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	if len(summary) != 7 {
		t.Fatalf("expected 7 summary rows, got %d", len(summary))
	}
	if summary[0][0] != "Metric" || summary[0][1] != "Value" {
		t.Fatalf("unexpected summary header: %v", summary[0])
	}
	if summary[1][0] != "Total Nominations" || summary[1][1] != "12" {
		t.Fatalf("unexpected first metric: %v", summary[1])
	}
	if summary[6][0] != "Employees Not Nominated" || summary[6][1] != "40" {
		t.Fatalf("unexpected last metric: %v", summary[6])
	}

	depts, err := f.GetRows(sheetDepartments)
	if err != nil {
		t.Fatalf("read departments: %v", err)
	}
	if len(depts) != 3 {
		t.Fatalf("expected header plus 2 department rows, got %d", len(depts))
	}
	if depts[1][0] != "Engineering" || depts[1][1] != "7" {
		t.Fatalf("unexpected department row: %v", depts[1])
	}

	logs, err := f.GetRows(sheetLogs)
	if err != nil {
		t.Fatalf("read logs: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected header plus 1 log row, got %d", len(logs))
	}
	if logs[1][2] != "Initial Nomination" || logs[1][4] != "2026-02-02" {
		t.Fatalf("unexpected log row: %v", logs[1])
	}
}
