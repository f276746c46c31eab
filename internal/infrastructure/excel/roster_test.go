package excel

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func rosterWorkbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return &buf
}

func TestRosterParser_Parse(t *testing.T) {
	buf := rosterWorkbook(t, [][]any{
		{"Contract", "Location", "Country", "Practice", "Portfolio", "Line Manager", "Name", "Email"},
		{"Permanent", "Lisbon", "Portugal", "Engineering", "Backend", "Dana Boss", "Jane Doe", "jane.doe@example.com"},
		{"Contractor", "Porto", "Portugal", "Finance", "Analysis", "", "No Email Person", ""},
		{"Permanent", "Madrid", "Spain", "Design", "UX", "Sam Lead", "John Q Public", "  john.public@example.com  "},
	})

	entries, err := NewRosterParser().Parse(buf)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("rows without email must be dropped, got %d entries", len(entries))
	}

	jane := entries[0]
	if jane.Email != "jane.doe@example.com" || jane.FullName != "Jane Doe" {
		t.Fatalf("unexpected entry: %+v", jane)
	}
	if jane.ContractType != "Permanent" || jane.Practice != "Engineering" || jane.LineManager != "Dana Boss" {
		t.Fatalf("column mapping broken: %+v", jane)
	}

	if entries[1].Email != "john.public@example.com" {
		t.Fatalf("emails must be trimmed, got %q", entries[1].Email)
	}
}

func TestRosterParser_ShortRows(t *testing.T) {
	buf := rosterWorkbook(t, [][]any{
		{"Contract", "Location", "Country", "Practice", "Portfolio", "Line Manager", "Name", "Email"},
		{"Permanent", "Lisbon"},
	})

	entries, err := NewRosterParser().Parse(buf)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("short rows have no email and must be dropped, got %d", len(entries))
	}
}

func TestRosterParser_NotAWorkbook(t *testing.T) {
	if _, err := NewRosterParser().Parse(strings.NewReader("not an xlsx")); err == nil {
		t.Fatalf("expected an error for invalid input")
	}
}
