package excel

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/peoplehub/recognition-system/internal/core/ports"
)

func exportStarAward(t *testing.T, rows []ports.StarAwardRow) *excelize.File {
	t.Helper()
	var buf bytes.Buffer
	if err := NewExporter().StarAward(&buf, rows); err != nil {
		t.Fatalf("StarAward returned error: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func TestStarAward_HeaderContract(t *testing.T) {
	f := exportStarAward(t, nil)

	if f.GetSheetName(0) != starAwardSheet {
		t.Fatalf("unexpected sheet name: %q", f.GetSheetName(0))
	}

	rows, err := f.GetRows(starAwardSheet)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected header row only, got %d rows", len(rows))
	}
	header := rows[0]
	if len(header) != len(starAwardHeaders) {
		t.Fatalf("expected %d headers, got %d", len(starAwardHeaders), len(header))
	}
	for i, want := range starAwardHeaders {
		if header[i] != want {
			t.Fatalf("header %d: got %q, want %q", i, header[i], want)
		}
	}
}

func TestStarAward_RowValues(t *testing.T) {
	submitted := time.Date(2026, time.February, 2, 10, 30, 0, 0, time.UTC)
	f := exportStarAward(t, []ports.StarAwardRow{
		{
			CompletionTime: submitted,
			NominatorEmail: "alice@example.com",
			NominatorName:  "alice",
			NomineeEmail:   "nora@example.com",
			Categories:     "Customer Impact",
			Reason:         "Great quarter",
			Practice:       "Engineering",
			Approved:       true,
		},
		{
			CompletionTime: submitted,
			Approved:       false,
		},
	})

	rows, err := f.GetRows(starAwardSheet)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 data rows, got %d", len(rows))
	}

	first := rows[1]
	if first[0] != "2026-02-02 10:30:00" {
		t.Fatalf("unexpected completion time: %q", first[0])
	}
	if first[1] != "alice@example.com" || first[4] != "nora@example.com" {
		t.Fatalf("unexpected emails: %q %q", first[1], first[4])
	}
	if first[3] != "Star Award" || first[13] != "Star Award" {
		t.Fatalf("award type literals missing: %q %q", first[3], first[13])
	}
	if first[14] != "YES" || first[15] != "YES" || first[16] != "YES" {
		t.Fatalf("approved row must carry YES flags: %v", first[14:])
	}

	second := rows[2]
	// Empty fields are exported as a dash.
	if second[1] != "-" || second[10] != "-" {
		t.Fatalf("expected dashes for empty cells: %q %q", second[1], second[10])
	}
	if second[14] != "NO" || second[16] != "NO" {
		t.Fatalf("unapproved row must carry NO flags: %q %q", second[14], second[16])
	}
	if second[15] != "YES" {
		t.Fatalf("mail-back column is always YES: %q", second[15])
	}
}

func TestStarAward_ColumnWidthClamp(t *testing.T) {
	long := "a very long reason that certainly exceeds thirty characters of width"
	f := exportStarAward(t, []ports.StarAwardRow{{Reason: long}})

	// Column G holds the reason, column B a dash.
	wide, err := f.GetColWidth(starAwardSheet, "G")
	if err != nil {
		t.Fatalf("get width: %v", err)
	}
	if wide != maxColWidth {
		t.Fatalf("long columns clamp to %d, got %v", maxColWidth, wide)
	}

	narrow, err := f.GetColWidth(starAwardSheet, "B")
	if err != nil {
		t.Fatalf("get width: %v", err)
	}
	if narrow != minColWidth {
		t.Fatalf("short columns clamp to %d, got %v", minColWidth, narrow)
	}
}
