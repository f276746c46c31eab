package excel

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/peoplehub/recognition-system/internal/core/ports"
)

const starAwardSheet = "Star Award Export"

// starAwardHeaders is the fixed header contract for the Star Award workbook.
// Column order and wording must stay stable; downstream HR tooling keys on it.
var starAwardHeaders = []string{
	"Completion time",
	"Email",
	"Name",
	"Select an Award Type",
	"Enter the email address of the colleague you want to nominate",
	"In which of the following categories should your nomination be included?",
	"Why are you nominating this colleague? Describe what your nominee did, the impact of their actions, who was affected, the expected duration of the impact, and any supporting feedback or evidence.",
	"Contract",
	"Location",
	"Country",
	"Practise",
	"Portfolio",
	"Line Manager",
	"Nomination Name",
	"Shortlist",
	"Successful mail back to nominators",
	"Approaval-YES/NO",
}

const (
	headerFillColor = "008080"
	minColWidth     = 15
	maxColWidth     = 30
)

// Exporter writes the Star Award and admin report workbooks.
type Exporter struct{}

func NewExporter() *Exporter {
	return &Exporter{}
}

// StarAward writes the denormalised Star Award workbook to w.
func (e *Exporter) StarAward(w io.Writer, rows []ports.StarAwardRow) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), starAwardSheet)

	headerStyle, cellStyle, err := e.styles(f)
	if err != nil {
		return err
	}

	if err := setRow(f, starAwardSheet, 1, toAny(starAwardHeaders)); err != nil {
		return err
	}
	if err := f.SetRowStyle(starAwardSheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, row := range rows {
		approval := "NO"
		if row.Approved {
			approval = "YES"
		}
		values := []any{
			row.CompletionTime.Format("2006-01-02 15:04:05"),
			orDash(row.NominatorEmail),
			orDash(row.NominatorName),
			"Star Award",
			orDash(row.NomineeEmail),
			orDash(row.Categories),
			orDash(row.Reason),
			orDash(row.Contract),
			orDash(row.Location),
			orDash(row.Country),
			orDash(row.Practice),
			orDash(row.Portfolio),
			orDash(row.LineManager),
			"Star Award",
			approval,
			"YES",
			approval,
		}
		rowNum := i + 2
		if err := setRow(f, starAwardSheet, rowNum, values); err != nil {
			return err
		}
		if err := f.SetRowStyle(starAwardSheet, rowNum, rowNum, cellStyle); err != nil {
			return fmt.Errorf("style row %d: %w", rowNum, err)
		}
	}

	if err := e.fitColumns(f, starAwardSheet, len(starAwardHeaders), len(rows)); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write star award workbook: %w", err)
	}
	return nil
}

func (e *Exporter) styles(f *excelize.File) (header, cell int, err error) {
	align := &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true}

	header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFillColor}},
		Alignment: align,
	})
	if err != nil {
		return 0, 0, fmt.Errorf("header style: %w", err)
	}

	cell, err = f.NewStyle(&excelize.Style{Alignment: align})
	if err != nil {
		return 0, 0, fmt.Errorf("cell style: %w", err)
	}
	return header, cell, nil
}

// fitColumns sizes each column to its longest data cell, clamped to the
// min/max widths. The header row is excluded from measurement.
func (e *Exporter) fitColumns(f *excelize.File, sheet string, cols, rows int) error {
	for col := 1; col <= cols; col++ {
		length := 0
		for row := 2; row <= rows+1; row++ {
			cellName, err := excelize.CoordinatesToCellName(col, row)
			if err != nil {
				return err
			}
			value, err := f.GetCellValue(sheet, cellName)
			if err != nil {
				return err
			}
			if len(value) > length {
				length = len(value)
			}
		}

		width := length + 2
		if width < minColWidth {
			width = minColWidth
		}
		if width > maxColWidth {
			width = maxColWidth
		}

		colName, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, colName, colName, float64(width)); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("set row %d: %w", row, err)
	}
	return nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
