package ports

import "io"

// ReportExporter renders admin data sets as xlsx workbooks.
type ReportExporter interface {
	// StarAward writes the denormalised Star Award export.
	StarAward(w io.Writer, rows []StarAwardRow) error
	// AdminReport writes the three-sheet report (summary, department
	// breakdown, approval log).
	AdminReport(w io.Writer, data *ReportData) error
}

// RosterParser reads an uploaded employee roster workbook.
type RosterParser interface {
	Parse(r io.Reader) ([]RosterEntry, error)
}
