package excel

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/peoplehub/recognition-system/internal/core/ports"
)

// RosterParser reads uploaded employee rosters. Expected column order:
// contract, location, country, practice, portfolio, line manager, name, email.
// The first row is a header and is skipped; rows without an email are dropped.
type RosterParser struct{}

func NewRosterParser() *RosterParser {
	return &RosterParser{}
}

func (p *RosterParser) Parse(r io.Reader) ([]ports.RosterEntry, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open roster workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read roster rows: %w", err)
	}

	var entries []ports.RosterEntry
	for i, row := range rows {
		if i == 0 {
			continue
		}

		email := cellAt(row, 7)
		if email == "" {
			continue
		}

		entries = append(entries, ports.RosterEntry{
			ContractType: cellAt(row, 0),
			Location:     cellAt(row, 1),
			Country:      cellAt(row, 2),
			Practice:     cellAt(row, 3),
			Portfolio:    cellAt(row, 4),
			LineManager:  cellAt(row, 5),
			FullName:     cellAt(row, 6),
			Email:        email,
		})
	}
	return entries, nil
}

func cellAt(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
