package normalize

import "github.com/cleared-dev/extracto/internal/sheet"

// HeaderMatch records which required columns a row names.
type HeaderMatch struct {
	Row            int
	HasDate        bool
	HasDescription bool
	HasAmount      bool
}

// Complete reports whether the row names all three required columns.
func (m HeaderMatch) Complete() bool {
	return m.HasDate && m.HasDescription && m.HasAmount
}

// MatchRow classifies every cell of row across the sheet's full width.
func MatchRow(s sheet.Sheet, row int, rules Rules) HeaderMatch {
	m := HeaderMatch{Row: row}
	cols := s.Cols()
	for col := cols.Start; col <= cols.End; col++ {
		switch slot := rules.Classify(s.Cell(row, col).Text); {
		case slot == SlotDate:
			m.HasDate = true
		case slot == SlotDescription:
			m.HasDescription = true
		case slot.IsAmount():
			m.HasAmount = true
		}
	}
	return m
}

// FindHeaderRow returns the first row, top to bottom, that names a date,
// a description and at least one amount column. Later rows that would
// also qualify are never looked at.
func FindHeaderRow(s sheet.Sheet, rules Rules) (int, error) {
	rows := s.Rows()
	for row := rows.Start; row <= rows.End; row++ {
		if MatchRow(s, row, rules).Complete() {
			return row, nil
		}
	}
	return 0, &HeaderNotFoundError{Searched: rows}
}
