package normalize

import (
	"strings"

	"github.com/schollz/closestmatch"

	"github.com/cleared-dev/extracto/internal/sheet"
)

// ColumnMap holds the resolved column numbers of a header row. Zero means
// the column is not present.
type ColumnMap struct {
	Date            int
	Description     int
	PrimaryAmount   int
	SecondaryAmount int
}

// HasAmount reports whether at least one amount column is mapped.
func (m ColumnMap) HasAmount() bool {
	return m.PrimaryAmount > 0 || m.SecondaryAmount > 0
}

func (m ColumnMap) missing() []Slot {
	var slots []Slot
	if m.Date == 0 {
		slots = append(slots, SlotDate)
	}
	if m.Description == 0 {
		slots = append(slots, SlotDescription)
	}
	if !m.HasAmount() {
		slots = append(slots, SlotAmount)
	}
	return slots
}

// MapColumns resolves the header row into a ColumnMap. Columns are scanned
// left to right and a later column claiming the same slot replaces the
// earlier one.
func MapColumns(s sheet.Sheet, headerRow int, rules Rules) (ColumnMap, error) {
	var m ColumnMap
	var unclaimed []string

	cols := s.Cols()
	for col := cols.Start; col <= cols.End; col++ {
		text := s.Cell(headerRow, col).Text
		switch rules.Classify(text) {
		case SlotDate:
			m.Date = col
		case SlotDescription:
			m.Description = col
		case SlotPrimaryAmount:
			m.PrimaryAmount = col
		case SlotSecondaryAmount:
			m.SecondaryAmount = col
		default:
			if t := NormalizeHeader(text); t != "" {
				unclaimed = append(unclaimed, t)
			}
		}
	}

	missing := m.missing()
	if len(missing) == 0 {
		return m, nil
	}
	return ColumnMap{}, &ColumnsUnresolvedError{
		Row:     headerRow,
		Missing: missing,
		Hints:   columnHints(missing, unclaimed, rules),
	}
}

// columnHints suggests, for each missing column, the unclaimed header text
// closest to that column's keywords.
func columnHints(missing []Slot, unclaimed []string, rules Rules) map[Slot]string {
	if len(unclaimed) == 0 {
		return nil
	}
	cm := closestmatch.New(unclaimed, []int{2, 3})

	hints := make(map[Slot]string)
	for _, slot := range missing {
		var kws []string
		switch slot {
		case SlotAmount:
			kws = append(rules.Keywords(SlotPrimaryAmount), rules.Keywords(SlotSecondaryAmount)...)
		default:
			kws = rules.Keywords(slot)
		}
		if len(kws) == 0 {
			continue
		}
		if best := cm.Closest(strings.Join(kws, " ")); best != "" {
			hints[slot] = best
		}
	}
	if len(hints) == 0 {
		return nil
	}
	return hints
}
