package normalize

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/cleared-dev/extracto/internal/sheet"
)

var (
	// ErrHeaderNotFound is matched by *HeaderNotFoundError.
	ErrHeaderNotFound = errors.New("header row not found")
	// ErrColumnsUnresolved is matched by *ColumnsUnresolvedError.
	ErrColumnsUnresolved = errors.New("required columns not resolved")
)

// HeaderNotFoundError reports that no row named date, description and
// amount columns.
type HeaderNotFoundError struct {
	Searched sheet.Range
}

func (e *HeaderNotFoundError) Error() string {
	return fmt.Sprintf("%s in rows %d-%d: no row has date, description and amount columns",
		ErrHeaderNotFound, e.Searched.Start, e.Searched.End)
}

// Is lets errors.Is(err, ErrHeaderNotFound) match.
func (e *HeaderNotFoundError) Is(target error) bool {
	return target == ErrHeaderNotFound
}

// ColumnsUnresolvedError reports which required columns the header row
// lacks. A header with no amount column reports SlotAmount. Hints maps a
// missing slot to the closest unclaimed header text, when there is one.
type ColumnsUnresolvedError struct {
	Row     int
	Missing []Slot
	Hints   map[Slot]string
}

func (e *ColumnsUnresolvedError) Error() string {
	names := make([]string, len(e.Missing))
	for i, slot := range e.Missing {
		names[i] = slot.String()
	}
	msg := fmt.Sprintf("%s in header row %d: missing %s", ErrColumnsUnresolved, e.Row, strings.Join(names, ", "))
	if len(e.Hints) == 0 {
		return msg
	}
	slots := make([]Slot, 0, len(e.Hints))
	for slot := range e.Hints {
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i] < slots[j] })
	hints := make([]string, len(slots))
	for i, slot := range slots {
		hints[i] = fmt.Sprintf("%s: %q?", slot, e.Hints[slot])
	}
	return msg + " (" + strings.Join(hints, "; ") + ")"
}

// Is lets errors.Is(err, ErrColumnsUnresolved) match.
func (e *ColumnsUnresolvedError) Is(target error) bool {
	return target == ErrColumnsUnresolved
}
