package sheet

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// CellOf wraps a Go value as a Cell.
func CellOf(v any) Cell {
	switch x := v.(type) {
	case nil:
		return Cell{}
	case Cell:
		return x
	case string:
		return Text(x)
	case float64:
		return Cell{Text: strconv.FormatFloat(x, 'f', -1, 64), Value: x}
	case decimal.Decimal:
		return Cell{Text: x.String(), Value: x}
	default:
		return Cell{Text: fmt.Sprint(x), Value: x}
	}
}

// Text returns a text cell whose typed value is the same string.
func Text(s string) Cell {
	return Cell{Text: s, Value: s}
}

// Number returns a numeric cell with the given display text.
func Number(v float64, display string) Cell {
	return Cell{Text: display, Value: v}
}
