// Package sheet defines the tabular view the normalizer reads from.
//
// Rows and columns are 1-indexed, matching spreadsheet coordinates, so a
// row number reported in an error or warning is the one a user sees in
// their spreadsheet application.
package sheet

import "strings"

// Cell is a single spreadsheet cell.
type Cell struct {
	Text  string // display text, as the exporting application rendered it
	Value any    // typed value: nil, float64, decimal.Decimal, an integer, or string
}

// IsBlank reports whether the cell's display text is empty or whitespace.
func (c Cell) IsBlank() bool {
	return strings.TrimSpace(c.Text) == ""
}

// Range is an inclusive span of row or column numbers.
type Range struct {
	Start int
	End   int
}

// Len returns the number of positions in the range.
func (r Range) Len() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start + 1
}

// Sheet is a read-only grid of cells.
type Sheet interface {
	Rows() Range
	Cols() Range
	// Cell returns the zero Cell for coordinates outside the stored grid.
	Cell(row, col int) Cell
}

// Grid is an in-memory Sheet. Rows may be ragged.
type Grid struct {
	rows  [][]Cell
	width int
}

// NewGrid creates a Grid from rows of cells; rows[0] is row 1.
func NewGrid(rows [][]Cell) *Grid {
	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	return &Grid{rows: rows, width: width}
}

// FromValues builds a Grid from plain values. Strings become text cells;
// anything else becomes a typed cell whose display text is the value's
// default formatting. A nil value is an empty cell.
func FromValues(rows [][]any) *Grid {
	cells := make([][]Cell, len(rows))
	for i, r := range rows {
		cells[i] = make([]Cell, len(r))
		for j, v := range r {
			cells[i][j] = CellOf(v)
		}
	}
	return NewGrid(cells)
}

// Rows returns the row range; an empty grid has an empty range.
func (g *Grid) Rows() Range {
	return Range{Start: 1, End: len(g.rows)}
}

// Cols returns the column range covering the widest row.
func (g *Grid) Cols() Range {
	return Range{Start: 1, End: g.width}
}

// Cell returns the cell at row, col.
func (g *Grid) Cell(row, col int) Cell {
	if row < 1 || row > len(g.rows) {
		return Cell{}
	}
	r := g.rows[row-1]
	if col < 1 || col > len(r) {
		return Cell{}
	}
	return r[col-1]
}

// Raw returns the typed value, falling back to the display text when a
// reader left Value unset. Blank cells return nil.
func (c Cell) Raw() any {
	if c.Value != nil {
		return c.Value
	}
	if c.IsBlank() {
		return nil
	}
	return c.Text
}
