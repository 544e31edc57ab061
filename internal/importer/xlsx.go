package importer

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/cleared-dev/extracto/internal/sheet"
)

// XLSXReader reads Office Open XML workbooks.
type XLSXReader struct {
	Sheet string // worksheet name; empty means the first one
}

// Format returns the reader name.
func (r *XLSXReader) Format() string { return "xlsx" }

// Read opens path and loads the configured worksheet.
func (r *XLSXReader) Read(path string) (*sheet.Grid, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()
	return r.load(f)
}

// Decode loads the configured worksheet from a workbook stream.
func (r *XLSXReader) Decode(rd io.Reader) (*sheet.Grid, error) {
	f, err := excelize.OpenReader(rd)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()
	return r.load(f)
}

// load reads every row twice: once formatted, for the text a user sees,
// and once raw, so numeric cells keep their exact stored value.
func (r *XLSXReader) load(f *excelize.File) (*sheet.Grid, error) {
	name := r.Sheet
	if name == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		name = sheets[0]
	}

	display, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", name, err)
	}
	raw, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", name, err)
	}

	rows := make([][]sheet.Cell, max(len(display), len(raw)))
	for i := range rows {
		d, rw := at(display, i), at(raw, i)
		cells := make([]sheet.Cell, max(len(d), len(rw)))
		for j := range cells {
			c, err := xlsxCell(f, name, i+1, j+1, cellAt(d, j), cellAt(rw, j))
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
			cells[j] = c
		}
		rows[i] = cells
	}
	return sheet.NewGrid(rows), nil
}

func xlsxCell(f *excelize.File, name string, row, col int, text, raw string) (sheet.Cell, error) {
	if raw == "" {
		return sheet.Cell{Text: text}, nil
	}
	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return sheet.Cell{}, err
	}
	typ, err := f.GetCellType(name, ref)
	if err != nil {
		return sheet.Cell{}, fmt.Errorf("cell %s: %w", ref, err)
	}
	// Numeric cells usually carry no type attribute at all.
	if typ == excelize.CellTypeNumber || typ == excelize.CellTypeUnset {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return sheet.Number(v, text), nil
		}
	}
	return sheet.Cell{Text: text, Value: raw}, nil
}

func at(rows [][]string, i int) []string {
	if i < len(rows) {
		return rows[i]
	}
	return nil
}

func cellAt(row []string, j int) string {
	if j < len(row) {
		return row[j]
	}
	return ""
}
