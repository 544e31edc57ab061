package importer

import (
	"errors"
	"fmt"

	"github.com/shakinm/xlsReader/helpers"
	"github.com/shakinm/xlsReader/xls"
	"github.com/shakinm/xlsReader/xls/structure"

	"github.com/cleared-dev/extracto/internal/sheet"
)

// XLSReader reads legacy BIFF8 (.xls) workbooks, which is what older
// home-banking sites still hand out. Only the first worksheet is read.
// Number and RK records become typed cells; everything else is text.
type XLSReader struct{}

// Format returns the reader name.
func (r *XLSReader) Format() string { return "xls" }

// Read loads the first worksheet of the workbook at path.
func (r *XLSReader) Read(path string) (*sheet.Grid, error) {
	wb, err := xls.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	if wb.GetNumberSheets() == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	ws, err := wb.GetSheet(0)
	if err != nil {
		return nil, fmt.Errorf("reading first sheet: %w", err)
	}

	// Missing rows stay as empty rows so row numbers match the file.
	var rows [][]sheet.Cell
	for i := 0; i < ws.GetNumberRows(); i++ {
		row, err := ws.GetRow(i)
		if err != nil || row == nil {
			rows = append(rows, nil)
			continue
		}
		var cells []sheet.Cell
		for _, col := range row.GetCols() {
			if col == nil {
				cells = append(cells, sheet.Cell{})
				continue
			}
			cells = append(cells, xlsCell(&wb, col))
		}
		rows = append(rows, cells)
	}
	return sheet.NewGrid(trimTrailingEmpty(rows)), nil
}

// builtinDateFormats are the BIFF built-in number formats that show a
// date. The workbook carries no FORMAT record for them.
var builtinDateFormats = map[int]string{
	14: "02/01/2006",
	15: "02-Jan-06",
	16: "02-Jan",
	17: "Jan-06",
	22: "02/01/2006 15:04",
}

func xlsCell(wb *xls.Workbook, col structure.CellData) sheet.Cell {
	switch col.GetType() {
	case "*record.Number", "*record.Rk":
	default:
		return textCell(col.GetString())
	}

	v := col.GetFloat64()
	xf := wb.GetXFbyIndex(col.GetXFIndex())
	idx := xf.GetFormatIndex()
	if layout, ok := builtinDateFormats[idx]; ok {
		return sheet.Number(v, helpers.TimeFromExcelTime(v, false).Format(layout))
	}
	format := wb.GetFormatByIndex(idx)
	return sheet.Number(v, format.GetFormatString(col))
}

func textCell(s string) sheet.Cell {
	if s == "" {
		return sheet.Cell{}
	}
	return sheet.Text(s)
}

func trimTrailingEmpty(rows [][]sheet.Cell) [][]sheet.Cell {
	for len(rows) > 0 && rowIsEmpty(rows[len(rows)-1]) {
		rows = rows[:len(rows)-1]
	}
	return rows
}

func rowIsEmpty(cells []sheet.Cell) bool {
	for _, c := range cells {
		if !c.IsBlank() {
			return false
		}
	}
	return true
}
