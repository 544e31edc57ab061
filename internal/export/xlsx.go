package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/cleared-dev/extracto/internal/model"
)

// amountNumFmt is the built-in "#,##0.00" number format.
const amountNumFmt = 4

// XLSXWriter writes a single-sheet workbook: a header row, then one row
// per record with the amount stored as a number.
type XLSXWriter struct {
	SheetName string // defaults to "Normalizado"
	Headers   []string
}

// Format returns the writer name.
func (w *XLSXWriter) Format() string { return "xlsx" }

// Ext returns the file extension.
func (w *XLSXWriter) Ext() string { return ".xlsx" }

// Write saves t to path.
func (w *XLSXWriter) Write(path string, t *model.Table) error {
	name := w.SheetName
	if name == "" {
		name = "Normalizado"
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	header := make([]any, 0, 3)
	for _, h := range headersOrDefault(w.Headers) {
		header = append(header, h)
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	if err := f.SetCellStyle(name, "A1", "C1", bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	for i, r := range t.Records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{r.Date, r.Description, r.Amount.InexactFloat64()}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("record %d: %w", i+1, err)
		}
	}

	if n := t.Len(); n > 0 {
		amount, err := f.NewStyle(&excelize.Style{NumFmt: amountNumFmt})
		if err != nil {
			return fmt.Errorf("creating amount style: %w", err)
		}
		if err := f.SetCellStyle(name, "C2", fmt.Sprintf("C%d", n+1), amount); err != nil {
			return fmt.Errorf("styling amounts: %w", err)
		}
	}

	for col, width := range map[string]float64{"A": 12, "B": 48, "C": 16} {
		if err := f.SetColWidth(name, col, col, width); err != nil {
			return fmt.Errorf("sizing column %s: %w", col, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}
