package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/cleared-dev/extracto/internal/model"
)

// CSVWriter writes a header line and one line per record, amounts with
// two decimals and '.' as decimal separator.
type CSVWriter struct {
	Comma   rune // defaults to ';'
	Headers []string
}

// Format returns the writer name.
func (w *CSVWriter) Format() string { return "csv" }

// Ext returns the file extension.
func (w *CSVWriter) Ext() string { return ".csv" }

// Write saves t to path.
func (w *CSVWriter) Write(path string, t *model.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating csv: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	cw.Comma = w.Comma
	if cw.Comma == 0 {
		cw.Comma = ';'
	}

	if err := cw.Write(headersOrDefault(w.Headers)); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, r := range t.Records {
		if err := cw.Write([]string{r.Date, r.Description, r.Amount.StringFixed(2)}); err != nil {
			return fmt.Errorf("record %d: %w", i+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return f.Close()
}
