package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/cleared-dev/extracto/internal/sheet"
)

// CSVReader reads delimited text exports. Every cell is text.
//
// encoding/csv skips empty lines, so a completely empty line does not end
// the movements block; a line of empty fields does.
type CSVReader struct {
	Comma    rune   // defaults to ';'
	Encoding string // "utf-8" (default), "latin1" or "windows-1252"
}

// Format returns the reader name.
func (r *CSVReader) Format() string { return "csv" }

// Read loads the file at path.
func (r *CSVReader) Read(path string) (*sheet.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening csv: %w", err)
	}
	defer f.Close()
	return r.Decode(f)
}

// Decode loads CSV data from rd.
func (r *CSVReader) Decode(rd io.Reader) (*sheet.Grid, error) {
	enc, err := csvEncoding(r.Encoding)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(transform.NewReader(rd, enc.NewDecoder()))
	cr.Comma = r.Comma
	if cr.Comma == 0 {
		cr.Comma = ';'
	}
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}

	rows := make([][]sheet.Cell, len(records))
	for i, rec := range records {
		cells := make([]sheet.Cell, len(rec))
		for j, field := range rec {
			cells[j] = textCell(field)
		}
		rows[i] = cells
	}
	return sheet.NewGrid(rows), nil
}

func csvEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(name) {
	case "", "utf-8", "utf8":
		return unicode.UTF8BOM, nil
	case "latin1", "iso-8859-1":
		return charmap.ISO8859_1, nil
	case "windows-1252":
		return charmap.Windows1252, nil
	default:
		return nil, fmt.Errorf("unknown csv encoding %q", name)
	}
}
