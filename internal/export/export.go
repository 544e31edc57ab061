// Package export writes normalized tables to files.
package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cleared-dev/extracto/internal/model"
)

// Writer writes a normalized table to path, replacing any existing file
// unless the format appends.
type Writer interface {
	Write(path string, t *model.Table) error
	Format() string
	Ext() string
}

// DefaultHeaders are the column titles of the normalized output.
var DefaultHeaders = []string{"Fecha", "Concepto", "Importe"}

// Options configures the writers returned by New.
type Options struct {
	SheetName string   // xlsx
	Headers   []string // xlsx, csv
	Comma     rune     // csv
	RunID     string   // sqlite
}

// Formats lists the supported output formats.
func Formats() []string {
	return []string{"xlsx", "csv", "sqlite"}
}

// New returns the writer for format.
func New(format string, opts Options) (Writer, error) {
	switch strings.ToLower(format) {
	case "xlsx":
		return &XLSXWriter{SheetName: opts.SheetName, Headers: opts.Headers}, nil
	case "csv":
		return &CSVWriter{Comma: opts.Comma, Headers: opts.Headers}, nil
	case "sqlite":
		return &SQLiteWriter{RunID: opts.RunID}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want one of %s)", format, strings.Join(Formats(), ", "))
	}
}

// OutputPath derives the output file name from the source file:
// <dir>/<base><suffix><ext>.
func OutputPath(src, suffix, ext string) string {
	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	return filepath.Join(filepath.Dir(src), base+suffix+ext)
}

func headersOrDefault(h []string) []string {
	if len(h) != len(DefaultHeaders) {
		return DefaultHeaders
	}
	return h
}
