package model

import "fmt"

// WarningKind classifies a non-fatal data-quality issue.
type WarningKind string

const (
	// WarningDefaulted means a cell held text that no locale could parse;
	// the amount was taken as zero.
	WarningDefaulted WarningKind = "defaulted"
	// WarningCentsCorrected means a large whole amount was read as cents
	// and divided by 100.
	WarningCentsCorrected WarningKind = "cents-corrected"
)

// Warning points at the cell a WarningKind was raised for.
type Warning struct {
	Row    int
	Column int
	Raw    string
	Kind   WarningKind
}

func (w Warning) String() string {
	return fmt.Sprintf("row %d col %d: %s (%q)", w.Row, w.Column, w.Kind, w.Raw)
}
