// Package normalize turns a bank "movimientos" sheet with an unpredictable
// layout into an ordered table of (date, description, amount) records.
//
// The work happens in three steps. FindHeaderRow locates the first row
// that names a date, a description and an amount column. MapColumns
// resolves that row into column numbers, allowing for two amount columns
// (savings and checking). Normalizer.Normalize then reads every data row
// below the header until the date column goes blank, parsing amounts with
// an AmountParser that understands Argentine and invariant number styles
// and undoes the "amount exported in cents" quirk.
//
// Everything here is pure: no I/O, no shared mutable state. Reading and
// writing files is the job of the importer and export packages.
package normalize
