package model

import "github.com/shopspring/decimal"

// Record is one normalized statement movement.
type Record struct {
	Date        string // as displayed in the source, never reformatted
	Description string
	Amount      decimal.Decimal // negative = debit, positive = credit
}

// Table is the ordered result of normalizing one sheet.
type Table struct {
	HeaderRow int // 1-indexed row the header was found on
	Records   []Record
	Warnings  []Warning
}

// Len returns the number of records.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// Total returns the sum of all record amounts.
func (t *Table) Total() decimal.Decimal {
	total := decimal.Zero
	if t == nil {
		return total
	}
	for _, r := range t.Records {
		total = total.Add(r.Amount)
	}
	return total
}
