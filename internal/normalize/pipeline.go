package normalize

import (
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/cleared-dev/extracto/internal/model"
	"github.com/cleared-dev/extracto/internal/sheet"
)

// Normalizer runs header detection, column mapping and amount parsing
// over a sheet. It holds no per-call state and is safe to reuse.
type Normalizer struct {
	rules   Rules
	amounts *AmountParser
	log     logrus.FieldLogger
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithRules replaces the header rule table.
func WithRules(rules Rules) Option {
	return func(n *Normalizer) { n.rules = rules }
}

// WithAmountParser replaces the amount parser.
func WithAmountParser(p *AmountParser) Option {
	return func(n *Normalizer) { n.amounts = p }
}

// WithLogger sets the logger for progress and data-quality messages.
func WithLogger(l logrus.FieldLogger) Option {
	return func(n *Normalizer) { n.log = l }
}

// New creates a Normalizer with DefaultRules, the default AmountParser and
// a silent logger, then applies opts.
func New(opts ...Option) *Normalizer {
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	n := &Normalizer{
		rules:   DefaultRules(),
		amounts: NewAmountParser(),
		log:     quiet,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize reads s into a table with the default settings.
func Normalize(s sheet.Sheet) (*model.Table, error) {
	return New().Normalize(s)
}

// Normalize finds the header, maps its columns and reads every row below
// it until the date column is blank. A missing header or unresolved column
// fails the whole call; no partial table is returned.
//
// Each row's amount is the primary column's value unless that is zero, in
// which case the secondary column's value is used, even when the primary
// cell held an explicit 0.
func (n *Normalizer) Normalize(s sheet.Sheet) (*model.Table, error) {
	headerRow, err := FindHeaderRow(s, n.rules)
	if err != nil {
		return nil, err
	}
	n.log.WithField("row", headerRow).Debug("found header row")

	cols, err := MapColumns(s, headerRow, n.rules)
	if err != nil {
		return nil, err
	}
	n.log.WithFields(logrus.Fields{
		"date":        cols.Date,
		"description": cols.Description,
		"primary":     cols.PrimaryAmount,
		"secondary":   cols.SecondaryAmount,
	}).Debug("mapped columns")

	table := &model.Table{HeaderRow: headerRow}
	last := s.Rows().End
	for row := headerRow + 1; row <= last; row++ {
		dateCell := s.Cell(row, cols.Date)
		if dateCell.IsBlank() {
			n.log.WithField("row", row).Debug("blank date, end of movements")
			break
		}

		primary := n.readAmount(s, row, cols.PrimaryAmount, table)
		secondary := n.readAmount(s, row, cols.SecondaryAmount, table)

		amount := primary
		if amount.IsZero() {
			amount = secondary
		}

		table.Records = append(table.Records, model.Record{
			Date:        strings.TrimSpace(dateCell.Text),
			Description: strings.TrimSpace(s.Cell(row, cols.Description).Text),
			Amount:      amount,
		})
	}
	return table, nil
}

// readAmount parses the cell at row, col; an unmapped column (col 0) is
// an absent value and parses to zero.
func (n *Normalizer) readAmount(s sheet.Sheet, row, col int, table *model.Table) decimal.Decimal {
	if col == 0 {
		return decimal.Zero
	}
	cell := s.Cell(row, col)
	a := n.amounts.Parse(cell.Raw())

	switch {
	case a.Status == StatusDefaulted:
		w := model.Warning{Row: row, Column: col, Raw: cell.Text, Kind: model.WarningDefaulted}
		table.Warnings = append(table.Warnings, w)
		n.log.WithFields(logrus.Fields{"row": row, "col": col, "raw": cell.Text}).Warn("unparsable amount, using 0")
	case a.Corrected:
		w := model.Warning{Row: row, Column: col, Raw: cell.Text, Kind: model.WarningCentsCorrected}
		table.Warnings = append(table.Warnings, w)
		n.log.WithFields(logrus.Fields{"row": row, "col": col, "raw": cell.Text, "amount": a.Value.String()}).Debug("amount read as cents")
	}
	return a.Value
}
