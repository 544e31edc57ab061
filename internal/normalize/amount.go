package normalize

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Status says how an Amount was obtained.
type Status int

const (
	// StatusEmpty means there was nothing to parse.
	StatusEmpty Status = iota
	// StatusParsed means the value came from a typed cell or from text
	// one of the parser's locales accepted.
	StatusParsed
	// StatusDefaulted means the cell held text no locale accepted and the
	// value was taken as zero.
	StatusDefaulted
)

// Amount is the outcome of parsing one cell.
type Amount struct {
	Value     decimal.Decimal
	Status    Status
	Corrected bool // divided by 100 by the cents rule
}

// DefaultCentsThreshold is the magnitude above which a whole amount is
// assumed to be in cents.
var DefaultCentsThreshold = decimal.NewFromInt(100000)

// MaxAmount is the largest magnitude an amount may have, the range of a
// 96-bit decimal. Anything larger is treated as unparsable.
var MaxAmount = decimal.RequireFromString("79228162514264337593543950335")

var textStripper = strings.NewReplacer("$", "", " ", "", "\u00a0", "")

// AmountParser converts raw cell values into amounts. Locales are tried in
// order and the first to accept the text wins.
type AmountParser struct {
	Locales        []Locale
	CentsThreshold decimal.Decimal
}

// NewAmountParser returns a parser trying locales in order, falling back to
// es-AR then invariant when none are given.
func NewAmountParser(locales ...Locale) *AmountParser {
	if len(locales) == 0 {
		locales = []Locale{ArgentineSpanish, Invariant}
	}
	return &AmountParser{Locales: locales, CentsThreshold: DefaultCentsThreshold}
}

var defaultParser = NewAmountParser()

// ParseAmount parses raw with the default parser and returns only the
// value. It never fails; unparsable input yields zero.
func ParseAmount(raw any) decimal.Decimal {
	return defaultParser.Parse(raw).Value
}

// Parse converts raw into an Amount. Typed numbers are used as they are;
// everything else is parsed as text. Whole values above CentsThreshold are
// divided by 100, since these exports sometimes store 14332.50 as 1433250.
func (p *AmountParser) Parse(raw any) Amount {
	var a Amount
	switch v := raw.(type) {
	case nil:
		return a
	case decimal.Decimal:
		a = parsed(v)
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Amount{Status: StatusDefaulted}
		}
		a = parsed(decimal.NewFromFloat(v))
	case float32:
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return Amount{Status: StatusDefaulted}
		}
		a = parsed(decimal.NewFromFloat32(v))
	case int:
		a = parsed(decimal.NewFromInt(int64(v)))
	case int32:
		a = parsed(decimal.NewFromInt32(v))
	case int64:
		a = parsed(decimal.NewFromInt(v))
	case string:
		a = p.parseText(v)
	case fmt.Stringer:
		a = p.parseText(v.String())
	default:
		a = p.parseText(fmt.Sprint(v))
	}

	if a.Status == StatusParsed && !inRange(a.Value) {
		return Amount{Status: StatusDefaulted}
	}
	if a.Status == StatusParsed && p.isCents(a.Value) {
		a.Value = a.Value.Shift(-2)
		a.Corrected = true
	}
	return a
}

func (p *AmountParser) parseText(s string) Amount {
	s = textStripper.Replace(strings.TrimSpace(s))
	if s == "" {
		return Amount{}
	}
	for _, l := range p.Locales {
		if d, ok := l.Parse(s); ok {
			return parsed(d)
		}
	}
	return Amount{Status: StatusDefaulted}
}

func (p *AmountParser) isCents(d decimal.Decimal) bool {
	threshold := p.CentsThreshold
	if threshold.IsZero() {
		threshold = DefaultCentsThreshold
	}
	return d.Abs().GreaterThan(threshold) && d.IsInteger()
}

// inRange reports whether |d| <= MaxAmount. The digit count is checked
// first so a huge exponent is never expanded.
func inRange(d decimal.Decimal) bool {
	if d.IsZero() {
		return true
	}
	if d.NumDigits()+int(d.Exponent()) > MaxAmount.NumDigits() {
		return false
	}
	return d.Abs().LessThanOrEqual(MaxAmount)
}

func parsed(d decimal.Decimal) Amount {
	return Amount{Value: d, Status: StatusParsed}
}
