package normalize

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Locale is a number-formatting convention.
type Locale struct {
	Name    string
	Decimal byte
	Group   byte
}

var (
	// ArgentineSpanish writes 1.234,56.
	ArgentineSpanish = Locale{Name: "es-AR", Decimal: ',', Group: '.'}
	// Invariant writes 1,234.56.
	Invariant = Locale{Name: "invariant", Decimal: '.', Group: ','}
)

// MaxExponent bounds the exponent accepted in text like "1,5e3".
const MaxExponent = 28

var knownLocales = []Locale{ArgentineSpanish, Invariant}

// LocaleByName looks up a known locale, ignoring case.
func LocaleByName(name string) (Locale, bool) {
	for _, l := range knownLocales {
		if strings.EqualFold(l.Name, name) {
			return l, true
		}
	}
	return Locale{}, false
}

// Parse reads s as a number written in l. It accepts a leading or
// trailing sign, parentheses for negatives, thousands groups of three in
// the integer part, one decimal separator, and an exponent of at most
// MaxExponent either way. Anything else fails, which is what lets a caller fall back to another locale: under
// es-AR "1234.56" has a malformed group and is rejected.
func (l Locale) Parse(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)

	neg := false
	switch {
	case len(s) >= 2 && s[0] == '(' && s[len(s)-1] == ')':
		neg = true
		s = s[1 : len(s)-1]
	case strings.HasPrefix(s, "-"):
		neg = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	case strings.HasSuffix(s, "-"):
		neg = true
		s = s[:len(s)-1]
	case strings.HasSuffix(s, "+"):
		s = s[:len(s)-1]
	}

	mantissa, exp := s, ""
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		mantissa, exp = s[:i], s[i+1:]
		if !isExponent(exp) {
			return decimal.Decimal{}, false
		}
		if n, err := strconv.Atoi(exp); err != nil || n > MaxExponent || n < -MaxExponent {
			return decimal.Decimal{}, false
		}
	}

	intPart, fracPart := mantissa, ""
	if i := strings.IndexByte(mantissa, l.Decimal); i >= 0 {
		intPart, fracPart = mantissa[:i], mantissa[i+1:]
		if !allDigits(fracPart) {
			return decimal.Decimal{}, false
		}
	}

	intDigits, ok := l.ungroup(intPart)
	if !ok || intDigits == "" && fracPart == "" {
		return decimal.Decimal{}, false
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	if intDigits == "" {
		intDigits = "0"
	}
	b.WriteString(intDigits)
	if fracPart != "" {
		b.WriteByte('.')
		b.WriteString(fracPart)
	}
	if exp != "" {
		b.WriteByte('e')
		b.WriteString(exp)
	}

	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// ungroup removes group separators from the integer part, requiring a
// leading group of one to three digits followed by groups of exactly three.
func (l Locale) ungroup(s string) (string, bool) {
	if strings.IndexByte(s, l.Group) < 0 {
		return s, allDigits(s)
	}
	groups := strings.Split(s, string(l.Group))
	if n := len(groups[0]); n < 1 || n > 3 {
		return "", false
	}
	for i, g := range groups {
		if !allDigits(g) || i > 0 && len(g) != 3 {
			return "", false
		}
	}
	return strings.Join(groups, ""), true
}

func isExponent(s string) bool {
	if s != "" && (s[0] == '-' || s[0] == '+') {
		s = s[1:]
	}
	return s != "" && allDigits(s)
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
