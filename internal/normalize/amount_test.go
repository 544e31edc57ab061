package normalize

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want string
	}{
		{"nil", nil, "0.00"},
		{"typed float", 200.50, "200.50"},
		{"typed negative float", -45.3, "-45.30"},
		{"typed decimal", decimal.RequireFromString("-12.34"), "-12.34"},
		{"typed int", 250, "250.00"},
		{"argentine text", "1.234,56", "1234.56"},
		{"invariant fallback", "1234.56", "1234.56"},
		{"invariant grouped", "1,234.56", "1234.56"},
		{"small invariant", "12.50", "12.50"},
		{"currency and spaces", " $ -1.500,00 ", "-1500.00"},
		{"interior spaces", "1 234,56", "1234.56"},
		{"non-breaking space", "$ 1.234,56", "1234.56"},
		{"empty", "", "0.00"},
		{"only currency", " $ ", "0.00"},
		{"garbage", "N/A", "0.00"},
		{"cents as text", "1433250", "14332.50"},
		{"cents negative", "-1433250", "-14332.50"},
		{"huge exponent", "1e999999999", "0.00"},
		{"tiny exponent", "1e-999999999", "0.00"},
		{"exponent past decimal range", "1e30", "0.00"},
		{"too many digits", "100000000000000000000000000000", "0.00"},
		{"typed float past decimal range", 1e300, "0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAmount(tt.raw).StringFixed(2))
		})
	}
}

func TestParseAmount_CentsCorrection(t *testing.T) {
	assert.True(t, ParseAmount(1433250.0).Equal(decimal.RequireFromString("14332.50")))
	assert.True(t, ParseAmount(1433250).Equal(decimal.RequireFromString("14332.50")))
	assert.True(t, ParseAmount(1433250.75).Equal(decimal.RequireFromString("1433250.75")))
	assert.True(t, ParseAmount(99999.0).Equal(decimal.NewFromInt(99999)))
	assert.True(t, ParseAmount(100000.0).Equal(decimal.NewFromInt(100000)))
	assert.True(t, ParseAmount(100001.0).Equal(decimal.RequireFromString("1000.01")))
	assert.True(t, ParseAmount(-150000.0).Equal(decimal.NewFromInt(-1500)))
}

func TestAmountParser_Status(t *testing.T) {
	p := NewAmountParser()

	assert.Equal(t, StatusEmpty, p.Parse(nil).Status)
	assert.Equal(t, StatusEmpty, p.Parse("  ").Status)
	assert.Equal(t, StatusParsed, p.Parse("12,5").Status)
	assert.Equal(t, StatusDefaulted, p.Parse("doce").Status)
	assert.Equal(t, StatusDefaulted, p.Parse(math.NaN()).Status)
	assert.Equal(t, StatusDefaulted, p.Parse(math.Inf(1)).Status)

	a := p.Parse(1433250.0)
	assert.Equal(t, StatusParsed, a.Status)
	assert.True(t, a.Corrected)
	assert.False(t, p.Parse(1433250.75).Corrected)
}

func TestAmountParser_OutOfRange(t *testing.T) {
	p := NewAmountParser()
	for _, raw := range []any{"1e999999999", "-1e999999999", "1e30", "1e-29", "1,5e999999", 1e300} {
		a := p.Parse(raw)
		assert.Equal(t, StatusDefaulted, a.Status, "%v", raw)
		assert.True(t, a.Value.IsZero(), "%v", raw)
	}

	// The largest 96-bit decimal still parses, then the cents rule applies.
	a := p.Parse("79228162514264337593543950335")
	assert.Equal(t, StatusParsed, a.Status)
	assert.True(t, a.Corrected)
	assert.Equal(t, "792281625142643375935439503.35", a.Value.String())

	a = p.Parse("1e28")
	assert.Equal(t, StatusParsed, a.Status)
	assert.Equal(t, "100000000000000000000000000", a.Value.String())
}

func TestAmountParser_LocaleOrder(t *testing.T) {
	// With only the invariant locale, Argentine text no longer parses.
	p := NewAmountParser(Invariant)
	assert.Equal(t, StatusDefaulted, p.Parse("1.234,56").Status)
	assert.Equal(t, "1234.56", p.Parse("1,234.56").Value.StringFixed(2))

	// Invariant first reads "1,500" as fifteen hundred; es-AR first reads 1.5.
	assert.Equal(t, "1500.00", NewAmountParser(Invariant, ArgentineSpanish).Parse("1,500").Value.StringFixed(2))
	assert.Equal(t, "1.50", NewAmountParser(ArgentineSpanish, Invariant).Parse("1,500").Value.StringFixed(2))
}

func TestAmountParser_Threshold(t *testing.T) {
	p := NewAmountParser()
	p.CentsThreshold = decimal.NewFromInt(1000)

	assert.Equal(t, "15.00", p.Parse(1500.0).Value.StringFixed(2))
	assert.Equal(t, "999.00", p.Parse(999.0).Value.StringFixed(2))
}

func TestParseAmount_WholeTextWithZeroDecimalsIsCents(t *testing.T) {
	// "250.000,00" has no fractional value, so the cents rule applies.
	assert.Equal(t, "2500.00", ParseAmount("250.000,00").StringFixed(2))
	assert.Equal(t, "250000.50", ParseAmount("250.000,50").StringFixed(2))
}
