package normalize

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/extracto/internal/model"
	"github.com/cleared-dev/extracto/internal/sheet"
)

func TestNormalize_EndToEnd(t *testing.T) {
	s := sheet.FromValues([][]any{
		{"Últimos movimientos"},
		{"Fecha", "Concepto", "Importe Caja"},
		{"01/01/2024", "Pago Luz", 150000.0},
		{"02/01/2024", "Deposito", 200.50},
		{"", "Saldo final", 1234.0},
	})

	tbl, err := Normalize(s)
	require.NoError(t, err)
	require.Len(t, tbl.Records, 2)
	assert.Equal(t, 2, tbl.HeaderRow)

	assert.Equal(t, "01/01/2024", tbl.Records[0].Date)
	assert.Equal(t, "Pago Luz", tbl.Records[0].Description)
	assert.Equal(t, "1500.00", tbl.Records[0].Amount.StringFixed(2))

	assert.Equal(t, "02/01/2024", tbl.Records[1].Date)
	assert.Equal(t, "Deposito", tbl.Records[1].Description)
	assert.Equal(t, "200.50", tbl.Records[1].Amount.StringFixed(2))

	require.Len(t, tbl.Warnings, 1)
	assert.Equal(t, model.Warning{Row: 3, Column: 3, Raw: "150000", Kind: model.WarningCentsCorrected}, tbl.Warnings[0])
}

func TestNormalize_StopsAtBlankDate(t *testing.T) {
	rows := [][]any{{"Fecha", "Descripción", "Importe"}}
	for i := 0; i < 5; i++ {
		rows = append(rows, []any{"0" + string(rune('1'+i)) + "/02/2024", "Mov", float64(i + 1)})
	}
	rows = append(rows,
		[]any{"   ", "Subtotal", 15.0},
		[]any{"10/02/2024", "after the gap", 99.0},
	)

	tbl, err := Normalize(sheet.FromValues(rows))
	require.NoError(t, err)
	require.Len(t, tbl.Records, 5)
	assert.Equal(t, "05/02/2024", tbl.Records[4].Date)
}

func TestNormalize_PrimaryZeroUsesSecondary(t *testing.T) {
	s := sheet.FromValues([][]any{
		{"Fecha", "Descripcion", "Caja de Ahorro", "Cuenta Corriente"},
		{"01/03/2024", "Transferencia", 0.0, 500.00},
		{"02/03/2024", "Compra", -75.5, 10.0},
		{"03/03/2024", "Sin movimiento", nil, nil},
	})

	tbl, err := Normalize(s)
	require.NoError(t, err)
	require.Len(t, tbl.Records, 3)
	assert.Equal(t, "500.00", tbl.Records[0].Amount.StringFixed(2))
	assert.Equal(t, "-75.50", tbl.Records[1].Amount.StringFixed(2))
	assert.True(t, tbl.Records[2].Amount.IsZero())
}

func TestNormalize_TextAmountsAndWarnings(t *testing.T) {
	s := sheet.FromValues([][]any{
		{"Fecha", "Concepto", "Importe $"},
		{" 01/04/2024 ", "  Café  ", "$ -1.234,56"},
		{"02/04/2024", "Ajuste", "s/d"},
	})

	tbl, err := Normalize(s)
	require.NoError(t, err)
	require.Len(t, tbl.Records, 2)
	assert.Equal(t, model.Record{Date: "01/04/2024", Description: "Café", Amount: tbl.Records[0].Amount}, tbl.Records[0])
	assert.Equal(t, "-1234.56", tbl.Records[0].Amount.StringFixed(2))
	assert.True(t, tbl.Records[1].Amount.IsZero())

	require.Len(t, tbl.Warnings, 1)
	assert.Equal(t, model.WarningDefaulted, tbl.Warnings[0].Kind)
	assert.Equal(t, 3, tbl.Warnings[0].Row)
	assert.Equal(t, "s/d", tbl.Warnings[0].Raw)
}

func TestNormalize_HeaderOnly(t *testing.T) {
	tbl, err := Normalize(sheet.FromValues([][]any{{"Fecha", "Concepto", "Importe"}}))
	require.NoError(t, err)
	assert.Empty(t, tbl.Records)
}

func TestNormalize_Errors(t *testing.T) {
	_, err := Normalize(sheet.FromValues([][]any{{"Nada"}, {"útil"}}))
	assert.True(t, errors.Is(err, ErrHeaderNotFound))

	_, err = Normalize(sheet.FromValues([][]any{{"Fecha", "Concepto", "Saldo"}}))
	var nf *HeaderNotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, sheet.Range{Start: 1, End: 1}, nf.Searched)
}

func TestNormalize_CustomRules(t *testing.T) {
	rules := Rules{
		{Slot: SlotDate, Keywords: []string{"fecha"}},
		{Slot: SlotDescription, Keywords: []string{"detalle"}},
		{Slot: SlotPrimaryAmount, Keywords: []string{"monto"}},
	}
	n := New(WithRules(rules))

	_, err := n.Normalize(sheet.FromValues([][]any{{"Fecha", "Concepto", "Importe"}}))
	assert.True(t, errors.Is(err, ErrHeaderNotFound))

	tbl, err := n.Normalize(sheet.FromValues([][]any{
		{"Fecha", "Detalle", "Monto"},
		{"01/01/2024", "Alquiler", "-25.000,00"},
	}))
	require.NoError(t, err)
	require.Len(t, tbl.Records, 1)
	assert.Equal(t, "-25000.00", tbl.Records[0].Amount.StringFixed(2))
}

func TestNormalize_Deterministic(t *testing.T) {
	s := sheet.FromValues([][]any{
		{"Fecha", "Concepto", "Caja de Ahorro", "Cuenta Corriente"},
		{"01/01/2024", "A", "1.500,00", nil},
		{"02/01/2024", "B", nil, 2500000.0},
	})

	first, err := Normalize(s)
	require.NoError(t, err)
	second, err := Normalize(s)
	require.NoError(t, err)

	require.Equal(t, len(first.Records), len(second.Records))
	for i := range first.Records {
		assert.Equal(t, first.Records[i].Date, second.Records[i].Date)
		assert.Equal(t, first.Records[i].Description, second.Records[i].Description)
		assert.True(t, first.Records[i].Amount.Equal(second.Records[i].Amount))
	}
	assert.Equal(t, first.Warnings, second.Warnings)
	assert.Equal(t, "25000.00", first.Records[1].Amount.StringFixed(2))
}

func TestNormalize_LogsWarnings(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetLevel(logrus.DebugLevel)

	s := sheet.FromValues([][]any{
		{"Fecha", "Concepto", "Importe"},
		{"01/01/2024", "A", "???"},
	})
	_, err := New(WithLogger(log)).Normalize(s)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "found header row")
	assert.Contains(t, out, "unparsable amount")
}
