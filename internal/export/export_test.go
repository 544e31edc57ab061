package export

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/cleared-dev/extracto/internal/model"
)

func testTable() *model.Table {
	return &model.Table{
		HeaderRow: 4,
		Records: []model.Record{
			{Date: "01/01/2024", Description: "Pago Luz", Amount: decimal.RequireFromString("-14332.50")},
			{Date: "02/01/2024", Description: "Deposito; sucursal", Amount: decimal.RequireFromString("200.5")},
		},
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		src, suffix, ext, want string
	}{
		{"/data/santander.xlsx", "_normalizado", ".xlsx", "/data/santander_normalizado.xlsx"},
		{"/data/galicia.csv", "_normalizado", ".sqlite", "/data/galicia_normalizado.sqlite"},
		{"extracto.2024.xls", "", ".csv", "extracto.2024.csv"},
		{"noext", "_out", ".xlsx", "noext_out.xlsx"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, OutputPath(tt.src, tt.suffix, tt.ext), tt.src)
	}
}

func TestNew(t *testing.T) {
	for _, f := range Formats() {
		w, err := New(f, Options{RunID: "r"})
		require.NoError(t, err, f)
		assert.Equal(t, f, w.Format())
		assert.Equal(t, "."+f, w.Ext())
	}

	_, err := New("pdf", Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestXLSXWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	w := &XLSXWriter{SheetName: "Movs", Headers: []string{"Date", "Text", "Amount"}}
	require.NoError(t, w.Write(path, testTable()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Movs"}, f.GetSheetList())

	raw, err := f.GetRows("Movs", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, raw, 3)
	assert.Equal(t, []string{"Date", "Text", "Amount"}, raw[0])
	assert.Equal(t, []string{"01/01/2024", "Pago Luz", "-14332.5"}, raw[1])
	assert.Equal(t, "200.5", raw[2][2])

	shown, err := f.GetCellValue("Movs", "C2")
	require.NoError(t, err)
	assert.Equal(t, "-14,332.50", shown)
}

func TestXLSXWriter_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, (&XLSXWriter{}).Write(path, &model.Table{}))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Normalizado")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, DefaultHeaders, rows[0])
}

func TestCSVWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, (&CSVWriter{}).Write(path, testTable()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"Fecha;Concepto;Importe\n"+
			"01/01/2024;Pago Luz;-14332.50\n"+
			"02/01/2024;\"Deposito; sucursal\";200.50\n",
		string(data))
}

func TestCSVWriter_Comma(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, (&CSVWriter{Comma: ','}).Write(path, testTable()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "02/01/2024,Deposito; sucursal,200.50\n")
}

func TestSQLiteWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.sqlite")
	require.NoError(t, (&SQLiteWriter{RunID: "run-1"}).Write(path, testTable()))
	require.NoError(t, (&SQLiteWriter{RunID: "run-2"}).Write(path, testTable()))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM movimientos`).Scan(&n))
	assert.Equal(t, 4, n)

	var fecha, concepto, importe string
	require.NoError(t, db.QueryRow(
		`SELECT fecha, concepto, importe FROM movimientos WHERE run_id = ? AND fila = ?`, "run-2", 1,
	).Scan(&fecha, &concepto, &importe))
	assert.Equal(t, "01/01/2024", fecha)
	assert.Equal(t, "Pago Luz", concepto)
	assert.Equal(t, "-14332.50", importe)
}

func TestSQLiteWriter_SameRunTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.sqlite")
	w := &SQLiteWriter{RunID: "run-1"}
	require.NoError(t, w.Write(path, testTable()))

	err := w.Write(path, testTable())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record 1")
}

func TestSQLiteWriter_NeedsRunID(t *testing.T) {
	err := (&SQLiteWriter{}).Write(filepath.Join(t.TempDir(), "x.sqlite"), testTable())
	assert.Error(t, err)
}
