package export

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/cleared-dev/extracto/internal/model"
)

const createMovimientos = `CREATE TABLE IF NOT EXISTS movimientos (
	run_id   TEXT    NOT NULL,
	fila     INTEGER NOT NULL,
	fecha    TEXT    NOT NULL,
	concepto TEXT    NOT NULL,
	importe  TEXT    NOT NULL,
	PRIMARY KEY (run_id, fila)
)`

// SQLiteWriter appends records to the movimientos table of a SQLite
// database, tagged with the run that produced them. Amounts are stored as
// decimal text so no precision is lost.
type SQLiteWriter struct {
	RunID string
}

// Format returns the writer name.
func (w *SQLiteWriter) Format() string { return "sqlite" }

// Ext returns the file extension.
func (w *SQLiteWriter) Ext() string { return ".sqlite" }

// Write inserts t's records into the database at path in one transaction.
func (w *SQLiteWriter) Write(path string, t *model.Table) error {
	if w.RunID == "" {
		return errors.New("sqlite writer needs a run id")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(createMovimientos); err != nil {
		return fmt.Errorf("creating table: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO movimientos (run_id, fila, fecha, concepto, importe) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range t.Records {
		if _, err := stmt.Exec(w.RunID, i+1, r.Date, r.Description, r.Amount.StringFixed(2)); err != nil {
			return fmt.Errorf("record %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}
