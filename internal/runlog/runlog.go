// Package runlog records every normalization run in <repo>/logs/runs.csv.
package runlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is the outcome of a run.
type Status string

const (
	StatusOK     Status = "ok"
	StatusFailed Status = "failed"
)

// Entry is one row in the run log.
type Entry struct {
	Timestamp time.Time
	RunID     string
	Source    string
	Output    string
	Records   int
	Warnings  int
	Status    Status
	Error     string
}

// Header is the CSV header for runs.csv.
const Header = "timestamp,run_id,source,output,records,warnings,status,error"

const (
	numFields   = 8
	logDir      = "logs"
	logFile     = "logs/runs.csv"
	colTime     = 0
	colRunID    = 1
	colSource   = 2
	colOutput   = 3
	colRecords  = 4
	colWarnings = 5
	colStatus   = 6
	colError    = 7
)

// NewRunID returns a fresh identifier for a run.
func NewRunID() string {
	return uuid.NewString()
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTime] = e.Timestamp.Format(time.RFC3339)
	row[colRunID] = e.RunID
	row[colSource] = e.Source
	row[colOutput] = e.Output
	row[colRecords] = strconv.Itoa(e.Records)
	row[colWarnings] = strconv.Itoa(e.Warnings)
	row[colStatus] = string(e.Status)
	row[colError] = e.Error
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTime])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTime], err)
	}
	records, err := strconv.Atoi(record[colRecords])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing records %q: %w", record[colRecords], err)
	}
	warnings, err := strconv.Atoi(record[colWarnings])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing warnings %q: %w", record[colWarnings], err)
	}
	if _, err := uuid.Parse(record[colRunID]); err != nil {
		return Entry{}, fmt.Errorf("parsing run id %q: %w", record[colRunID], err)
	}

	return Entry{
		Timestamp: ts,
		RunID:     record[colRunID],
		Source:    record[colSource],
		Output:    record[colOutput],
		Records:   records,
		Warnings:  warnings,
		Status:    Status(record[colStatus]),
		Error:     record[colError],
	}, nil
}

// Append writes entries to <repoRoot>/logs/runs.csv, creating the file and header if needed.
func Append(repoRoot string, entries []Entry) error {
	dir := filepath.Join(repoRoot, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(repoRoot, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read returns all entries from <repoRoot>/logs/runs.csv.
// Returns nil if the file does not exist.
func Read(repoRoot string) ([]Entry, error) {
	f, err := os.Open(filepath.Join(repoRoot, logFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading run log CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
