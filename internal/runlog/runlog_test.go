package runlog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

const testRunID = "6f1c2a0e-8d4b-4c3e-9a71-2b5d0f9e7c13"

func testEntry() Entry {
	return Entry{
		Timestamp: testTime,
		RunID:     testRunID,
		Source:    "import/santander.xlsx",
		Output:    "normalized/santander_normalizado.xlsx",
		Records:   42,
		Warnings:  2,
		Status:    StatusOK,
	}
}

func TestAppend_NewFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, []Entry{testEntry()}))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 42, entries[0].Records)

	data, err := os.ReadFile(filepath.Join(dir, "logs", "runs.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), Header+"\n")
}

func TestAppend_ExistingFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, []Entry{testEntry()}))

	e2 := testEntry()
	e2.Source = "import/galicia.csv"
	e2.Output = ""
	e2.Records = 0
	e2.Status = StatusFailed
	e2.Error = "header row not found in rows 1-3"
	require.NoError(t, Append(dir, []Entry{e2}))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, StatusOK, entries[0].Status)
	assert.Equal(t, StatusFailed, entries[1].Status)
	assert.Equal(t, "header row not found in rows 1-3", entries[1].Error)
}

func TestRead_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	original := testEntry()
	original.Error = "quoted, with \"commas\""
	require.NoError(t, Append(dir, []Entry{original}))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	got := entries[0]
	assert.True(t, original.Timestamp.Equal(got.Timestamp))
	got.Timestamp = original.Timestamp
	assert.Equal(t, original, got)
}

func TestRead_NotFound(t *testing.T) {
	entries, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestRead_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "logs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logs", "runs.csv"), []byte(Header+"\n"), 0o644))

	entries, err := Read(dir)
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestRead_BadRow(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "logs"), 0o755))
	data := Header + "\n2025-01-15T10:30:00Z," + testRunID + ",a.xlsx,b.xlsx,many,0,ok,\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logs", "runs.csv"), []byte(data), 0o644))

	_, err := Read(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
	assert.Contains(t, err.Error(), "parsing records")
}

func TestUnmarshalEntry_BadFieldCount(t *testing.T) {
	_, err := UnmarshalEntry([]string{"one", "two"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 8 fields")
}

func TestUnmarshalEntry_BadRunID(t *testing.T) {
	row := MarshalEntry(testEntry())
	row[1] = "not-a-uuid"
	_, err := UnmarshalEntry(row)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run id")
}

func TestMarshalEntry(t *testing.T) {
	row := MarshalEntry(testEntry())
	assert.Equal(t, []string{
		"2025-01-15T10:30:00Z", testRunID,
		"import/santander.xlsx", "normalized/santander_normalizado.xlsx",
		"42", "2", "ok", "",
	}, row)
}

func TestNewRunID_Unique(t *testing.T) {
	a, b := NewRunID(), NewRunID()
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 36)
}
