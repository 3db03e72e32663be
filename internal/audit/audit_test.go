package audit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendAndReadBack(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(filepath.Join(dir, "audit.jsonl"), "", nil)

	require.NoError(t, w.Append(Record{
		Timestamp: 1718064000000,
		Symbol:    "BTCUSDT",
		Side:      "BUY",
		Size:      2,
		Price:     50000,
		Status:    "filled",
		Equity:    100000,
	}))
	require.NoError(t, w.Append(Record{
		Timestamp: 1718067600000,
		Symbol:    "BTCUSDT",
		Side:      "SELL",
		Size:      1,
		Price:     51000,
		Status:    "blocked",
		Reason:    "DAILY_LOSS",
		Equity:    99000,
	}))

	records, err := w.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "BUY", records[0].Side)
	assert.Equal(t, "DAILY_LOSS", records[1].Reason)
	assert.Equal(t, 99000.0, records[1].Equity)
}

func TestBothDestinationsWritten(t *testing.T) {
	dir := t.TempDir()
	primary := filepath.Join(dir, "primary.jsonl")
	backup := filepath.Join(dir, "backup.jsonl")
	w := NewWriter(primary, backup, nil)

	require.NoError(t, w.Append(Record{Symbol: "ETHUSDT", Status: "filled"}))

	p, err := os.ReadFile(primary)
	require.NoError(t, err)
	b, err := os.ReadFile(backup)
	require.NoError(t, err)
	assert.Equal(t, p, b)
}

func TestBackupSurvivesPrimaryFailure(t *testing.T) {
	dir := t.TempDir()
	backup := filepath.Join(dir, "backup.jsonl")

	// A directory at the primary path makes the primary open fail.
	primary := filepath.Join(dir, "blocked")
	require.NoError(t, os.MkdirAll(primary, 0o755))

	w := NewWriter(primary, backup, nil)
	err := w.Append(Record{Symbol: "BTCUSDT", Status: "filled"})
	assert.NoError(t, err)

	b, readErr := os.ReadFile(backup)
	require.NoError(t, readErr)
	assert.NotEmpty(t, b)
}

func TestAllDestinationsFailingReturnsError(t *testing.T) {
	dir := t.TempDir()
	primary := filepath.Join(dir, "blocked1")
	backup := filepath.Join(dir, "blocked2")
	require.NoError(t, os.MkdirAll(primary, 0o755))
	require.NoError(t, os.MkdirAll(backup, 0o755))

	w := NewWriter(primary, backup, nil)
	assert.Error(t, w.Append(Record{Symbol: "BTCUSDT"}))
}

func TestReadAllMissingFileIsEmpty(t *testing.T) {
	w := NewWriter(filepath.Join(t.TempDir(), "missing.jsonl"), "", nil)
	records, err := w.ReadAll()
	assert.NoError(t, err)
	assert.Empty(t, records)
}

func TestAppendFillsTimestamp(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(filepath.Join(dir, "audit.jsonl"), "", nil)

	require.NoError(t, w.Append(Record{Symbol: "BTCUSDT", Status: "filled"}))
	records, err := w.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.NotZero(t, records[0].Timestamp)
}

func TestCreatesParentDirectories(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b", "audit.jsonl")
	w := NewWriter(nested, "", nil)

	require.NoError(t, w.Append(Record{Symbol: "BTCUSDT", Status: "filled"}))
	_, err := os.Stat(nested)
	assert.NoError(t, err)
}
