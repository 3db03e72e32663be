package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	traderrors "github.com/rexaitrading/hybrid-ai-trading/internal/errors"
	"github.com/rexaitrading/hybrid-ai-trading/internal/logger"
)

// Record is one audit-trail entry. Every decision that reaches the end of
// the pipeline produces exactly one record, fills and rejections alike.
type Record struct {
	Timestamp int64   `json:"timestamp"`
	Symbol    string  `json:"symbol"`
	Side      string  `json:"side"`
	Size      float64 `json:"size"`
	Price     float64 `json:"price"`
	Status    string  `json:"status"`
	Reason    string  `json:"reason,omitempty"`
	Equity    float64 `json:"equity"`
}

// Writer appends records to a primary and a backup JSONL file. The two
// destinations are independent: a failure on one never prevents the write
// to the other, and no audit failure is ever fatal to trading.
type Writer struct {
	mu          sync.Mutex
	primaryPath string
	backupPath  string
	log         *logger.Logger
}

// NewWriter creates an audit writer. The backup path may be empty to run
// single-destination. Parent directories are created on first use.
func NewWriter(primaryPath, backupPath string, log *logger.Logger) *Writer {
	return &Writer{primaryPath: primaryPath, backupPath: backupPath, log: log}
}

// Append writes the record to both destinations. It returns an error only
// when every destination failed; callers log it and continue.
func (w *Writer) Append(rec Record) error {
	if rec.Timestamp == 0 {
		rec.Timestamp = time.Now().UnixMilli()
	}

	line, err := json.Marshal(rec)
	if err != nil {
		return traderrors.Wrap(err, traderrors.ErrorCategoryAudit, "audit", "marshal")
	}
	line = append(line, '\n')

	w.mu.Lock()
	defer w.mu.Unlock()

	primaryErr := w.appendTo(w.primaryPath, line)
	if primaryErr != nil && w.log != nil {
		w.log.Warning("audit primary write failed: %v", primaryErr)
	}

	var backupErr error
	if w.backupPath != "" {
		backupErr = w.appendTo(w.backupPath, line)
		if backupErr != nil && w.log != nil {
			w.log.Warning("audit backup write failed: %v", backupErr)
		}
	}

	if primaryErr != nil && (w.backupPath == "" || backupErr != nil) {
		return traderrors.Wrap(primaryErr, traderrors.ErrorCategoryAudit, "audit", "append")
	}
	return nil
}

func (w *Writer) appendTo(path string, line []byte) error {
	if path == "" {
		return os.ErrInvalid
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.Write(line)
	return err
}

// ReadAll loads every record from the primary destination, oldest first.
// Intended for reports and tests, not the hot path.
func (w *Writer) ReadAll() ([]Record, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	data, err := os.ReadFile(w.primaryPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, traderrors.Wrap(err, traderrors.ErrorCategoryAudit, "audit", "read")
	}

	var records []Record
	start := 0
	for i, b := range data {
		if b != '\n' {
			continue
		}
		if i > start {
			var rec Record
			if err := json.Unmarshal(data[start:i], &rec); err == nil {
				records = append(records, rec)
			}
		}
		start = i + 1
	}
	return records, nil
}
