package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Veraticus/rfq-flow/internal/model"
)

// csvHeader is written once when the log file is created.
var csvHeader = []string{"quote_id", "vendor_id", "timestamp", "status", "part_number", "process", "recipient", "draft_id", "detail", "run_id"}

// CSVLog appends outcomes to a CSV file. Existing rows are never rewritten.
type CSVLog struct {
	file *os.File
	w    *csv.Writer
	mu   sync.Mutex
}

// NewCSVLog opens path for appending, writing the header if the file is new or empty.
func NewCSVLog(path string) (*CSVLog, error) {
	if err := validateString(path, "path"); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("failed to open outcome log: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to stat outcome log: %w", err)
	}

	l := &CSVLog{file: f, w: csv.NewWriter(f)}
	if info.Size() == 0 {
		if err := l.write(csvHeader); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	return l, nil
}

// Record implements service.OutcomeLog.
func (l *CSVLog) Record(ctx context.Context, outcome model.Outcome) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateOutcome(&outcome); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	return l.write([]string{
		outcome.QuoteID,
		outcome.VendorID,
		outcome.Timestamp.UTC().Format(time.RFC3339),
		string(outcome.Status),
		outcome.PartNumber,
		outcome.Process,
		outcome.Recipient,
		outcome.DraftID,
		outcome.Detail,
		outcome.RunID,
	})
}

func (l *CSVLog) write(record []string) error {
	if err := l.w.Write(record); err != nil {
		return fmt.Errorf("failed to write outcome log: %w", err)
	}
	l.w.Flush()
	if err := l.w.Error(); err != nil {
		return fmt.Errorf("failed to flush outcome log: %w", err)
	}
	return nil
}

// Close implements service.OutcomeLog.
func (l *CSVLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Flush()
	return l.file.Close()
}
