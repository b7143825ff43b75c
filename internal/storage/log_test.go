package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/rfq-flow/internal/model"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = f.Close() }()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return rows
}

func TestCSVLogAppends(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "logs", "rfq_log.csv")
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	l, err := NewCSVLog(path)
	if err != nil {
		t.Fatalf("NewCSVLog failed: %v", err)
	}
	if err := l.Record(ctx, testOutcome("acme", model.OutcomeDrafted, at)); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// Reopening must not repeat the header.
	l, err = NewCSVLog(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if err := l.Record(ctx, testOutcome("bright", model.OutcomeFailedDraft, at)); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	_ = l.Close()

	rows := readCSV(t, path)
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3: %v", len(rows), rows)
	}
	if rows[0][0] != "quote_id" || rows[0][3] != "status" {
		t.Errorf("header = %v", rows[0])
	}
	want := []string{"Q-1001", "acme", "2024-03-01T09:00:00Z", "drafted"}
	for i, v := range want {
		if rows[1][i] != v {
			t.Errorf("row 1 col %d = %q, want %q", i, rows[1][i], v)
		}
	}
	if rows[2][1] != "bright" || rows[2][3] != "failed_draft" {
		t.Errorf("row 2 = %v", rows[2])
	}
}

type failingLog struct {
	closed bool
}

func (f *failingLog) Record(context.Context, model.Outcome) error { return errors.New("disk full") }
func (f *failingLog) Close() error {
	f.closed = true
	return errors.New("close failed")
}

func TestMultiLogSurvivesFailingSink(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	bad := &failingLog{}
	m := NewMultiLog(nil, bad, nil, store)

	if err := m.Record(ctx, testOutcome("acme", model.OutcomeDrafted, time.Now())); err != nil {
		t.Fatalf("Record returned %v, want nil", err)
	}

	recent, err := store.Recent(ctx, 5)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(recent) != 1 {
		t.Errorf("healthy sink got %d rows, want 1", len(recent))
	}

	if err := (&MultiLog{sinks: m.sinks[:1]}).Close(); err == nil {
		t.Error("expected close error from failing sink")
	}
	if !bad.closed {
		t.Error("failing sink was not closed")
	}
}
