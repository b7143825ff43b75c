package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/rfq-flow/internal/model"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) (*SQLiteStorage, func()) {
	t.Helper()

	store, err := Open(context.Background(), MemoryPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	return store, func() { _ = store.Close() }
}

func testOutcome(vendor string, status model.OutcomeStatus, at time.Time) model.Outcome {
	return model.Outcome{
		Timestamp:  at,
		RunID:      "run-1",
		QuoteID:    "Q-1001",
		PartNumber: "0250-20000",
		VendorID:   vendor,
		Process:    "Nickel Plating",
		Recipient:  "rfq@" + vendor + ".example",
		DraftID:    "d-" + vendor,
		Status:     status,
	}
}

func TestRecordAndRecent(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, vendor := range []string{"acme", "bright", "coastal"} {
		if err := store.Record(ctx, testOutcome(vendor, model.OutcomeDrafted, base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("Record(%s) failed: %v", vendor, err)
		}
	}

	recent, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Recent returned %d rows, want 2", len(recent))
	}
	if recent[0].VendorID != "coastal" || recent[1].VendorID != "bright" {
		t.Errorf("Recent order = %s, %s; want coastal, bright", recent[0].VendorID, recent[1].VendorID)
	}

	got := recent[0]
	if got.QuoteID != "Q-1001" || got.PartNumber != "0250-20000" || got.Recipient != "rfq@coastal.example" {
		t.Errorf("unexpected row: %+v", got)
	}
	if got.Status != model.OutcomeDrafted || got.DraftID != "d-coastal" || got.RunID != "run-1" {
		t.Errorf("unexpected row: %+v", got)
	}
	if !got.Timestamp.Equal(base.Add(2 * time.Minute)) {
		t.Errorf("Timestamp = %v, want %v", got.Timestamp, base.Add(2*time.Minute))
	}
}

func TestRecordNoVendorSkip(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	outcome := model.Outcome{
		Timestamp: time.Now(),
		QuoteID:   "Q-2",
		Process:   "Unobtainium Coating",
		Status:    model.SkippedNoVendor("Unobtainium Coating"),
	}
	if err := store.Record(ctx, outcome); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	recent, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(recent) != 1 || recent[0].VendorID != "" || !recent[0].Status.IsSkippedNoVendor() {
		t.Errorf("unexpected rows: %+v", recent)
	}
}

func TestCountByStatus(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()
	now := time.Now()

	outcomes := []model.Outcome{
		testOutcome("acme", model.OutcomeDrafted, now),
		testOutcome("bright", model.OutcomeDrafted, now),
		testOutcome("coastal", model.OutcomeFailedDraft, now),
		testOutcome("delta", model.OutcomeSkippedNoContact, now),
	}
	other := testOutcome("acme", model.OutcomeDrafted, now)
	other.RunID = "run-2"
	outcomes = append(outcomes, other)

	for _, o := range outcomes {
		if err := store.Record(ctx, o); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	counts, err := store.CountByStatus(ctx, "run-1")
	if err != nil {
		t.Fatalf("CountByStatus failed: %v", err)
	}
	if counts[model.OutcomeDrafted] != 2 || counts[model.OutcomeFailedDraft] != 1 || counts[model.OutcomeSkippedNoContact] != 1 {
		t.Errorf("run-1 counts = %v", counts)
	}

	all, err := store.CountByStatus(ctx, "")
	if err != nil {
		t.Fatalf("CountByStatus failed: %v", err)
	}
	if all[model.OutcomeDrafted] != 3 {
		t.Errorf("drafted across runs = %d, want 3", all[model.OutcomeDrafted])
	}
}

func TestRecordValidation(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	tests := []struct {
		name    string
		outcome model.Outcome
	}{
		{"missing status", model.Outcome{Timestamp: time.Now(), VendorID: "acme", Process: "Anodizing"}},
		{"missing process", model.Outcome{Timestamp: time.Now(), VendorID: "acme", Status: model.OutcomeDrafted}},
		{"missing vendor", model.Outcome{Timestamp: time.Now(), Process: "Anodizing", Status: model.OutcomeDrafted}},
		{"missing timestamp", model.Outcome{VendorID: "acme", Process: "Anodizing", Status: model.OutcomeDrafted}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := store.Record(ctx, tt.outcome); err == nil {
				t.Error("expected validation error")
			}
		})
	}

	if _, err := store.Recent(ctx, 0); err != ErrInvalidLimit {
		t.Errorf("Recent(0) error = %v, want %v", err, ErrInvalidLimit)
	}
}

func TestNewSQLiteStorageEmptyPath(t *testing.T) {
	if _, err := NewSQLiteStorage("  "); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestFileDatabasePersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "rfq.db")

	store, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := store.Record(ctx, testOutcome("acme", model.OutcomeDrafted, time.Now())); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	_ = store.Close()

	reopened, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	recent, err := reopened.Recent(ctx, 5)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(recent) != 1 {
		t.Errorf("got %d rows after reopen, want 1", len(recent))
	}
}
