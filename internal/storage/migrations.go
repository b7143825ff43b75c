package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 2

// ErrSchemaTooNew is returned when the database was written by a newer rfq.
var ErrSchemaTooNew = errors.New("database schema is newer than this build")

// Migration is one schema step, applied in a single transaction.
type Migration struct {
	Description string
	Statements  []string
	Version     int
}

func (m Migration) apply(tx *sql.Tx) error {
	for _, stmt := range m.Statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}
	_, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", m.Version))
	if err != nil {
		return fmt.Errorf("failed to update schema version: %w", err)
	}
	return nil
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial RFQ log",
		Statements: []string{
			`CREATE TABLE IF NOT EXISTS rfq_log (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				quote_no TEXT,
				part_no TEXT,
				process TEXT NOT NULL,
				vendor_name TEXT,
				vendor_email TEXT,
				sent_at DATETIME NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_rfq_log_sent_at ON rfq_log(sent_at)`,
		},
	},
	{
		Version:     2,
		Description: "Record run id, outcome status and draft id",
		Statements: []string{
			`ALTER TABLE rfq_log ADD COLUMN run_id TEXT NOT NULL DEFAULT ''`,
			`ALTER TABLE rfq_log ADD COLUMN status TEXT NOT NULL DEFAULT 'drafted'`,
			`ALTER TABLE rfq_log ADD COLUMN draft_id TEXT NOT NULL DEFAULT ''`,
			`ALTER TABLE rfq_log ADD COLUMN detail TEXT NOT NULL DEFAULT ''`,
			`CREATE INDEX IF NOT EXISTS idx_rfq_log_run ON rfq_log(run_id, status)`,
		},
	},
}

// Migrate applies all pending database migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	current, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}
	if current > ExpectedSchemaVersion {
		return fmt.Errorf("%w: database at version %d, build supports %d", ErrSchemaTooNew, current, ExpectedSchemaVersion)
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		if err := m.apply(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", m.Version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
		}

		slog.Debug("Applied migration",
			"version", m.Version,
			"description", m.Description)
	}

	final, err := s.SchemaVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}
	if final != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, final)
	}

	return nil
}

// SchemaVersion reports the database's current user_version.
func (s *SQLiteStorage) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}
