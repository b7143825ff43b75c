package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Veraticus/rfq-flow/internal/model"
)

// Record appends one outcome to the rfq_log table.
func (s *SQLiteStorage) Record(ctx context.Context, outcome model.Outcome) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateOutcome(&outcome); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO rfq_log (quote_no, part_no, process, vendor_name, vendor_email, sent_at, run_id, status, draft_id, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		outcome.QuoteID,
		outcome.PartNumber,
		outcome.Process,
		outcome.VendorID,
		outcome.Recipient,
		outcome.Timestamp.UTC(),
		outcome.RunID,
		string(outcome.Status),
		outcome.DraftID,
		outcome.Detail,
	)
	if err != nil {
		return fmt.Errorf("failed to record outcome: %w", err)
	}
	return nil
}

// Recent returns up to limit outcomes, newest first.
func (s *SQLiteStorage) Recent(ctx context.Context, limit int) ([]model.Outcome, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT quote_no, part_no, process, vendor_name, vendor_email, sent_at, run_id, status, draft_id, detail
		FROM rfq_log
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query outcomes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var outcomes []model.Outcome
	for rows.Next() {
		var (
			o                                        model.Outcome
			quoteNo, partNo, vendorName, vendorEmail sql.NullString
			sentAt                                   time.Time
			status                                   string
		)
		if err := rows.Scan(&quoteNo, &partNo, &o.Process, &vendorName, &vendorEmail, &sentAt,
			&o.RunID, &status, &o.DraftID, &o.Detail); err != nil {
			return nil, fmt.Errorf("failed to scan outcome: %w", err)
		}
		o.QuoteID = quoteNo.String
		o.PartNumber = partNo.String
		o.VendorID = vendorName.String
		o.Recipient = vendorEmail.String
		o.Timestamp = sentAt
		o.Status = model.OutcomeStatus(status)
		outcomes = append(outcomes, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate outcomes: %w", err)
	}

	return outcomes, nil
}

// CountByStatus tallies outcomes per status. An empty runID counts every run.
func (s *SQLiteStorage) CountByStatus(ctx context.Context, runID string) (map[model.OutcomeStatus]int, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT status, COUNT(*) FROM rfq_log`
	var args []any
	if runID != "" {
		query += ` WHERE run_id = ?`
		args = append(args, runID)
	}
	query += ` GROUP BY status`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to count outcomes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[model.OutcomeStatus]int)
	for rows.Next() {
		var (
			status string
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[model.OutcomeStatus(status)] = count
	}
	return counts, rows.Err()
}
