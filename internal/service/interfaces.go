// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/rfq-flow/internal/model"
)

// Drafter is the external mail client. It creates a draft for review and never sends.
type Drafter interface {
	// CreateDraft stores the message as a draft and returns a client-specific identifier.
	CreateDraft(ctx context.Context, msg model.OutboundMessage) (string, error)
	// Name identifies the client in logs and outcome records.
	Name() string
}

// OutcomeLog is an append-only sink for per-vendor outcomes.
type OutcomeLog interface {
	Record(ctx context.Context, outcome model.Outcome) error
	Close() error
}

// OutcomeStore is an OutcomeLog that can also be queried.
type OutcomeStore interface {
	OutcomeLog
	Recent(ctx context.Context, limit int) ([]model.Outcome, error)
	CountByStatus(ctx context.Context, runID string) (map[model.OutcomeStatus]int, error)
	Migrate(ctx context.Context) error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// DefaultRetryOptions mirrors the three-attempt exponential backoff used for mail clients.
func DefaultRetryOptions() RetryOptions {
	return RetryOptions{
		MaxAttempts:  3,
		InitialDelay: 2 * time.Second,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
}
