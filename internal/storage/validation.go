// Package storage persists the RFQ outcome log.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/rfq-flow/internal/model"
)

// Validation errors.
var (
	ErrNilContext     = errors.New("context cannot be nil")
	ErrEmptyString    = errors.New("string parameter cannot be empty")
	ErrInvalidOutcome = errors.New("invalid outcome")
	ErrInvalidLimit   = errors.New("limit must be positive")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateOutcome checks the fields every outcome row must carry.
// Only no-vendor skips may omit the vendor.
func validateOutcome(outcome *model.Outcome) error {
	if outcome.Status == "" {
		return fmt.Errorf("%w: status is required", ErrInvalidOutcome)
	}
	if strings.TrimSpace(outcome.Process) == "" {
		return fmt.Errorf("%w: process is required", ErrInvalidOutcome)
	}
	if outcome.VendorID == "" && !outcome.Status.IsSkippedNoVendor() {
		return fmt.Errorf("%w: vendor is required for status %s", ErrInvalidOutcome, outcome.Status)
	}
	if outcome.Timestamp.IsZero() {
		return fmt.Errorf("%w: timestamp is required", ErrInvalidOutcome)
	}
	return nil
}
