// Package common provides shared utilities and types used across the application.
package common

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrMailClient wraps failures reported by a mail client.
	ErrMailClient = errors.New("mail client error")
	// ErrMailRateLimit marks a mail client refusing work until later.
	ErrMailRateLimit = errors.New("mail client rate limit exceeded")

	// ErrMissingConfig is returned when a required setting is absent.
	ErrMissingConfig = errors.New("missing configuration")
	// ErrInvalidConfig is returned when a setting cannot be used as given.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError carries a message meant for the person running the command
// alongside the underlying cause.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// IsRetryable reports whether another attempt at the failed operation may succeed.
// Errors that were never classified are treated as permanent.
func IsRetryable(err error) bool {
	var classified *RetryableError
	if errors.As(err, &classified) {
		return classified.Retryable
	}
	return errors.Is(err, ErrMailRateLimit) || errors.Is(err, context.DeadlineExceeded)
}
