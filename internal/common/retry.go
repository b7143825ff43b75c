package common

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/rfq-flow/internal/service"
)

// ErrMaxRetries indicates that all retry attempts have been exhausted.
var ErrMaxRetries = errors.New("max retries exceeded")

// RetryableError records whether a classified failure is worth another attempt.
type RetryableError struct {
	Err       error
	Retryable bool
}

func (e *RetryableError) Error() string {
	return e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err, Retryable: false}
}

// Transient marks err as worth retrying.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err, Retryable: true}
}

// normalize fills unset retry options with the mail client defaults.
func normalize(opts service.RetryOptions) service.RetryOptions {
	def := service.DefaultRetryOptions()
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = def.MaxAttempts
	}
	if opts.InitialDelay <= 0 {
		opts.InitialDelay = def.InitialDelay
	}
	if opts.MaxDelay <= 0 {
		opts.MaxDelay = def.MaxDelay
	}
	if opts.MaxDelay < opts.InitialDelay {
		opts.MaxDelay = opts.InitialDelay
	}
	if opts.Multiplier < 1 {
		opts.Multiplier = def.Multiplier
	}
	return opts
}

// Backoff returns the wait after the given failed attempt (1-based).
// A rate-limited failure waits the maximum delay.
func Backoff(opts service.RetryOptions, attempt int, err error) time.Duration {
	opts = normalize(opts)
	if errors.Is(err, ErrMailRateLimit) {
		return opts.MaxDelay
	}

	delay := float64(opts.InitialDelay)
	for i := 1; i < attempt; i++ {
		delay *= opts.Multiplier
		if delay >= float64(opts.MaxDelay) {
			return opts.MaxDelay
		}
	}
	return time.Duration(delay)
}

// WithRetry runs operation until it succeeds, fails permanently, exhausts
// opts.MaxAttempts or ctx is done. It returns the number of attempts made.
// Unclassified errors are retried.
func WithRetry(ctx context.Context, operation func(attempt int) error, opts service.RetryOptions) (int, error) {
	opts = normalize(opts)

	for attempt := 1; ; attempt++ {
		err := operation(attempt)
		if err == nil {
			return attempt, nil
		}

		var classified *RetryableError
		if errors.As(err, &classified) && !classified.Retryable {
			return attempt, err
		}

		if attempt >= opts.MaxAttempts {
			return attempt, fmt.Errorf("%w after %d attempts: %w", ErrMaxRetries, attempt, err)
		}

		delay := Backoff(opts, attempt, err)
		slog.Warn("Operation failed, retrying",
			"attempt", attempt,
			"max_attempts", opts.MaxAttempts,
			"delay", delay,
			"error", err)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return attempt, ctx.Err()
		case <-timer.C:
		}
	}
}
