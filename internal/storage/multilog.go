package storage

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Veraticus/rfq-flow/internal/model"
	"github.com/Veraticus/rfq-flow/internal/service"
)

// MultiLog fans each outcome out to several sinks. A failing sink is logged
// and does not stop the others or the run.
type MultiLog struct {
	logger *slog.Logger
	sinks  []service.OutcomeLog
}

// NewMultiLog combines sinks. Nil sinks are ignored.
func NewMultiLog(logger *slog.Logger, sinks ...service.OutcomeLog) *MultiLog {
	if logger == nil {
		logger = slog.Default()
	}
	m := &MultiLog{logger: logger}
	for _, s := range sinks {
		if s != nil {
			m.sinks = append(m.sinks, s)
		}
	}
	return m
}

// Record implements service.OutcomeLog.
func (m *MultiLog) Record(ctx context.Context, outcome model.Outcome) error {
	for _, s := range m.sinks {
		if err := s.Record(ctx, outcome); err != nil {
			m.logger.Warn("failed to record outcome",
				"quote_id", outcome.QuoteID,
				"vendor", outcome.VendorID,
				"status", outcome.Status,
				"error", err)
		}
	}
	return nil
}

// Close implements service.OutcomeLog, closing every sink.
func (m *MultiLog) Close() error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
