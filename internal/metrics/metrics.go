// Package metrics provides Prometheus metrics for RFQ runs.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Veraticus/rfq-flow/internal/model"
)

// Recorder holds the metrics for one process. Each Recorder owns its registry,
// so runs and tests never share counters.
type Recorder struct {
	registry       *prometheus.Registry
	OutcomesTotal  *prometheus.CounterVec
	DraftDuration  *prometheus.HistogramVec
	ItemsProcessed prometheus.Counter
	AttachmentsPer prometheus.Histogram
}

// NewRecorder creates a Recorder with a private registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		OutcomesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rfq_outcomes_total",
				Help: "Total number of per-vendor RFQ outcomes",
			},
			[]string{"status"},
		),
		DraftDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rfq_drafts_duration_seconds",
				Help:    "Time taken by the mail client to create a draft",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"driver"},
		),
		ItemsProcessed: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "rfq_queue_items_total",
				Help: "Total number of queue items processed",
			},
		),
		AttachmentsPer: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "rfq_attachments_per_item",
				Help:    "Number of attachments resolved per queue item",
				Buckets: []float64{0, 1, 2, 5, 10, 25},
			},
		),
	}
}

// ObserveOutcome counts one outcome. No-vendor skips share a single label value.
func (r *Recorder) ObserveOutcome(status model.OutcomeStatus) {
	label := string(status)
	if status.IsSkippedNoVendor() {
		label = "skipped_no_vendor"
	}
	r.OutcomesTotal.WithLabelValues(label).Inc()
}

// ObserveDraft records how long a draft call took.
func (r *Recorder) ObserveDraft(driver string, d time.Duration) {
	r.DraftDuration.WithLabelValues(driver).Observe(d.Seconds())
}

// ObserveItem counts a queue item, whether or not any vendor matched it.
func (r *Recorder) ObserveItem() {
	r.ItemsProcessed.Inc()
}

// ObserveAttachments records how many files were resolved for a matched item.
func (r *Recorder) ObserveAttachments(n int) {
	r.AttachmentsPer.Observe(float64(n))
}

// WriteTextfile writes all metrics in the node-exporter textfile format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
