package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/rfq-flow/internal/model"
)

func TestObserveOutcome(t *testing.T) {
	r := NewRecorder()

	r.ObserveOutcome(model.OutcomeDrafted)
	r.ObserveOutcome(model.OutcomeDrafted)
	r.ObserveOutcome(model.OutcomeFailedDraft)
	r.ObserveOutcome(model.SkippedNoVendor("Anodizing"))
	r.ObserveOutcome(model.SkippedNoVendor("Heat Treat"))

	assert.InDelta(t, 2, testutil.ToFloat64(r.OutcomesTotal.WithLabelValues("drafted")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.OutcomesTotal.WithLabelValues("failed_draft")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(r.OutcomesTotal.WithLabelValues("skipped_no_vendor")), 0)
}

func TestRecordersAreIndependent(t *testing.T) {
	a, b := NewRecorder(), NewRecorder()
	a.ObserveItem()
	a.ObserveAttachments(3)

	assert.InDelta(t, 1, testutil.ToFloat64(a.ItemsProcessed), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(b.ItemsProcessed), 0)
	assert.Equal(t, uint64(1), sampleCount(t, a.AttachmentsPer))
	assert.Equal(t, uint64(0), sampleCount(t, b.AttachmentsPer))
}

func TestWriteTextfile(t *testing.T) {
	r := NewRecorder()
	r.ObserveOutcome(model.OutcomeDrafted)
	r.ObserveDraft("eml", 120*time.Millisecond)

	path := filepath.Join(t.TempDir(), "rfq.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `rfq_outcomes_total{status="drafted"} 1`)
	assert.Contains(t, string(data), `rfq_drafts_duration_seconds_count{driver="eml"} 1`)
}

func sampleCount(t *testing.T, h prometheus.Histogram) uint64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, h.Write(&m))
	return m.GetHistogram().GetSampleCount()
}
