package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/rfq-flow/internal/catalog"
	"github.com/Veraticus/rfq-flow/internal/engine"
	"github.com/Veraticus/rfq-flow/internal/model"
)

func testCatalog() *model.Catalog {
	return &model.Catalog{Vendors: []model.Vendor{
		{
			Name:     "Acme Plating",
			Location: "Denver, CO",
			Website:  "https://acme.example",
			Processes: []model.Process{
				{Name: "Nickel Plating", Specs: []model.Spec{{Number: "AMS 2404", Familiar: true}, {Number: "ASTM B733"}}},
			},
		},
		{
			Name:          "Bright Finishers",
			ApprovalLevel: "cui",
			Processes:     []model.Process{{Name: "Anodizing"}, {Name: "Electroless Nickel"}},
		},
	}}
}

func TestRenderProcessMatches(t *testing.T) {
	groups := catalog.GroupProcessMatches(catalog.SearchByProcess(testCatalog(), "nickel", false))

	out := RenderProcessMatches("nickel", groups)

	assert.Contains(t, out, "Acme Plating")
	assert.Contains(t, out, "Denver, CO, https://acme.example")
	assert.Contains(t, out, "AMS 2404")
	assert.Contains(t, out, "familiar")
	assert.Contains(t, out, "Bright Finishers")
	assert.Contains(t, out, "CUI approved")
	assert.Contains(t, out, "Electroless Nickel")
	assert.NotContains(t, out, "Anodizing")
}

func TestRenderSpecMatches(t *testing.T) {
	groups := catalog.GroupSpecMatches(catalog.SearchBySpec(testCatalog(), "B733", false, false))

	out := RenderSpecMatches("B733", groups)

	assert.Contains(t, out, "Acme Plating")
	assert.Contains(t, out, "Nickel Plating")
	assert.Contains(t, out, "ASTM B733")
	assert.NotContains(t, out, "AMS 2404")
}

func TestRenderNoMatches(t *testing.T) {
	assert.Contains(t, RenderProcessMatches("Cadmium", nil), `No vendors found for process "Cadmium"`)
	assert.Contains(t, RenderSpecMatches("X-1", nil), `No vendors found for spec "X-1"`)
}

func TestRenderOutcomes(t *testing.T) {
	outcomes := []model.Outcome{
		{Timestamp: time.Now(), QuoteID: "Q-1", PartNumber: "P-1", Process: "Anodizing", VendorID: "Bright Finishers", Recipient: "sam@bright.example", Status: model.OutcomeDrafted},
		{Timestamp: time.Now(), QuoteID: "Q-2", PartNumber: "P-2", Process: "Cadmium", Status: model.SkippedNoVendor("Cadmium")},
	}

	out := RenderOutcomes(outcomes)

	assert.Contains(t, out, "Recipient")
	assert.Contains(t, out, "sam@bright.example")
	assert.Contains(t, out, "skipped_no_vendor_Cadmium")
	assert.Contains(t, out, "2 entries")
	assert.Contains(t, RenderOutcomes(nil), "empty")
}

func TestRenderSummary(t *testing.T) {
	summary := &engine.Summary{
		Items: 2,
		Counts: map[model.OutcomeStatus]int{
			model.OutcomeDrafted:          3,
			model.OutcomeFailedDraft:      1,
			model.SkippedNoVendor("Zinc"): 1,
		},
		Duration: 1500 * time.Millisecond,
	}

	out := RenderSummary(summary, true)

	assert.Contains(t, out, "RFQ Run Complete (dry run)")
	assert.Contains(t, out, "Drafted: 3")
	assert.Contains(t, out, "Failed: 1")
	assert.Contains(t, out, "Skipped: 1")
	assert.Contains(t, out, "skipped_no_vendor_Zinc:")
	assert.Contains(t, RenderSummary(&engine.Summary{}, false), "No queue items")
}

func TestProgressBar(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgressBar(&buf)

	// Advance before Start is a no-op.
	p.Advance(model.QueueItem{PartNumber: "P-0"})

	p.Start(2)
	p.Advance(model.QueueItem{PartNumber: "P-1"})
	p.Advance(model.QueueItem{PartNumber: "P-2"})
	p.Finish()

	assert.Contains(t, buf.String(), "Drafting RFQs")
	assert.Contains(t, buf.String(), "2/2")
}

func TestStatusIcon(t *testing.T) {
	tests := []struct {
		status model.OutcomeStatus
		want   string
	}{
		{model.OutcomeDrafted, SuccessIcon},
		{model.OutcomeFailedDraft, ErrorIcon},
		{model.OutcomeSkippedNoContact, SkipIcon},
		{model.SkippedNoVendor("Zinc"), SkipIcon},
		{model.OutcomeStatus("unknown"), " "},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusIcon(tt.status))
		})
	}

	assert.Equal(t, ErrorStyle.GetForeground(), StatusStyle(model.OutcomeFailedDraft).GetForeground())
	assert.Equal(t, WarningStyle.GetForeground(), StatusStyle(model.OutcomeSkippedNoContact).GetForeground())
}

func TestRenderStatusCounts(t *testing.T) {
	out := RenderStatusCounts(map[model.OutcomeStatus]int{
		model.OutcomeFailedDraft:      1,
		model.OutcomeDrafted:          4,
		model.SkippedNoVendor("Zinc"): 2,
	})

	assert.Contains(t, out, "drafted: 4")
	assert.Contains(t, out, "failed_draft: 1")
	assert.Contains(t, out, "skipped_no_vendor_Zinc: 2")
	assert.Less(t, strings.Index(out, "drafted"), strings.Index(out, "failed_draft"))
	assert.Empty(t, RenderStatusCounts(nil))
}
