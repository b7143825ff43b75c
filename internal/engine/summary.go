package engine

import (
	"sort"
	"time"

	"github.com/Veraticus/rfq-flow/internal/model"
)

// Summary contains every outcome of a run and statistics about it.
type Summary struct {
	Counts   map[model.OutcomeStatus]int
	RunID    string
	Outcomes []model.Outcome
	Items    int
	Duration time.Duration
}

func newSummary(runID string, items int) *Summary {
	return &Summary{
		RunID:  runID,
		Items:  items,
		Counts: make(map[model.OutcomeStatus]int),
	}
}

func (s *Summary) add(o model.Outcome) {
	s.Outcomes = append(s.Outcomes, o)
	s.Counts[o.Status]++
}

// Drafted is the number of drafts created.
func (s *Summary) Drafted() int {
	return s.Counts[model.OutcomeDrafted]
}

// Failed is the number of drafts the mail client rejected.
func (s *Summary) Failed() int {
	return s.Counts[model.OutcomeFailedDraft]
}

// Skipped counts both no-vendor and no-contact skips.
func (s *Summary) Skipped() int {
	n := 0
	for status, c := range s.Counts {
		if status.IsSkipped() {
			n += c
		}
	}
	return n
}

// Statuses returns the recorded statuses in a stable order for display.
func (s *Summary) Statuses() []model.OutcomeStatus {
	out := make([]model.OutcomeStatus, 0, len(s.Counts))
	for status := range s.Counts {
		out = append(out, status)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
