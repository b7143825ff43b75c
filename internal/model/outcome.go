package model

import (
	"strings"
	"time"
)

// OutcomeStatus records what happened to a queue item for one vendor.
type OutcomeStatus string

// Outcome status constants.
const (
	OutcomeDrafted          OutcomeStatus = "drafted"
	OutcomeFailedDraft      OutcomeStatus = "failed_draft"
	OutcomeSkippedNoContact OutcomeStatus = "skipped_no_contact"

	skippedNoVendorPrefix = "skipped_no_vendor_"
)

// SkippedNoVendor builds the status recorded when no vendor offers a process.
func SkippedNoVendor(process string) OutcomeStatus {
	return OutcomeStatus(skippedNoVendorPrefix + process)
}

// IsSkippedNoVendor reports whether the status is a no-vendor skip.
func (s OutcomeStatus) IsSkippedNoVendor() bool {
	return strings.HasPrefix(string(s), skippedNoVendorPrefix)
}

// IsSkipped reports whether the status is any kind of skip.
func (s OutcomeStatus) IsSkipped() bool {
	return s.IsSkippedNoVendor() || s == OutcomeSkippedNoContact
}

// Outcome is one row of the append-only outcome log.
type Outcome struct {
	Timestamp  time.Time
	RunID      string
	QuoteID    string
	PartNumber string
	VendorID   string
	Process    string
	Recipient  string
	DraftID    string
	Detail     string
	Status     OutcomeStatus
}
