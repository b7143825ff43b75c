// Package engine processes an RFQ queue: it matches vendors, resolves drawings
// and drafts one message per matching vendor.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/rfq-flow/internal/attachments"
	"github.com/Veraticus/rfq-flow/internal/catalog"
	"github.com/Veraticus/rfq-flow/internal/common"
	"github.com/Veraticus/rfq-flow/internal/metrics"
	"github.com/Veraticus/rfq-flow/internal/model"
	"github.com/Veraticus/rfq-flow/internal/service"
)

// Config holds configuration options for the processor.
type Config struct {
	RunID string
	// AttachmentsRoot is used for items without a file location and as the base
	// for relative locations.
	AttachmentsRoot string
	Match           catalog.MatchOptions
	Retry           service.RetryOptions
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Retry: service.DefaultRetryOptions(),
	}
}

// Dependencies are the collaborators a Processor drives.
type Dependencies struct {
	Matcher  *catalog.Matcher
	Contacts model.Directory
	Resolver *attachments.Resolver
	Composer Composer
	Drafter  service.Drafter
	Log      service.OutcomeLog
	Metrics  *metrics.Recorder
	Progress Progress
}

// Processor runs a queue sequentially, one draft at a time.
type Processor struct {
	matcher  *catalog.Matcher
	contacts model.Directory
	resolver *attachments.Resolver
	composer Composer
	drafter  service.Drafter
	log      service.OutcomeLog
	metrics  *metrics.Recorder
	progress Progress
	logger   *slog.Logger
	now      func() time.Time
	config   Config
}

// New creates a processor. Missing optional collaborators are replaced with no-ops.
func New(deps Dependencies, config Config) (*Processor, error) {
	if deps.Matcher == nil || deps.Composer == nil || deps.Drafter == nil {
		return nil, fmt.Errorf("%w: matcher, composer and drafter are required", common.ErrMissingConfig)
	}
	if deps.Resolver == nil {
		r, err := attachments.NewResolver(attachments.DefaultExcludes)
		if err != nil {
			return nil, err
		}
		deps.Resolver = r
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.NewRecorder()
	}
	if deps.Progress == nil {
		deps.Progress = noopProgress{}
	}
	if deps.Contacts == nil {
		deps.Contacts = model.Directory{}
	}
	if config.RunID == "" {
		config.RunID = uuid.NewString()
	}

	return &Processor{
		matcher:  deps.Matcher,
		contacts: deps.Contacts,
		resolver: deps.Resolver,
		composer: deps.Composer,
		drafter:  deps.Drafter,
		log:      deps.Log,
		metrics:  deps.Metrics,
		progress: deps.Progress,
		logger:   common.RunLogger(config.RunID),
		now:      time.Now,
		config:   config,
	}, nil
}

// RunID identifies the outcomes written by this processor.
func (p *Processor) RunID() string {
	return p.config.RunID
}

// Process drafts requests for every item in order. Per-vendor failures become
// outcomes; only cancellation of ctx stops the run early, in which case the
// partial summary is returned with the context error.
func (p *Processor) Process(ctx context.Context, items []model.QueueItem) (*Summary, error) {
	start := p.now()
	summary := newSummary(p.config.RunID, len(items))

	p.logger.Info("Starting RFQ run",
		"items", len(items),
		"drafter", p.drafter.Name())

	p.progress.Start(len(items))
	defer func() {
		summary.Duration = p.now().Sub(start)
	}()

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if err := p.processItem(ctx, item, summary); err != nil {
			return summary, err
		}
		p.progress.Advance(item)
	}
	p.progress.Finish()

	p.logger.Info("RFQ run complete",
		"drafted", summary.Drafted(),
		"failed", summary.Failed(),
		"skipped", summary.Skipped())

	return summary, nil
}

func (p *Processor) processItem(ctx context.Context, item model.QueueItem, summary *Summary) error {
	p.metrics.ObserveItem()

	result := p.matcher.Match(item.Process, item.Spec, p.config.Match)
	if result.Empty() {
		p.logger.Warn("No vendor offers process",
			"quote_id", item.QuoteID,
			"part_number", item.PartNumber,
			"process", item.Process,
			"spec", item.Spec)
		p.record(ctx, summary, p.outcome(item, "", model.SkippedNoVendor(item.Process), "no matching vendor"))
		return nil
	}

	p.logger.Debug("Matched vendors",
		"quote_id", item.QuoteID,
		"stage", result.Stage,
		"vendors", result.Vendors)

	files := p.resolveAttachments(item)
	p.metrics.ObserveAttachments(len(files))

	for _, name := range result.Vendors {
		if err := p.draftForVendor(ctx, item, name, files, summary); err != nil {
			return err
		}
	}
	return nil
}

func (p *Processor) draftForVendor(ctx context.Context, item model.QueueItem, vendorName string, files []string, summary *Summary) error {
	vendor, _ := p.matcher.Vendor(vendorName)

	contact, ok := p.contacts.Primary(vendorName)
	if !ok {
		p.logger.Warn("No contact for vendor", "vendor", vendorName, "quote_id", item.QuoteID)
		p.record(ctx, summary, p.outcome(item, vendorName, model.OutcomeSkippedNoContact, "no qualifying contact"))
		return nil
	}

	msg, err := p.composer.Message(item, vendor, contact, files)
	if err != nil {
		o := p.outcome(item, vendorName, model.OutcomeFailedDraft, err.Error())
		o.Recipient = contact.Email
		p.record(ctx, summary, o)
		return nil
	}

	var draftID string
	started := p.now()
	attempts, err := common.WithRetry(ctx, func(int) error {
		id, draftErr := p.drafter.CreateDraft(ctx, msg)
		if draftErr != nil {
			return draftErr
		}
		draftID = id
		return nil
	}, p.config.Retry)
	p.metrics.ObserveDraft(p.drafter.Name(), p.now().Sub(started))

	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}

	o := p.outcome(item, vendorName, model.OutcomeDrafted, "")
	o.Recipient = contact.Email
	o.DraftID = draftID
	if err != nil {
		o.Status = model.OutcomeFailedDraft
		o.Detail = err.Error()
		p.logger.Error("Failed to create draft",
			"vendor", vendorName,
			"to", contact.Email,
			"quote_id", item.QuoteID,
			"error", err)
	} else {
		p.logger.Info("Created draft",
			"vendor", vendorName,
			"to", contact.Email,
			"quote_id", item.QuoteID,
			"attempts", attempts,
			"attachments", len(files))
	}
	p.record(ctx, summary, o)
	return nil
}

// resolveAttachments finds drawings once per item so every vendor gets the same set.
func (p *Processor) resolveAttachments(item model.QueueItem) []string {
	root := item.FilePath
	switch {
	case root == "":
		root = p.config.AttachmentsRoot
	case !filepath.IsAbs(root) && p.config.AttachmentsRoot != "":
		root = filepath.Join(p.config.AttachmentsRoot, root)
	}
	if root == "" {
		p.logger.Warn("No attachment location",
			"quote_id", item.QuoteID,
			"part_number", item.PartNumber)
		return nil
	}

	files, unreadable := attachments.Check(p.resolver.Resolve(item.PartNumber, root))
	for _, f := range unreadable {
		p.logger.Warn("Skipping unreadable attachment", "path", f, "part_number", item.PartNumber)
	}
	return files
}

func (p *Processor) outcome(item model.QueueItem, vendor string, status model.OutcomeStatus, detail string) model.Outcome {
	return model.Outcome{
		Timestamp:  p.now(),
		RunID:      p.config.RunID,
		QuoteID:    item.QuoteID,
		PartNumber: item.PartNumber,
		VendorID:   vendor,
		Process:    item.Process,
		Detail:     detail,
		Status:     status,
	}
}

func (p *Processor) record(ctx context.Context, summary *Summary, o model.Outcome) {
	summary.add(o)
	p.metrics.ObserveOutcome(o.Status)
	if p.log == nil {
		return
	}
	if err := p.log.Record(ctx, o); err != nil {
		p.logger.Warn("Failed to record outcome", "vendor", o.VendorID, "status", o.Status, "error", err)
	}
}
