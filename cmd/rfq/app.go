package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Veraticus/rfq-flow/internal/attachments"
	"github.com/Veraticus/rfq-flow/internal/catalog"
	"github.com/Veraticus/rfq-flow/internal/cli"
	"github.com/Veraticus/rfq-flow/internal/common"
	"github.com/Veraticus/rfq-flow/internal/compose"
	"github.com/Veraticus/rfq-flow/internal/config"
	"github.com/Veraticus/rfq-flow/internal/contacts"
	"github.com/Veraticus/rfq-flow/internal/engine"
	"github.com/Veraticus/rfq-flow/internal/mail"
	"github.com/Veraticus/rfq-flow/internal/metrics"
	"github.com/Veraticus/rfq-flow/internal/model"
	"github.com/Veraticus/rfq-flow/internal/service"
	"github.com/Veraticus/rfq-flow/internal/storage"
)

// app wires the collaborators shared by run and send.
type app struct {
	cfg       *config.Config
	processor *engine.Processor
	log       service.OutcomeLog
	metrics   *metrics.Recorder
	dryRun    bool
}

type appOptions struct {
	progress engine.Progress
	match    catalog.MatchOptions
	dryRun   bool
}

func newApp(ctx context.Context, cfg *config.Config, opts appOptions) (*app, error) {
	opts.dryRun = opts.dryRun || cfg.Mail.Driver == mail.DriverDryRun

	cat, err := catalog.LoadFile(cfg.Data.Catalog)
	if err != nil {
		return nil, common.NewUserError("could not load the vendor catalog "+cfg.Data.Catalog, err)
	}

	dir, err := contacts.LoadFile(cfg.Data.Contacts, cfg.Data.ContactType)
	if err != nil {
		return nil, common.NewUserError("could not load contacts "+cfg.Data.Contacts, err)
	}

	resolver, err := attachments.NewResolver(cfg.Attachments.Exclude)
	if err != nil {
		return nil, fmt.Errorf("%w: attachments.exclude: %w", common.ErrInvalidConfig, err)
	}

	composer, err := newComposer(cfg)
	if err != nil {
		return nil, err
	}

	drafter, err := newDrafter(ctx, cfg, opts.dryRun)
	if err != nil {
		return nil, err
	}

	outcomeLog, err := openOutcomeLog(ctx, cfg, opts.dryRun)
	if err != nil {
		return nil, err
	}

	recorder := metrics.NewRecorder()
	engineCfg := engine.DefaultConfig()
	engineCfg.AttachmentsRoot = cfg.Data.AttachmentsRoot
	engineCfg.Match = opts.match
	engineCfg.Retry.MaxAttempts = cfg.Retry.Attempts
	engineCfg.Retry.InitialDelay = cfg.Retry.Delay

	processor, err := engine.New(engine.Dependencies{
		Matcher:  catalog.NewMatcher(cat),
		Contacts: dir,
		Resolver: resolver,
		Composer: composer,
		Drafter:  drafter,
		Log:      outcomeLog,
		Metrics:  recorder,
		Progress: opts.progress,
	}, engineCfg)
	if err != nil {
		_ = outcomeLog.Close()
		return nil, err
	}

	return &app{
		cfg:       cfg,
		processor: processor,
		log:       outcomeLog,
		metrics:   recorder,
		dryRun:    opts.dryRun,
	}, nil
}

// process runs the queue, prints the summary and writes metrics.
func (a *app) process(ctx context.Context, out io.Writer, items []model.QueueItem) error {
	summary, err := a.processor.Process(ctx, items)
	if summary != nil {
		fmt.Fprintln(out, cli.RenderSummary(summary, a.dryRun))
	}

	if a.cfg.Metrics.Textfile != "" {
		if mErr := a.metrics.WriteTextfile(a.cfg.Metrics.Textfile); mErr != nil {
			slog.Warn("Failed to write metrics", "path", a.cfg.Metrics.Textfile, "error", mErr)
		}
	}

	return err
}

func (a *app) Close() error {
	return a.log.Close()
}

func newComposer(cfg *config.Config) (*compose.Composer, error) {
	return compose.New(compose.Options{
		BodyTemplate:  cfg.Templates.Body,
		SampleTable:   cfg.Templates.SampleTable,
		SubjectPrefix: cfg.Mail.SubjectPrefix,
		Signature:     cfg.Mail.Signature,
		CUIWarning:    cfg.Mail.CUIWarning,
		CUIProtection: cfg.Mail.CUIProtection,
		DueIn:         time.Duration(cfg.Mail.DueDays) * 24 * time.Hour,
	})
}

func newDrafter(ctx context.Context, cfg *config.Config, dryRun bool) (service.Drafter, error) {
	driver := cfg.Mail.Driver
	if dryRun {
		driver = mail.DriverDryRun
	}

	switch driver {
	case mail.DriverGmail:
		d, err := mail.NewGmailDrafter(ctx, cfg.GmailSettings(), cfg.Sender(), slog.Default())
		if err != nil {
			return nil, common.NewUserError("could not connect to Gmail; run `rfq auth gmail` first", err)
		}
		return d, nil
	case mail.DriverEML:
		return mail.NewEMLDrafter(cfg.Mail.DraftsDir, cfg.Sender(), slog.Default())
	default:
		return mail.NewDryRunDrafter(slog.Default()), nil
	}
}

// openOutcomeLog opens the database and optional CSV log. Dry runs record nothing.
func openOutcomeLog(ctx context.Context, cfg *config.Config, dryRun bool) (service.OutcomeLog, error) {
	if dryRun {
		return storage.NewMultiLog(slog.Default()), nil
	}

	store, err := storage.Open(ctx, cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open outcome database: %w", err)
	}

	sinks := []service.OutcomeLog{store}
	if cfg.Log.CSVPath != "" {
		csvLog, err := storage.NewCSVLog(cfg.Log.CSVPath)
		if err != nil {
			_ = store.Close()
			return nil, err
		}
		sinks = append(sinks, csvLog)
	}

	return storage.NewMultiLog(slog.Default(), sinks...), nil
}
