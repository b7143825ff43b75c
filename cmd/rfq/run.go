package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/rfq-flow/internal/catalog"
	"github.com/Veraticus/rfq-flow/internal/cli"
	"github.com/Veraticus/rfq-flow/internal/common"
	"github.com/Veraticus/rfq-flow/internal/engine"
	"github.com/Veraticus/rfq-flow/internal/queue"
)

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Draft RFQs for every item in the queue",
		Long: `Process the RFQ queue file. For each row, every vendor in the catalog that
offers the process (matched by spec first when one is given) receives its own
draft, addressed to the vendor's contact and carrying the part's drawings.

Each vendor outcome is written to the outcome log; see 'rfq show-log'.`,
		RunE: runQueue,
	}

	cmd.Flags().String("queue", "", "queue CSV file (default from data.queue)")
	cmd.Flags().String("contacts", "", "contacts CSV file (default from data.contacts)")
	cmd.Flags().String("catalog", "", "vendor catalog YAML (default from data.catalog)")
	cmd.Flags().String("driver", "", "mail client: gmail, eml or dry-run (default from mail.driver)")
	cmd.Flags().Bool("dry-run", false, "log the drafts that would be created without creating them")
	cmd.Flags().Bool("familiar-only", false, "only match specs the vendor is familiar with")
	cmd.Flags().Bool("exact-match", false, "require exact process and spec names")
	cmd.Flags().Bool("no-progress", false, "disable the progress bar")

	_ = viper.BindPFlag("data.queue", cmd.Flags().Lookup("queue"))
	_ = viper.BindPFlag("data.contacts", cmd.Flags().Lookup("contacts"))
	_ = viper.BindPFlag("data.catalog", cmd.Flags().Lookup("catalog"))
	_ = viper.BindPFlag("mail.driver", cmd.Flags().Lookup("driver"))
	_ = viper.BindPFlag("match.familiar_only", cmd.Flags().Lookup("familiar-only"))
	_ = viper.BindPFlag("match.exact_match", cmd.Flags().Lookup("exact-match"))

	return cmd
}

func runQueue(cmd *cobra.Command, _ []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	noProgress, _ := cmd.Flags().GetBool("no-progress")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	items, err := queue.LoadFile(cfg.Data.Queue)
	if err != nil {
		return common.NewUserError("could not load the RFQ queue "+cfg.Data.Queue, err)
	}

	handler := cli.NewInterruptHandler(cmd.ErrOrStderr())
	ctx := handler.HandleInterrupts(cmd.Context(), true)
	defer handler.Stop()

	var progress engine.Progress
	if !noProgress {
		progress = cli.NewProgressBar(cmd.ErrOrStderr())
	}

	a, err := newApp(ctx, cfg, appOptions{
		dryRun:   dryRun,
		progress: progress,
		match: catalog.MatchOptions{
			FamiliarOnly: cfg.Match.FamiliarOnly,
			ExactMatch:   cfg.Match.ExactMatch,
		},
	})
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	if err := a.process(ctx, cmd.OutOrStdout(), items); err != nil {
		if handler.WasInterrupted() {
			return nil
		}
		return fmt.Errorf("RFQ run stopped: %w", err)
	}
	return nil
}
