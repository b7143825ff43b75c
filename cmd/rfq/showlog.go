package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/rfq-flow/internal/cli"
	"github.com/Veraticus/rfq-flow/internal/service"
	"github.com/Veraticus/rfq-flow/internal/storage"
)

func showLogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show-log",
		Short: "Show recent RFQ outcomes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			runID, _ := cmd.Flags().GetString("run")
			if limit <= 0 {
				return fmt.Errorf("--limit must be positive")
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			var store service.OutcomeStore
			store, err = storage.Open(ctx, cfg.Database.Path)
			if err != nil {
				return fmt.Errorf("failed to open outcome database: %w", err)
			}
			defer func() { _ = store.Close() }()

			outcomes, err := store.Recent(ctx, limit)
			if err != nil {
				return err
			}

			counts, err := store.CountByStatus(ctx, runID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.RenderOutcomes(outcomes))
			if tally := cli.RenderStatusCounts(counts); tally != "" {
				fmt.Fprintln(out, tally)
			}
			return nil
		},
	}

	cmd.Flags().Int("limit", 10, "number of entries to show")
	cmd.Flags().String("run", "", "tally statuses for one run id instead of the whole log")

	return cmd
}
