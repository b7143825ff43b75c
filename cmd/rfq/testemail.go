package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/rfq-flow/internal/cli"
	"github.com/Veraticus/rfq-flow/internal/model"
)

const testRecipient = "example@example.com"

func testEmailCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test-email",
		Short: "Create a test draft to check the mail client setup",
		RunE: func(cmd *cobra.Command, _ []string) error {
			to, _ := cmd.Flags().GetString("to")

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			drafter, err := newDrafter(ctx, cfg, false)
			if err != nil {
				return err
			}

			id, err := drafter.CreateDraft(ctx, testMessage(to))
			if err != nil {
				return fmt.Errorf("failed to create test draft: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Created test draft via %s: %s", drafter.Name(), id)))
			return nil
		},
	}

	cmd.Flags().String("to", testRecipient, "recipient of the test draft")

	return cmd
}

func testMessage(to string) model.OutboundMessage {
	return model.OutboundMessage{
		To:       to,
		Subject:  "TEST",
		HTMLBody: "<p>This is a test draft created by rfq.</p>",
		TextBody: "This is a test draft created by rfq.",
	}
}
