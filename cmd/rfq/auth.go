package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/rfq-flow/internal/cli"
	"github.com/Veraticus/rfq-flow/internal/common"
	"github.com/Veraticus/rfq-flow/internal/mail"
)

func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authenticate with external services",
	}

	cmd.AddCommand(authGmailCmd())

	return cmd
}

func authGmailCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gmail",
		Short: "Authorize rfq to create Gmail drafts",
		Long: `Run the OAuth2 consent flow for the Gmail API and store the token.

Requires mail.gmail.client_id and mail.gmail.client_secret (or the
GOOGLE_GMAIL_CLIENT_ID and GOOGLE_GMAIL_CLIENT_SECRET environment variables).
Only the compose scope is requested; rfq never sends mail.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			g := cfg.GmailSettings()
			if g.ClientID == "" || g.ClientSecret == "" {
				return common.NewUserError("gmail OAuth client credentials are not configured", common.ErrMissingConfig)
			}
			if g.TokenFile == "" {
				return fmt.Errorf("%w: mail.gmail.token_file", common.ErrMissingConfig)
			}

			if _, err := mail.AuthenticateInteractive(cmd.Context(), g); err != nil {
				return fmt.Errorf("gmail authorization failed: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Gmail authorized; token saved to "+g.TokenFile))
			return nil
		},
	}
}
