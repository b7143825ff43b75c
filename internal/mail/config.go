// Package mail provides the mail-client drafters that turn composed RFQs into drafts.
package mail

import (
	"fmt"
	"os"
)

// Driver names accepted by the mail.driver setting.
const (
	DriverGmail  = "gmail"
	DriverEML    = "eml"
	DriverDryRun = "dry-run"
)

// GmailConfig holds the configuration for the Gmail drafter.
type GmailConfig struct {
	ClientID           string
	ClientSecret       string
	RefreshToken       string
	TokenFile          string
	ServiceAccountPath string
	// User is the mailbox drafts are created in. "me" means the authenticated user.
	User string
}

// DefaultGmailConfig returns a GmailConfig with defaults applied.
func DefaultGmailConfig() GmailConfig {
	return GmailConfig{User: "me"}
}

// LoadFromEnv fills unset credentials from the GOOGLE_GMAIL_* environment variables.
func (c *GmailConfig) LoadFromEnv() {
	if c.ClientID == "" {
		c.ClientID = os.Getenv("GOOGLE_GMAIL_CLIENT_ID")
	}
	if c.ClientSecret == "" {
		c.ClientSecret = os.Getenv("GOOGLE_GMAIL_CLIENT_SECRET")
	}
	if c.RefreshToken == "" {
		c.RefreshToken = os.Getenv("GOOGLE_GMAIL_REFRESH_TOKEN")
	}
	if c.ServiceAccountPath == "" {
		c.ServiceAccountPath = os.Getenv("GOOGLE_GMAIL_SERVICE_ACCOUNT_PATH")
	}
}

// Validate checks if the configuration is valid.
func (c *GmailConfig) Validate() error {
	hasOAuth := c.ClientID != "" && c.ClientSecret != "" && (c.RefreshToken != "" || c.TokenFile != "")
	hasServiceAccount := c.ServiceAccountPath != ""

	if !hasOAuth && !hasServiceAccount {
		return fmt.Errorf("no authentication method configured")
	}

	if hasOAuth && hasServiceAccount {
		return fmt.Errorf("multiple authentication methods configured; use either OAuth2 or service account")
	}

	if hasServiceAccount && (c.User == "" || c.User == "me") {
		return fmt.Errorf("service account requires an explicit user to impersonate")
	}

	return nil
}
