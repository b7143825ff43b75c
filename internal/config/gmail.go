package config

import (
	"github.com/Veraticus/rfq-flow/internal/mail"
)

// GmailSettings converts the mail.gmail section into drafter configuration.
// It follows this precedence:
// 1. Viper configuration (from config file or RFQ_ env vars)
// 2. Direct environment variables (GOOGLE_GMAIL_*)
// 3. Default values
func (c *Config) GmailSettings() mail.GmailConfig {
	g := mail.DefaultGmailConfig()
	g.ClientID = c.Mail.Gmail.ClientID
	g.ClientSecret = c.Mail.Gmail.ClientSecret
	g.RefreshToken = c.Mail.Gmail.RefreshToken
	g.TokenFile = c.Mail.Gmail.TokenFile
	g.ServiceAccountPath = c.Mail.Gmail.ServiceAccountPath
	if c.Mail.Gmail.User != "" {
		g.User = c.Mail.Gmail.User
	}

	g.LoadFromEnv()
	g.ServiceAccountPath = ExpandPath(g.ServiceAccountPath)
	return g
}

// Sender returns the From identity for drafts.
func (c *Config) Sender() mail.Sender {
	return mail.Sender{Name: c.Mail.FromName, Email: c.Mail.FromEmail}
}
