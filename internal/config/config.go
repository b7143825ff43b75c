package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Veraticus/rfq-flow/internal/common"
	"github.com/Veraticus/rfq-flow/internal/mail"
)

// Config is the resolved application configuration.
type Config struct {
	Data        DataConfig        `mapstructure:"data"`
	Templates   TemplatesConfig   `mapstructure:"templates"`
	Mail        MailConfig        `mapstructure:"mail"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Log         LogConfig         `mapstructure:"log"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
	Attachments AttachmentsConfig `mapstructure:"attachments"`
	Match       MatchConfig       `mapstructure:"match"`
	Retry       RetryConfig       `mapstructure:"retry"`
}

// DataConfig locates the input files.
type DataConfig struct {
	Queue           string `mapstructure:"queue"`
	Contacts        string `mapstructure:"contacts"`
	Catalog         string `mapstructure:"catalog"`
	AttachmentsRoot string `mapstructure:"attachments_root"`
	ContactType     string `mapstructure:"contact_type"`
}

// TemplatesConfig locates optional template assets.
type TemplatesConfig struct {
	Body        string `mapstructure:"body"`
	SampleTable string `mapstructure:"sample_table"`
}

// MailConfig selects and configures the mail client.
type MailConfig struct {
	Driver        string      `mapstructure:"driver"`
	DraftsDir     string      `mapstructure:"drafts_dir"`
	FromName      string      `mapstructure:"from_name"`
	FromEmail     string      `mapstructure:"from_email"`
	SubjectPrefix string      `mapstructure:"subject_prefix"`
	Signature     string      `mapstructure:"signature"`
	CUIWarning    string      `mapstructure:"cui_warning"`
	Gmail         GmailConfig `mapstructure:"gmail"`
	DueDays       int         `mapstructure:"due_days"`
	CUIProtection bool        `mapstructure:"cui_protection"`
}

// GmailConfig holds Gmail API credentials.
type GmailConfig struct {
	ClientID           string `mapstructure:"client_id"`
	ClientSecret       string `mapstructure:"client_secret"`
	RefreshToken       string `mapstructure:"refresh_token"`
	TokenFile          string `mapstructure:"token_file"`
	ServiceAccountPath string `mapstructure:"service_account_path"`
	User               string `mapstructure:"user"`
}

// DatabaseConfig locates the outcome database.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig configures the CSV outcome log. An empty path disables it.
type LogConfig struct {
	CSVPath string `mapstructure:"csv_path"`
}

// MetricsConfig configures the metrics textfile. An empty path disables it.
type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"`
}

// AttachmentsConfig overrides the excluded file-name globs. Empty keeps the defaults.
type AttachmentsConfig struct {
	Exclude []string `mapstructure:"exclude"`
}

// MatchConfig holds the default matcher options.
type MatchConfig struct {
	FamiliarOnly bool `mapstructure:"familiar_only"`
	ExactMatch   bool `mapstructure:"exact_match"`
}

// RetryConfig controls retries of transient mail-client failures.
type RetryConfig struct {
	Attempts int           `mapstructure:"attempts"`
	Delay    time.Duration `mapstructure:"delay"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("data.queue", "rfq_queue.csv")
	v.SetDefault("data.contacts", "contacts.csv")
	v.SetDefault("data.catalog", "vendor_options.yaml")
	v.SetDefault("data.contact_type", "finishing")
	v.SetDefault("templates.sample_table", "Sample_Table(Empty)-OS.csv")
	v.SetDefault("mail.driver", mail.DriverEML)
	v.SetDefault("mail.drafts_dir", "~/.local/share/rfq/drafts")
	v.SetDefault("mail.cui_protection", true)
	v.SetDefault("mail.gmail.user", "me")
	v.SetDefault("mail.gmail.token_file", "~/.config/rfq/gmail_token.json")
	v.SetDefault("database.path", "~/.local/share/rfq/rfq.db")
	v.SetDefault("retry.attempts", 3)
	v.SetDefault("retry.delay", 2*time.Second)
}

// Load decodes and validates the configuration held by v, expanding paths.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}

	expandPaths(
		&cfg.Data.Queue,
		&cfg.Data.Contacts,
		&cfg.Data.Catalog,
		&cfg.Data.AttachmentsRoot,
		&cfg.Templates.Body,
		&cfg.Templates.SampleTable,
		&cfg.Mail.DraftsDir,
		&cfg.Mail.Gmail.TokenFile,
		&cfg.Mail.Gmail.ServiceAccountPath,
		&cfg.Database.Path,
		&cfg.Log.CSVPath,
		&cfg.Metrics.Textfile,
	)
	cfg.Mail.Driver = strings.ToLower(strings.TrimSpace(cfg.Mail.Driver))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that cannot be fixed by defaults.
func (c *Config) Validate() error {
	switch c.Mail.Driver {
	case mail.DriverGmail, mail.DriverEML, mail.DriverDryRun:
	default:
		return fmt.Errorf("%w: unknown mail driver %q (want gmail, eml or dry-run)", common.ErrInvalidConfig, c.Mail.Driver)
	}
	if c.Mail.FromEmail != "" {
		if err := mail.ValidateAddress(c.Mail.FromEmail); err != nil {
			return fmt.Errorf("%w: mail.from_email: %w", common.ErrInvalidConfig, err)
		}
	}
	if c.Retry.Attempts < 1 {
		return fmt.Errorf("%w: retry.attempts must be at least 1", common.ErrInvalidConfig)
	}
	if c.Mail.DueDays < 0 {
		return fmt.Errorf("%w: mail.due_days cannot be negative", common.ErrInvalidConfig)
	}
	return nil
}
