package mail

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/Veraticus/rfq-flow/internal/common"
	"github.com/Veraticus/rfq-flow/internal/model"
)

// GmailDrafter creates drafts in a Gmail mailbox through the Gmail API.
type GmailDrafter struct {
	service *gmail.Service
	builder *MessageBuilder
	logger  *slog.Logger
	user    string
}

// NewGmailDrafter creates a drafter authenticated with the given config.
func NewGmailDrafter(ctx context.Context, config GmailConfig, from Sender, logger *slog.Logger) (*GmailDrafter, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%w: gmail: %w", common.ErrInvalidConfig, err)
	}

	ts, err := tokenSource(ctx, config)
	if err != nil {
		return nil, err
	}

	srv, err := gmail.NewService(ctx, option.WithHTTPClient(oauth2.NewClient(ctx, ts)))
	if err != nil {
		return nil, fmt.Errorf("unable to create gmail service: %w", err)
	}

	return newGmailDrafter(srv, config.User, from, logger), nil
}

func newGmailDrafter(srv *gmail.Service, user string, from Sender, logger *slog.Logger) *GmailDrafter {
	if user == "" {
		user = "me"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &GmailDrafter{
		service: srv,
		builder: NewMessageBuilder(from, nil),
		logger:  logger,
		user:    user,
	}
}

// Name implements service.Drafter.
func (d *GmailDrafter) Name() string { return DriverGmail }

// CreateDraft implements service.Drafter.
func (d *GmailDrafter) CreateDraft(ctx context.Context, msg model.OutboundMessage) (string, error) {
	if err := ValidateAddress(msg.To); err != nil {
		return "", common.Permanent(err)
	}

	raw, err := d.builder.Build(msg)
	if err != nil {
		return "", common.Permanent(err)
	}

	draft, err := d.service.Users.Drafts.Create(d.user, &gmail.Draft{
		Message: &gmail.Message{Raw: base64.URLEncoding.EncodeToString(raw)},
	}).Context(ctx).Do()
	if err != nil {
		return "", classifyAPIError(err)
	}

	d.logger.Debug("created gmail draft", "draft_id", draft.Id, "to", msg.To)
	return draft.Id, nil
}

// classifyAPIError marks throttling and server failures as retryable and
// everything else as permanent.
func classifyAPIError(err error) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return common.Transient(fmt.Errorf("%w: %w", common.ErrMailClient, err))
	}

	switch {
	case apiErr.Code == http.StatusTooManyRequests:
		return common.Transient(fmt.Errorf("%w: %w", common.ErrMailRateLimit, err))
	case apiErr.Code >= http.StatusInternalServerError:
		return common.Transient(fmt.Errorf("%w: %w", common.ErrMailClient, err))
	default:
		return common.Permanent(fmt.Errorf("%w: %w", common.ErrMailClient, err))
	}
}
