package mail

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/Veraticus/rfq-flow/internal/common"
	"github.com/Veraticus/rfq-flow/internal/model"
)

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// EMLDrafter writes each draft as an .eml file marked unsent, which desktop mail
// clients open as an editable draft.
type EMLDrafter struct {
	builder *MessageBuilder
	logger  *slog.Logger
	dir     string
}

// NewEMLDrafter creates a drafter writing into dir, creating it if needed.
func NewEMLDrafter(dir string, from Sender, logger *slog.Logger) (*EMLDrafter, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: drafts directory is required", common.ErrMissingConfig)
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create drafts directory: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &EMLDrafter{
		builder: NewMessageBuilder(from, map[string]string{"X-Unsent": "1"}),
		logger:  logger,
		dir:     dir,
	}, nil
}

// Name implements service.Drafter.
func (d *EMLDrafter) Name() string { return DriverEML }

// CreateDraft implements service.Drafter. The returned id is the file path.
func (d *EMLDrafter) CreateDraft(ctx context.Context, msg model.OutboundMessage) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := ValidateAddress(msg.To); err != nil {
		return "", common.Permanent(err)
	}

	raw, err := d.builder.Build(msg)
	if err != nil {
		return "", common.Permanent(err)
	}

	path := filepath.Join(d.dir, draftFileName(msg))
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return "", fmt.Errorf("failed to write draft: %w", err)
	}

	d.logger.Debug("wrote draft", "path", path, "to", msg.To)
	return path, nil
}

func draftFileName(msg model.OutboundMessage) string {
	base := strings.Trim(unsafeName.ReplaceAllString(msg.Subject+"_"+msg.To, "_"), "_")
	if len(base) > 96 {
		base = base[:96]
	}
	return fmt.Sprintf("%s_%s.eml", base, uuid.NewString()[:8])
}
