package mail

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/Veraticus/rfq-flow/internal/common"
	"github.com/Veraticus/rfq-flow/internal/model"
)

// DryRunDrafter logs what would be drafted without touching any mail client.
type DryRunDrafter struct {
	logger *slog.Logger
	count  int
	mu     sync.Mutex
}

// NewDryRunDrafter creates a dry-run drafter.
func NewDryRunDrafter(logger *slog.Logger) *DryRunDrafter {
	if logger == nil {
		logger = slog.Default()
	}
	return &DryRunDrafter{logger: logger}
}

// Name implements service.Drafter.
func (d *DryRunDrafter) Name() string { return DriverDryRun }

// CreateDraft implements service.Drafter.
func (d *DryRunDrafter) CreateDraft(ctx context.Context, msg model.OutboundMessage) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := ValidateAddress(msg.To); err != nil {
		return "", common.Permanent(err)
	}

	names := make([]string, len(msg.Attachments))
	for i, a := range msg.Attachments {
		names[i] = filepath.Base(a)
	}

	d.mu.Lock()
	d.count++
	n := d.count
	d.mu.Unlock()

	d.logger.Info("[DRY RUN] would create draft",
		"to", msg.To,
		"subject", msg.Subject,
		"attachments", names)

	return fmt.Sprintf("dry-run-%d", n), nil
}
