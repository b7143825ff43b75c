package engine

import (
	"github.com/Veraticus/rfq-flow/internal/model"
)

// Composer builds the outbound message for one item and vendor.
type Composer interface {
	Message(item model.QueueItem, vendor model.Vendor, contact model.Contact, attachments []string) (model.OutboundMessage, error)
}

// Progress is notified as queue items complete.
type Progress interface {
	Start(total int)
	Advance(item model.QueueItem)
	Finish()
}

type noopProgress struct{}

func (noopProgress) Start(int)               {}
func (noopProgress) Advance(model.QueueItem) {}
func (noopProgress) Finish()                 {}
