package mail

import (
	"context"
	"fmt"
	"sync"

	"github.com/Veraticus/rfq-flow/internal/model"
)

// MockDrafter is a mock implementation of service.Drafter for testing.
type MockDrafter struct {
	CreateDraftFunc func(ctx context.Context, msg model.OutboundMessage) (string, error)
	Messages        []model.OutboundMessage
	CallCount       int
	mu              sync.Mutex
}

// NewMockDrafter creates a new mock drafter.
func NewMockDrafter() *MockDrafter {
	return &MockDrafter{}
}

// Name implements service.Drafter.
func (m *MockDrafter) Name() string { return "mock" }

// CreateDraft records the message and delegates to CreateDraftFunc when set.
func (m *MockDrafter) CreateDraft(ctx context.Context, msg model.OutboundMessage) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CallCount++
	if m.CreateDraftFunc != nil {
		id, err := m.CreateDraftFunc(ctx, msg)
		if err == nil {
			m.Messages = append(m.Messages, msg)
		}
		return id, err
	}

	m.Messages = append(m.Messages, msg)
	return fmt.Sprintf("draft-%d", len(m.Messages)), nil
}

// Recipients returns the To address of every successful draft in order.
func (m *MockDrafter) Recipients() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, len(m.Messages))
	for i, msg := range m.Messages {
		out[i] = msg.To
	}
	return out
}
