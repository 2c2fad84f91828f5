package mocks

import (
	"context"

	"github.com/you/gatesvc/domain"
)

// MockGateOpener implements domain.GateOpener for testing the proximity
// engine in isolation from the authorization guards.
type MockGateOpener struct {
	AttemptOpenFunc       func(ctx context.Context, user *domain.User, gateID uint, password string, autoOpen bool) (*domain.OpenResult, error)
	RemainingCooldownFunc func(ctx context.Context, gateID uint) (int, error)

	OpenCalls []OpenCall
}

// OpenCall captures the arguments of one AttemptOpen invocation
type OpenCall struct {
	UserID   uint
	GateID   uint
	Password string
	AutoOpen bool
}

// NewMockGateOpener creates a new MockGateOpener with default behaviors
func NewMockGateOpener() *MockGateOpener {
	return &MockGateOpener{}
}

// AttemptOpen records the call and succeeds by default
func (m *MockGateOpener) AttemptOpen(ctx context.Context, user *domain.User, gateID uint, password string, autoOpen bool) (*domain.OpenResult, error) {
	m.OpenCalls = append(m.OpenCalls, OpenCall{UserID: user.ID, GateID: gateID, Password: password, AutoOpen: autoOpen})
	if m.AttemptOpenFunc != nil {
		return m.AttemptOpenFunc(ctx, user, gateID, password, autoOpen)
	}
	return &domain.OpenResult{
		Gate:       &domain.Gate{ID: gateID},
		CallSID:    "CA0000000000000000000000000000test",
		AutoOpened: autoOpen,
	}, nil
}

// RemainingCooldown returns zero by default
func (m *MockGateOpener) RemainingCooldown(ctx context.Context, gateID uint) (int, error) {
	if m.RemainingCooldownFunc != nil {
		return m.RemainingCooldownFunc(ctx, gateID)
	}
	return 0, nil
}

// Compile-time interface compliance verification
var _ domain.GateOpener = (*MockGateOpener)(nil)
