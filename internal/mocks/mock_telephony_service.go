package mocks

import (
	"context"

	"github.com/you/gatesvc/domain"
)

// MockTelephonyService implements domain.TelephonyService for testing
type MockTelephonyService struct {
	PlaceCallFunc func(ctx context.Context, toNumber, fromNumber, statusCallbackURL string) (string, error)
	BalanceFunc   func(ctx context.Context) (float64, string, error)

	PlacedCalls []PlacedCall
}

// PlacedCall captures the arguments of one PlaceCall invocation
type PlacedCall struct {
	To       string
	From     string
	Callback string
}

// NewMockTelephonyService creates a new MockTelephonyService with default behaviors
func NewMockTelephonyService() *MockTelephonyService {
	return &MockTelephonyService{}
}

// PlaceCall dials a number
func (m *MockTelephonyService) PlaceCall(ctx context.Context, toNumber, fromNumber, statusCallbackURL string) (string, error) {
	m.PlacedCalls = append(m.PlacedCalls, PlacedCall{To: toNumber, From: fromNumber, Callback: statusCallbackURL})
	if m.PlaceCallFunc != nil {
		return m.PlaceCallFunc(ctx, toNumber, fromNumber, statusCallbackURL)
	}
	// Default behavior: success with a synthetic SID
	return "CA0000000000000000000000000000test", nil
}

// Balance returns the provider account balance
func (m *MockTelephonyService) Balance(ctx context.Context) (float64, string, error) {
	if m.BalanceFunc != nil {
		return m.BalanceFunc(ctx)
	}
	// Default behavior: comfortably above any threshold
	return 100.0, "USD", nil
}

// Compile-time interface compliance verification
var _ domain.TelephonyService = (*MockTelephonyService)(nil)
