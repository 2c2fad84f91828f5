package mocks

import (
	"context"

	"github.com/you/gatesvc/domain"
)

// MockProximityEngine implements domain.ProximityEngine for testing
type MockProximityEngine struct {
	OnLocationSampleFunc     func(ctx context.Context, user *domain.User, sessionID string, sample domain.LocationSample) (*domain.ProximityDecision, error)
	SelectCandidateFunc      func(ctx context.Context, user *domain.User, sessionID string, gateID uint, password string) (*domain.OpenResult, error)
	CancelDisambiguationFunc func(ctx context.Context, sessionID string) error
}

// NewMockProximityEngine creates a new MockProximityEngine with default behaviors
func NewMockProximityEngine() *MockProximityEngine {
	return &MockProximityEngine{}
}

// OnLocationSample resolves to no decision by default
func (m *MockProximityEngine) OnLocationSample(ctx context.Context, user *domain.User, sessionID string, sample domain.LocationSample) (*domain.ProximityDecision, error) {
	if m.OnLocationSampleFunc != nil {
		return m.OnLocationSampleFunc(ctx, user, sessionID, sample)
	}
	return &domain.ProximityDecision{Kind: domain.DecisionNone}, nil
}

// SelectCandidate rejects by default
func (m *MockProximityEngine) SelectCandidate(ctx context.Context, user *domain.User, sessionID string, gateID uint, password string) (*domain.OpenResult, error) {
	if m.SelectCandidateFunc != nil {
		return m.SelectCandidateFunc(ctx, user, sessionID, gateID, password)
	}
	return nil, domain.ErrNotACandidate
}

// CancelDisambiguation succeeds by default
func (m *MockProximityEngine) CancelDisambiguation(ctx context.Context, sessionID string) error {
	if m.CancelDisambiguationFunc != nil {
		return m.CancelDisambiguationFunc(ctx, sessionID)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.ProximityEngine = (*MockProximityEngine)(nil)
