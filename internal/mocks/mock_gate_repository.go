package mocks

import (
	"context"

	"github.com/you/gatesvc/domain"
)

// MockGateRepository implements domain.GateRepository for testing
type MockGateRepository struct {
	FindByIDFunc      func(ctx context.Context, id uint) (*domain.Gate, error)
	FindAllActiveFunc func(ctx context.Context) ([]*domain.Gate, error)
	UpdateFunc        func(ctx context.Context, gate *domain.Gate) error
}

// NewMockGateRepository creates a new MockGateRepository with default behaviors
func NewMockGateRepository() *MockGateRepository {
	return &MockGateRepository{}
}

// FindByID finds a gate by ID
func (m *MockGateRepository) FindByID(ctx context.Context, id uint) (*domain.Gate, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrGateNotFound
}

// FindAllActive lists all active gates
func (m *MockGateRepository) FindAllActive(ctx context.Context) ([]*domain.Gate, error) {
	if m.FindAllActiveFunc != nil {
		return m.FindAllActiveFunc(ctx)
	}
	// Default behavior: no gates
	return nil, nil
}

// Update updates an existing gate
func (m *MockGateRepository) Update(ctx context.Context, gate *domain.Gate) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, gate)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.GateRepository = (*MockGateRepository)(nil)
