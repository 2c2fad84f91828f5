package mocks

import (
	"context"

	"github.com/you/gatesvc/domain"
)

// MockSettingsRepository implements domain.SettingsRepository for testing
type MockSettingsRepository struct {
	GetCurrentFunc func(ctx context.Context) (*domain.AdminSettings, error)
	UpdateFunc     func(ctx context.Context, settings *domain.AdminSettings) error
}

// NewMockSettingsRepository creates a new MockSettingsRepository with default behaviors
func NewMockSettingsRepository() *MockSettingsRepository {
	return &MockSettingsRepository{}
}

// GetCurrent returns the settings singleton
func (m *MockSettingsRepository) GetCurrent(ctx context.Context) (*domain.AdminSettings, error) {
	if m.GetCurrentFunc != nil {
		return m.GetCurrentFunc(ctx)
	}
	// Default behavior: permissive defaults
	return &domain.AdminSettings{
		GateCooldownSeconds: 60,
		MaxRetries:          5,
	}, nil
}

// Update replaces the settings singleton
func (m *MockSettingsRepository) Update(ctx context.Context, settings *domain.AdminSettings) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, settings)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.SettingsRepository = (*MockSettingsRepository)(nil)
