package mocks

import (
	"context"
	"sync"

	"github.com/you/gatesvc/domain"
)

// MockProximitySessionRepository implements domain.ProximitySessionRepository
// for testing. By default it is a working in-memory store, so engine tests
// can run full multi-sample scenarios against it.
type MockProximitySessionRepository struct {
	LoadFunc   func(ctx context.Context, sessionID string) (*domain.ProximitySession, error)
	SaveFunc   func(ctx context.Context, session *domain.ProximitySession) error
	DeleteFunc func(ctx context.Context, sessionID string) error

	mu       sync.Mutex
	sessions map[string]*domain.ProximitySession
}

// NewMockProximitySessionRepository creates a new in-memory mock
func NewMockProximitySessionRepository() *MockProximitySessionRepository {
	return &MockProximitySessionRepository{
		sessions: make(map[string]*domain.ProximitySession),
	}
}

// Load returns a session, or (nil, nil) when absent
func (m *MockProximitySessionRepository) Load(ctx context.Context, sessionID string) (*domain.ProximitySession, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx, sessionID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[sessionID], nil
}

// Save stores a session
func (m *MockProximitySessionRepository) Save(ctx context.Context, session *domain.ProximitySession) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, session)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = session
	return nil
}

// Delete removes a session
func (m *MockProximitySessionRepository) Delete(ctx context.Context, sessionID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, sessionID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}

// Compile-time interface compliance verification
var _ domain.ProximitySessionRepository = (*MockProximitySessionRepository)(nil)
