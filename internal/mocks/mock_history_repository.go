package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/you/gatesvc/domain"
)

// MockHistoryRepository implements domain.HistoryRepository for testing.
// By default it records appends in memory so tests can assert on the
// attempt trail without wiring a database.
type MockHistoryRepository struct {
	AppendFunc     func(ctx context.Context, record *domain.AttemptRecord) error
	FindRecentFunc func(ctx context.Context, userID, gateID uint, since time.Time) ([]domain.AttemptRecord, error)

	mu       sync.Mutex
	Appended []domain.AttemptRecord
}

// NewMockHistoryRepository creates a new MockHistoryRepository with default behaviors
func NewMockHistoryRepository() *MockHistoryRepository {
	return &MockHistoryRepository{}
}

// Append stores an attempt record
func (m *MockHistoryRepository) Append(ctx context.Context, record *domain.AttemptRecord) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, record)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Appended = append(m.Appended, *record)
	return nil
}

// FindRecent returns attempt records for a (user,gate) pair since a time
func (m *MockHistoryRepository) FindRecent(ctx context.Context, userID, gateID uint, since time.Time) ([]domain.AttemptRecord, error) {
	if m.FindRecentFunc != nil {
		return m.FindRecentFunc(ctx, userID, gateID, since)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.AttemptRecord
	for _, r := range m.Appended {
		if r.UserID == userID && r.GateID == gateID && !r.Timestamp.Before(since) {
			out = append(out, r)
		}
	}
	return out, nil
}

// Records returns a copy of everything appended so far
func (m *MockHistoryRepository) Records() []domain.AttemptRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.AttemptRecord, len(m.Appended))
	copy(out, m.Appended)
	return out
}

// Compile-time interface compliance verification
var _ domain.HistoryRepository = (*MockHistoryRepository)(nil)
