package mocks

import (
	"time"

	"github.com/you/gatesvc/domain"
)

// MockClock implements domain.Clock with a settable current time
type MockClock struct {
	Current time.Time
}

// NewMockClock creates a clock frozen at the given time
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{Current: t}
}

// Now returns the frozen time
func (m *MockClock) Now() time.Time {
	return m.Current
}

// Advance moves the clock forward
func (m *MockClock) Advance(d time.Duration) {
	m.Current = m.Current.Add(d)
}

// Compile-time interface compliance verification
var _ domain.Clock = (*MockClock)(nil)
