package services

import (
	"testing"
	"time"

	"github.com/you/gatesvc/domain"
	"github.com/you/gatesvc/internal/mocks"
)

// fixedNow is the frozen reference time used across service tests
var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// openerFixture bundles an OpenerService with all of its mock collaborators
type openerFixture struct {
	opener    *OpenerService
	gates     *mocks.MockGateRepository
	history   *mocks.MockHistoryRepository
	settings  *mocks.MockSettingsRepository
	telephony *mocks.MockTelephonyService
	clock     *mocks.MockClock
}

// createOpenerForTest creates an OpenerService wired to in-memory mocks
func createOpenerForTest(t *testing.T) *openerFixture {
	t.Helper()

	f := &openerFixture{
		gates:     mocks.NewMockGateRepository(),
		history:   mocks.NewMockHistoryRepository(),
		settings:  mocks.NewMockSettingsRepository(),
		telephony: mocks.NewMockTelephonyService(),
		clock:     mocks.NewMockClock(fixedNow),
	}
	f.opener = NewOpenerService(
		f.gates, f.history, f.settings, f.telephony, f.clock,
		"https://gatesvc.example.com/twilio/status",
	)
	return f
}

// createTestGate creates an active gate fixture
func createTestGate(t *testing.T, id uint) *domain.Gate {
	t.Helper()

	return &domain.Gate{
		ID:               id,
		Name:             "Test Gate",
		PhoneNumber:      "+15550001111",
		AuthorizedNumber: "+15550002222",
		IsActive:         true,
	}
}

// createLocatedGate creates an active gate with coordinates and a radius
func createLocatedGate(t *testing.T, id uint, lat, lon, radius float64) *domain.Gate {
	t.Helper()

	gate := createTestGate(t, id)
	gate.Latitude = &lat
	gate.Longitude = &lon
	gate.AutoOpenRadius = &radius
	return gate
}

// createTestUser creates an active user granted the given gates
func createTestUser(t *testing.T, role string, gateIDs ...uint) *domain.User {
	t.Helper()

	user := &domain.User{
		ID:       1,
		Username: "tester",
		Name:     "Test User",
		Role:     role,
		IsActive: true,
		Gates:    make(map[uint]domain.GateAccess),
	}
	for _, id := range gateIDs {
		user.Gates[id] = domain.GateAccess{AutoOpen: true}
	}
	return user
}

// createTestSettings creates permissive settings fixtures
func createTestSettings(t *testing.T) *domain.AdminSettings {
	t.Helper()

	return &domain.AdminSettings{
		GateCooldownSeconds: 60,
		MaxRetries:          5,
		BalanceThreshold:    1.0,
	}
}
