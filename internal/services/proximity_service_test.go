package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/you/gatesvc/domain"
	"github.com/you/gatesvc/internal/mocks"
)

// proximityFixture bundles a ProximityService with its mock collaborators
type proximityFixture struct {
	engine   *ProximityService
	gates    *mocks.MockGateRepository
	sessions *mocks.MockProximitySessionRepository
	settings *mocks.MockSettingsRepository
	opener   *mocks.MockGateOpener
	clock    *mocks.MockClock
}

func createProximityForTest(t *testing.T, gates ...*domain.Gate) *proximityFixture {
	t.Helper()

	f := &proximityFixture{
		gates:    mocks.NewMockGateRepository(),
		sessions: mocks.NewMockProximitySessionRepository(),
		settings: mocks.NewMockSettingsRepository(),
		opener:   mocks.NewMockGateOpener(),
		clock:    mocks.NewMockClock(fixedNow),
	}
	f.gates.FindAllActiveFunc = func(ctx context.Context) ([]*domain.Gate, error) {
		return gates, nil
	}
	f.engine = NewProximityService(f.gates, f.sessions, f.settings, f.opener, f.clock)
	return f
}

// sampleAt builds a location sample offset north of a base coordinate by
// approximately the given number of meters.
func sampleAt(baseLat, baseLon, northMeters float64) domain.LocationSample {
	return domain.LocationSample{
		Latitude:  baseLat + northMeters/111195.0,
		Longitude: baseLon,
		Accuracy:  5,
		Timestamp: time.Now(),
	}
}

const (
	gateLat = 32.0853
	gateLon = 34.7818
)

func TestProximityService_SingleCandidateAutoOpens(t *testing.T) {
	gate := createLocatedGate(t, 1, gateLat, gateLon, 50)
	f := createProximityForTest(t, gate)
	user := createTestUser(t, domain.RoleUser, 1)

	decision, err := f.engine.OnLocationSample(context.Background(), user, "sess-1", sampleAt(gateLat, gateLon, 10))
	if err != nil {
		t.Fatalf("OnLocationSample failed: %v", err)
	}
	if decision.Kind != domain.DecisionAutoOpened {
		t.Fatalf("decision = %s, expected auto_opened", decision.Kind)
	}
	if decision.Opened == nil || decision.Opened.Gate.ID != 1 {
		t.Fatal("decision must carry the opened gate")
	}

	if len(f.opener.OpenCalls) != 1 {
		t.Fatalf("expected one open call, got %d", len(f.opener.OpenCalls))
	}
	call := f.opener.OpenCalls[0]
	if !call.AutoOpen {
		t.Error("proximity opens must set autoOpen")
	}
	if call.GateID != 1 {
		t.Errorf("opened gate %d, expected 1", call.GateID)
	}

	// A second identical sample is steady-state, not an entry edge.
	decision, err = f.engine.OnLocationSample(context.Background(), user, "sess-1", sampleAt(gateLat, gateLon, 10))
	if err != nil {
		t.Fatalf("second sample failed: %v", err)
	}
	if decision.Kind != domain.DecisionNone {
		t.Errorf("second identical sample: decision = %s, expected none", decision.Kind)
	}
	if len(f.opener.OpenCalls) != 1 {
		t.Errorf("gate must not be auto-opened twice, got %d open calls", len(f.opener.OpenCalls))
	}
}

func TestProximityService_AutoOpenDisabledGateIgnored(t *testing.T) {
	gate := createLocatedGate(t, 1, gateLat, gateLon, 50)
	f := createProximityForTest(t, gate)

	user := createTestUser(t, domain.RoleUser)
	user.Gates[1] = domain.GateAccess{AutoOpen: false}

	decision, err := f.engine.OnLocationSample(context.Background(), user, "sess-1", sampleAt(gateLat, gateLon, 10))
	if err != nil {
		t.Fatalf("OnLocationSample failed: %v", err)
	}
	if decision.Kind != domain.DecisionNone {
		t.Errorf("decision = %s, expected none for auto-open-disabled gate", decision.Kind)
	}
	if len(f.opener.OpenCalls) != 0 {
		t.Error("no open may be issued when the user disabled auto-open")
	}
}

func TestProximityService_Disambiguation(t *testing.T) {
	// Two gates come into range on the same sample; the nearer one is 10m
	// away, the farther one 30m. No auto-open fires, candidates are sorted
	// by ascending distance.
	near := createLocatedGate(t, 1, gateLat, gateLon, 50)
	farLat := gateLat + 40.0/111195.0
	far := createLocatedGate(t, 2, farLat, gateLon, 50)

	f := createProximityForTest(t, far, near) // repo order must not matter
	user := createTestUser(t, domain.RoleUser, 1, 2)

	decision, err := f.engine.OnLocationSample(context.Background(), user, "sess-1", sampleAt(gateLat, gateLon, 10))
	if err != nil {
		t.Fatalf("OnLocationSample failed: %v", err)
	}
	if decision.Kind != domain.DecisionDisambiguationNeeded {
		t.Fatalf("decision = %s, expected disambiguation_needed", decision.Kind)
	}
	if len(decision.Candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(decision.Candidates))
	}
	if decision.Candidates[0].Gate.ID != 1 || decision.Candidates[1].Gate.ID != 2 {
		t.Errorf("candidates not sorted by distance: %d then %d",
			decision.Candidates[0].Gate.ID, decision.Candidates[1].Gate.ID)
	}
	if len(f.opener.OpenCalls) != 0 {
		t.Error("no gate may auto-open while disambiguation is pending")
	}

	// Selecting one candidate opens it and clears the pending prompt.
	result, err := f.engine.SelectCandidate(context.Background(), user, "sess-1", 2, "")
	if err != nil {
		t.Fatalf("SelectCandidate failed: %v", err)
	}
	if result == nil || len(f.opener.OpenCalls) != 1 || f.opener.OpenCalls[0].GateID != 2 {
		t.Fatal("selection must open exactly the chosen gate")
	}

	session, _ := f.sessions.Load(context.Background(), "sess-1")
	if len(session.PendingCandidates) != 0 {
		t.Error("pending candidates must be cleared after selection")
	}
	if !session.AutoOpened[2] {
		t.Error("selected gate must be marked auto-opened")
	}
}

func TestProximityService_SelectCandidate_NotPending(t *testing.T) {
	gate := createLocatedGate(t, 1, gateLat, gateLon, 50)
	f := createProximityForTest(t, gate)
	user := createTestUser(t, domain.RoleUser, 1)

	_, err := f.engine.SelectCandidate(context.Background(), user, "missing-session", 1, "")
	if !errors.Is(err, domain.ErrNotACandidate) {
		t.Fatalf("error = %v, expected ErrNotACandidate", err)
	}
	if len(f.opener.OpenCalls) != 0 {
		t.Error("nothing may open for a non-candidate selection")
	}
}

func TestProximityService_CancelDisambiguation(t *testing.T) {
	near := createLocatedGate(t, 1, gateLat, gateLon, 50)
	far := createLocatedGate(t, 2, gateLat+40.0/111195.0, gateLon, 50)
	f := createProximityForTest(t, near, far)
	user := createTestUser(t, domain.RoleUser, 1, 2)

	if _, err := f.engine.OnLocationSample(context.Background(), user, "sess-1", sampleAt(gateLat, gateLon, 10)); err != nil {
		t.Fatal(err)
	}

	if err := f.engine.CancelDisambiguation(context.Background(), "sess-1"); err != nil {
		t.Fatalf("CancelDisambiguation failed: %v", err)
	}
	session, _ := f.sessions.Load(context.Background(), "sess-1")
	if len(session.PendingCandidates) != 0 {
		t.Error("cancel must clear pending candidates")
	}

	_, err := f.engine.SelectCandidate(context.Background(), user, "sess-1", 1, "")
	if !errors.Is(err, domain.ErrNotACandidate) {
		t.Errorf("selection after cancel: error = %v, expected ErrNotACandidate", err)
	}
}

func TestProximityService_HysteresisReset(t *testing.T) {
	gate := createLocatedGate(t, 1, gateLat, gateLon, 50)
	f := createProximityForTest(t, gate)
	user := createTestUser(t, domain.RoleUser, 1)
	ctx := context.Background()

	// Enter range: opens.
	decision, err := f.engine.OnLocationSample(ctx, user, "sess-1", sampleAt(gateLat, gateLon, 10))
	if err != nil || decision.Kind != domain.DecisionAutoOpened {
		t.Fatalf("initial entry: decision=%v err=%v", decision, err)
	}

	// Drift to 100m: beyond the 50m entry radius but inside the 150m reset
	// threshold. The gate stays opened, nothing fires.
	decision, err = f.engine.OnLocationSample(ctx, user, "sess-1", sampleAt(gateLat, gateLon, 100))
	if err != nil || decision.Kind != domain.DecisionNone {
		t.Fatalf("hysteresis band: decision=%v err=%v", decision, err)
	}

	// Return to 10m without ever exceeding 150m: still no re-open.
	decision, err = f.engine.OnLocationSample(ctx, user, "sess-1", sampleAt(gateLat, gateLon, 10))
	if err != nil || decision.Kind != domain.DecisionNone {
		t.Fatalf("re-approach inside threshold: decision=%v err=%v", decision, err)
	}
	if len(f.opener.OpenCalls) != 1 {
		t.Fatalf("expected 1 open so far, got %d", len(f.opener.OpenCalls))
	}

	// Exceed 150m: state resets.
	decision, err = f.engine.OnLocationSample(ctx, user, "sess-1", sampleAt(gateLat, gateLon, 200))
	if err != nil || decision.Kind != domain.DecisionNone {
		t.Fatalf("exit past threshold: decision=%v err=%v", decision, err)
	}

	// Re-enter the configured radius: opens again.
	decision, err = f.engine.OnLocationSample(ctx, user, "sess-1", sampleAt(gateLat, gateLon, 10))
	if err != nil || decision.Kind != domain.DecisionAutoOpened {
		t.Fatalf("re-entry after reset: decision=%v err=%v", decision, err)
	}
	if len(f.opener.OpenCalls) != 2 {
		t.Errorf("expected 2 opens after a full reset cycle, got %d", len(f.opener.OpenCalls))
	}
}

func TestProximityService_EffectiveRadius(t *testing.T) {
	// Gate radius 30m, user override 80m: a 60m sample is inside the
	// override radius and triggers.
	gate := createLocatedGate(t, 1, gateLat, gateLon, 30)
	f := createProximityForTest(t, gate)

	override := 80.0
	user := createTestUser(t, domain.RoleUser)
	user.Gates[1] = domain.GateAccess{AutoOpen: true, RadiusOverride: &override}

	decision, err := f.engine.OnLocationSample(context.Background(), user, "sess-1", sampleAt(gateLat, gateLon, 60))
	if err != nil {
		t.Fatalf("OnLocationSample failed: %v", err)
	}
	if decision.Kind != domain.DecisionAutoOpened {
		t.Errorf("decision = %s, expected auto_opened inside the override radius", decision.Kind)
	}
}

func TestProximityService_DefaultRadius(t *testing.T) {
	// No gate radius, no override: the 50m default applies.
	gate := createLocatedGate(t, 1, gateLat, gateLon, 0)
	gate.AutoOpenRadius = nil
	f := createProximityForTest(t, gate)
	user := createTestUser(t, domain.RoleUser, 1)

	decision, err := f.engine.OnLocationSample(context.Background(), user, "sess-1", sampleAt(gateLat, gateLon, 40))
	if err != nil {
		t.Fatalf("OnLocationSample failed: %v", err)
	}
	if decision.Kind != domain.DecisionAutoOpened {
		t.Errorf("decision = %s, expected auto_opened inside the default radius", decision.Kind)
	}

	f2 := createProximityForTest(t, gate)
	decision, err = f2.engine.OnLocationSample(context.Background(), user, "sess-2", sampleAt(gateLat, gateLon, 60))
	if err != nil {
		t.Fatalf("OnLocationSample failed: %v", err)
	}
	if decision.Kind != domain.DecisionNone {
		t.Errorf("decision = %s, expected none outside the default radius", decision.Kind)
	}
}

func TestProximityService_ServerCooldownSuppressesCandidate(t *testing.T) {
	gate := createLocatedGate(t, 1, gateLat, gateLon, 50)
	opened := fixedNow.Add(-10 * time.Second)
	gate.LastOpenedAt = &opened // 60s cooldown still running

	f := createProximityForTest(t, gate)
	user := createTestUser(t, domain.RoleUser, 1)

	decision, err := f.engine.OnLocationSample(context.Background(), user, "sess-1", sampleAt(gateLat, gateLon, 10))
	if err != nil {
		t.Fatalf("OnLocationSample failed: %v", err)
	}
	if decision.Kind != domain.DecisionNone {
		t.Errorf("decision = %s, expected none while the gate is cooling down", decision.Kind)
	}
	if len(f.opener.OpenCalls) != 0 {
		t.Error("a cooling-down gate must not be attempted")
	}
}

func TestProximityService_FailedAutoOpenSurfacesError(t *testing.T) {
	gate := createLocatedGate(t, 1, gateLat, gateLon, 50)
	f := createProximityForTest(t, gate)
	f.opener.AttemptOpenFunc = func(ctx context.Context, user *domain.User, gateID uint, password string, autoOpen bool) (*domain.OpenResult, error) {
		return nil, domain.ErrWrongPassword
	}
	user := createTestUser(t, domain.RoleUser, 1)
	ctx := context.Background()

	_, err := f.engine.OnLocationSample(ctx, user, "sess-1", sampleAt(gateLat, gateLon, 10))
	if !errors.Is(err, domain.ErrWrongPassword) {
		t.Fatalf("error = %v, expected the opener's rejection", err)
	}

	// The gate entered range even though the open failed, so the next
	// sample is steady-state and does not retry.
	decision, err := f.engine.OnLocationSample(ctx, user, "sess-1", sampleAt(gateLat, gateLon, 10))
	if err != nil {
		t.Fatalf("second sample failed: %v", err)
	}
	if decision.Kind != domain.DecisionNone {
		t.Errorf("decision = %s, expected none after a failed entry attempt", decision.Kind)
	}
	if len(f.opener.OpenCalls) != 1 {
		t.Errorf("failed auto-open must not be retried on steady-state samples, got %d calls", len(f.opener.OpenCalls))
	}
}

func TestProximityService_UnauthorizedGateInvisible(t *testing.T) {
	gate := createLocatedGate(t, 1, gateLat, gateLon, 50)
	f := createProximityForTest(t, gate)
	user := createTestUser(t, domain.RoleUser) // no grant for gate 1

	decision, err := f.engine.OnLocationSample(context.Background(), user, "sess-1", sampleAt(gateLat, gateLon, 10))
	if err != nil {
		t.Fatalf("OnLocationSample failed: %v", err)
	}
	if decision.Kind != domain.DecisionNone {
		t.Errorf("decision = %s, expected none for an unauthorized gate", decision.Kind)
	}
}
