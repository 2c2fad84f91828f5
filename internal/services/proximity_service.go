package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/you/gatesvc/domain"
)

const (
	// DefaultAutoOpenRadius applies when neither the user nor the gate
	// configures a radius.
	DefaultAutoOpenRadius = 50.0

	// ResetThresholdMeters is the hysteresis exit distance. A gate only
	// leaves the in-range/auto-opened state once the user is this far
	// away, even when the entry radius is much smaller, so a device
	// hovering at the boundary cannot flap between open and closed.
	ResetThresholdMeters = 150.0
)

// ProximityService implements domain.ProximityEngine. It keeps per-session
// gate state in a ProximitySessionRepository and delegates every actual
// open to the GateOpener, so server-side guards always apply.
type ProximityService struct {
	gates    domain.GateRepository
	sessions domain.ProximitySessionRepository
	settings domain.SettingsRepository
	opener   domain.GateOpener
	clock    domain.Clock
}

// NewProximityService creates a new proximity engine
func NewProximityService(
	gates domain.GateRepository,
	sessions domain.ProximitySessionRepository,
	settings domain.SettingsRepository,
	opener domain.GateOpener,
	clock domain.Clock,
) *ProximityService {
	return &ProximityService{
		gates:    gates,
		sessions: sessions,
		settings: settings,
		opener:   opener,
		clock:    clock,
	}
}

// OnLocationSample implements domain.ProximityEngine.
//
// One call is one evaluation cycle: the full candidate set is computed
// before any open is issued, so a gate entering range early in the walk
// cannot fire while a second gate for the same sample is still being
// measured.
func (s *ProximityService) OnLocationSample(ctx context.Context, user *domain.User, sessionID string, sample domain.LocationSample) (*domain.ProximityDecision, error) {
	session, err := s.loadOrCreateSession(ctx, sessionID, user.ID)
	if err != nil {
		return nil, err
	}

	settings, err := s.settings.GetCurrent(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load settings: %v", domain.ErrStoreFailure, err)
	}

	gates, err := s.gates.FindAllActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load gates: %v", domain.ErrStoreFailure, err)
	}

	now := s.clock.Now()
	var candidates []domain.GateDistance

	for _, gate := range gates {
		if !gate.HasLocation() || !user.CanAccess(gate.ID) {
			continue
		}

		distance := DistanceMeters(sample.Latitude, sample.Longitude, *gate.Latitude, *gate.Longitude)

		// Hysteresis reset: past the exit threshold the gate forgets
		// both its in-range mark and its auto-opened mark, so a later
		// approach can trigger again.
		if distance > ResetThresholdMeters {
			delete(session.GatesInRange, gate.ID)
			delete(session.AutoOpened, gate.ID)
			continue
		}

		if distance > s.effectiveRadius(user, gate) {
			// Inside the hysteresis band: no transition either way.
			continue
		}

		if !user.AutoOpenEnabled(gate.ID) {
			continue
		}

		entering := !session.GatesInRange[gate.ID]
		session.GatesInRange[gate.ID] = true

		if !entering || session.AutoOpened[gate.ID] {
			continue
		}
		// A gate still inside its server cooldown is not a candidate;
		// it will not become one again until it exits past the reset
		// threshold and re-enters.
		if RemainingCooldown(gate.LastOpenedAt, settings.Cooldown(), now) > 0 {
			continue
		}

		candidates = append(candidates, domain.GateDistance{Gate: gate, DistanceMeters: distance})
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].DistanceMeters < candidates[j].DistanceMeters
	})

	switch len(candidates) {
	case 0:
		session.UpdatedAt = now
		if err := s.sessions.Save(ctx, session); err != nil {
			return nil, fmt.Errorf("%w: save proximity session: %v", domain.ErrStoreFailure, err)
		}
		return &domain.ProximityDecision{Kind: domain.DecisionNone}, nil

	case 1:
		candidate := candidates[0]
		result, openErr := s.opener.AttemptOpen(ctx, user, candidate.Gate.ID, "", true)
		if openErr == nil {
			session.AutoOpened[candidate.Gate.ID] = true
		}
		session.UpdatedAt = now
		if err := s.sessions.Save(ctx, session); err != nil {
			return nil, fmt.Errorf("%w: save proximity session: %v", domain.ErrStoreFailure, err)
		}
		if openErr != nil {
			return nil, openErr
		}
		return &domain.ProximityDecision{
			Kind:   domain.DecisionAutoOpened,
			Opened: &candidate,
			Result: result,
		}, nil

	default:
		session.PendingCandidates = session.PendingCandidates[:0]
		for _, c := range candidates {
			session.PendingCandidates = append(session.PendingCandidates, c.Gate.ID)
		}
		session.UpdatedAt = now
		if err := s.sessions.Save(ctx, session); err != nil {
			return nil, fmt.Errorf("%w: save proximity session: %v", domain.ErrStoreFailure, err)
		}
		return &domain.ProximityDecision{
			Kind:       domain.DecisionDisambiguationNeeded,
			Candidates: candidates,
		}, nil
	}
}

// SelectCandidate implements domain.ProximityEngine. The gate must be one
// of the session's pending disambiguation candidates.
func (s *ProximityService) SelectCandidate(ctx context.Context, user *domain.User, sessionID string, gateID uint, password string) (*domain.OpenResult, error) {
	session, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil || !session.IsPendingCandidate(gateID) {
		return nil, domain.ErrNotACandidate
	}

	result, err := s.opener.AttemptOpen(ctx, user, gateID, password, true)
	if err != nil {
		return nil, err
	}

	session.AutoOpened[gateID] = true
	session.PendingCandidates = nil
	session.UpdatedAt = s.clock.Now()
	if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
		return nil, fmt.Errorf("%w: save proximity session: %v", domain.ErrStoreFailure, saveErr)
	}
	return result, nil
}

// CancelDisambiguation implements domain.ProximityEngine. It releases the
// pending prompt without opening anything.
func (s *ProximityService) CancelDisambiguation(ctx context.Context, sessionID string) error {
	session, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return err
	}
	if session == nil || len(session.PendingCandidates) == 0 {
		return nil
	}
	session.PendingCandidates = nil
	session.UpdatedAt = s.clock.Now()
	if err := s.sessions.Save(ctx, session); err != nil {
		return fmt.Errorf("%w: save proximity session: %v", domain.ErrStoreFailure, err)
	}
	return nil
}

// effectiveRadius resolves the entry radius for a (user,gate) pair:
// user override first, then the gate's configured radius, then the default.
func (s *ProximityService) effectiveRadius(user *domain.User, gate *domain.Gate) float64 {
	if override := user.RadiusOverride(gate.ID); override != nil && *override > 0 {
		return *override
	}
	if gate.AutoOpenRadius != nil && *gate.AutoOpenRadius > 0 {
		return *gate.AutoOpenRadius
	}
	return DefaultAutoOpenRadius
}

func (s *ProximityService) loadOrCreateSession(ctx context.Context, sessionID string, userID uint) (*domain.ProximitySession, error) {
	session, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return domain.NewProximitySession(sessionID, userID), nil
	}
	return session, nil
}

var _ domain.ProximityEngine = (*ProximityService)(nil)
var _ domain.GateOpener = (*OpenerService)(nil)
