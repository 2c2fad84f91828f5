package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log"
	"time"

	"github.com/you/gatesvc/domain"
)

// OpenerService implements domain.GateOpener. It is the single entry point
// for opening a gate: every guard is evaluated in a fixed precedence order,
// the first failing guard wins, and every decision (except the balance
// guard's fail-open skip) is recorded to history before returning.
type OpenerService struct {
	gates     domain.GateRepository
	history   domain.HistoryRepository
	settings  domain.SettingsRepository
	telephony domain.TelephonyService
	quota     *RetryQuotaPolicy
	clock     domain.Clock

	// statusCallbackURL is handed to the provider so call progress is
	// reported back asynchronously.
	statusCallbackURL string
}

// NewOpenerService creates a new gate opener
func NewOpenerService(
	gates domain.GateRepository,
	history domain.HistoryRepository,
	settings domain.SettingsRepository,
	telephony domain.TelephonyService,
	clock domain.Clock,
	statusCallbackURL string,
) *OpenerService {
	return &OpenerService{
		gates:             gates,
		history:           history,
		settings:          settings,
		telephony:         telephony,
		quota:             NewRetryQuotaPolicy(),
		clock:             clock,
		statusCallbackURL: statusCallbackURL,
	}
}

// AttemptOpen implements domain.GateOpener.
//
// Guard precedence: balance, maintenance, existence, permission, cooldown,
// retry quota, password. Existence is checked before permission on purpose;
// the source system leaked gate existence to unauthorized users and the
// order is preserved.
func (s *OpenerService) AttemptOpen(ctx context.Context, user *domain.User, gateID uint, password string, autoOpen bool) (*domain.OpenResult, error) {
	now := s.clock.Now()

	settings, err := s.settings.GetCurrent(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load settings: %v", domain.ErrStoreFailure, err)
	}

	// Balance guard. A failing balance query is skipped silently: an
	// unreachable provider must not lock users out, and the skip writes
	// no history record.
	if settings.BlockIfLowBalance && !user.IsAdmin() {
		amount, _, err := s.telephony.Balance(ctx)
		if err == nil && amount < settings.BalanceThreshold {
			return nil, s.reject(ctx, user, nil, gateID, autoOpen, domain.ErrLowBalance, now)
		}
	}

	// Maintenance guard. Blocks every role, admins included.
	if settings.SystemMaintenance {
		maintErr := &domain.MaintenanceError{Message: settings.MaintenanceMessage}
		return nil, s.reject(ctx, user, nil, gateID, autoOpen, maintErr, now)
	}

	// Existence guard
	gate, err := s.gates.FindByID(ctx, gateID)
	if err != nil || gate == nil || !gate.IsActive {
		return nil, s.reject(ctx, user, nil, gateID, autoOpen, domain.ErrGateNotFound, now)
	}

	// Permission guard
	if !user.CanAccess(gate.ID) {
		return nil, s.reject(ctx, user, gate, gateID, autoOpen, domain.ErrGateForbidden, now)
	}

	// Cooldown guard
	if remaining := RemainingCooldown(gate.LastOpenedAt, settings.Cooldown(), now); remaining > 0 {
		cooldownErr := &domain.CooldownActiveError{RemainingSeconds: remaining}
		return nil, s.reject(ctx, user, gate, gateID, autoOpen, cooldownErr, now)
	}

	// Retry-quota guard over the trailing 24h of failures
	recent, err := s.history.FindRecent(ctx, user.ID, gate.ID, now.Add(-s.quota.Window))
	if err != nil {
		return nil, fmt.Errorf("%w: load attempt history: %v", domain.ErrStoreFailure, err)
	}
	if s.quota.Exceeded(recent, user.ID, gate.ID, now, settings.MaxRetries) {
		return nil, s.reject(ctx, user, gate, gateID, autoOpen, domain.ErrQuotaExceeded, now)
	}

	// Password guard
	if gate.Password != "" {
		if subtle.ConstantTimeCompare([]byte(gate.Password), []byte(password)) != 1 {
			return nil, s.reject(ctx, user, gate, gateID, autoOpen, domain.ErrWrongPassword, now)
		}
	}

	// All guards passed: place the call. At most one provider call per
	// invocation; provider failures are recorded and surfaced generically.
	callSID, err := s.telephony.PlaceCall(ctx, gate.PhoneNumber, gate.AuthorizedNumber, s.statusCallbackURL)
	if err != nil {
		record := domain.NewAttemptRecord(user, gate, now).WithError(err).WithAutoOpened(autoOpen)
		s.appendRecord(ctx, record)
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderFailure, err)
	}

	gate.LastOpenedAt = &now
	if err := s.gates.Update(ctx, gate); err != nil {
		return nil, fmt.Errorf("%w: update gate: %v", domain.ErrStoreFailure, err)
	}

	record := domain.NewAttemptRecord(user, gate, now).WithCallSID(callSID).WithAutoOpened(autoOpen)
	if err := s.history.Append(ctx, record); err != nil {
		return nil, fmt.Errorf("%w: append history: %v", domain.ErrStoreFailure, err)
	}

	return &domain.OpenResult{
		Gate:       gate,
		CallSID:    callSID,
		AutoOpened: autoOpen,
		OpenedAt:   now,
	}, nil
}

// RemainingCooldown implements domain.GateOpener for display polling. It
// uses the same arithmetic as the enforcement path above.
func (s *OpenerService) RemainingCooldown(ctx context.Context, gateID uint) (int, error) {
	settings, err := s.settings.GetCurrent(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: load settings: %v", domain.ErrStoreFailure, err)
	}
	gate, err := s.gates.FindByID(ctx, gateID)
	if err != nil || gate == nil || !gate.IsActive {
		return 0, domain.ErrGateNotFound
	}
	return RemainingCooldown(gate.LastOpenedAt, settings.Cooldown(), s.clock.Now()), nil
}

// reject records a failed attempt and returns the guard error unchanged.
// gate may be nil when rejection happens before the gate was loaded; the
// record still carries the requested gate ID so the quota window stays
// consistent.
func (s *OpenerService) reject(ctx context.Context, user *domain.User, gate *domain.Gate, gateID uint, autoOpen bool, guardErr error, now time.Time) error {
	record := domain.NewAttemptRecord(user, gate, now).WithError(guardErr).WithAutoOpened(autoOpen)
	if gate == nil {
		record.GateID = gateID
	}
	s.appendRecord(ctx, record)
	return guardErr
}

// appendRecord writes a failure record. History write failures on the
// rejection path are logged and swallowed so the guard verdict, not a
// store hiccup, reaches the caller.
func (s *OpenerService) appendRecord(ctx context.Context, record *domain.AttemptRecord) {
	if err := s.history.Append(ctx, record); err != nil {
		log.Printf("opener: failed to append attempt record for user %d gate %d: %v", record.UserID, record.GateID, err)
	}
}
