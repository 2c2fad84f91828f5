package domain

import (
	"context"
	"time"
)

// GateRepository defines gate data access operations
type GateRepository interface {
	FindByID(ctx context.Context, id uint) (*Gate, error)
	FindAllActive(ctx context.Context) ([]*Gate, error)
	Update(ctx context.Context, gate *Gate) error
}

// UserRepository defines user data access operations
type UserRepository interface {
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
}

// HistoryRepository defines append-only attempt history operations
type HistoryRepository interface {
	Append(ctx context.Context, record *AttemptRecord) error
	FindRecent(ctx context.Context, userID, gateID uint, since time.Time) ([]AttemptRecord, error)
}

// SettingsRepository provides the AdminSettings singleton.
// GetCurrent lazily creates the row with defaults when it is absent.
type SettingsRepository interface {
	GetCurrent(ctx context.Context) (*AdminSettings, error)
	Update(ctx context.Context, settings *AdminSettings) error
}

// SessionRepository defines bearer session data access operations
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	FindByID(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}

// ProximitySessionRepository stores per-client proximity engine state
type ProximitySessionRepository interface {
	Load(ctx context.Context, sessionID string) (*ProximitySession, error)
	Save(ctx context.Context, session *ProximitySession) error
	Delete(ctx context.Context, sessionID string) error
}

// TelephonyService is the outbound call provider boundary
type TelephonyService interface {
	// PlaceCall dials toNumber from fromNumber and returns the provider call SID
	PlaceCall(ctx context.Context, toNumber, fromNumber, statusCallbackURL string) (string, error)
	// Balance returns the remaining provider account balance
	Balance(ctx context.Context) (amount float64, currency string, err error)
}

// GateOpener is the single authorization entry point for opening a gate
type GateOpener interface {
	AttemptOpen(ctx context.Context, user *User, gateID uint, password string, autoOpen bool) (*OpenResult, error)
	RemainingCooldown(ctx context.Context, gateID uint) (int, error)
}

// ProximityEngine consumes location samples and drives auto-opening
type ProximityEngine interface {
	OnLocationSample(ctx context.Context, user *User, sessionID string, sample LocationSample) (*ProximityDecision, error)
	SelectCandidate(ctx context.Context, user *User, sessionID string, gateID uint, password string) (*OpenResult, error)
	CancelDisambiguation(ctx context.Context, sessionID string) error
}

// AuthService defines the bearer-token authentication layer
type AuthService interface {
	Login(ctx context.Context, username, password string) (*AuthResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*AuthResult, error)
	Logout(ctx context.Context, sessionID string) error
	GetUserProfile(ctx context.Context, userID uint) (*User, error)
}

// PasswordService defines password hashing operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines token operations
type TokenService interface {
	GenerateAccessToken(userID uint, role string, sessionID string) (string, error)
	GenerateRefreshToken(userID uint, role string, sessionID string) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	ValidateRefreshToken(token string) (*TokenClaims, error)
}

// Clock abstracts time for the policy services so cooldown and quota
// decisions are testable with a fixed now.
type Clock interface {
	Now() time.Time
}
