package domain

import "time"

// Role values for User.Role
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Gate represents a physical access point opened by placing a phone call
type Gate struct {
	ID               uint
	Name             string
	PhoneNumber      string
	AuthorizedNumber string
	Password         string // empty means no password required
	Latitude         *float64
	Longitude        *float64
	Address          string
	AutoOpenRadius   *float64 // meters; nil falls back to the engine default
	LastOpenedAt     *time.Time
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// HasLocation reports whether the gate has coordinates configured
func (g *Gate) HasLocation() bool {
	return g.Latitude != nil && g.Longitude != nil
}

// GateAccess holds a user's per-gate authorization and auto-open preferences
type GateAccess struct {
	AutoOpen       bool
	RadiusOverride *float64 // meters; nil means use the gate's radius
}

// User represents a user in the system
type User struct {
	ID           uint
	Username     string
	PasswordHash string
	Name         string
	Role         string
	IsActive     bool
	Gates        map[uint]GateAccess
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin reports whether the user has the admin role.
// Admins may open every gate regardless of per-gate grants.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanAccess reports whether the user may open the given gate
func (u *User) CanAccess(gateID uint) bool {
	if u.IsAdmin() {
		return true
	}
	_, ok := u.Gates[gateID]
	return ok
}

// AutoOpenEnabled reports whether the user enabled auto-open for the gate
func (u *User) AutoOpenEnabled(gateID uint) bool {
	access, ok := u.Gates[gateID]
	return ok && access.AutoOpen
}

// RadiusOverride returns the user's per-gate radius override, if any
func (u *User) RadiusOverride(gateID uint) *float64 {
	if access, ok := u.Gates[gateID]; ok {
		return access.RadiusOverride
	}
	return nil
}

// AttemptRecord is an immutable history entry for a single open attempt.
// It doubles as the audit trail and as the retry-quota window input.
type AttemptRecord struct {
	ID           uint
	UserID       uint
	GateID       uint
	Username     string
	GateName     string
	Timestamp    time.Time
	Success      bool
	ErrorMessage string
	CallSID      string
	AutoOpened   bool
	Cost         float64
}

// AdminSettings is the singleton of admin-configured policy knobs
type AdminSettings struct {
	ID                  uint
	GateCooldownSeconds int
	MaxRetries          int
	SystemMaintenance   bool
	MaintenanceMessage  string
	BlockIfLowBalance   bool
	BalanceThreshold    float64
	EnableNotifications bool
	AutoRefreshSeconds  int
	UpdatedAt           time.Time
}

// Cooldown returns the configured cooldown as a duration
func (s *AdminSettings) Cooldown() time.Duration {
	return time.Duration(s.GateCooldownSeconds) * time.Second
}

// LocationSample is one device geolocation reading
type LocationSample struct {
	Latitude  float64
	Longitude float64
	Accuracy  float64
	Timestamp time.Time
}

// ProximitySession is the per-client state of the proximity engine.
// It lives in Redis for the lifetime of a dashboard session and tracks
// which gates are currently in range and which were already auto-opened.
type ProximitySession struct {
	ID                string        `json:"id"`
	UserID            uint          `json:"user_id"`
	GatesInRange      map[uint]bool `json:"gates_in_range"`
	AutoOpened        map[uint]bool `json:"auto_opened"`
	PendingCandidates []uint        `json:"pending_candidates,omitempty"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// NewProximitySession creates an empty session for a user
func NewProximitySession(id string, userID uint) *ProximitySession {
	return &ProximitySession{
		ID:           id,
		UserID:       userID,
		GatesInRange: make(map[uint]bool),
		AutoOpened:   make(map[uint]bool),
	}
}

// IsPendingCandidate reports whether the gate awaits manual disambiguation
func (p *ProximitySession) IsPendingCandidate(gateID uint) bool {
	for _, id := range p.PendingCandidates {
		if id == gateID {
			return true
		}
	}
	return false
}

// OpenResult is the outcome of a successful gate open
type OpenResult struct {
	Gate       *Gate
	CallSID    string
	AutoOpened bool
	OpenedAt   time.Time
}

// ProximityDecisionKind discriminates the outcome of one evaluation cycle
type ProximityDecisionKind string

const (
	DecisionNone                 ProximityDecisionKind = "none"
	DecisionAutoOpened           ProximityDecisionKind = "auto_opened"
	DecisionDisambiguationNeeded ProximityDecisionKind = "disambiguation_needed"
)

// GateDistance pairs a gate with its measured distance from the user
type GateDistance struct {
	Gate           *Gate
	DistanceMeters float64
}

// ProximityDecision is what one location sample resolved to
type ProximityDecision struct {
	Kind       ProximityDecisionKind
	Opened     *GateDistance  // set when Kind == DecisionAutoOpened
	Result     *OpenResult    // set when Kind == DecisionAutoOpened
	Candidates []GateDistance // sorted by ascending distance when disambiguating
}

// Session represents a bearer-token session
type Session struct {
	ID        string
	UserID    uint
	ExpiresAt time.Time
	CreatedAt time.Time
}

// AuthResult represents authentication outcome
type AuthResult struct {
	User         *User
	AccessToken  string
	RefreshToken string
	SessionID    string
	ExpiresIn    int64
}

// TokenClaims represents JWT token claims
type TokenClaims struct {
	UserID    uint   `json:"user_id"`
	Role      string `json:"role"`
	SessionID string `json:"session_id,omitempty"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}
