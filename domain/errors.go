package domain

import (
	"errors"
	"fmt"
)

// Authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user account is inactive")
)

// Gate open errors (policy rejections)
var (
	ErrLowBalance    = errors.New("provider balance below configured threshold")
	ErrGateNotFound  = errors.New("gate not found")
	ErrGateForbidden = errors.New("user is not authorized for this gate")
	ErrQuotaExceeded = errors.New("maximum failed attempts exceeded for this gate")
	ErrWrongPassword = errors.New("wrong gate password")
	ErrNotACandidate = errors.New("gate is not a pending auto-open candidate")
)

// Infrastructure errors
var (
	ErrProviderFailure = errors.New("telephony provider failure")
	ErrStoreFailure    = errors.New("persistent store failure")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Session errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session has expired")
)

// MaintenanceError rejects an open attempt while the system is in
// maintenance mode. It carries the admin-configured message.
type MaintenanceError struct {
	Message string
}

func (e *MaintenanceError) Error() string {
	if e.Message == "" {
		return "system is under maintenance"
	}
	return fmt.Sprintf("system is under maintenance: %s", e.Message)
}

// CooldownActiveError rejects an open attempt inside the per-gate cooldown
// window and reports how many seconds remain.
type CooldownActiveError struct {
	RemainingSeconds int
}

func (e *CooldownActiveError) Error() string {
	return fmt.Sprintf("gate cooldown active, %d seconds remaining", e.RemainingSeconds)
}
