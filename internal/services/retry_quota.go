package services

import (
	"time"

	"github.com/you/gatesvc/domain"
)

// RetryQuotaWindow is the trailing window over which failed attempts count
// against the per-(user,gate) quota.
const RetryQuotaWindow = 24 * time.Hour

// RetryQuotaPolicy decides whether a (user,gate) pair has exhausted its
// failed-attempt quota inside the trailing window.
type RetryQuotaPolicy struct {
	Window time.Duration
}

// NewRetryQuotaPolicy creates a policy with the standard 24h window
func NewRetryQuotaPolicy() *RetryQuotaPolicy {
	return &RetryQuotaPolicy{Window: RetryQuotaWindow}
}

// CountFailures counts failed records for the pair inside the window.
// Successful opens never reset or remove failures; the window is purely
// time-based.
func (p *RetryQuotaPolicy) CountFailures(records []domain.AttemptRecord, userID, gateID uint, now time.Time) int {
	cutoff := now.Add(-p.Window)
	count := 0
	for _, r := range records {
		if r.UserID != userID || r.GateID != gateID {
			continue
		}
		if r.Success {
			continue
		}
		if r.Timestamp.Before(cutoff) {
			continue
		}
		count++
	}
	return count
}

// Exceeded reports whether the pair's failure count reached maxRetries.
// A non-positive maxRetries disables the quota.
func (p *RetryQuotaPolicy) Exceeded(records []domain.AttemptRecord, userID, gateID uint, now time.Time, maxRetries int) bool {
	if maxRetries <= 0 {
		return false
	}
	return p.CountFailures(records, userID, gateID, now) >= maxRetries
}
