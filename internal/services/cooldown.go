package services

import "time"

// RemainingCooldown returns how many whole seconds remain before the gate
// may be opened again. It returns 0 when the gate was never opened or the
// cooldown has elapsed; otherwise the remainder rounded up to a full second.
//
// Both the authorizer and the display endpoint call this one function, so
// the countdown a user watches and the enforcement decision always agree.
func RemainingCooldown(lastOpenedAt *time.Time, cooldown time.Duration, now time.Time) int {
	if lastOpenedAt == nil || cooldown <= 0 {
		return 0
	}
	elapsed := now.Sub(*lastOpenedAt)
	if elapsed >= cooldown {
		return 0
	}
	remaining := cooldown - elapsed
	return int((remaining + time.Second - 1) / time.Second)
}
