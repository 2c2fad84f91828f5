package services

import (
	"time"

	"github.com/you/gatesvc/domain"
)

// SystemClock implements domain.Clock with the real time
type SystemClock struct{}

// Now returns the current time
func (SystemClock) Now() time.Time { return time.Now() }

var _ domain.Clock = SystemClock{}
