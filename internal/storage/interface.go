package storage

import (
	"time"

	"webinar-token-service/internal/service"
)

// FormStore keeps one token request form per browser session. Forms live
// only in memory; issued tokens are never written anywhere.
type FormStore interface {
	// Create starts a new form under a fresh session ID
	Create() (string, *service.Form)

	// Get returns the form for id and marks it as recently used
	Get(id string) (*service.Form, bool)

	// Delete closes and removes the form for id
	Delete(id string)

	// SweepIdle closes and removes forms unused for longer than maxIdle.
	// Returns how many were removed.
	SweepIdle(maxIdle time.Duration) int

	// Len reports how many forms are live
	Len() int

	// CloseAll closes every form, cancelling in-flight requests
	CloseAll()
}
