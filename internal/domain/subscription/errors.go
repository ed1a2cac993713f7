package subscription

import "errors"

var (
	ErrInvalidPlan   = errors.New("invalid subscription plan")
	ErrInvalidStatus = errors.New("invalid subscription status")
	ErrUserRequired  = errors.New("user ID is required")
	// ErrVersionConflict is returned by Update when the row changed since it
	// was read. The caller's transaction must be rolled back.
	ErrVersionConflict = errors.New("subscription was modified concurrently")
)
