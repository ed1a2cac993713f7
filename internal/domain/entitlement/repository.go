package entitlement

import "context"

// Repository persists service grants. (user, service) is unique.
type Repository interface {
	// Get returns (nil, nil) when no grant exists.
	Get(ctx context.Context, userID string, service ServiceKey) (*ServiceAccess, error)
	// Create inserts a grant. A duplicate (user, service) pair is returned
	// as a conflict AppError.
	Create(ctx context.Context, access *ServiceAccess) error
	// UpdateLock persists the locked flag and unlocked-at stamp.
	UpdateLock(ctx context.Context, access *ServiceAccess) error
	// HasUnlocked is true iff a grant exists with locked = false.
	HasUnlocked(ctx context.Context, userID string, service ServiceKey) (bool, error)
	ListByUser(ctx context.Context, userID string, unlockedOnly bool) ([]*ServiceAccess, error)
}
