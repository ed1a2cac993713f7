package entitlement

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidServiceKey = errors.New("invalid service key")
	ErrUserRequired      = errors.New("user ID is required")
)

// ServiceAccess is the standing grant of one service to one user. It
// outlives the subscription that created it.
type ServiceAccess struct {
	id         string
	userID     string
	service    ServiceKey
	locked     bool
	unlockedAt *time.Time
	createdAt  time.Time
}

// NewServiceAccess creates an unlocked grant stamped with now.
func NewServiceAccess(userID string, service ServiceKey, now time.Time) (*ServiceAccess, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}
	if _, err := ParseServiceKey(string(service)); err != nil {
		return nil, err
	}
	now = now.UTC()
	return &ServiceAccess{
		id:         uuid.NewString(),
		userID:     userID,
		service:    service,
		unlockedAt: &now,
		createdAt:  now,
	}, nil
}

// ReconstructServiceAccess rebuilds a grant from persistence.
func ReconstructServiceAccess(id, userID string, service ServiceKey, locked bool, unlockedAt *time.Time, createdAt time.Time) (*ServiceAccess, error) {
	if id == "" {
		return nil, fmt.Errorf("service access ID cannot be empty")
	}
	return &ServiceAccess{
		id:         id,
		userID:     userID,
		service:    service,
		locked:     locked,
		unlockedAt: unlockedAt,
		createdAt:  createdAt,
	}, nil
}

func (a *ServiceAccess) ID() string             { return a.id }
func (a *ServiceAccess) UserID() string         { return a.userID }
func (a *ServiceAccess) Service() ServiceKey    { return a.service }
func (a *ServiceAccess) Locked() bool           { return a.locked }
func (a *ServiceAccess) UnlockedAt() *time.Time { return a.unlockedAt }
func (a *ServiceAccess) CreatedAt() time.Time   { return a.createdAt }

// Unlock clears the lock and restamps unlocked-at. It returns false when the
// grant was already unlocked.
func (a *ServiceAccess) Unlock(now time.Time) bool {
	if !a.locked {
		return false
	}
	now = now.UTC()
	a.locked = false
	a.unlockedAt = &now
	return true
}

// Lock revokes access without deleting the grant. It returns false when the
// grant was already locked.
func (a *ServiceAccess) Lock() bool {
	if a.locked {
		return false
	}
	a.locked = true
	return true
}
