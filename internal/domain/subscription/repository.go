package subscription

import "context"

// Repository persists subscriptions. Get* methods return (nil, nil) when no
// row matches.
type Repository interface {
	Create(ctx context.Context, s *Subscription) error
	GetByID(ctx context.Context, id string) (*Subscription, error)
	GetByExternalID(ctx context.Context, externalID string) (*Subscription, error)
	// GetByExternalIDForUpdate reads the row with SELECT ... FOR UPDATE. It
	// must run inside a transaction; the lock is held until commit.
	GetByExternalIDForUpdate(ctx context.Context, externalID string) (*Subscription, error)
	GetByCheckoutSessionID(ctx context.Context, sessionID string) (*Subscription, error)
	// Update writes the subscription if its stored version still equals
	// s.Version(), otherwise it returns ErrVersionConflict.
	Update(ctx context.Context, s *Subscription) error
	ListByUserID(ctx context.Context, userID string) ([]*Subscription, error)
	CountActiveByPlan(ctx context.Context) (map[Plan]int64, error)
}
