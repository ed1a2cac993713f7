package subscription

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Subscription is a user's plan as reported by the billing provider. Its
// status only changes through billing events.
type Subscription struct {
	id                 string
	userID             string
	plan               Plan
	status             Status
	externalID         string
	priceID            string
	checkoutSessionID  string
	currentPeriodStart *time.Time
	currentPeriodEnd   *time.Time
	cancelAtPeriodEnd  bool
	canceledAt         *time.Time
	version            int
	createdAt          time.Time
	updatedAt          time.Time
}

// NewSubscription creates an active subscription from a completed checkout.
// externalID may be empty for one-off checkouts.
func NewSubscription(userID string, plan Plan, externalID, priceID, checkoutSessionID string, periodStart, periodEnd *time.Time) (*Subscription, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}
	if !plan.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPlan, plan)
	}

	now := time.Now().UTC()
	if periodStart == nil {
		periodStart = &now
	}

	return &Subscription{
		id:                 uuid.NewString(),
		userID:             userID,
		plan:               plan,
		status:             StatusActive,
		externalID:         externalID,
		priceID:            priceID,
		checkoutSessionID:  checkoutSessionID,
		currentPeriodStart: periodStart,
		currentPeriodEnd:   periodEnd,
		version:            1,
		createdAt:          now,
		updatedAt:          now,
	}, nil
}

// ReconstructSubscription rebuilds a subscription from persistence.
func ReconstructSubscription(
	id, userID string,
	plan Plan,
	status Status,
	externalID, priceID, checkoutSessionID string,
	currentPeriodStart, currentPeriodEnd *time.Time,
	cancelAtPeriodEnd bool,
	canceledAt *time.Time,
	version int,
	createdAt, updatedAt time.Time,
) (*Subscription, error) {
	if id == "" {
		return nil, fmt.Errorf("subscription ID cannot be empty")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	return &Subscription{
		id:                 id,
		userID:             userID,
		plan:               plan,
		status:             status,
		externalID:         externalID,
		priceID:            priceID,
		checkoutSessionID:  checkoutSessionID,
		currentPeriodStart: currentPeriodStart,
		currentPeriodEnd:   currentPeriodEnd,
		cancelAtPeriodEnd:  cancelAtPeriodEnd,
		canceledAt:         canceledAt,
		version:            version,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}, nil
}

func (s *Subscription) ID() string                     { return s.id }
func (s *Subscription) UserID() string                 { return s.userID }
func (s *Subscription) Plan() Plan                     { return s.plan }
func (s *Subscription) Status() Status                 { return s.status }
func (s *Subscription) ExternalID() string             { return s.externalID }
func (s *Subscription) PriceID() string                { return s.priceID }
func (s *Subscription) CheckoutSessionID() string      { return s.checkoutSessionID }
func (s *Subscription) CurrentPeriodStart() *time.Time { return s.currentPeriodStart }
func (s *Subscription) CurrentPeriodEnd() *time.Time   { return s.currentPeriodEnd }
func (s *Subscription) CancelAtPeriodEnd() bool        { return s.cancelAtPeriodEnd }
func (s *Subscription) CanceledAt() *time.Time         { return s.canceledAt }
func (s *Subscription) Version() int                   { return s.version }
func (s *Subscription) CreatedAt() time.Time           { return s.createdAt }
func (s *Subscription) UpdatedAt() time.Time           { return s.updatedAt }

// IsActive reports whether the subscription currently counts toward MRR.
func (s *Subscription) IsActive() bool {
	return s.status == StatusActive
}

// ApplyProviderState overwrites status, period bounds and the
// cancel-at-period-end flag with the provider's view. An empty or unknown
// status leaves the current status untouched.
func (s *Subscription) ApplyProviderState(status Status, periodStart, periodEnd *time.Time, cancelAtPeriodEnd bool) {
	if status.IsValid() {
		s.status = status
	}
	if periodStart != nil {
		s.currentPeriodStart = periodStart
	}
	if periodEnd != nil {
		s.currentPeriodEnd = periodEnd
	}
	s.cancelAtPeriodEnd = cancelAtPeriodEnd
	s.updatedAt = time.Now().UTC()
}

// Cancel marks the subscription canceled. Canceling twice keeps the first
// canceled-at stamp.
func (s *Subscription) Cancel(at time.Time) {
	s.status = StatusCanceled
	if s.canceledAt == nil {
		at = at.UTC()
		s.canceledAt = &at
	}
	s.updatedAt = time.Now().UTC()
}

// IncrementVersion is called by the repository after a successful
// compare-and-set update.
func (s *Subscription) IncrementVersion() {
	s.version++
}
