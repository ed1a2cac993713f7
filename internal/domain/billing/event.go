// Package billing holds the provider-neutral shape of payment lifecycle
// events and the ledger of event ids that have already been applied.
package billing

import (
	"context"
	"time"
)

type EventKind string

const (
	EventCheckoutCompleted   EventKind = "checkout.completed"
	EventSubscriptionUpdated EventKind = "subscription.updated"
	EventSubscriptionDeleted EventKind = "subscription.deleted"
	EventPaymentSucceeded    EventKind = "payment.succeeded"
	EventPaymentFailed       EventKind = "payment.failed"
	// EventUnknown marks provider events this service does not handle.
	EventUnknown EventKind = "unknown"
)

// Event is a verified provider event. Exactly one payload pointer is set
// for known kinds; unknown events carry only ID and ProviderType.
type Event struct {
	ID           string
	Kind         EventKind
	ProviderType string
	Created      time.Time

	Checkout     *CheckoutCompleted
	Subscription *SubscriptionChanged
	Invoice      *InvoiceSettled
}

// CheckoutCompleted carries the checkout session and the metadata attached
// when the session was created.
type CheckoutCompleted struct {
	SessionID      string
	CustomerID     string
	SubscriptionID string
	PriceID        string
	UserID         string
	Plan           string
	Service        string
	PeriodStart    *time.Time
	PeriodEnd      *time.Time
}

type SubscriptionChanged struct {
	ExternalID        string
	Status            string
	PeriodStart       *time.Time
	PeriodEnd         *time.Time
	CancelAtPeriodEnd bool
	CanceledAt        *time.Time
}

// InvoiceSettled is used for both paid and failed invoices. Amount is the
// amount paid, or the amount due for a failed invoice, in minor units.
type InvoiceSettled struct {
	CustomerID             string
	InvoiceID              string
	PaymentIntentID        string
	SubscriptionExternalID string
	Amount                 int64
	Currency               string
	PaymentMethod          string
}

// Ledger records applied provider event ids.
type Ledger interface {
	// Record stores the event id. It returns false without error when the
	// id was already recorded.
	Record(ctx context.Context, eventID string, kind EventKind) (bool, error)
}
