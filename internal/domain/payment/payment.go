package payment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status of a ledger entry.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusRefunded  Status = "refunded"
	StatusPending   Status = "pending"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusSucceeded, StatusFailed, StatusRefunded, StatusPending:
		return true
	}
	return false
}

var (
	ErrInvalidAmount   = errors.New("payment amount cannot be negative")
	ErrInvalidCurrency = errors.New("currency must be a 3-letter ISO code")
	ErrInvalidStatus   = errors.New("invalid payment status")
)

// Payment is an append-only ledger entry. Amounts are integer minor units.
type Payment struct {
	id              string
	userID          string
	subscriptionID  string
	paymentIntentID string
	invoiceID       string
	amount          int64
	currency        string
	status          Status
	paymentMethod   string
	createdAt       time.Time
}

// Entry carries the attributes of a new ledger row.
type Entry struct {
	UserID          string
	SubscriptionID  string
	PaymentIntentID string
	InvoiceID       string
	Amount          int64
	Currency        string
	Status          Status
	PaymentMethod   string
}

// NewPayment validates an entry and stamps it.
func NewPayment(e Entry) (*Payment, error) {
	if e.Amount < 0 {
		return nil, ErrInvalidAmount
	}
	currency := strings.ToLower(strings.TrimSpace(e.Currency))
	if len(currency) != 3 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCurrency, e.Currency)
	}
	if !e.Status.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, e.Status)
	}

	return &Payment{
		id:              uuid.NewString(),
		userID:          e.UserID,
		subscriptionID:  e.SubscriptionID,
		paymentIntentID: e.PaymentIntentID,
		invoiceID:       e.InvoiceID,
		amount:          e.Amount,
		currency:        currency,
		status:          e.Status,
		paymentMethod:   e.PaymentMethod,
		createdAt:       time.Now().UTC(),
	}, nil
}

// ReconstructPayment rebuilds a ledger entry from persistence.
func ReconstructPayment(id string, e Entry, createdAt time.Time) *Payment {
	return &Payment{
		id:              id,
		userID:          e.UserID,
		subscriptionID:  e.SubscriptionID,
		paymentIntentID: e.PaymentIntentID,
		invoiceID:       e.InvoiceID,
		amount:          e.Amount,
		currency:        e.Currency,
		status:          e.Status,
		paymentMethod:   e.PaymentMethod,
		createdAt:       createdAt,
	}
}

func (p *Payment) ID() string              { return p.id }
func (p *Payment) UserID() string          { return p.userID }
func (p *Payment) SubscriptionID() string  { return p.subscriptionID }
func (p *Payment) PaymentIntentID() string { return p.paymentIntentID }
func (p *Payment) InvoiceID() string       { return p.invoiceID }
func (p *Payment) Amount() int64           { return p.amount }
func (p *Payment) Currency() string        { return p.currency }
func (p *Payment) Status() Status          { return p.status }
func (p *Payment) PaymentMethod() string   { return p.paymentMethod }
func (p *Payment) CreatedAt() time.Time    { return p.createdAt }
