package user

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is a local account bound to one identity-provider subject. The
// billing customer id is filled on the first completed checkout.
type User struct {
	id                string
	subject           string
	email             string
	name              string
	billingCustomerID string
	createdAt         time.Time
	updatedAt         time.Time
}

// NewUser creates a user for a verified identity assertion.
func NewUser(subject, email, name string) (*User, error) {
	subject = strings.TrimSpace(subject)
	email = strings.ToLower(strings.TrimSpace(email))
	if subject == "" {
		return nil, ErrSubjectRequired
	}
	if email == "" {
		return nil, ErrEmailRequired
	}

	now := time.Now().UTC()
	return &User{
		id:        uuid.NewString(),
		subject:   subject,
		email:     email,
		name:      strings.TrimSpace(name),
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructUser rebuilds a user from persistence.
func ReconstructUser(id, subject, email, name, billingCustomerID string, createdAt, updatedAt time.Time) (*User, error) {
	if id == "" {
		return nil, fmt.Errorf("user ID cannot be empty")
	}
	return &User{
		id:                id,
		subject:           subject,
		email:             email,
		name:              name,
		billingCustomerID: billingCustomerID,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}, nil
}

func (u *User) ID() string                { return u.id }
func (u *User) Subject() string           { return u.subject }
func (u *User) Email() string             { return u.email }
func (u *User) Name() string              { return u.name }
func (u *User) BillingCustomerID() string { return u.billingCustomerID }
func (u *User) CreatedAt() time.Time      { return u.createdAt }
func (u *User) UpdatedAt() time.Time      { return u.updatedAt }

// HasBillingCustomer reports whether a checkout has already bound this user
// to a billing customer.
func (u *User) HasBillingCustomer() bool {
	return u.billingCustomerID != ""
}

// BackfillBillingCustomer sets the billing customer id only when none is
// stored yet. It returns true when the user changed.
func (u *User) BackfillBillingCustomer(customerID string) bool {
	if customerID == "" || u.billingCustomerID != "" {
		return false
	}
	u.billingCustomerID = customerID
	u.updatedAt = time.Now().UTC()
	return true
}
