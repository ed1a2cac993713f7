package user

import (
	"context"
	"errors"
)

var (
	ErrSubjectRequired = errors.New("identity subject is required")
	ErrEmailRequired   = errors.New("email is required")
)

// Repository persists users. Get* methods return (nil, nil) when no row
// matches.
type Repository interface {
	// Create inserts the user. A unique violation on subject or email is
	// returned as a conflict AppError.
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetBySubject(ctx context.Context, subject string) (*User, error)
	GetByBillingCustomerID(ctx context.Context, customerID string) (*User, error)
	// SetBillingCustomerID writes the customer id only if the column is
	// still empty, so concurrent checkouts cannot overwrite each other.
	SetBillingCustomerID(ctx context.Context, userID, customerID string) error
	List(ctx context.Context, filter ListFilter) ([]*User, int64, error)
}

// ListFilter drives the admin user listing. Search matches email or name.
type ListFilter struct {
	Search   string
	Page     int
	PageSize int
}
