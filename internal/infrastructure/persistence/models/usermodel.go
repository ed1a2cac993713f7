package models

import (
	"time"

	"github.com/konqer/konqer-api/internal/shared/constants"
)

// UserModel is the persistence shape of a user. Nullable unique columns use
// pointers so that empty values stay NULL and do not collide.
type UserModel struct {
	ID                string  `gorm:"primaryKey;size:36"`
	Subject           string  `gorm:"uniqueIndex;not null;size:255"`
	Email             string  `gorm:"uniqueIndex;not null;size:255"`
	Name              string  `gorm:"size:255"`
	BillingCustomerID *string `gorm:"uniqueIndex;size:255"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (UserModel) TableName() string {
	return constants.TableUsers
}
