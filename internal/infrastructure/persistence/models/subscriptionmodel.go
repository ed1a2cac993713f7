package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/konqer/konqer-api/internal/shared/constants"
)

type SubscriptionModel struct {
	ID                 string  `gorm:"primaryKey;size:36"`
	UserID             string  `gorm:"not null;size:36;index:idx_subscription_user"`
	Plan               string  `gorm:"not null;size:32"`
	Status             string  `gorm:"not null;size:20;index:idx_subscription_status"`
	ExternalID         *string `gorm:"uniqueIndex;size:255"`
	PriceID            string  `gorm:"size:255"`
	CheckoutSessionID  *string `gorm:"uniqueIndex;size:255"`
	CurrentPeriodStart *time.Time
	CurrentPeriodEnd   *time.Time
	CancelAtPeriodEnd  bool `gorm:"not null;default:false"`
	CanceledAt         *time.Time
	Version            int `gorm:"not null;default:1"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (SubscriptionModel) TableName() string {
	return constants.TableSubscriptions
}

func (s *SubscriptionModel) BeforeCreate(tx *gorm.DB) error {
	if s.Version == 0 {
		s.Version = 1
	}
	return nil
}
