package models

import (
	"time"

	"github.com/konqer/konqer-api/internal/shared/constants"
)

// BillingEventModel records a provider event id once it has been applied.
type BillingEventModel struct {
	EventID     string `gorm:"primaryKey;size:255"`
	Kind        string `gorm:"not null;size:64"`
	ProcessedAt time.Time
}

func (BillingEventModel) TableName() string {
	return constants.TableBillingEvents
}
