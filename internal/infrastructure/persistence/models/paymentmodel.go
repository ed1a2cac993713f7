package models

import (
	"time"

	"github.com/konqer/konqer-api/internal/shared/constants"
)

// PaymentModel is an append-only ledger row. Amount is in minor units.
type PaymentModel struct {
	ID              string    `gorm:"primaryKey;size:36"`
	UserID          *string   `gorm:"size:36;index:idx_payment_user"`
	SubscriptionID  *string   `gorm:"size:36"`
	PaymentIntentID *string   `gorm:"uniqueIndex;size:255"`
	InvoiceID       string    `gorm:"size:255;index:idx_payment_invoice"`
	Amount          int64     `gorm:"not null"`
	Currency        string    `gorm:"not null;size:3"`
	Status          string    `gorm:"not null;size:20;index:idx_payment_status_created,priority:1"`
	PaymentMethod   string    `gorm:"size:50"`
	CreatedAt       time.Time `gorm:"index:idx_payment_status_created,priority:2"`
}

func (PaymentModel) TableName() string {
	return constants.TablePayments
}
