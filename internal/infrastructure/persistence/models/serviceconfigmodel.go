package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/konqer/konqer-api/internal/shared/constants"
)

type ServiceConfigModel struct {
	ID               string `gorm:"primaryKey;size:36"`
	Service          string `gorm:"uniqueIndex;not null;size:100"`
	Name             string `gorm:"not null;size:255"`
	Slug             string `gorm:"not null;size:100"`
	Type             string `gorm:"size:50"`
	Description      string `gorm:"type:text"`
	PricingMonthly   int64  `gorm:"not null;default:0"`
	PricingAnnual    int64  `gorm:"not null;default:0"`
	RateLimitDaily   int    `gorm:"not null"`
	RateLimitMonthly int    `gorm:"not null"`
	Enabled          bool   `gorm:"not null"`
	Config           datatypes.JSON
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (ServiceConfigModel) TableName() string {
	return constants.TableServiceConfigs
}
