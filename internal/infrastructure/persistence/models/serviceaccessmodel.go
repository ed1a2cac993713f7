package models

import (
	"time"

	"github.com/konqer/konqer-api/internal/shared/constants"
)

// ServiceAccessModel is one (user, service) grant.
type ServiceAccessModel struct {
	ID         string `gorm:"primaryKey;size:36"`
	UserID     string `gorm:"not null;size:36;uniqueIndex:idx_service_access_user_service,priority:1"`
	Service    string `gorm:"not null;size:100;uniqueIndex:idx_service_access_user_service,priority:2"`
	Locked     bool   `gorm:"not null;default:false"`
	UnlockedAt *time.Time
	CreatedAt  time.Time
}

func (ServiceAccessModel) TableName() string {
	return constants.TableServiceAccess
}
