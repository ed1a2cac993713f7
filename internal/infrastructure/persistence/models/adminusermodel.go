package models

import (
	"time"

	"github.com/konqer/konqer-api/internal/shared/constants"
)

type AdminUserModel struct {
	ID        string `gorm:"primaryKey;size:36"`
	Subject   string `gorm:"uniqueIndex;not null;size:255"`
	Email     string `gorm:"size:255"`
	Role      string `gorm:"not null;size:32"`
	Active    bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
}

func (AdminUserModel) TableName() string {
	return constants.TableAdminUsers
}
