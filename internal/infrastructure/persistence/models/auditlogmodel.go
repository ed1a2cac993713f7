package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/konqer/konqer-api/internal/shared/constants"
)

type AuditLogModel struct {
	ID         string `gorm:"primaryKey;size:36"`
	AdminID    string `gorm:"size:36;index:idx_audit_admin"`
	Action     string `gorm:"not null;size:100"`
	EntityType string `gorm:"size:50;index:idx_audit_entity,priority:1"`
	EntityID   string `gorm:"size:100;index:idx_audit_entity,priority:2"`
	Metadata   datatypes.JSON
	CreatedAt  time.Time
}

func (AuditLogModel) TableName() string {
	return constants.TableAuditLogs
}
