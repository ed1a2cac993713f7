package mappers

import (
	"github.com/konqer/konqer-api/internal/domain/admin"
	"github.com/konqer/konqer-api/internal/domain/audit"
	"github.com/konqer/konqer-api/internal/infrastructure/persistence/models"
)

func AuditLogToModel(l *audit.Log) (*models.AuditLogModel, error) {
	metadata, err := toJSON(l.Metadata())
	if err != nil {
		return nil, err
	}
	return &models.AuditLogModel{
		ID:         l.ID(),
		AdminID:    l.ActorID(),
		Action:     l.Action(),
		EntityType: l.EntityType(),
		EntityID:   l.EntityID(),
		Metadata:   metadata,
		CreatedAt:  l.CreatedAt(),
	}, nil
}

func AuditLogToDomain(m *models.AuditLogModel) (*audit.Log, error) {
	metadata, err := fromJSON(m.Metadata)
	if err != nil {
		return nil, err
	}
	return audit.ReconstructLog(m.ID, m.AdminID, m.Action, m.EntityType, m.EntityID, metadata, m.CreatedAt), nil
}

func AdminUserToModel(u *admin.User) *models.AdminUserModel {
	return &models.AdminUserModel{
		ID:        u.ID(),
		Subject:   u.Subject(),
		Email:     u.Email(),
		Role:      u.Role().String(),
		Active:    u.Active(),
		CreatedAt: u.CreatedAt(),
	}
}

func AdminUserToDomain(m *models.AdminUserModel) *admin.User {
	return admin.ReconstructUser(m.ID, m.Subject, m.Email, admin.Role(m.Role), m.Active, m.CreatedAt)
}
