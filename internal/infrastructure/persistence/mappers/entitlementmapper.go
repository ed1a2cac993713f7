package mappers

import (
	"github.com/konqer/konqer-api/internal/domain/entitlement"
	"github.com/konqer/konqer-api/internal/infrastructure/persistence/models"
)

func ServiceAccessToModel(a *entitlement.ServiceAccess) *models.ServiceAccessModel {
	return &models.ServiceAccessModel{
		ID:         a.ID(),
		UserID:     a.UserID(),
		Service:    string(a.Service()),
		Locked:     a.Locked(),
		UnlockedAt: a.UnlockedAt(),
		CreatedAt:  a.CreatedAt(),
	}
}

func ServiceAccessToDomain(m *models.ServiceAccessModel) (*entitlement.ServiceAccess, error) {
	return entitlement.ReconstructServiceAccess(m.ID, m.UserID, entitlement.ServiceKey(m.Service), m.Locked, m.UnlockedAt, m.CreatedAt)
}
