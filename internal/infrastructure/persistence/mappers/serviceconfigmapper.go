package mappers

import (
	"github.com/konqer/konqer-api/internal/domain/entitlement"
	"github.com/konqer/konqer-api/internal/domain/serviceconfig"
	"github.com/konqer/konqer-api/internal/infrastructure/persistence/models"
)

func ServiceConfigToModel(c *serviceconfig.ServiceConfig) (*models.ServiceConfigModel, error) {
	settings, err := toJSON(c.Settings())
	if err != nil {
		return nil, err
	}
	return &models.ServiceConfigModel{
		ID:               c.ID(),
		Service:          string(c.Service()),
		Name:             c.Name(),
		Slug:             c.Slug(),
		Type:             c.Kind(),
		Description:      c.Description(),
		PricingMonthly:   c.PricingMonthly(),
		PricingAnnual:    c.PricingAnnual(),
		RateLimitDaily:   c.RateLimitDaily(),
		RateLimitMonthly: c.RateLimitMonthly(),
		Enabled:          c.Enabled(),
		Config:           settings,
		CreatedAt:        c.CreatedAt(),
		UpdatedAt:        c.UpdatedAt(),
	}, nil
}

func ServiceConfigToDomain(m *models.ServiceConfigModel) (*serviceconfig.ServiceConfig, error) {
	settings, err := fromJSON(m.Config)
	if err != nil {
		return nil, err
	}
	return serviceconfig.ReconstructServiceConfig(m.ID, serviceconfig.Spec{
		Service:          entitlement.ServiceKey(m.Service),
		Name:             m.Name,
		Slug:             m.Slug,
		Kind:             m.Type,
		Description:      m.Description,
		PricingMonthly:   m.PricingMonthly,
		PricingAnnual:    m.PricingAnnual,
		RateLimitDaily:   m.RateLimitDaily,
		RateLimitMonthly: m.RateLimitMonthly,
		Enabled:          m.Enabled,
		Settings:         settings,
	}, m.CreatedAt, m.UpdatedAt), nil
}
