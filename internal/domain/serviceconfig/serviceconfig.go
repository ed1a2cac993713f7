package serviceconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/konqer/konqer-api/internal/domain/entitlement"
)

var (
	ErrNameRequired     = errors.New("service name is required")
	ErrInvalidRateLimit = errors.New("rate limits must be positive")
	ErrInvalidPricing   = errors.New("pricing cannot be negative")
	ErrNoFieldsToUpdate = errors.New("no updatable fields supplied")
)

// ServiceConfig describes one service: display metadata, prices in minor
// units, rate limits and a free-form settings blob.
type ServiceConfig struct {
	id               string
	service          entitlement.ServiceKey
	name             string
	slug             string
	kind             string
	description      string
	pricingMonthly   int64
	pricingAnnual    int64
	rateLimitDaily   int
	rateLimitMonthly int
	enabled          bool
	settings         map[string]any
	createdAt        time.Time
	updatedAt        time.Time
}

// Spec holds the attributes of a new service config, used by seeding.
type Spec struct {
	Service          entitlement.ServiceKey
	Name             string
	Slug             string
	Kind             string
	Description      string
	PricingMonthly   int64
	PricingAnnual    int64
	RateLimitDaily   int
	RateLimitMonthly int
	Enabled          bool
	Settings         map[string]any
}

// NewServiceConfig validates a spec.
func NewServiceConfig(s Spec) (*ServiceConfig, error) {
	if _, err := entitlement.ParseServiceKey(string(s.Service)); err != nil {
		return nil, err
	}
	if strings.TrimSpace(s.Name) == "" {
		return nil, ErrNameRequired
	}
	if s.RateLimitDaily <= 0 || s.RateLimitMonthly <= 0 {
		return nil, ErrInvalidRateLimit
	}
	if s.PricingMonthly < 0 || s.PricingAnnual < 0 {
		return nil, ErrInvalidPricing
	}
	slug := s.Slug
	if slug == "" {
		slug = string(s.Service)
	}
	settings := s.Settings
	if settings == nil {
		settings = map[string]any{}
	}

	now := time.Now().UTC()
	return &ServiceConfig{
		id:               uuid.NewString(),
		service:          s.Service,
		name:             strings.TrimSpace(s.Name),
		slug:             slug,
		kind:             s.Kind,
		description:      s.Description,
		pricingMonthly:   s.PricingMonthly,
		pricingAnnual:    s.PricingAnnual,
		rateLimitDaily:   s.RateLimitDaily,
		rateLimitMonthly: s.RateLimitMonthly,
		enabled:          s.Enabled,
		settings:         settings,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

// ReconstructServiceConfig rebuilds a config from persistence.
func ReconstructServiceConfig(id string, s Spec, createdAt, updatedAt time.Time) *ServiceConfig {
	settings := s.Settings
	if settings == nil {
		settings = map[string]any{}
	}
	return &ServiceConfig{
		id:               id,
		service:          s.Service,
		name:             s.Name,
		slug:             s.Slug,
		kind:             s.Kind,
		description:      s.Description,
		pricingMonthly:   s.PricingMonthly,
		pricingAnnual:    s.PricingAnnual,
		rateLimitDaily:   s.RateLimitDaily,
		rateLimitMonthly: s.RateLimitMonthly,
		enabled:          s.Enabled,
		settings:         settings,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

func (c *ServiceConfig) ID() string                      { return c.id }
func (c *ServiceConfig) Service() entitlement.ServiceKey { return c.service }
func (c *ServiceConfig) Name() string                    { return c.name }
func (c *ServiceConfig) Slug() string                    { return c.slug }
func (c *ServiceConfig) Kind() string                    { return c.kind }
func (c *ServiceConfig) Description() string             { return c.description }
func (c *ServiceConfig) PricingMonthly() int64           { return c.pricingMonthly }
func (c *ServiceConfig) PricingAnnual() int64            { return c.pricingAnnual }
func (c *ServiceConfig) RateLimitDaily() int             { return c.rateLimitDaily }
func (c *ServiceConfig) RateLimitMonthly() int           { return c.rateLimitMonthly }
func (c *ServiceConfig) Enabled() bool                   { return c.enabled }
func (c *ServiceConfig) Settings() map[string]any        { return c.settings }
func (c *ServiceConfig) CreatedAt() time.Time            { return c.createdAt }
func (c *ServiceConfig) UpdatedAt() time.Time            { return c.updatedAt }

// Patch is the administrative update. Nil fields are left unchanged.
type Patch struct {
	Name             *string
	Description      *string
	PricingMonthly   *int64
	PricingAnnual    *int64
	RateLimitDaily   *int
	RateLimitMonthly *int
	Enabled          *bool
	Settings         map[string]any
}

// Apply validates and applies p. It returns the names of the changed
// fields, which end up in the audit log.
func (c *ServiceConfig) Apply(p Patch) ([]string, error) {
	var changed []string

	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		c.name = name
		changed = append(changed, "name")
	}
	if p.Description != nil {
		c.description = *p.Description
		changed = append(changed, "description")
	}
	if p.PricingMonthly != nil {
		if *p.PricingMonthly < 0 {
			return nil, ErrInvalidPricing
		}
		c.pricingMonthly = *p.PricingMonthly
		changed = append(changed, "pricing_monthly")
	}
	if p.PricingAnnual != nil {
		if *p.PricingAnnual < 0 {
			return nil, ErrInvalidPricing
		}
		c.pricingAnnual = *p.PricingAnnual
		changed = append(changed, "pricing_annual")
	}
	if p.RateLimitDaily != nil {
		if *p.RateLimitDaily <= 0 {
			return nil, fmt.Errorf("%w: rate_limit_daily", ErrInvalidRateLimit)
		}
		c.rateLimitDaily = *p.RateLimitDaily
		changed = append(changed, "rate_limit_daily")
	}
	if p.RateLimitMonthly != nil {
		if *p.RateLimitMonthly <= 0 {
			return nil, fmt.Errorf("%w: rate_limit_monthly", ErrInvalidRateLimit)
		}
		c.rateLimitMonthly = *p.RateLimitMonthly
		changed = append(changed, "rate_limit_monthly")
	}
	if p.Enabled != nil {
		c.enabled = *p.Enabled
		changed = append(changed, "enabled")
	}
	if p.Settings != nil {
		c.settings = p.Settings
		changed = append(changed, "config")
	}

	if len(changed) == 0 {
		return nil, ErrNoFieldsToUpdate
	}
	c.updatedAt = time.Now().UTC()
	return changed, nil
}
