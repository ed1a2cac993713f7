package serviceconfig

import (
	"context"

	"github.com/konqer/konqer-api/internal/domain/entitlement"
)

type Repository interface {
	// GetByService returns (nil, nil) for an unknown service.
	GetByService(ctx context.Context, service entitlement.ServiceKey) (*ServiceConfig, error)
	List(ctx context.Context) ([]*ServiceConfig, error)
	// Upsert inserts the config or, when the service exists, leaves the
	// stored row untouched. It reports whether a row was inserted.
	Upsert(ctx context.Context, c *ServiceConfig) (bool, error)
	Update(ctx context.Context, c *ServiceConfig) error
}
