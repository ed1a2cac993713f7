package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/konqer/konqer-api/internal/domain/entitlement"
	"github.com/konqer/konqer-api/internal/domain/serviceconfig"
	"github.com/konqer/konqer-api/internal/infrastructure/persistence/testdb"
)

func TestServiceConfigRepository(t *testing.T) {
	repo := NewServiceConfigRepository(testdb.Open(t))
	ctx := context.Background()

	cfg, err := serviceconfig.NewServiceConfig(serviceconfig.Spec{
		Service:          entitlement.ServiceObjection,
		Name:             "Objection Handler",
		RateLimitDaily:   50,
		RateLimitMonthly: 1000,
		Enabled:          true,
		Settings:         map[string]any{"framework": "Cost vs Value"},
	})
	require.NoError(t, err)

	inserted, err := repo.Upsert(ctx, cfg)
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = repo.Upsert(ctx, cfg)
	require.NoError(t, err)
	assert.False(t, inserted)

	daily := 5
	_, err = cfg.Apply(serviceconfig.Patch{RateLimitDaily: &daily})
	require.NoError(t, err)
	require.NoError(t, repo.Update(ctx, cfg))

	stored, err := repo.GetByService(ctx, entitlement.ServiceObjection)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 5, stored.RateLimitDaily())
	assert.Equal(t, "Cost vs Value", stored.Settings()["framework"])

	missing, err := repo.GetByService(ctx, entitlement.ServiceWebinar)
	assert.NoError(t, err)
	assert.Nil(t, missing)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
