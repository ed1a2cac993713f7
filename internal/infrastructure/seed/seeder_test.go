package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/konqer/konqer-api/internal/domain/entitlement"
	"github.com/konqer/konqer-api/internal/infrastructure/persistence/testdb"
	"github.com/konqer/konqer-api/internal/infrastructure/repository"
	"github.com/konqer/konqer-api/internal/shared/logger"
)

func TestParseCatalog_CoversEveryService(t *testing.T) {
	specs, err := ParseCatalog(defaultCatalog)
	require.NoError(t, err)
	require.Len(t, specs, len(entitlement.Catalog))

	byKey := make(map[entitlement.ServiceKey]bool)
	for _, s := range specs {
		byKey[s.Service] = true
		assert.True(t, s.Enabled, s.Service)
		assert.Positive(t, s.RateLimitDaily, s.Service)
	}
	for _, key := range entitlement.Catalog {
		assert.True(t, byKey[key], key)
	}

	// defaults fill unset fields, explicit values win
	for _, s := range specs {
		switch s.Service {
		case entitlement.ServiceBattlecards:
			assert.Equal(t, 100, s.RateLimitDaily)
			assert.Equal(t, int64(9900), s.PricingMonthly)
		case entitlement.ServiceColdDM:
			assert.Equal(t, 50, s.RateLimitDaily)
		}
	}
}

func TestParseCatalog_Rejects(t *testing.T) {
	cases := map[string]string{
		"bad key":   "services:\n  - service: Bad Key\n    name: x\n    rate_limit_daily: 1\n    rate_limit_monthly: 1\n",
		"duplicate": "defaults:\n  rate_limit_daily: 1\n  rate_limit_monthly: 1\nservices:\n  - service: a\n    name: A\n  - service: a\n    name: A\n",
		"no name":   "defaults:\n  rate_limit_daily: 1\n  rate_limit_monthly: 1\nservices:\n  - service: a\n",
		"no limits": "services:\n  - service: a\n    name: A\n",
		"not yaml":  "services: [",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestSeeder_RunIsIdempotent(t *testing.T) {
	gdb := testdb.Open(t)
	repo := repository.NewServiceConfigRepository(gdb)
	seeder := NewSeeder(repo, logger.NewNopLogger())
	ctx := context.Background()

	n, err := seeder.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	n, err = seeder.Run(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	configs, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, configs, 12)

	carousel, err := repo.GetByService(ctx, entitlement.ServiceCarousel)
	require.NoError(t, err)
	require.NotNil(t, carousel)
	assert.Equal(t, "LinkedIn Carousel Forge", carousel.Name())
	assert.Equal(t, "linkedin-carousel-forge", carousel.Slug())
}
