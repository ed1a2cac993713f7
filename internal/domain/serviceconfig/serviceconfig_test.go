package serviceconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/konqer/konqer-api/internal/domain/entitlement"
)

func newTestConfig(t *testing.T) *ServiceConfig {
	t.Helper()
	c, err := NewServiceConfig(Spec{
		Service:          entitlement.ServiceColdDM,
		Name:             "Cold DM",
		PricingMonthly:   9900,
		PricingAnnual:    99000,
		RateLimitDaily:   100,
		RateLimitMonthly: 3000,
		Enabled:          true,
	})
	require.NoError(t, err)
	return c
}

func TestNewServiceConfig(t *testing.T) {
	c := newTestConfig(t)
	assert.Equal(t, "cold-dm", c.Slug())
	assert.NotNil(t, c.Settings())

	_, err := NewServiceConfig(Spec{Service: "cold-dm", Name: "x", RateLimitDaily: 0, RateLimitMonthly: 1})
	assert.ErrorIs(t, err, ErrInvalidRateLimit)

	_, err = NewServiceConfig(Spec{Service: "Bad Key", Name: "x", RateLimitDaily: 1, RateLimitMonthly: 1})
	assert.ErrorIs(t, err, entitlement.ErrInvalidServiceKey)
}

func TestServiceConfig_Apply(t *testing.T) {
	t.Run("applies only supplied fields", func(t *testing.T) {
		c := newTestConfig(t)
		daily := 25
		enabled := false
		changed, err := c.Apply(Patch{RateLimitDaily: &daily, Enabled: &enabled})
		require.NoError(t, err)
		assert.Equal(t, []string{"rate_limit_daily", "enabled"}, changed)
		assert.Equal(t, 25, c.RateLimitDaily())
		assert.False(t, c.Enabled())
		assert.Equal(t, "Cold DM", c.Name())
	})

	t.Run("rejects non-positive limit", func(t *testing.T) {
		c := newTestConfig(t)
		zero := 0
		_, err := c.Apply(Patch{RateLimitDaily: &zero})
		assert.ErrorIs(t, err, ErrInvalidRateLimit)
		assert.Equal(t, 100, c.RateLimitDaily())
	})

	t.Run("empty patch is rejected", func(t *testing.T) {
		c := newTestConfig(t)
		_, err := c.Apply(Patch{})
		assert.ErrorIs(t, err, ErrNoFieldsToUpdate)
	})
}
