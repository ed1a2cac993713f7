package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/konqer/konqer-api/internal/domain/entitlement"
	"github.com/konqer/konqer-api/internal/domain/generation"
	"github.com/konqer/konqer-api/internal/infrastructure/persistence/testdb"
)

func TestGenerationRepository(t *testing.T) {
	gdb := testdb.Open(t)
	repo := NewGenerationRepository(gdb)
	ctx := context.Background()

	dayStart := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	score := 55
	seed := []struct {
		user    string
		service entitlement.ServiceKey
		at      time.Time
	}{
		{"user-1", entitlement.ServiceColdDM, dayStart.Add(-time.Hour)},
		{"user-1", entitlement.ServiceColdDM, dayStart.Add(time.Hour)},
		{"user-1", entitlement.ServiceColdDM, dayStart.Add(2 * time.Hour)},
		{"user-1", entitlement.ServiceCarousel, dayStart.Add(3 * time.Hour)},
		{"user-2", entitlement.ServiceColdDM, dayStart.Add(4 * time.Hour)},
	}
	for _, s := range seed {
		g, err := generation.NewGeneration(s.user, s.service, "a prompt", "output", 42, &score,
			map[string]any{"company": "Acme"}, s.at)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, g))
	}

	count, err := repo.CountSince(ctx, "user-1", entitlement.ServiceColdDM, dayStart)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	history, err := repo.ListHistory(ctx, generation.HistoryFilter{UserID: "user-1", Limit: 10})
	require.NoError(t, err)
	require.Len(t, history, 4)
	assert.Equal(t, entitlement.ServiceCarousel, history[0].Service())
	assert.Equal(t, "Acme", history[0].Metadata()["company"])
	require.NotNil(t, history[0].PersonalizationScore())
	assert.Equal(t, 55, *history[0].PersonalizationScore())

	filtered, err := repo.ListHistory(ctx, generation.HistoryFilter{UserID: "user-1", Service: entitlement.ServiceColdDM, Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.Len(t, filtered, 1)

	total, err := repo.CountByUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)

	usage, err := repo.UsageSince(ctx, dayStart)
	require.NoError(t, err)
	assert.Equal(t, int64(4), usage.Total)
	assert.Equal(t, int64(2), usage.UniqueUsers)
	require.NotEmpty(t, usage.ByService)
	assert.Equal(t, entitlement.ServiceColdDM, usage.ByService[0].Service)
	assert.Equal(t, int64(3), usage.ByService[0].Count)
}
