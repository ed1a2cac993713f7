package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/konqer/konqer-api/internal/domain/subscription"
	"github.com/konqer/konqer-api/internal/infrastructure/persistence/testdb"
	"github.com/konqer/konqer-api/internal/shared/db"
	"github.com/konqer/konqer-api/internal/shared/logger"
)

func TestSubscriptionRepository(t *testing.T) {
	gdb := testdb.Open(t)
	repo := NewSubscriptionRepository(gdb, logger.NewNopLogger())
	ctx := context.Background()

	end := time.Date(2026, 11, 19, 0, 0, 0, 0, time.UTC)
	sub, err := subscription.NewSubscription("user-1", subscription.PlanMonthlyBundle, "sub_ext_1", "price_x", "cs_1", nil, &end)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, sub))

	t.Run("lookups", func(t *testing.T) {
		byExt, err := repo.GetByExternalID(ctx, "sub_ext_1")
		require.NoError(t, err)
		require.NotNil(t, byExt)
		assert.Equal(t, sub.ID(), byExt.ID())
		require.NotNil(t, byExt.CurrentPeriodEnd())
		assert.True(t, end.Equal(*byExt.CurrentPeriodEnd()))

		bySession, err := repo.GetByCheckoutSessionID(ctx, "cs_1")
		require.NoError(t, err)
		require.NotNil(t, bySession)

		missing, err := repo.GetByExternalID(ctx, "sub_unknown")
		assert.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("update is compare-and-set on version", func(t *testing.T) {
		tm := db.NewTransactionManager(gdb)
		err := tm.RunInTransaction(ctx, func(ctx context.Context) error {
			locked, err := repo.GetByExternalIDForUpdate(ctx, "sub_ext_1")
			require.NoError(t, err)
			require.NotNil(t, locked)
			locked.ApplyProviderState(subscription.StatusPastDue, nil, nil, true)
			return repo.Update(ctx, locked)
		})
		require.NoError(t, err)

		// sub still carries the old version.
		sub.Cancel(time.Now())
		assert.ErrorIs(t, repo.Update(ctx, sub), subscription.ErrVersionConflict)

		stored, err := repo.GetByID(ctx, sub.ID())
		require.NoError(t, err)
		assert.Equal(t, subscription.StatusPastDue, stored.Status())
		assert.True(t, stored.CancelAtPeriodEnd())
		assert.Equal(t, 2, stored.Version())
	})

	t.Run("count active by plan", func(t *testing.T) {
		a, err := subscription.NewSubscription("user-2", subscription.PlanFounding, "sub_ext_2", "", "", nil, nil)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, a))

		counts, err := repo.CountActiveByPlan(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), counts[subscription.PlanFounding])
		assert.Zero(t, counts[subscription.PlanMonthlyBundle])
	})

	t.Run("list by user newest first", func(t *testing.T) {
		list, err := repo.ListByUserID(ctx, "user-1")
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})
}
