package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/konqer/konqer-api/internal/domain/user"
	"github.com/konqer/konqer-api/internal/infrastructure/persistence/testdb"
	"github.com/konqer/konqer-api/internal/shared/errors"
	"github.com/konqer/konqer-api/internal/shared/logger"
)

func TestUserRepository(t *testing.T) {
	gdb := testdb.Open(t)
	repo := NewUserRepository(gdb, logger.NewNopLogger())
	ctx := context.Background()

	u, err := user.NewUser("kc-1", "Jane@Example.com", "Jane")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, u))

	t.Run("duplicate subject is a conflict", func(t *testing.T) {
		dup, err := user.NewUser("kc-1", "other@example.com", "Other")
		require.NoError(t, err)
		err = repo.Create(ctx, dup)
		assert.True(t, errors.IsConflictError(err))
	})

	t.Run("lookup by subject and missing rows", func(t *testing.T) {
		found, err := repo.GetBySubject(ctx, "kc-1")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, u.ID(), found.ID())
		assert.Equal(t, "jane@example.com", found.Email())

		missing, err := repo.GetBySubject(ctx, "nobody")
		assert.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("billing customer is only written once", func(t *testing.T) {
		require.NoError(t, repo.SetBillingCustomerID(ctx, u.ID(), "cus_1"))
		require.NoError(t, repo.SetBillingCustomerID(ctx, u.ID(), "cus_2"))

		found, err := repo.GetByBillingCustomerID(ctx, "cus_1")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, u.ID(), found.ID())

		none, err := repo.GetByBillingCustomerID(ctx, "cus_2")
		require.NoError(t, err)
		assert.Nil(t, none)
	})

	t.Run("list filters by search", func(t *testing.T) {
		other, err := user.NewUser("kc-2", "bob@corp.io", "Bob")
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, other))

		all, total, err := repo.List(ctx, user.ListFilter{Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, all, 2)

		found, total, err := repo.List(ctx, user.ListFilter{Search: "CORP", Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, found, 1)
		assert.Equal(t, "kc-2", found[0].Subject())
	})
}
