package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/konqer/konqer-api/internal/domain/billing"
	"github.com/konqer/konqer-api/internal/infrastructure/persistence/testdb"
)

func TestBillingEventRepository_Record(t *testing.T) {
	repo := NewBillingEventRepository(testdb.Open(t))
	ctx := context.Background()

	first, err := repo.Record(ctx, "evt_1", billing.EventCheckoutCompleted)
	require.NoError(t, err)
	assert.True(t, first)

	again, err := repo.Record(ctx, "evt_1", billing.EventCheckoutCompleted)
	require.NoError(t, err)
	assert.False(t, again)
}
