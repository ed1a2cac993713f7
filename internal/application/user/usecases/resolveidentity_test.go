package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/konqer/konqer-api/internal/application/user/dto"
	"github.com/konqer/konqer-api/internal/domain/entitlement"
	"github.com/konqer/konqer-api/internal/domain/generation"
	"github.com/konqer/konqer-api/internal/domain/user"
	"github.com/konqer/konqer-api/internal/infrastructure/persistence/models"
	"github.com/konqer/konqer-api/internal/infrastructure/persistence/testdb"
	"github.com/konqer/konqer-api/internal/infrastructure/repository"
	"github.com/konqer/konqer-api/internal/shared/errors"
	"github.com/konqer/konqer-api/internal/shared/logger"
)

func TestResolveIdentity_CreatesOnFirstSight(t *testing.T) {
	gdb := testdb.Open(t)
	uc := NewResolveIdentityUseCase(repository.NewUserRepository(gdb, logger.NewNopLogger()), logger.NewNopLogger())
	ctx := context.Background()

	first, err := uc.Execute(ctx, ResolveIdentityCommand{Subject: "kc-1", Email: "Ada@Example.com", Name: "Ada"})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", first.Email())

	again, err := uc.Execute(ctx, ResolveIdentityCommand{Subject: "kc-1", Email: "ada@example.com"})
	require.NoError(t, err)
	assert.Equal(t, first.ID(), again.ID())

	var n int64
	require.NoError(t, gdb.Model(&models.UserModel{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestResolveIdentity_RejectsIncompleteClaims(t *testing.T) {
	gdb := testdb.Open(t)
	uc := NewResolveIdentityUseCase(repository.NewUserRepository(gdb, logger.NewNopLogger()), logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), ResolveIdentityCommand{Email: "a@b.c"})
	assert.True(t, errors.IsAppError(err))

	_, err = uc.Execute(context.Background(), ResolveIdentityCommand{Subject: "kc-2"})
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeUnauthorized, errors.GetAppError(err).Type)
}

func TestResolveIdentity_EmailOwnedByOtherSubject(t *testing.T) {
	gdb := testdb.Open(t)
	uc := NewResolveIdentityUseCase(repository.NewUserRepository(gdb, logger.NewNopLogger()), logger.NewNopLogger())
	ctx := context.Background()

	_, err := uc.Execute(ctx, ResolveIdentityCommand{Subject: "kc-1", Email: "ada@example.com"})
	require.NoError(t, err)

	_, err = uc.Execute(ctx, ResolveIdentityCommand{Subject: "kc-9", Email: "ada@example.com"})
	assert.True(t, errors.IsConflictError(err))
}

// racingUserRepo simulates a concurrent first login that commits between
// our lookup and our insert.
type racingUserRepo struct {
	user.Repository
	winner  *user.User
	lookups int
}

func (r *racingUserRepo) GetBySubject(_ context.Context, _ string) (*user.User, error) {
	r.lookups++
	if r.lookups == 1 {
		return nil, nil
	}
	return r.winner, nil
}

func (r *racingUserRepo) Create(_ context.Context, _ *user.User) error {
	return errors.NewConflictError("user already exists")
}

func TestResolveIdentity_LostInsertRace(t *testing.T) {
	winner, err := user.NewUser("kc-1", "ada@example.com", "Ada")
	require.NoError(t, err)
	repo := &racingUserRepo{winner: winner}
	uc := NewResolveIdentityUseCase(repo, logger.NewNopLogger())

	got, err := uc.Execute(context.Background(), ResolveIdentityCommand{Subject: "kc-1", Email: "ada@example.com"})
	require.NoError(t, err)
	assert.Equal(t, winner.ID(), got.ID())
	assert.Equal(t, 2, repo.lookups)
}

func TestGetHistory(t *testing.T) {
	gdb := testdb.Open(t)
	repo := repository.NewGenerationRepository(gdb)
	uc := NewGetHistoryUseCase(repo, logger.NewNopLogger())
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	for i, svc := range []entitlement.ServiceKey{entitlement.ServiceColdDM, entitlement.ServiceCarousel, entitlement.ServiceColdDM} {
		g, err := generation.NewGeneration("user-1", svc, "prompt", "output", 10, nil, nil, base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, g))
	}

	all, err := uc.Execute(ctx, "user-1", dto.HistoryQuery{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].CreatedAt.After(all[1].CreatedAt), "newest first")

	coldDM, err := uc.Execute(ctx, "user-1", dto.HistoryQuery{Service: "cold-dm", Limit: 1})
	require.NoError(t, err)
	require.Len(t, coldDM, 1)
	assert.Equal(t, "cold-dm", coldDM[0].Service)

	_, err = uc.Execute(ctx, "user-1", dto.HistoryQuery{Service: "Not A Key"})
	assert.True(t, errors.IsValidationError(err))
}
