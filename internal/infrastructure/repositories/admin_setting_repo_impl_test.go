package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"trade-palace.backend/internal/domain/entities"
	domainerrors "trade-palace.backend/internal/domain/errors"
)

func TestAdminSettingRepository_UpsertAndGet(t *testing.T) {
	db := newTestDB(t)
	createAdminSettingTable(t, db)
	repo := NewAdminSettingRepository(db)
	ctx := context.Background()

	admin := uuid.New()
	s := &entities.AdminSetting{Key: "referral_reward", Value: "250.00", UpdatedBy: &admin}
	require.NoError(t, repo.Upsert(ctx, s))

	got, err := repo.Get(ctx, "referral_reward")
	require.NoError(t, err)
	require.Equal(t, "250.00", got.Value)
	require.Equal(t, admin, *got.UpdatedBy)

	// second upsert on the same key updates in place
	other := uuid.New()
	require.NoError(t, repo.Upsert(ctx, &entities.AdminSetting{Key: "referral_reward", Value: "300.00", UpdatedBy: &other}))

	got, err = repo.Get(ctx, "referral_reward")
	require.NoError(t, err)
	require.Equal(t, "300.00", got.Value)
	require.Equal(t, other, *got.UpdatedBy)

	_, err = repo.Get(ctx, "missing")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestAdminSettingRepository_List(t *testing.T) {
	db := newTestDB(t)
	createAdminSettingTable(t, db)
	repo := NewAdminSettingRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &entities.AdminSetting{Key: "referral_reward", Value: "250.00"}))
	require.NoError(t, repo.Upsert(ctx, &entities.AdminSetting{Key: "mentorship_fee", Value: "1500.00"}))

	settings, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, settings, 2)
	require.Equal(t, "mentorship_fee", settings[0].Key)
	require.Equal(t, "referral_reward", settings[1].Key)
}
