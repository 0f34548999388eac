package usecases

import (
	"context"

	"github.com/google/uuid"

	"trade-palace.backend/internal/domain/entities"
	domainerrors "trade-palace.backend/internal/domain/errors"
	"trade-palace.backend/internal/domain/repositories"
	"trade-palace.backend/pkg/utils"
)

// AdminUsecase handles platform administration: account listing and settings
type AdminUsecase struct {
	accountRepo repositories.AccountRepository
	settingRepo repositories.AdminSettingRepository
}

// NewAdminUsecase creates a new admin usecase
func NewAdminUsecase(
	accountRepo repositories.AccountRepository,
	settingRepo repositories.AdminSettingRepository,
) *AdminUsecase {
	return &AdminUsecase{
		accountRepo: accountRepo,
		settingRepo: settingRepo,
	}
}

// ListAccounts lists all accounts, paginated
func (u *AdminUsecase) ListAccounts(ctx context.Context, p utils.PaginationParams) ([]*entities.Account, int64, error) {
	return u.accountRepo.List(ctx, p)
}

// GetSetting gets a platform setting by key
func (u *AdminUsecase) GetSetting(ctx context.Context, key string) (*entities.AdminSetting, error) {
	return u.settingRepo.Get(ctx, key)
}

// PutSetting creates or updates a platform setting, recording who changed it
func (u *AdminUsecase) PutSetting(ctx context.Context, actorID uuid.UUID, key, value string) (*entities.AdminSetting, error) {
	if key == "" || value == "" {
		return nil, domainerrors.ErrInvalidInput
	}

	setting := &entities.AdminSetting{
		Key:       key,
		Value:     value,
		UpdatedBy: &actorID,
	}
	if err := u.settingRepo.Upsert(ctx, setting); err != nil {
		return nil, err
	}
	return u.settingRepo.Get(ctx, key)
}

// ListSettings lists all platform settings
func (u *AdminUsecase) ListSettings(ctx context.Context) ([]*entities.AdminSetting, error) {
	return u.settingRepo.List(ctx)
}
