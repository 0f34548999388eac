package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"trade-palace.backend/internal/domain/entities"
	domainerrors "trade-palace.backend/internal/domain/errors"
	"trade-palace.backend/internal/infrastructure/models"
)

// ReferralRepository implements referral edge operations
type ReferralRepository struct {
	db *gorm.DB
}

// NewReferralRepository creates a new referral repository
func NewReferralRepository(db *gorm.DB) *ReferralRepository {
	return &ReferralRepository{db: db}
}

// Create creates a referral edge. The unique index on referred_id enforces
// at most one edge per referred account.
func (r *ReferralRepository) Create(ctx context.Context, referral *entities.Referral) error {
	db := GetDB(ctx, r.db)

	if referral.ID == uuid.Nil {
		referral.ID = uuid.New()
	}
	m := &models.Referral{
		ID:         referral.ID,
		ReferrerID: referral.ReferrerID,
		ReferredID: referral.ReferredID,
		RewardPaid: referral.RewardPaid,
		CreatedAt:  time.Now(),
	}

	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	referral.CreatedAt = m.CreatedAt
	return nil
}

// GetByID gets a referral edge by ID
func (r *ReferralRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Referral, error) {
	db := GetDB(ctx, r.db)
	var m models.Referral
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return referralToEntity(&m), nil
}

// GetByReferredID gets the edge pointing at a referred account, if any
func (r *ReferralRepository) GetByReferredID(ctx context.Context, referredID uuid.UUID) (*entities.Referral, error) {
	db := GetDB(ctx, r.db)
	var m models.Referral
	if err := db.WithContext(ctx).Where("referred_id = ?", referredID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return referralToEntity(&m), nil
}

// ListByReferrerID lists the edges created by a referrer, newest first
func (r *ReferralRepository) ListByReferrerID(ctx context.Context, referrerID uuid.UUID) ([]*entities.Referral, error) {
	db := GetDB(ctx, r.db)
	var rows []models.Referral
	if err := db.WithContext(ctx).Where("referrer_id = ?", referrerID).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	referrals := make([]*entities.Referral, 0, len(rows))
	for i := range rows {
		referrals = append(referrals, referralToEntity(&rows[i]))
	}
	return referrals, nil
}

// MarkRewardPaid flips the reward-paid flag with a conditional update that
// only succeeds while the flag is unset. Exactly one of any number of
// concurrent callers wins; the rest get ErrRewardAlreadyPaid.
func (r *ReferralRepository) MarkRewardPaid(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)

	result := db.WithContext(ctx).
		Model(&models.Referral{}).
		Where("id = ? AND reward_paid = ?", id, false).
		UpdateColumn("reward_paid", true)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := db.WithContext(ctx).Model(&models.Referral{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domainerrors.ErrNotFound
		}
		return domainerrors.ErrRewardAlreadyPaid
	}
	return nil
}

func referralToEntity(m *models.Referral) *entities.Referral {
	return &entities.Referral{
		ID:         m.ID,
		ReferrerID: m.ReferrerID,
		ReferredID: m.ReferredID,
		RewardPaid: m.RewardPaid,
		CreatedAt:  m.CreatedAt,
	}
}
