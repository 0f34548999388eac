package repositories

import (
	"context"

	"github.com/google/uuid"

	"trade-palace.backend/internal/domain/entities"
)

// ReferralRepository defines referral edge operations
type ReferralRepository interface {
	Create(ctx context.Context, referral *entities.Referral) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Referral, error)
	GetByReferredID(ctx context.Context, referredID uuid.UUID) (*entities.Referral, error)
	ListByReferrerID(ctx context.Context, referrerID uuid.UUID) ([]*entities.Referral, error)
	// MarkRewardPaid flips the reward-paid flag, succeeding only when the
	// flag is currently unset. This conditional update is the exactly-once
	// linearization point for reward crediting.
	MarkRewardPaid(ctx context.Context, id uuid.UUID) error
}
