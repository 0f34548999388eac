package usecases

import (
	"context"

	"github.com/google/uuid"

	"trade-palace.backend/internal/domain/entities"
	"trade-palace.backend/internal/domain/repositories"
	"trade-palace.backend/pkg/money"
)

// ReferralOverview is what a member sees on their referrals page: their own
// code to share, the signups attributed to them, and what those earned.
type ReferralOverview struct {
	ReferralCode string               `json:"referralCode"`
	Referrals    []*entities.Referral `json:"referrals"`
	RewardsPaid  int                  `json:"rewardsPaid"`
	EarnedTotal  money.Cents          `json:"earnedTotal"`
}

// ReferralUsecase handles referral attribution queries
type ReferralUsecase struct {
	accountRepo  repositories.AccountRepository
	referralRepo repositories.ReferralRepository
	reward       money.Cents
}

// NewReferralUsecase creates a new referral usecase
func NewReferralUsecase(
	accountRepo repositories.AccountRepository,
	referralRepo repositories.ReferralRepository,
	reward money.Cents,
) *ReferralUsecase {
	return &ReferralUsecase{
		accountRepo:  accountRepo,
		referralRepo: referralRepo,
		reward:       reward,
	}
}

// Overview returns the account's referral code and attributed signups
func (u *ReferralUsecase) Overview(ctx context.Context, accountID uuid.UUID) (*ReferralOverview, error) {
	account, err := u.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	edges, err := u.referralRepo.ListByReferrerID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	paid := 0
	for _, e := range edges {
		if e.RewardPaid {
			paid++
		}
	}

	return &ReferralOverview{
		ReferralCode: account.ReferralCode,
		Referrals:    edges,
		RewardsPaid:  paid,
		EarnedTotal:  money.Cents(int64(u.reward) * int64(paid)),
	}, nil
}
