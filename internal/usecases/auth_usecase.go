package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"trade-palace.backend/internal/domain/entities"
	domainerrors "trade-palace.backend/internal/domain/errors"
	"trade-palace.backend/internal/domain/repositories"
	"trade-palace.backend/pkg/crypto"
	"trade-palace.backend/pkg/jwt"
	"trade-palace.backend/pkg/metrics"
	"trade-palace.backend/pkg/money"
)

// AuthUsecase handles registration, login and session identity
type AuthUsecase struct {
	accountRepo  repositories.AccountRepository
	referralRepo repositories.ReferralRepository
	uow          repositories.UnitOfWork
	jwtService   *jwt.JWTService
	reward       money.Cents
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	accountRepo repositories.AccountRepository,
	referralRepo repositories.ReferralRepository,
	uow repositories.UnitOfWork,
	jwtService *jwt.JWTService,
	reward money.Cents,
) *AuthUsecase {
	return &AuthUsecase{
		accountRepo:  accountRepo,
		referralRepo: referralRepo,
		uow:          uow,
		jwtService:   jwtService,
		reward:       reward,
	}
}

// Register creates a new account and, when a known referral code is supplied,
// attributes the signup to the referrer and credits the reward. Account,
// referral edge and reward land in one transaction: either the registration
// completes with its attribution, or nothing is recorded.
//
// An unknown referral code is silently ignored; the signup proceeds without
// attribution.
func (u *AuthUsecase) Register(ctx context.Context, input *entities.RegisterInput) (*entities.AuthResponse, error) {
	if _, err := u.accountRepo.GetByEmail(ctx, input.Email); err == nil {
		return nil, domainerrors.ErrAlreadyExists
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}
	if _, err := u.accountRepo.GetByUsername(ctx, input.Username); err == nil {
		return nil, domainerrors.ErrAlreadyExists
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	var referrer *entities.Account
	if input.ReferralCode != "" {
		found, err := u.accountRepo.GetByReferralCode(ctx, input.ReferralCode)
		if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, err
		}
		referrer = found
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	account := &entities.Account{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: passwordHash,
		Role:         entities.RoleStudent,
		Phone:        null.NewString(input.Phone, input.Phone != ""),
	}
	if referrer != nil {
		account.ReferredBy = &referrer.ID
	}

	err = u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.accountRepo.Create(ctx, account); err != nil {
			return err
		}
		if referrer == nil {
			return nil
		}

		edge := &entities.Referral{
			ReferrerID: referrer.ID,
			ReferredID: account.ID,
		}
		if err := u.referralRepo.Create(ctx, edge); err != nil {
			return err
		}
		if err := u.referralRepo.MarkRewardPaid(ctx, edge.ID); err != nil {
			return err
		}
		if _, err := u.accountRepo.AdjustBalance(ctx, referrer.ID, u.reward); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if referrer != nil {
		metrics.RewardsCreditedTotal.Inc()
		metrics.RegistrationsTotal.WithLabelValues("true").Inc()
	} else {
		metrics.RegistrationsTotal.WithLabelValues("false").Inc()
	}

	token, err := u.jwtService.GenerateToken(account.ID, string(account.Role))
	if err != nil {
		return nil, err
	}

	return &entities.AuthResponse{Token: token, Account: account}, nil
}

// Login authenticates an account and returns a token
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	account, err := u.accountRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !crypto.CheckPassword(input.Password, account.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	token, err := u.jwtService.GenerateToken(account.ID, string(account.Role))
	if err != nil {
		return nil, err
	}

	return &entities.AuthResponse{Token: token, Account: account}, nil
}

// GetAccountByID gets an account by ID
func (u *AuthUsecase) GetAccountByID(ctx context.Context, id uuid.UUID) (*entities.Account, error) {
	return u.accountRepo.GetByID(ctx, id)
}
