package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"

	"trade-palace.backend/internal/domain/entities"
	domainerrors "trade-palace.backend/internal/domain/errors"
	"trade-palace.backend/internal/domain/repositories"
	"trade-palace.backend/pkg/metrics"
	"trade-palace.backend/pkg/money"
	"trade-palace.backend/pkg/utils"
)

// WithdrawalUsecase handles withdrawal requests and processing
type WithdrawalUsecase struct {
	withdrawalRepo repositories.WithdrawalRepository
	accountRepo    repositories.AccountRepository
	uow            repositories.UnitOfWork
}

// NewWithdrawalUsecase creates a new withdrawal usecase
func NewWithdrawalUsecase(
	withdrawalRepo repositories.WithdrawalRepository,
	accountRepo repositories.AccountRepository,
	uow repositories.UnitOfWork,
) *WithdrawalUsecase {
	return &WithdrawalUsecase{
		withdrawalRepo: withdrawalRepo,
		accountRepo:    accountRepo,
		uow:            uow,
	}
}

// Request files a withdrawal request. The request is accepted as pending
// regardless of the current balance: the balance can change before the
// request is processed, so the binding check is the debit at approval time.
func (u *WithdrawalUsecase) Request(ctx context.Context, accountID uuid.UUID, input *entities.RequestWithdrawalInput) (*entities.Withdrawal, error) {
	amount, err := money.Parse(input.Amount)
	if err != nil || !amount.IsPositive() {
		return nil, domainerrors.ErrInvalidInput
	}

	withdrawal := &entities.Withdrawal{
		AccountID: accountID,
		Amount:    amount,
		Status:    entities.WithdrawalStatusPending,
	}
	if err := u.withdrawalRepo.Create(ctx, withdrawal); err != nil {
		return nil, err
	}
	return withdrawal, nil
}

// ListMine lists the caller's own withdrawal requests
func (u *WithdrawalUsecase) ListMine(ctx context.Context, accountID uuid.UUID, p utils.PaginationParams) ([]*entities.Withdrawal, int64, error) {
	return u.withdrawalRepo.ListByAccountID(ctx, accountID, p)
}

// List lists withdrawal requests platform-wide, optionally filtered by status
func (u *WithdrawalUsecase) List(ctx context.Context, status entities.WithdrawalStatus, p utils.PaginationParams) ([]*entities.Withdrawal, int64, error) {
	if status != "" && !status.Terminal() && status != entities.WithdrawalStatusPending {
		return nil, 0, domainerrors.ErrInvalidInput
	}
	return u.withdrawalRepo.List(ctx, status, p)
}

// Decide processes a withdrawal request. Approval flips the status and debits
// the balance in one transaction: when the debit fails for insufficient
// funds, the status flip rolls back and the request stays pending. Rejection
// never touches the balance.
func (u *WithdrawalUsecase) Decide(ctx context.Context, actorID uuid.UUID, withdrawalID uuid.UUID, decision entities.WithdrawalStatus) (*entities.Withdrawal, error) {
	if !decision.Terminal() {
		return nil, domainerrors.ErrInvalidInput
	}

	actor, err := u.accountRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.Role.CanProcessWithdrawals() {
		return nil, domainerrors.ErrForbidden
	}

	withdrawal, err := u.withdrawalRepo.GetByID(ctx, withdrawalID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if decision == entities.WithdrawalStatusRejected {
		if err := u.withdrawalRepo.Decide(ctx, withdrawalID, decision, actorID, now); err != nil {
			return nil, err
		}
	} else {
		err = u.uow.Do(ctx, func(ctx context.Context) error {
			if err := u.withdrawalRepo.Decide(ctx, withdrawalID, entities.WithdrawalStatusApproved, actorID, now); err != nil {
				return err
			}
			_, err := u.accountRepo.AdjustBalance(ctx, withdrawal.AccountID, -withdrawal.Amount)
			return err
		})
		if err != nil {
			return nil, err
		}
	}
	metrics.WithdrawalsDecidedTotal.WithLabelValues(string(decision)).Inc()

	return u.withdrawalRepo.GetByID(ctx, withdrawalID)
}
