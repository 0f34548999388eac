package usecases_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"trade-palace.backend/internal/domain/entities"
	domainerrors "trade-palace.backend/internal/domain/errors"
	"trade-palace.backend/internal/usecases"
	"trade-palace.backend/pkg/money"
)

func TestWithdrawalUsecase_Request(t *testing.T) {
	withdrawals := new(MockWithdrawalRepository)
	accounts := new(MockAccountRepository)
	uow := new(MockUnitOfWork)
	uc := usecases.NewWithdrawalUsecase(withdrawals, accounts, uow)
	ctx := context.Background()

	accountID := uuid.New()
	withdrawals.On("Create", mock.Anything, mock.AnythingOfType("*entities.Withdrawal")).Return(nil)

	w, err := uc.Request(ctx, accountID, &entities.RequestWithdrawalInput{Amount: "300.00"})
	require.NoError(t, err)
	require.Equal(t, entities.WithdrawalStatusPending, w.Status)
	require.Equal(t, money.MustParse("300.00"), w.Amount)
}

func TestWithdrawalUsecase_Request_OverBalanceStillPending(t *testing.T) {
	withdrawals := new(MockWithdrawalRepository)
	accounts := new(MockAccountRepository)
	uow := new(MockUnitOfWork)
	uc := usecases.NewWithdrawalUsecase(withdrawals, accounts, uow)
	ctx := context.Background()

	// filing never consults the balance; the debit at approval is the guard
	accountID := uuid.New()
	withdrawals.On("Create", mock.Anything, mock.AnythingOfType("*entities.Withdrawal")).Return(nil)

	w, err := uc.Request(ctx, accountID, &entities.RequestWithdrawalInput{Amount: "100.00"})
	require.NoError(t, err)
	require.Equal(t, entities.WithdrawalStatusPending, w.Status)
	accounts.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestWithdrawalUsecase_Request_Invalid(t *testing.T) {
	withdrawals := new(MockWithdrawalRepository)
	accounts := new(MockAccountRepository)
	uow := new(MockUnitOfWork)
	uc := usecases.NewWithdrawalUsecase(withdrawals, accounts, uow)
	ctx := context.Background()

	accountID := uuid.New()

	_, err := uc.Request(ctx, accountID, &entities.RequestWithdrawalInput{Amount: "0.00"})
	require.ErrorIs(t, err, domainerrors.ErrInvalidInput)

	_, err = uc.Request(ctx, accountID, &entities.RequestWithdrawalInput{Amount: "-20.00"})
	require.ErrorIs(t, err, domainerrors.ErrInvalidInput)

	_, err = uc.Request(ctx, accountID, &entities.RequestWithdrawalInput{Amount: "nonsense"})
	require.ErrorIs(t, err, domainerrors.ErrInvalidInput)

	withdrawals.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestWithdrawalUsecase_Decide_ApproveDebitsInOneScope(t *testing.T) {
	withdrawals := new(MockWithdrawalRepository)
	accounts := new(MockAccountRepository)
	uow := new(MockUnitOfWork)
	uc := usecases.NewWithdrawalUsecase(withdrawals, accounts, uow)
	ctx := context.Background()

	admin := &entities.Account{ID: uuid.New(), Role: entities.RoleAdmin}
	w := &entities.Withdrawal{ID: uuid.New(), AccountID: uuid.New(), Amount: money.MustParse("300.00"), Status: entities.WithdrawalStatusPending}
	approved := &entities.Withdrawal{ID: w.ID, AccountID: w.AccountID, Amount: w.Amount, Status: entities.WithdrawalStatusApproved}

	accounts.On("GetByID", mock.Anything, admin.ID).Return(admin, nil)
	withdrawals.On("GetByID", mock.Anything, w.ID).Return(w, nil).Once()
	uow.On("Do", mock.Anything, mock.Anything).Return(nil)
	withdrawals.On("Decide", mock.Anything, w.ID, entities.WithdrawalStatusApproved, admin.ID, mock.Anything).Return(nil)
	accounts.On("AdjustBalance", mock.Anything, w.AccountID, -w.Amount).Return(money.Cents(0), nil)
	withdrawals.On("GetByID", mock.Anything, w.ID).Return(approved, nil)

	got, err := uc.Decide(ctx, admin.ID, w.ID, entities.WithdrawalStatusApproved)
	require.NoError(t, err)
	require.Equal(t, entities.WithdrawalStatusApproved, got.Status)
	accounts.AssertNumberOfCalls(t, "AdjustBalance", 1)
}

func TestWithdrawalUsecase_Decide_ApproveInsufficientFundsStaysPending(t *testing.T) {
	withdrawals := new(MockWithdrawalRepository)
	accounts := new(MockAccountRepository)
	uow := new(MockUnitOfWork)
	uc := usecases.NewWithdrawalUsecase(withdrawals, accounts, uow)
	ctx := context.Background()

	admin := &entities.Account{ID: uuid.New(), Role: entities.RoleAdmin}
	w := &entities.Withdrawal{ID: uuid.New(), AccountID: uuid.New(), Amount: money.MustParse("300.00"), Status: entities.WithdrawalStatusPending}

	accounts.On("GetByID", mock.Anything, admin.ID).Return(admin, nil)
	withdrawals.On("GetByID", mock.Anything, w.ID).Return(w, nil)
	uow.On("Do", mock.Anything, mock.Anything).Return(nil)
	withdrawals.On("Decide", mock.Anything, w.ID, entities.WithdrawalStatusApproved, admin.ID, mock.Anything).Return(nil)
	accounts.On("AdjustBalance", mock.Anything, w.AccountID, -w.Amount).Return(money.Cents(0), domainerrors.ErrInsufficientFunds)

	_, err := uc.Decide(ctx, admin.ID, w.ID, entities.WithdrawalStatusApproved)
	require.ErrorIs(t, err, domainerrors.ErrInsufficientFunds)
}

func TestWithdrawalUsecase_Decide_RejectNeverTouchesBalance(t *testing.T) {
	withdrawals := new(MockWithdrawalRepository)
	accounts := new(MockAccountRepository)
	uow := new(MockUnitOfWork)
	uc := usecases.NewWithdrawalUsecase(withdrawals, accounts, uow)
	ctx := context.Background()

	admin := &entities.Account{ID: uuid.New(), Role: entities.RoleAdmin}
	w := &entities.Withdrawal{ID: uuid.New(), AccountID: uuid.New(), Amount: money.MustParse("300.00"), Status: entities.WithdrawalStatusPending}
	rejected := &entities.Withdrawal{ID: w.ID, AccountID: w.AccountID, Amount: w.Amount, Status: entities.WithdrawalStatusRejected}

	accounts.On("GetByID", mock.Anything, admin.ID).Return(admin, nil)
	withdrawals.On("GetByID", mock.Anything, w.ID).Return(w, nil).Once()
	withdrawals.On("Decide", mock.Anything, w.ID, entities.WithdrawalStatusRejected, admin.ID, mock.Anything).Return(nil)
	withdrawals.On("GetByID", mock.Anything, w.ID).Return(rejected, nil)

	got, err := uc.Decide(ctx, admin.ID, w.ID, entities.WithdrawalStatusRejected)
	require.NoError(t, err)
	require.Equal(t, entities.WithdrawalStatusRejected, got.Status)

	accounts.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Do", mock.Anything, mock.Anything)
}

func TestWithdrawalUsecase_Decide_RequiresAdmin(t *testing.T) {
	withdrawals := new(MockWithdrawalRepository)
	accounts := new(MockAccountRepository)
	uow := new(MockUnitOfWork)
	uc := usecases.NewWithdrawalUsecase(withdrawals, accounts, uow)
	ctx := context.Background()

	mentor := &entities.Account{ID: uuid.New(), Role: entities.RoleMentor}
	accounts.On("GetByID", mock.Anything, mentor.ID).Return(mentor, nil)

	_, err := uc.Decide(ctx, mentor.ID, uuid.New(), entities.WithdrawalStatusApproved)
	require.ErrorIs(t, err, domainerrors.ErrForbidden)
	withdrawals.AssertNotCalled(t, "Decide", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
