package usecases_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"trade-palace.backend/internal/domain/entities"
	domainerrors "trade-palace.backend/internal/domain/errors"
	"trade-palace.backend/internal/usecases"
	"trade-palace.backend/pkg/crypto"
	"trade-palace.backend/pkg/jwt"
	"trade-palace.backend/pkg/money"
)

const testReward = money.Cents(25000)

func newAuthUsecase(accounts *MockAccountRepository, referrals *MockReferralRepository, uow *MockUnitOfWork) *usecases.AuthUsecase {
	jwtService := jwt.NewJWTService("test-secret", time.Hour)
	return usecases.NewAuthUsecase(accounts, referrals, uow, jwtService, testReward)
}

func registerInput() *entities.RegisterInput {
	return &entities.RegisterInput{
		Username: "bob",
		Email:    "bob@tradepalace.io",
		Password: "hunter2hunter2",
	}
}

func TestAuthUsecase_Register_WithoutReferral(t *testing.T) {
	accounts := new(MockAccountRepository)
	referrals := new(MockReferralRepository)
	uow := new(MockUnitOfWork)
	uc := newAuthUsecase(accounts, referrals, uow)

	accounts.On("GetByEmail", mock.Anything, "bob@tradepalace.io").Return(nil, domainerrors.ErrNotFound)
	accounts.On("GetByUsername", mock.Anything, "bob").Return(nil, domainerrors.ErrNotFound)
	uow.On("Do", mock.Anything, mock.Anything).Return(nil)
	accounts.On("Create", mock.Anything, mock.AnythingOfType("*entities.Account")).Run(func(args mock.Arguments) {
		args.Get(1).(*entities.Account).ID = uuid.New()
	}).Return(nil)

	resp, err := uc.Register(context.Background(), registerInput())
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, entities.RoleStudent, resp.Account.Role)
	require.Nil(t, resp.Account.ReferredBy)

	referrals.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	accounts.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthUsecase_Register_UnknownCodeIgnored(t *testing.T) {
	accounts := new(MockAccountRepository)
	referrals := new(MockReferralRepository)
	uow := new(MockUnitOfWork)
	uc := newAuthUsecase(accounts, referrals, uow)

	accounts.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, domainerrors.ErrNotFound)
	accounts.On("GetByUsername", mock.Anything, mock.Anything).Return(nil, domainerrors.ErrNotFound)
	accounts.On("GetByReferralCode", mock.Anything, "TPNOSUCH").Return(nil, domainerrors.ErrNotFound)
	uow.On("Do", mock.Anything, mock.Anything).Return(nil)
	accounts.On("Create", mock.Anything, mock.AnythingOfType("*entities.Account")).Return(nil)

	input := registerInput()
	input.ReferralCode = "TPNOSUCH"

	resp, err := uc.Register(context.Background(), input)
	require.NoError(t, err)
	require.Nil(t, resp.Account.ReferredBy)

	// unknown code behaves exactly like no code at all
	referrals.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	referrals.AssertNotCalled(t, "MarkRewardPaid", mock.Anything, mock.Anything)
	accounts.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthUsecase_Register_WithReferralCreditsOnce(t *testing.T) {
	accounts := new(MockAccountRepository)
	referrals := new(MockReferralRepository)
	uow := new(MockUnitOfWork)
	uc := newAuthUsecase(accounts, referrals, uow)

	referrer := &entities.Account{ID: uuid.New(), Username: "alice", ReferralCode: "TPALICE01"}

	accounts.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, domainerrors.ErrNotFound)
	accounts.On("GetByUsername", mock.Anything, mock.Anything).Return(nil, domainerrors.ErrNotFound)
	accounts.On("GetByReferralCode", mock.Anything, "TPALICE01").Return(referrer, nil)
	uow.On("Do", mock.Anything, mock.Anything).Return(nil)
	accounts.On("Create", mock.Anything, mock.AnythingOfType("*entities.Account")).Run(func(args mock.Arguments) {
		args.Get(1).(*entities.Account).ID = uuid.New()
	}).Return(nil)
	referrals.On("Create", mock.Anything, mock.AnythingOfType("*entities.Referral")).Run(func(args mock.Arguments) {
		args.Get(1).(*entities.Referral).ID = uuid.New()
	}).Return(nil)
	referrals.On("MarkRewardPaid", mock.Anything, mock.Anything).Return(nil)
	accounts.On("AdjustBalance", mock.Anything, referrer.ID, testReward).Return(testReward, nil)

	input := registerInput()
	input.ReferralCode = "TPALICE01"

	resp, err := uc.Register(context.Background(), input)
	require.NoError(t, err)
	require.NotNil(t, resp.Account.ReferredBy)
	require.Equal(t, referrer.ID, *resp.Account.ReferredBy)

	referrals.AssertNumberOfCalls(t, "MarkRewardPaid", 1)
	accounts.AssertNumberOfCalls(t, "AdjustBalance", 1)
}

func TestAuthUsecase_Register_RewardFailureRollsBack(t *testing.T) {
	accounts := new(MockAccountRepository)
	referrals := new(MockReferralRepository)
	uow := new(MockUnitOfWork)
	uc := newAuthUsecase(accounts, referrals, uow)

	referrer := &entities.Account{ID: uuid.New(), ReferralCode: "TPALICE01"}

	accounts.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, domainerrors.ErrNotFound)
	accounts.On("GetByUsername", mock.Anything, mock.Anything).Return(nil, domainerrors.ErrNotFound)
	accounts.On("GetByReferralCode", mock.Anything, "TPALICE01").Return(referrer, nil)
	uow.On("Do", mock.Anything, mock.Anything).Return(nil)
	accounts.On("Create", mock.Anything, mock.Anything).Return(nil)
	referrals.On("Create", mock.Anything, mock.Anything).Return(nil)
	referrals.On("MarkRewardPaid", mock.Anything, mock.Anything).Return(domainerrors.ErrRewardAlreadyPaid)

	input := registerInput()
	input.ReferralCode = "TPALICE01"

	_, err := uc.Register(context.Background(), input)
	require.ErrorIs(t, err, domainerrors.ErrRewardAlreadyPaid)
	accounts.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthUsecase_Register_DuplicateIdentity(t *testing.T) {
	accounts := new(MockAccountRepository)
	referrals := new(MockReferralRepository)
	uow := new(MockUnitOfWork)
	uc := newAuthUsecase(accounts, referrals, uow)

	accounts.On("GetByEmail", mock.Anything, "bob@tradepalace.io").Return(&entities.Account{ID: uuid.New()}, nil)

	_, err := uc.Register(context.Background(), registerInput())
	require.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
	accounts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthUsecase_Login(t *testing.T) {
	accounts := new(MockAccountRepository)
	referrals := new(MockReferralRepository)
	uow := new(MockUnitOfWork)
	uc := newAuthUsecase(accounts, referrals, uow)

	hash, err := crypto.HashPassword("hunter2hunter2")
	require.NoError(t, err)
	account := &entities.Account{ID: uuid.New(), Email: "bob@tradepalace.io", PasswordHash: hash, Role: entities.RoleStudent}

	accounts.On("GetByEmail", mock.Anything, "bob@tradepalace.io").Return(account, nil)

	resp, err := uc.Login(context.Background(), &entities.LoginInput{Email: "bob@tradepalace.io", Password: "hunter2hunter2"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, account.ID, resp.Account.ID)

	_, err = uc.Login(context.Background(), &entities.LoginInput{Email: "bob@tradepalace.io", Password: "wrong-password"})
	require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthUsecase_Login_UnknownEmail(t *testing.T) {
	accounts := new(MockAccountRepository)
	referrals := new(MockReferralRepository)
	uow := new(MockUnitOfWork)
	uc := newAuthUsecase(accounts, referrals, uow)

	accounts.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, domainerrors.ErrNotFound)

	_, err := uc.Login(context.Background(), &entities.LoginInput{Email: "ghost@tradepalace.io", Password: "whatever1"})
	require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}
