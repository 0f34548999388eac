package usecases_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"trade-palace.backend/internal/domain/entities"
	"trade-palace.backend/pkg/money"
	"trade-palace.backend/pkg/utils"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

// Mock AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, account *entities.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByEmail(ctx context.Context, email string) (*entities.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByUsername(ctx context.Context, username string) (*entities.Account, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByReferralCode(ctx context.Context, code string) (*entities.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Account), args.Error(1)
}

func (m *MockAccountRepository) AdjustBalance(ctx context.Context, id uuid.UUID, delta money.Cents) (money.Cents, error) {
	args := m.Called(ctx, id, delta)
	return args.Get(0).(money.Cents), args.Error(1)
}

func (m *MockAccountRepository) List(ctx context.Context, p utils.PaginationParams) ([]*entities.Account, int64, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Account), args.Get(1).(int64), args.Error(2)
}

// Mock ReferralRepository
type MockReferralRepository struct {
	mock.Mock
}

func (m *MockReferralRepository) Create(ctx context.Context, referral *entities.Referral) error {
	args := m.Called(ctx, referral)
	return args.Error(0)
}

func (m *MockReferralRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Referral, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Referral), args.Error(1)
}

func (m *MockReferralRepository) GetByReferredID(ctx context.Context, referredID uuid.UUID) (*entities.Referral, error) {
	args := m.Called(ctx, referredID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Referral), args.Error(1)
}

func (m *MockReferralRepository) ListByReferrerID(ctx context.Context, referrerID uuid.UUID) ([]*entities.Referral, error) {
	args := m.Called(ctx, referrerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Referral), args.Error(1)
}

func (m *MockReferralRepository) MarkRewardPaid(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *entities.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListByAccountID(ctx context.Context, accountID uuid.UUID, p utils.PaginationParams) ([]*entities.Payment, int64, error) {
	args := m.Called(ctx, accountID, p)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Payment), args.Get(1).(int64), args.Error(2)
}

func (m *MockPaymentRepository) List(ctx context.Context, status entities.PaymentStatus, p utils.PaginationParams) ([]*entities.Payment, int64, error) {
	args := m.Called(ctx, status, p)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Payment), args.Get(1).(int64), args.Error(2)
}

func (m *MockPaymentRepository) Decide(ctx context.Context, id uuid.UUID, status entities.PaymentStatus, actorID uuid.UUID, at time.Time) error {
	args := m.Called(ctx, id, status, actorID, at)
	return args.Error(0)
}

// Mock WithdrawalRepository
type MockWithdrawalRepository struct {
	mock.Mock
}

func (m *MockWithdrawalRepository) Create(ctx context.Context, withdrawal *entities.Withdrawal) error {
	args := m.Called(ctx, withdrawal)
	return args.Error(0)
}

func (m *MockWithdrawalRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Withdrawal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Withdrawal), args.Error(1)
}

func (m *MockWithdrawalRepository) ListByAccountID(ctx context.Context, accountID uuid.UUID, p utils.PaginationParams) ([]*entities.Withdrawal, int64, error) {
	args := m.Called(ctx, accountID, p)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Withdrawal), args.Get(1).(int64), args.Error(2)
}

func (m *MockWithdrawalRepository) List(ctx context.Context, status entities.WithdrawalStatus, p utils.PaginationParams) ([]*entities.Withdrawal, int64, error) {
	args := m.Called(ctx, status, p)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Withdrawal), args.Get(1).(int64), args.Error(2)
}

func (m *MockWithdrawalRepository) Decide(ctx context.Context, id uuid.UUID, status entities.WithdrawalStatus, actorID uuid.UUID, at time.Time) error {
	args := m.Called(ctx, id, status, actorID, at)
	return args.Error(0)
}

// Mock EnrollmentRepository
type MockEnrollmentRepository struct {
	mock.Mock
}

func (m *MockEnrollmentRepository) Create(ctx context.Context, enrollment *entities.Enrollment) error {
	args := m.Called(ctx, enrollment)
	return args.Error(0)
}

func (m *MockEnrollmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Enrollment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Enrollment), args.Error(1)
}

func (m *MockEnrollmentRepository) GetByPair(ctx context.Context, studentID, mentorID uuid.UUID) (*entities.Enrollment, error) {
	args := m.Called(ctx, studentID, mentorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Enrollment), args.Error(1)
}

func (m *MockEnrollmentRepository) ListByStudentID(ctx context.Context, studentID uuid.UUID) ([]*entities.Enrollment, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Enrollment), args.Error(1)
}

func (m *MockEnrollmentRepository) ListByMentorID(ctx context.Context, mentorID uuid.UUID) ([]*entities.Enrollment, error) {
	args := m.Called(ctx, mentorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Enrollment), args.Error(1)
}

func (m *MockEnrollmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.EnrollmentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// Mock AdminSettingRepository
type MockAdminSettingRepository struct {
	mock.Mock
}

func (m *MockAdminSettingRepository) Get(ctx context.Context, key string) (*entities.AdminSetting, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.AdminSetting), args.Error(1)
}

func (m *MockAdminSettingRepository) Upsert(ctx context.Context, setting *entities.AdminSetting) error {
	args := m.Called(ctx, setting)
	return args.Error(0)
}

func (m *MockAdminSettingRepository) List(ctx context.Context) ([]*entities.AdminSetting, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.AdminSetting), args.Error(1)
}
