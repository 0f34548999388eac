package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"trade-palace.backend/internal/domain/entities"
	domainerrors "trade-palace.backend/internal/domain/errors"
	"trade-palace.backend/internal/domain/repositories"
	"trade-palace.backend/pkg/metrics"
	"trade-palace.backend/pkg/money"
	"trade-palace.backend/pkg/utils"
)

// PaymentUsecase handles payment submission and verification
type PaymentUsecase struct {
	paymentRepo repositories.PaymentRepository
	accountRepo repositories.AccountRepository
}

// NewPaymentUsecase creates a new payment usecase
func NewPaymentUsecase(
	paymentRepo repositories.PaymentRepository,
	accountRepo repositories.AccountRepository,
) *PaymentUsecase {
	return &PaymentUsecase{
		paymentRepo: paymentRepo,
		accountRepo: accountRepo,
	}
}

// Submit files a payment for verification. At least one proof reference
// (mpesa code, bank transaction code or screenshot) must accompany it.
func (u *PaymentUsecase) Submit(ctx context.Context, accountID uuid.UUID, input *entities.SubmitPaymentInput) (*entities.Payment, error) {
	if !input.Type.Valid() {
		return nil, domainerrors.ErrInvalidInput
	}
	amount, err := money.Parse(input.Amount)
	if err != nil || !amount.IsPositive() {
		return nil, domainerrors.ErrInvalidInput
	}
	if input.MpesaCode == "" && input.BankTxCode == "" && input.ScreenshotURL == "" {
		return nil, domainerrors.ErrInvalidInput
	}

	payment := &entities.Payment{
		AccountID:     accountID,
		Type:          input.Type,
		Amount:        amount,
		MpesaCode:     null.NewString(input.MpesaCode, input.MpesaCode != ""),
		BankTxCode:    null.NewString(input.BankTxCode, input.BankTxCode != ""),
		ScreenshotURL: null.NewString(input.ScreenshotURL, input.ScreenshotURL != ""),
		Status:        entities.PaymentStatusPending,
	}
	if err := u.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// GetByID gets a payment, visible to its owner and to verifier roles
func (u *PaymentUsecase) GetByID(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*entities.Payment, error) {
	payment, err := u.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment.AccountID == actorID {
		return payment, nil
	}

	actor, err := u.accountRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.Role.CanVerifyPayments() {
		return nil, domainerrors.ErrForbidden
	}
	return payment, nil
}

// ListMine lists the caller's own payments
func (u *PaymentUsecase) ListMine(ctx context.Context, accountID uuid.UUID, p utils.PaginationParams) ([]*entities.Payment, int64, error) {
	return u.paymentRepo.ListByAccountID(ctx, accountID, p)
}

// List lists payments platform-wide, optionally filtered by status
func (u *PaymentUsecase) List(ctx context.Context, status entities.PaymentStatus, p utils.PaginationParams) ([]*entities.Payment, int64, error) {
	if status != "" && !status.Terminal() && status != entities.PaymentStatusPending {
		return nil, 0, domainerrors.ErrInvalidInput
	}
	return u.paymentRepo.List(ctx, status, p)
}

// Decide records a verification decision. Verifying a payment never touches
// any balance; it only records who decided what, and when. A payment already
// decided stays as it is.
func (u *PaymentUsecase) Decide(ctx context.Context, actorID uuid.UUID, paymentID uuid.UUID, decision entities.PaymentStatus) (*entities.Payment, error) {
	if !decision.Terminal() {
		return nil, domainerrors.ErrInvalidInput
	}

	actor, err := u.accountRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.Role.CanVerifyPayments() {
		return nil, domainerrors.ErrForbidden
	}

	if err := u.paymentRepo.Decide(ctx, paymentID, decision, actorID, time.Now()); err != nil {
		return nil, err
	}
	metrics.PaymentsDecidedTotal.WithLabelValues(string(decision)).Inc()

	return u.paymentRepo.GetByID(ctx, paymentID)
}
