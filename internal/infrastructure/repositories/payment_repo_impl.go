package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"trade-palace.backend/internal/domain/entities"
	domainerrors "trade-palace.backend/internal/domain/errors"
	"trade-palace.backend/internal/infrastructure/models"
	"trade-palace.backend/pkg/money"
	"trade-palace.backend/pkg/utils"
)

// PaymentRepository implements payment data operations
type PaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create creates a pending payment
func (r *PaymentRepository) Create(ctx context.Context, payment *entities.Payment) error {
	db := GetDB(ctx, r.db)

	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	now := time.Now()
	m := &models.Payment{
		ID:            payment.ID,
		AccountID:     payment.AccountID,
		Type:          string(payment.Type),
		AmountCents:   int64(payment.Amount),
		MpesaCode:     payment.MpesaCode.Ptr(),
		BankTxCode:    payment.BankTxCode.Ptr(),
		ScreenshotURL: payment.ScreenshotURL.Ptr(),
		Status:        string(payment.Status),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	payment.CreatedAt = m.CreatedAt
	payment.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a payment by ID
func (r *PaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Payment, error) {
	db := GetDB(ctx, r.db)
	var m models.Payment
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return paymentToEntity(&m), nil
}

// ListByAccountID lists an account's payments, newest first
func (r *PaymentRepository) ListByAccountID(ctx context.Context, accountID uuid.UUID, p utils.PaginationParams) ([]*entities.Payment, int64, error) {
	return r.list(ctx, p, "account_id = ?", accountID)
}

// List lists payments, optionally filtered by status
func (r *PaymentRepository) List(ctx context.Context, status entities.PaymentStatus, p utils.PaginationParams) ([]*entities.Payment, int64, error) {
	if status == "" {
		return r.list(ctx, p, "")
	}
	return r.list(ctx, p, "status = ?", string(status))
}

func (r *PaymentRepository) list(ctx context.Context, p utils.PaginationParams, cond string, args ...interface{}) ([]*entities.Payment, int64, error) {
	db := GetDB(ctx, r.db)

	countQuery := db.WithContext(ctx).Model(&models.Payment{})
	if cond != "" {
		countQuery = countQuery.Where(cond, args...)
	}
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := db.WithContext(ctx).Order("created_at DESC")
	if cond != "" {
		query = query.Where(cond, args...)
	}
	if p.Limit > 0 {
		query = query.Limit(p.Limit).Offset(p.CalculateOffset())
	}

	var rows []models.Payment
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	payments := make([]*entities.Payment, 0, len(rows))
	for i := range rows {
		payments = append(payments, paymentToEntity(&rows[i]))
	}
	return payments, total, nil
}

// Decide records the terminal decision with a compare-and-set on status:
// only a pending payment transitions, so two concurrent decisions cannot
// both land.
func (r *PaymentRepository) Decide(ctx context.Context, id uuid.UUID, status entities.PaymentStatus, actorID uuid.UUID, at time.Time) error {
	db := GetDB(ctx, r.db)

	result := db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("id = ? AND status = ?", id, string(entities.PaymentStatusPending)).
		Updates(map[string]interface{}{
			"status":      string(status),
			"verified_by": actorID,
			"verified_at": at,
			"updated_at":  at,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := db.WithContext(ctx).Model(&models.Payment{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domainerrors.ErrNotFound
		}
		return domainerrors.ErrInvalidTransition
	}
	return nil
}

func paymentToEntity(m *models.Payment) *entities.Payment {
	return &entities.Payment{
		ID:            m.ID,
		AccountID:     m.AccountID,
		Type:          entities.PaymentType(m.Type),
		Amount:        money.Cents(m.AmountCents),
		MpesaCode:     null.StringFromPtr(m.MpesaCode),
		BankTxCode:    null.StringFromPtr(m.BankTxCode),
		ScreenshotURL: null.StringFromPtr(m.ScreenshotURL),
		Status:        entities.PaymentStatus(m.Status),
		VerifiedBy:    m.VerifiedBy,
		VerifiedAt:    m.VerifiedAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
