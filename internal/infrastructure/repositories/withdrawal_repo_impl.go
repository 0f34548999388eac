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
	"trade-palace.backend/pkg/money"
	"trade-palace.backend/pkg/utils"
)

// WithdrawalRepository implements withdrawal data operations
type WithdrawalRepository struct {
	db *gorm.DB
}

// NewWithdrawalRepository creates a new withdrawal repository
func NewWithdrawalRepository(db *gorm.DB) *WithdrawalRepository {
	return &WithdrawalRepository{db: db}
}

// Create creates a pending withdrawal request
func (r *WithdrawalRepository) Create(ctx context.Context, withdrawal *entities.Withdrawal) error {
	db := GetDB(ctx, r.db)

	if withdrawal.ID == uuid.Nil {
		withdrawal.ID = uuid.New()
	}
	now := time.Now()
	m := &models.Withdrawal{
		ID:          withdrawal.ID,
		AccountID:   withdrawal.AccountID,
		AmountCents: int64(withdrawal.Amount),
		Status:      string(withdrawal.Status),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	withdrawal.CreatedAt = m.CreatedAt
	withdrawal.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a withdrawal by ID
func (r *WithdrawalRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Withdrawal, error) {
	db := GetDB(ctx, r.db)
	var m models.Withdrawal
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return withdrawalToEntity(&m), nil
}

// ListByAccountID lists an account's withdrawal requests, newest first
func (r *WithdrawalRepository) ListByAccountID(ctx context.Context, accountID uuid.UUID, p utils.PaginationParams) ([]*entities.Withdrawal, int64, error) {
	return r.list(ctx, p, "account_id = ?", accountID)
}

// List lists withdrawal requests, optionally filtered by status
func (r *WithdrawalRepository) List(ctx context.Context, status entities.WithdrawalStatus, p utils.PaginationParams) ([]*entities.Withdrawal, int64, error) {
	if status == "" {
		return r.list(ctx, p, "")
	}
	return r.list(ctx, p, "status = ?", string(status))
}

func (r *WithdrawalRepository) list(ctx context.Context, p utils.PaginationParams, cond string, args ...interface{}) ([]*entities.Withdrawal, int64, error) {
	db := GetDB(ctx, r.db)

	countQuery := db.WithContext(ctx).Model(&models.Withdrawal{})
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

	var rows []models.Withdrawal
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	withdrawals := make([]*entities.Withdrawal, 0, len(rows))
	for i := range rows {
		withdrawals = append(withdrawals, withdrawalToEntity(&rows[i]))
	}
	return withdrawals, total, nil
}

// Decide records the terminal decision with a compare-and-set on status.
// The balance debit on approval is the caller's job, inside the same
// transaction scope.
func (r *WithdrawalRepository) Decide(ctx context.Context, id uuid.UUID, status entities.WithdrawalStatus, actorID uuid.UUID, at time.Time) error {
	db := GetDB(ctx, r.db)

	result := db.WithContext(ctx).
		Model(&models.Withdrawal{}).
		Where("id = ? AND status = ?", id, string(entities.WithdrawalStatusPending)).
		Updates(map[string]interface{}{
			"status":       string(status),
			"processed_by": actorID,
			"processed_at": at,
			"updated_at":   at,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := db.WithContext(ctx).Model(&models.Withdrawal{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domainerrors.ErrNotFound
		}
		return domainerrors.ErrInvalidTransition
	}
	return nil
}

func withdrawalToEntity(m *models.Withdrawal) *entities.Withdrawal {
	return &entities.Withdrawal{
		ID:          m.ID,
		AccountID:   m.AccountID,
		Amount:      money.Cents(m.AmountCents),
		Status:      entities.WithdrawalStatus(m.Status),
		ProcessedBy: m.ProcessedBy,
		ProcessedAt: m.ProcessedAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
