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
	"trade-palace.backend/pkg/crypto"
	"trade-palace.backend/pkg/money"
	"trade-palace.backend/pkg/utils"
)

// referralCodeAttempts bounds the generate-and-retry loop for referral codes.
const referralCodeAttempts = 5

// AccountRepository implements account data operations
type AccountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create creates a new account. A referral code is allocated here: generated,
// checked against the unique index, and regenerated on collision so the code
// is unique at creation time rather than assumed unique.
func (r *AccountRepository) Create(ctx context.Context, account *entities.Account) error {
	db := GetDB(ctx, r.db)

	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}

	for attempt := 0; attempt < referralCodeAttempts; attempt++ {
		code := account.ReferralCode
		if code == "" {
			generated, err := crypto.GenerateReferralCode()
			if err != nil {
				return err
			}
			code = generated
		}

		if _, err := r.GetByReferralCode(ctx, code); err == nil {
			account.ReferralCode = ""
			continue
		} else if !errors.Is(err, domainerrors.ErrNotFound) {
			return err
		}

		now := time.Now()
		m := &models.Account{
			ID:           account.ID,
			Username:     account.Username,
			Email:        account.Email,
			PasswordHash: account.PasswordHash,
			Role:         string(account.Role),
			Phone:        account.Phone.Ptr(),
			BalanceCents: int64(account.Balance),
			IsVerified:   account.IsVerified,
			ReferralCode: code,
			ReferredBy:   account.ReferredBy,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		err := db.WithContext(ctx).Create(m).Error
		if err == nil {
			account.ReferralCode = code
			account.CreatedAt = m.CreatedAt
			account.UpdatedAt = m.UpdatedAt
			return nil
		}
		if !isUniqueViolation(err) {
			return err
		}

		taken, lookupErr := r.identityTaken(ctx, account.Username, account.Email)
		if lookupErr != nil {
			return lookupErr
		}
		if taken {
			return domainerrors.ErrAlreadyExists
		}

		// referral code collided between check and insert
		account.ReferralCode = ""
	}

	return errors.New("could not allocate a unique referral code")
}

func (r *AccountRepository) identityTaken(ctx context.Context, username, email string) (bool, error) {
	db := GetDB(ctx, r.db)
	var count int64
	err := db.WithContext(ctx).
		Model(&models.Account{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetByID gets an account by ID
func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Account, error) {
	return r.getOne(ctx, "id = ?", id)
}

// GetByEmail gets an account by email
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*entities.Account, error) {
	return r.getOne(ctx, "email = ?", email)
}

// GetByUsername gets an account by username
func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*entities.Account, error) {
	return r.getOne(ctx, "username = ?", username)
}

// GetByReferralCode gets an account by its referral code
func (r *AccountRepository) GetByReferralCode(ctx context.Context, code string) (*entities.Account, error) {
	return r.getOne(ctx, "referral_code = ?", code)
}

func (r *AccountRepository) getOne(ctx context.Context, query string, arg interface{}) (*entities.Account, error) {
	db := GetDB(ctx, r.db)
	var m models.Account
	if err := db.WithContext(ctx).Where(query, arg).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return accountToEntity(&m), nil
}

// AdjustBalance atomically adds delta to the account balance in a single
// conditional UPDATE, so concurrent credits and debits never lose updates.
// A debit only succeeds when the resulting balance stays non-negative.
func (r *AccountRepository) AdjustBalance(ctx context.Context, id uuid.UUID, delta money.Cents) (money.Cents, error) {
	db := GetDB(ctx, r.db)

	q := db.WithContext(ctx).Model(&models.Account{}).Where("id = ?", id)
	if delta < 0 {
		q = q.Where("balance_cents + ? >= 0", int64(delta))
	}
	result := q.UpdateColumn("balance_cents", gorm.Expr("balance_cents + ?", int64(delta)))
	if result.Error != nil {
		return 0, result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := db.WithContext(ctx).Model(&models.Account{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return 0, err
		}
		if count == 0 {
			return 0, domainerrors.ErrNotFound
		}
		return 0, domainerrors.ErrInsufficientFunds
	}

	var m models.Account
	if err := db.WithContext(ctx).Select("balance_cents").Where("id = ?", id).First(&m).Error; err != nil {
		return 0, err
	}
	return money.Cents(m.BalanceCents), nil
}

// List lists accounts ordered by creation time, newest first
func (r *AccountRepository) List(ctx context.Context, p utils.PaginationParams) ([]*entities.Account, int64, error) {
	db := GetDB(ctx, r.db)

	var total int64
	if err := db.WithContext(ctx).Model(&models.Account{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := db.WithContext(ctx).Order("created_at DESC")
	if p.Limit > 0 {
		query = query.Limit(p.Limit).Offset(p.CalculateOffset())
	}

	var rows []models.Account
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	accounts := make([]*entities.Account, 0, len(rows))
	for i := range rows {
		accounts = append(accounts, accountToEntity(&rows[i]))
	}
	return accounts, total, nil
}

func accountToEntity(m *models.Account) *entities.Account {
	return &entities.Account{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         entities.AccountRole(m.Role),
		Phone:        null.StringFromPtr(m.Phone),
		Balance:      money.Cents(m.BalanceCents),
		IsVerified:   m.IsVerified,
		ReferralCode: m.ReferralCode,
		ReferredBy:   m.ReferredBy,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
