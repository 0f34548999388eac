package repositories

import (
	"context"

	"github.com/google/uuid"

	"trade-palace.backend/internal/domain/entities"
	"trade-palace.backend/pkg/money"
	"trade-palace.backend/pkg/utils"
)

// AccountRepository defines account data operations. AdjustBalance is the
// single serialization point for every balance mutation.
type AccountRepository interface {
	Create(ctx context.Context, account *entities.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Account, error)
	GetByEmail(ctx context.Context, email string) (*entities.Account, error)
	GetByUsername(ctx context.Context, username string) (*entities.Account, error)
	GetByReferralCode(ctx context.Context, code string) (*entities.Account, error)
	// AdjustBalance atomically adds delta (negative for debits) to the
	// account balance and returns the new balance. A debit that would take
	// the balance below zero fails with ErrInsufficientFunds.
	AdjustBalance(ctx context.Context, id uuid.UUID, delta money.Cents) (money.Cents, error)
	List(ctx context.Context, p utils.PaginationParams) ([]*entities.Account, int64, error)
}
