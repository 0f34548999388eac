package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"trade-palace.backend/internal/domain/entities"
	"trade-palace.backend/pkg/utils"
)

// WithdrawalRepository defines withdrawal data operations
type WithdrawalRepository interface {
	Create(ctx context.Context, withdrawal *entities.Withdrawal) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Withdrawal, error)
	ListByAccountID(ctx context.Context, accountID uuid.UUID, p utils.PaginationParams) ([]*entities.Withdrawal, int64, error)
	List(ctx context.Context, status entities.WithdrawalStatus, p utils.PaginationParams) ([]*entities.Withdrawal, int64, error)
	// Decide records a terminal decision, succeeding only while the request
	// is still pending.
	Decide(ctx context.Context, id uuid.UUID, status entities.WithdrawalStatus, actorID uuid.UUID, at time.Time) error
}
