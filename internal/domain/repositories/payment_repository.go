package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"trade-palace.backend/internal/domain/entities"
	"trade-palace.backend/pkg/utils"
)

// PaymentRepository defines payment data operations
type PaymentRepository interface {
	Create(ctx context.Context, payment *entities.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Payment, error)
	ListByAccountID(ctx context.Context, accountID uuid.UUID, p utils.PaginationParams) ([]*entities.Payment, int64, error)
	List(ctx context.Context, status entities.PaymentStatus, p utils.PaginationParams) ([]*entities.Payment, int64, error)
	// Decide records a terminal decision, succeeding only while the payment
	// is still pending.
	Decide(ctx context.Context, id uuid.UUID, status entities.PaymentStatus, actorID uuid.UUID, at time.Time) error
}
