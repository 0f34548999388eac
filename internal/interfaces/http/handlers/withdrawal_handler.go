package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"trade-palace.backend/internal/domain/entities"
	domainerrors "trade-palace.backend/internal/domain/errors"
	"trade-palace.backend/internal/interfaces/http/middleware"
	"trade-palace.backend/internal/interfaces/http/response"
	"trade-palace.backend/pkg/utils"
)

// WithdrawalService is the withdrawal surface the handler needs
type WithdrawalService interface {
	Request(ctx context.Context, accountID uuid.UUID, input *entities.RequestWithdrawalInput) (*entities.Withdrawal, error)
	ListMine(ctx context.Context, accountID uuid.UUID, p utils.PaginationParams) ([]*entities.Withdrawal, int64, error)
	List(ctx context.Context, status entities.WithdrawalStatus, p utils.PaginationParams) ([]*entities.Withdrawal, int64, error)
	Decide(ctx context.Context, actorID uuid.UUID, withdrawalID uuid.UUID, decision entities.WithdrawalStatus) (*entities.Withdrawal, error)
}

// WithdrawalHandler handles withdrawal endpoints
type WithdrawalHandler struct {
	withdrawalUsecase WithdrawalService
}

// NewWithdrawalHandler creates a new withdrawal handler
func NewWithdrawalHandler(withdrawalUsecase WithdrawalService) *WithdrawalHandler {
	return &WithdrawalHandler{
		withdrawalUsecase: withdrawalUsecase,
	}
}

// Request files a withdrawal request
// POST /api/v1/withdrawals
func (h *WithdrawalHandler) Request(c *gin.Context) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	var input entities.RequestWithdrawalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	withdrawal, err := h.withdrawalUsecase.Request(c.Request.Context(), accountID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"withdrawal": withdrawal})
}

// ListMine lists the caller's withdrawal requests
// GET /api/v1/withdrawals
func (h *WithdrawalHandler) ListMine(c *gin.Context) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	p := paginationFromQuery(c)
	withdrawals, total, err := h.withdrawalUsecase.ListMine(c.Request.Context(), accountID, p)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, http.StatusOK, withdrawals, utils.CalculateMeta(total, p.Page, p.Limit))
}

// Decide records a processing decision
// POST /api/v1/withdrawals/:id/decision
func (h *WithdrawalHandler) Decide(c *gin.Context) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	withdrawalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid withdrawal id"))
		return
	}

	var input entities.WithdrawalDecisionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	withdrawal, err := h.withdrawalUsecase.Decide(c.Request.Context(), accountID, withdrawalID, input.Decision)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"withdrawal": withdrawal})
}

// List lists withdrawal requests platform-wide
// GET /api/v1/admin/withdrawals
func (h *WithdrawalHandler) List(c *gin.Context) {
	p := paginationFromQuery(c)
	status := entities.WithdrawalStatus(c.Query("status"))

	withdrawals, total, err := h.withdrawalUsecase.List(c.Request.Context(), status, p)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, http.StatusOK, withdrawals, utils.CalculateMeta(total, p.Page, p.Limit))
}
