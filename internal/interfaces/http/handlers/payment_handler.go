package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"trade-palace.backend/internal/domain/entities"
	domainerrors "trade-palace.backend/internal/domain/errors"
	"trade-palace.backend/internal/interfaces/http/middleware"
	"trade-palace.backend/internal/interfaces/http/response"
	"trade-palace.backend/pkg/utils"
)

// PaymentService is the payment surface the handler needs
type PaymentService interface {
	Submit(ctx context.Context, accountID uuid.UUID, input *entities.SubmitPaymentInput) (*entities.Payment, error)
	GetByID(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*entities.Payment, error)
	ListMine(ctx context.Context, accountID uuid.UUID, p utils.PaginationParams) ([]*entities.Payment, int64, error)
	List(ctx context.Context, status entities.PaymentStatus, p utils.PaginationParams) ([]*entities.Payment, int64, error)
	Decide(ctx context.Context, actorID uuid.UUID, paymentID uuid.UUID, decision entities.PaymentStatus) (*entities.Payment, error)
}

// PaymentHandler handles payment endpoints
type PaymentHandler struct {
	paymentUsecase PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentUsecase PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentUsecase: paymentUsecase,
	}
}

func paginationFromQuery(c *gin.Context) utils.PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	return utils.GetPaginationParams(page, limit)
}

// Submit files a payment for verification
// POST /api/v1/payments
func (h *PaymentHandler) Submit(c *gin.Context) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	var input entities.SubmitPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	payment, err := h.paymentUsecase.Submit(c.Request.Context(), accountID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"payment": payment})
}

// ListMine lists the caller's payments
// GET /api/v1/payments
func (h *PaymentHandler) ListMine(c *gin.Context) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	p := paginationFromQuery(c)
	payments, total, err := h.paymentUsecase.ListMine(c.Request.Context(), accountID, p)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, http.StatusOK, payments, utils.CalculateMeta(total, p.Page, p.Limit))
}

// GetByID gets a payment
// GET /api/v1/payments/:id
func (h *PaymentHandler) GetByID(c *gin.Context) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid payment id"))
		return
	}

	payment, err := h.paymentUsecase.GetByID(c.Request.Context(), accountID, paymentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"payment": payment})
}

// Decide records a verification decision
// POST /api/v1/payments/:id/decision
func (h *PaymentHandler) Decide(c *gin.Context) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid payment id"))
		return
	}

	var input entities.PaymentDecisionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	payment, err := h.paymentUsecase.Decide(c.Request.Context(), accountID, paymentID, input.Decision)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"payment": payment})
}

// List lists payments platform-wide, optionally filtered by status
// GET /api/v1/admin/payments
func (h *PaymentHandler) List(c *gin.Context) {
	p := paginationFromQuery(c)
	status := entities.PaymentStatus(c.Query("status"))

	payments, total, err := h.paymentUsecase.List(c.Request.Context(), status, p)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, http.StatusOK, payments, utils.CalculateMeta(total, p.Page, p.Limit))
}
