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
)

// EnrollmentService is the enrollment surface the handler needs
type EnrollmentService interface {
	Enroll(ctx context.Context, studentID uuid.UUID, input *entities.EnrollInput) (*entities.Enrollment, error)
	ListForAccount(ctx context.Context, accountID uuid.UUID) ([]*entities.Enrollment, error)
	SetStatus(ctx context.Context, actorID uuid.UUID, enrollmentID uuid.UUID, status entities.EnrollmentStatus) (*entities.Enrollment, error)
}

// EnrollmentHandler handles enrollment endpoints
type EnrollmentHandler struct {
	enrollmentUsecase EnrollmentService
}

// NewEnrollmentHandler creates a new enrollment handler
func NewEnrollmentHandler(enrollmentUsecase EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{
		enrollmentUsecase: enrollmentUsecase,
	}
}

// Enroll requests enrollment with a mentor
// POST /api/v1/enrollments
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	var input entities.EnrollInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	enrollment, err := h.enrollmentUsecase.Enroll(c.Request.Context(), accountID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"enrollment": enrollment})
}

// List lists the caller's enrollments
// GET /api/v1/enrollments
func (h *EnrollmentHandler) List(c *gin.Context) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	enrollments, err := h.enrollmentUsecase.ListForAccount(c.Request.Context(), accountID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"enrollments": enrollments})
}

// SetStatus changes an enrollment's status
// POST /api/v1/enrollments/:id/status
func (h *EnrollmentHandler) SetStatus(c *gin.Context) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	enrollmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid enrollment id"))
		return
	}

	var input entities.EnrollmentStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	enrollment, err := h.enrollmentUsecase.SetStatus(c.Request.Context(), accountID, enrollmentID, input.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"enrollment": enrollment})
}
