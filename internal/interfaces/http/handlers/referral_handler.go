package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerrors "trade-palace.backend/internal/domain/errors"
	"trade-palace.backend/internal/interfaces/http/middleware"
	"trade-palace.backend/internal/interfaces/http/response"
	"trade-palace.backend/internal/usecases"
)

// ReferralService is the referral surface the handler needs
type ReferralService interface {
	Overview(ctx context.Context, accountID uuid.UUID) (*usecases.ReferralOverview, error)
}

// ReferralHandler handles referral endpoints
type ReferralHandler struct {
	referralUsecase ReferralService
}

// NewReferralHandler creates a new referral handler
func NewReferralHandler(referralUsecase ReferralService) *ReferralHandler {
	return &ReferralHandler{
		referralUsecase: referralUsecase,
	}
}

// Overview returns the caller's referral code, attributed signups and earnings
// GET /api/v1/referrals
func (h *ReferralHandler) Overview(c *gin.Context) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	overview, err := h.referralUsecase.Overview(c.Request.Context(), accountID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, overview)
}
