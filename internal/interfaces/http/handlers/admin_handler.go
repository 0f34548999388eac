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

// AdminService is the administration surface the handler needs
type AdminService interface {
	ListAccounts(ctx context.Context, p utils.PaginationParams) ([]*entities.Account, int64, error)
	GetSetting(ctx context.Context, key string) (*entities.AdminSetting, error)
	PutSetting(ctx context.Context, actorID uuid.UUID, key, value string) (*entities.AdminSetting, error)
	ListSettings(ctx context.Context) ([]*entities.AdminSetting, error)
}

// AdminHandler handles platform administration endpoints
type AdminHandler struct {
	adminUsecase AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminUsecase AdminService) *AdminHandler {
	return &AdminHandler{
		adminUsecase: adminUsecase,
	}
}

// ListAccounts lists accounts
// GET /api/v1/admin/accounts
func (h *AdminHandler) ListAccounts(c *gin.Context) {
	p := paginationFromQuery(c)
	accounts, total, err := h.adminUsecase.ListAccounts(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, http.StatusOK, accounts, utils.CalculateMeta(total, p.Page, p.Limit))
}

// GetSetting gets a platform setting
// GET /api/v1/admin/settings/:key
func (h *AdminHandler) GetSetting(c *gin.Context) {
	setting, err := h.adminUsecase.GetSetting(c.Request.Context(), c.Param("key"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"setting": setting})
}

// PutSetting creates or updates a platform setting
// PUT /api/v1/admin/settings/:key
func (h *AdminHandler) PutSetting(c *gin.Context) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	var input entities.AdminSettingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	setting, err := h.adminUsecase.PutSetting(c.Request.Context(), accountID, c.Param("key"), input.Value)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"setting": setting})
}

// ListSettings lists platform settings
// GET /api/v1/admin/settings
func (h *AdminHandler) ListSettings(c *gin.Context) {
	settings, err := h.adminUsecase.ListSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"settings": settings})
}
