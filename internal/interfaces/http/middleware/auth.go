package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"trade-palace.backend/internal/domain/entities"
	domainerrors "trade-palace.backend/internal/domain/errors"
	"trade-palace.backend/internal/interfaces/http/response"
	"trade-palace.backend/pkg/jwt"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// AccountIDKey is the context key for the authenticated account ID
	AccountIDKey = "accountId"
	// AccountRoleKey is the context key for the authenticated account role
	AccountRoleKey = "accountRole"
)

// AuthMiddleware authenticates the bearer token. A missing or malformed
// header is 401; a token that fails validation (bad signature, expired) is
// 403, matching what API clients already expect.
func AuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			response.Abort(c, http.StatusUnauthorized, domainerrors.CodeUnauthenticated, "authorization header is required")
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			response.Abort(c, http.StatusUnauthorized, domainerrors.CodeUnauthenticated, "invalid authorization format, use: Bearer <token>")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			if errors.Is(err, jwt.ErrExpiredToken) {
				response.Abort(c, http.StatusForbidden, domainerrors.CodeForbidden, "token has expired")
				return
			}
			response.Abort(c, http.StatusForbidden, domainerrors.CodeForbidden, "invalid token")
			return
		}

		c.Set(AccountIDKey, claims.AccountID)
		c.Set(AccountRoleKey, entities.AccountRole(claims.Role))

		c.Next()
	}
}

// GetAccountID gets the authenticated account ID from context
func GetAccountID(c *gin.Context) (uuid.UUID, bool) {
	accountID, exists := c.Get(AccountIDKey)
	if !exists {
		return uuid.Nil, false
	}
	return accountID.(uuid.UUID), true
}

// GetAccountRole gets the authenticated account role from context
func GetAccountRole(c *gin.Context) (entities.AccountRole, bool) {
	role, exists := c.Get(AccountRoleKey)
	if !exists {
		return "", false
	}
	return role.(entities.AccountRole), true
}

// RequireRole gates a route to the given roles
func RequireRole(roles ...entities.AccountRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := GetAccountRole(c)
		if !exists {
			response.Abort(c, http.StatusUnauthorized, domainerrors.CodeUnauthenticated, "authentication required")
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		response.Abort(c, http.StatusForbidden, domainerrors.CodeForbidden, "insufficient permissions")
	}
}
