package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"trade-palace.backend/pkg/logger"
	redisPkg "trade-palace.backend/pkg/redis"
)

const rateLimitCode = "RATE_LIMITED"

// RateLimitMiddleware applies a fixed-window per-IP request limit backed by
// redis. When redis is unreachable the request passes: losing rate limiting
// beats dropping traffic.
func RateLimitMiddleware(limit int64, window time.Duration) gin.HandlerFunc {
	windowSecs := int64(window.Seconds())
	if windowSecs < 1 {
		windowSecs = 1
	}
	return func(c *gin.Context) {
		windowStart := time.Now().Unix() / windowSecs
		key := fmt.Sprintf("ratelimit:%s:%d", c.ClientIP(), windowStart)

		count, err := redisPkg.IncrWindow(c.Request.Context(), key, window)
		if err != nil {
			logger.Warn(c.Request.Context(), "rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}

		if count > limit {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":    rateLimitCode,
				"message": "too many requests, slow down",
			})
			return
		}

		c.Next()
	}
}
