package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"trade-palace.backend/internal/interfaces/http/middleware"
)

func TestRequestIDMiddleware_GeneratesAndEchoes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		id := c.GetString(middleware.RequestIDKey)
		ctxID, _ := c.Request.Context().Value("request_id").(string)
		c.JSON(http.StatusOK, gin.H{"id": id, "ctxId": ctxID})
	})

	// generated when absent
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	// caller-supplied id is honored end to end
	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "trace-me-42")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "trace-me-42", w.Header().Get("X-Request-ID"))
	assert.Contains(t, w.Body.String(), `"id":"trace-me-42"`)
	assert.Contains(t, w.Body.String(), `"ctxId":"trace-me-42"`)
}
