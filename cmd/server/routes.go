package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"trade-palace.backend/internal/domain/entities"
	"trade-palace.backend/internal/interfaces/http/handlers"
	"trade-palace.backend/internal/interfaces/http/middleware"
	"trade-palace.backend/pkg/metrics"
)

type routeDeps struct {
	authHandler       *handlers.AuthHandler
	referralHandler   *handlers.ReferralHandler
	paymentHandler    *handlers.PaymentHandler
	withdrawalHandler *handlers.WithdrawalHandler
	enrollmentHandler *handlers.EnrollmentHandler
	adminHandler      *handlers.AdminHandler
	authMiddleware    gin.HandlerFunc
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public, /me protected)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.GET("/me", d.authMiddleware, d.authHandler.Me)
		}

		// Payment routes (protected; decision gated to verifier roles)
		payments := v1.Group("/payments")
		payments.Use(d.authMiddleware)
		{
			payments.POST("", d.paymentHandler.Submit)
			payments.GET("", d.paymentHandler.ListMine)
			payments.GET("/:id", d.paymentHandler.GetByID)
			payments.POST("/:id/decision",
				middleware.RequireRole(entities.RoleMentor, entities.RoleAdmin),
				d.paymentHandler.Decide)
		}

		// Withdrawal routes (protected; decision gated to admin)
		withdrawals := v1.Group("/withdrawals")
		withdrawals.Use(d.authMiddleware)
		{
			withdrawals.POST("", d.withdrawalHandler.Request)
			withdrawals.GET("", d.withdrawalHandler.ListMine)
			withdrawals.POST("/:id/decision",
				middleware.RequireRole(entities.RoleAdmin),
				d.withdrawalHandler.Decide)
		}

		// Referral routes (protected)
		v1.GET("/referrals", d.authMiddleware, d.referralHandler.Overview)

		// Enrollment routes (protected; status change gated to mentor/admin)
		enrollments := v1.Group("/enrollments")
		enrollments.Use(d.authMiddleware)
		{
			enrollments.POST("", d.enrollmentHandler.Enroll)
			enrollments.GET("", d.enrollmentHandler.List)
			enrollments.POST("/:id/status",
				middleware.RequireRole(entities.RoleMentor, entities.RoleAdmin),
				d.enrollmentHandler.SetStatus)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(d.authMiddleware, middleware.RequireRole(entities.RoleAdmin))
		{
			admin.GET("/accounts", d.adminHandler.ListAccounts)
			admin.GET("/payments", d.paymentHandler.List)
			admin.GET("/withdrawals", d.withdrawalHandler.List)
			admin.GET("/settings", d.adminHandler.ListSettings)
			admin.GET("/settings/:key", d.adminHandler.GetSetting)
			admin.PUT("/settings/:key", d.adminHandler.PutSetting)
		}
	}
}
