package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"trade-palace.backend/internal/config"
	"trade-palace.backend/internal/infrastructure/repositories"
	"trade-palace.backend/internal/interfaces/http/handlers"
	"trade-palace.backend/internal/interfaces/http/middleware"
	"trade-palace.backend/internal/usecases"
	"trade-palace.backend/pkg/jwt"
	"trade-palace.backend/pkg/logger"
	"trade-palace.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	rateLimitEnabled := cfg.Redis.Enabled
	if rateLimitEnabled {
		if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
			logger.Warn(context.Background(), "Redis unavailable, rate limiting disabled", zap.Error(err))
			rateLimitEnabled = false
		} else {
			logger.Info(context.Background(), "Redis initialized")
		}
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
	}

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry)

	// Repositories
	accountRepo := repositories.NewAccountRepository(db)
	referralRepo := repositories.NewReferralRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	withdrawalRepo := repositories.NewWithdrawalRepository(db)
	enrollmentRepo := repositories.NewEnrollmentRepository(db)
	settingRepo := repositories.NewAdminSettingRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Usecases
	authUsecase := usecases.NewAuthUsecase(accountRepo, referralRepo, uow, jwtService, cfg.Referral.Reward)
	referralUsecase := usecases.NewReferralUsecase(accountRepo, referralRepo, cfg.Referral.Reward)
	paymentUsecase := usecases.NewPaymentUsecase(paymentRepo, accountRepo)
	withdrawalUsecase := usecases.NewWithdrawalUsecase(withdrawalRepo, accountRepo, uow)
	enrollmentUsecase := usecases.NewEnrollmentUsecase(enrollmentRepo, accountRepo)
	adminUsecase := usecases.NewAdminUsecase(accountRepo, settingRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authUsecase)
	referralHandler := handlers.NewReferralHandler(referralUsecase)
	paymentHandler := handlers.NewPaymentHandler(paymentUsecase)
	withdrawalHandler := handlers.NewWithdrawalHandler(withdrawalUsecase)
	enrollmentHandler := handlers.NewEnrollmentHandler(enrollmentUsecase)
	adminHandler := handlers.NewAdminHandler(adminUsecase)

	authMiddleware := middleware.AuthMiddleware(jwtService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	if rateLimitEnabled {
		r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:       authHandler,
		referralHandler:   referralHandler,
		paymentHandler:    paymentHandler,
		withdrawalHandler: withdrawalHandler,
		enrollmentHandler: enrollmentHandler,
		adminHandler:      adminHandler,
		authMiddleware:    authMiddleware,
	})

	log.Printf("🚀 Trade Palace Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
