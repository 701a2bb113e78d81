package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/mealmate/backend/config"
	"github.com/pageza/mealmate/backend/internal/api"
	"github.com/pageza/mealmate/backend/internal/database"
	"github.com/pageza/mealmate/backend/internal/logger"
	"github.com/pageza/mealmate/backend/internal/middleware"
	"github.com/pageza/mealmate/backend/internal/server"
	"github.com/pageza/mealmate/backend/internal/service"
)

const settingsCacheTTL = 10 * time.Minute

func main() {
	log, err := logger.New(config.IsProduction(), os.Getenv("LOG_LEVEL"))
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	logger.Init(log)
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}

	db, err := database.New(cfg, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}

	redisClient, err := database.NewRedisClient(cfg, log)
	if err != nil {
		// continue without cache and rate limiting
		log.Warn("redis unavailable", zap.Error(err))
		redisClient = nil
	}

	s3Cfg, err := config.NewS3Config(context.Background(), cfg)
	if err != nil {
		log.Fatal("failed to initialize S3", zap.Error(err))
	}

	srv := server.New(cfg, api.Services{
		Auth:          service.NewAuthService(cfg.JWTSecret),
		Meals:         service.NewMealService(db),
		Plans:         service.NewPlanService(db),
		Settings:      service.NewSettingsService(db, service.NewSettingsCache(redisClient, settingsCacheTTL, log)),
		Users:         service.NewUserService(db),
		Images:        service.NewImageService(service.NewS3Store(s3Cfg), log),
		MealLimiter:   middleware.NewMealCreationRateLimiter(redisClient, cfg.UploadRateLimit, log),
		UploadLimiter: middleware.NewUploadRateLimiter(redisClient, cfg.UploadRateLimit, log),
		Ping: func(c *gin.Context) error {
			return database.HealthCheck(c.Request.Context(), db)
		},
		Log: log,
	}, log)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatal("server error", zap.Error(err))
		}
	case sig := <-quit:
		log.Info("received signal", zap.String("signal", sig.String()))
	}

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	log.Info("server stopped")
}
