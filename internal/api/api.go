package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/mealmate/backend/internal/middleware"
	"github.com/pageza/mealmate/backend/internal/service"
)

// Services bundles what the handlers need. Nil limiters disable rate limiting.
type Services struct {
	Auth     service.IAuthService
	Meals    service.IMealService
	Plans    service.IPlanService
	Settings service.ISettingsService
	Users    service.IUserService
	Images   service.IImageService

	MealLimiter   *middleware.RateLimiter
	UploadLimiter *middleware.RateLimiter

	// Ping reports whether the backing stores are reachable, nil skips the check
	Ping func(*gin.Context) error
	Log  *zap.Logger
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, s Services) {
	router.GET("/health", healthCheck(s.Ping))

	users := NewUserHandler(s.Users, s.Log)
	authed := router.Group("/", middleware.AuthMiddleware(s.Auth), users.SyncUser())

	NewMealHandler(s.Meals, s.MealLimiter).RegisterRoutes(authed)
	NewPlanHandler(s.Plans).RegisterRoutes(authed)
	NewSettingsHandler(s.Settings).RegisterRoutes(authed)
	users.RegisterRoutes(authed)
	NewImageHandler(s.Images, s.UploadLimiter).RegisterRoutes(authed)
}

func healthCheck(ping func(*gin.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ping != nil {
			if err := ping(c); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	}
}
