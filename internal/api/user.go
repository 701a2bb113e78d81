package api

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/mealmate/backend/internal/middleware"
	"github.com/pageza/mealmate/backend/internal/model"
	"github.com/pageza/mealmate/backend/internal/service"
	"github.com/pageza/mealmate/backend/internal/types"
)

type UserHandler struct {
	users service.IUserService
	log   *zap.Logger
	seen  sync.Map
}

func NewUserHandler(users service.IUserService, log *zap.Logger) *UserHandler {
	return &UserHandler{users: users, log: log}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.GET("/byId/:userId", h.UserByID)
		users.GET("/all", h.AllUsers)
		users.GET("/fromQuery/:q", h.UsersFromQuery)
		users.PUT("/updateMetadata/:userId", h.UpdateMetadata)
	}
}

// SyncUser records the caller in the user table the first time this process
// sees them. Failures are logged and do not fail the request.
func (h *UserHandler) SyncUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := middleware.Claims(c)
		if claims != nil {
			if _, seen := h.seen.Load(claims.UserID); !seen {
				if err := h.users.Upsert(c.Request.Context(), claims); err != nil {
					h.log.Warn("failed to sync user", zap.String("user_id", claims.UserID), zap.Error(err))
				} else {
					h.seen.Store(claims.UserID, struct{}{})
				}
			}
		}
		c.Next()
	}
}

func (h *UserHandler) UserByID(c *gin.Context) {
	user, err := h.users.ByID(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user.Summary())
}

func (h *UserHandler) AllUsers(c *gin.Context) {
	users, err := h.users.All(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaries(users))
}

func (h *UserHandler) UsersFromQuery(c *gin.Context) {
	users, err := h.users.FromQuery(c.Request.Context(), c.Param("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaries(users))
}

func (h *UserHandler) UpdateMetadata(c *gin.Context) {
	var req types.UpdateMetadataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := h.users.UpdateMetadata(c.Request.Context(), middleware.UserID(c), c.Param("userId"), req.Metadata)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user.Summary())
}

func summaries(users []model.User) []model.UserSummary {
	out := make([]model.UserSummary, 0, len(users))
	for i := range users {
		out = append(out, users[i].Summary())
	}
	return out
}
