package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealmate/backend/internal/middleware"
	"github.com/pageza/mealmate/backend/internal/service"
	"github.com/pageza/mealmate/backend/internal/types"
)

type SettingsHandler struct {
	settings service.ISettingsService
}

func NewSettingsHandler(settings service.ISettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

func (h *SettingsHandler) RegisterRoutes(router *gin.RouterGroup) {
	settings := router.Group("/settings")
	{
		settings.GET("/ofUser/:userId", h.SettingsOfUser)
		settings.POST("/add", h.AddSettings)
		settings.PUT("/updateSingleUserSetting/:userId", h.UpdateSingleUserSetting)
	}
}

// SettingsOfUser answers 404 when the user has no settings record yet
func (h *SettingsHandler) SettingsOfUser(c *gin.Context) {
	userID := c.Param("userId")
	if userID != middleware.UserID(c) {
		respondError(c, service.ErrForbidden)
		return
	}
	settings, err := h.settings.Get(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *SettingsHandler) AddSettings(c *gin.Context) {
	var req types.AddSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	settings, err := h.settings.Add(c.Request.Context(), middleware.UserID(c), req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *SettingsHandler) UpdateSingleUserSetting(c *gin.Context) {
	var req types.UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	saved, err := h.settings.UpdateSingle(c.Request.Context(), middleware.UserID(c), c.Param("userId"), req.Key, req.Value)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.SettingSavedResponse{SettingSaved: saved})
}
