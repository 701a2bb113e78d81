package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealmate/backend/internal/middleware"
	"github.com/pageza/mealmate/backend/internal/model"
	"github.com/pageza/mealmate/backend/internal/service"
)

type MealHandler struct {
	meals   service.IMealService
	limiter *middleware.RateLimiter
}

func NewMealHandler(meals service.IMealService, limiter *middleware.RateLimiter) *MealHandler {
	return &MealHandler{meals: meals, limiter: limiter}
}

func (h *MealHandler) RegisterRoutes(router *gin.RouterGroup) {
	meals := router.Group("/meals")
	{
		meals.GET("/ofUser/:userId", h.MealsOfUser)
		meals.GET("/:id", h.GetMeal)
		meals.POST("/add", h.limiter.RateLimitMiddleware(), h.AddMeal)
		meals.POST("/edit/:id", h.EditMeal)
		meals.POST("/delete/:id", h.DeleteMeal)
	}
}

func (h *MealHandler) MealsOfUser(c *gin.Context) {
	meals, err := h.meals.ListByOwner(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meals)
}

func (h *MealHandler) GetMeal(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	meal, err := h.meals.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}

func (h *MealHandler) AddMeal(c *gin.Context) {
	var meal model.Meal
	if err := c.ShouldBindJSON(&meal); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.meals.Create(c.Request.Context(), middleware.UserID(c), &meal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *MealHandler) EditMeal(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var meal model.Meal
	if err := c.ShouldBindJSON(&meal); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.meals.Update(c.Request.Context(), middleware.UserID(c), id, &meal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *MealHandler) DeleteMeal(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	deleted, err := h.meals.Delete(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, deleted)
}
