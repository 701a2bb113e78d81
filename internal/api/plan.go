package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealmate/backend/internal/middleware"
	"github.com/pageza/mealmate/backend/internal/model"
	"github.com/pageza/mealmate/backend/internal/service"
)

type PlanHandler struct {
	plans service.IPlanService
}

func NewPlanHandler(plans service.IPlanService) *PlanHandler {
	return &PlanHandler{plans: plans}
}

func (h *PlanHandler) RegisterRoutes(router *gin.RouterGroup) {
	plans := router.Group("/plans")
	{
		plans.GET("/ofUser/:userId", h.PlansOfUser)
		plans.GET("/:id", h.GetPlan)
		plans.POST("/add", h.AddPlan)
		plans.POST("/edit/:id", h.EditPlan)
		plans.POST("/delete/:id", h.DeletePlan)
		plans.PUT("/checkOrUncheckIngredient/:planId", h.CheckOrUncheckIngredient)
	}
}

func (h *PlanHandler) PlansOfUser(c *gin.Context) {
	plans, err := h.plans.ListByOwner(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

func (h *PlanHandler) GetPlan(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	plan, err := h.plans.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *PlanHandler) AddPlan(c *gin.Context) {
	var plan model.PlanItem
	if err := c.ShouldBindJSON(&plan); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.plans.Create(c.Request.Context(), middleware.UserID(c), &plan)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *PlanHandler) EditPlan(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var plan model.PlanItem
	if err := c.ShouldBindJSON(&plan); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.plans.Update(c.Request.Context(), middleware.UserID(c), id, &plan)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *PlanHandler) DeletePlan(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	deleted, err := h.plans.Delete(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, deleted)
}

// CheckOrUncheckIngredient takes the full ingredient {name, checked} as body
func (h *PlanHandler) CheckOrUncheckIngredient(c *gin.Context) {
	id, ok := uuidParam(c, "planId")
	if !ok {
		return
	}
	var ingredient model.MissingIngredient
	if err := c.ShouldBindJSON(&ingredient); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if ingredient.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ingredient name is required"})
		return
	}

	plan, err := h.plans.CheckOrUncheckIngredient(c.Request.Context(), middleware.UserID(c), id, ingredient)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}
