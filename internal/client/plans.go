package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/pageza/mealmate/backend/internal/model"
)

// PlansOfUser lists every plan owned by ownerID
func (c *Client) PlansOfUser(ctx context.Context, ownerID string) ([]model.PlanItem, error) {
	var plans []model.PlanItem
	if err := c.do(ctx, http.MethodGet, c.path("plans", "ofUser", ownerID), nil, &plans); err != nil {
		return nil, fmt.Errorf("fetch plans of %s: %w", ownerID, err)
	}
	return plans, nil
}

// Plan fetches a single plan
func (c *Client) Plan(ctx context.Context, id uuid.UUID) (*model.PlanItem, error) {
	var plan model.PlanItem
	if err := c.do(ctx, http.MethodGet, c.path("plans", id.String()), nil, &plan); err != nil {
		return nil, fmt.Errorf("fetch plan %s: %w", id, err)
	}
	return &plan, nil
}

// AddPlan stores a new plan. A nil ID is replaced with a fresh UUID before sending.
func (c *Client) AddPlan(ctx context.Context, plan *model.PlanItem) (*model.PlanItem, error) {
	if plan.ID == uuid.Nil {
		plan.ID = uuid.New()
	}
	var created model.PlanItem
	if err := c.do(ctx, http.MethodPost, c.path("plans", "add"), plan, &created); err != nil {
		return nil, fmt.Errorf("add plan: %w", err)
	}
	return &created, nil
}

// EditPlan saves plan
func (c *Client) EditPlan(ctx context.Context, plan *model.PlanItem) (*model.PlanItem, error) {
	var updated model.PlanItem
	if err := c.do(ctx, http.MethodPost, c.path("plans", "edit", plan.ID.String()), plan, &updated); err != nil {
		return nil, fmt.Errorf("edit plan %s: %w", plan.ID, err)
	}
	return &updated, nil
}

// DeletePlan removes a plan and returns the deleted record
func (c *Client) DeletePlan(ctx context.Context, id uuid.UUID) (*model.PlanItem, error) {
	var deleted model.PlanItem
	if err := c.do(ctx, http.MethodPost, c.path("plans", "delete", id.String()), nil, &deleted); err != nil {
		return nil, fmt.Errorf("delete plan %s: %w", id, err)
	}
	return &deleted, nil
}

// CheckOrUncheckIngredient persists the checked state of one missing ingredient
func (c *Client) CheckOrUncheckIngredient(ctx context.Context, planID uuid.UUID, ingredient model.MissingIngredient) (*model.PlanItem, error) {
	var plan model.PlanItem
	endpoint := c.path("plans", "checkOrUncheckIngredient", planID.String())
	if err := c.do(ctx, http.MethodPut, endpoint, ingredient, &plan); err != nil {
		return nil, fmt.Errorf("update ingredient %q of plan %s: %w", ingredient.Name, planID, err)
	}
	return &plan, nil
}
