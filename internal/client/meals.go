package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/mealmate/backend/internal/model"
)

// MealsOfUser lists every meal owned by ownerID
func (c *Client) MealsOfUser(ctx context.Context, ownerID string) ([]model.Meal, error) {
	var meals []model.Meal
	if err := c.do(ctx, http.MethodGet, c.path("meals", "ofUser", ownerID), nil, &meals); err != nil {
		return nil, fmt.Errorf("fetch meals of %s: %w", ownerID, err)
	}
	return meals, nil
}

// Meal fetches a single meal
func (c *Client) Meal(ctx context.Context, id uuid.UUID) (*model.Meal, error) {
	var meal model.Meal
	if err := c.do(ctx, http.MethodGet, c.path("meals", id.String()), nil, &meal); err != nil {
		return nil, fmt.Errorf("fetch meal %s: %w", id, err)
	}
	return &meal, nil
}

// AddMeal stores a new meal. A nil ID is replaced with a fresh UUID before sending.
func (c *Client) AddMeal(ctx context.Context, meal *model.Meal) (*model.Meal, error) {
	if err := meal.Validate(); err != nil {
		return nil, err
	}
	if meal.ID == uuid.Nil {
		meal.ID = uuid.New()
	}
	var created model.Meal
	if err := c.do(ctx, http.MethodPost, c.path("meals", "add"), meal, &created); err != nil {
		return nil, fmt.Errorf("add meal: %w", err)
	}
	return &created, nil
}

// EditMeal saves meal. It refuses to send an edit for a meal owned by someone else.
func (c *Client) EditMeal(ctx context.Context, currentUserID string, meal *model.Meal) (*model.Meal, error) {
	if meal.UserID != currentUserID {
		return nil, ErrNotOwner
	}
	if err := meal.Validate(); err != nil {
		return nil, err
	}
	var updated model.Meal
	if err := c.do(ctx, http.MethodPost, c.path("meals", "edit", meal.ID.String()), meal, &updated); err != nil {
		return nil, fmt.Errorf("edit meal %s: %w", meal.ID, err)
	}
	return &updated, nil
}

// DeleteMeal removes the meal and then, best effort, every image it referenced
func (c *Client) DeleteMeal(ctx context.Context, id uuid.UUID) (*model.Meal, error) {
	var deleted model.Meal
	if err := c.do(ctx, http.MethodPost, c.path("meals", "delete", id.String()), nil, &deleted); err != nil {
		return nil, fmt.Errorf("delete meal %s: %w", id, err)
	}

	for _, img := range deleted.Images {
		if _, err := c.DeleteImage(ctx, model.MealImageCategory, img.Name); err != nil {
			c.log.Warn("orphaned meal image",
				zap.String("meal_id", id.String()),
				zap.String("image", img.Name),
				zap.Error(err),
			)
		}
	}
	return &deleted, nil
}
