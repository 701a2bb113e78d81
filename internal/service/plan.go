package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pageza/mealmate/backend/internal/model"
	"gorm.io/gorm"
)

// PlanService handles plan item operations
type PlanService struct {
	db *gorm.DB
}

var _ IPlanService = (*PlanService)(nil)

// NewPlanService creates a new PlanService instance
func NewPlanService(db *gorm.DB) *PlanService {
	return &PlanService{db: db}
}

// ListByOwner returns every plan item of a user in creation order
func (s *PlanService) ListByOwner(ctx context.Context, userID string) ([]model.PlanItem, error) {
	plans := []model.PlanItem{}
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&plans).Error; err != nil {
		return nil, dbError("list plans", err)
	}
	return plans, nil
}

// Get retrieves a plan item by ID
func (s *PlanService) Get(ctx context.Context, id uuid.UUID) (*model.PlanItem, error) {
	var plan model.PlanItem
	if err := s.db.WithContext(ctx).First(&plan, "id = ?", id).Error; err != nil {
		return nil, dbError("get plan", err)
	}
	return &plan, nil
}

// Create stores a new plan item. Re-adding a deleted record with its
// original ID is how undo works.
func (s *PlanService) Create(ctx context.Context, callerID string, plan *model.PlanItem) (*model.PlanItem, error) {
	if plan.UserID == "" {
		plan.UserID = callerID
	}
	if plan.UserID != callerID {
		return nil, ErrForbidden
	}
	if err := plan.Validate(); err != nil {
		return nil, invalid(err)
	}
	if plan.ID == uuid.Nil {
		plan.ID = uuid.New()
	}
	normalizeDate(plan)
	if err := s.connectMeal(ctx, s.db, plan); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(plan).Error; err != nil {
		return nil, dbError("create plan", err)
	}
	return plan, nil
}

// Update replaces the editable fields of a plan item
func (s *PlanService) Update(ctx context.Context, callerID string, id uuid.UUID, plan *model.PlanItem) (*model.PlanItem, error) {
	if err := plan.Validate(); err != nil {
		return nil, invalid(err)
	}

	var existing model.PlanItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&existing, "id = ?", id).Error; err != nil {
			return dbError("get plan", err)
		}
		if existing.UserID != callerID {
			return ErrForbidden
		}

		existing.Title = plan.Title
		existing.HasDate = plan.HasDate
		existing.Date = plan.Date
		existing.GotEverything = plan.GotEverything
		existing.MissingIngredients = plan.MissingIngredients
		if !sameMeal(existing.ConnectedMealID, plan.ConnectedMealID) {
			existing.ConnectedMeal = nil
		}
		existing.ConnectedMealID = plan.ConnectedMealID
		normalizeDate(&existing)
		if err := s.connectMeal(ctx, tx, &existing); err != nil {
			return err
		}

		if err := tx.Save(&existing).Error; err != nil {
			return dbError("update plan", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &existing, nil
}

// Delete removes a plan item and returns the deleted record
func (s *PlanService) Delete(ctx context.Context, callerID string, id uuid.UUID) (*model.PlanItem, error) {
	plan, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan.UserID != callerID {
		return nil, ErrForbidden
	}
	if err := s.db.WithContext(ctx).Delete(&model.PlanItem{}, "id = ?", id).Error; err != nil {
		return nil, dbError("delete plan", err)
	}
	return plan, nil
}

// CheckOrUncheckIngredient stores the checked flag of the ingredient with the
// same name. GotEverything is left alone.
func (s *PlanService) CheckOrUncheckIngredient(ctx context.Context, callerID string, planID uuid.UUID, ingredient model.MissingIngredient) (*model.PlanItem, error) {
	var plan model.PlanItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&plan, "id = ?", planID).Error; err != nil {
			return dbError("get plan", err)
		}
		if plan.UserID != callerID {
			return ErrForbidden
		}

		i := plan.IngredientIndex(ingredient.Name)
		if i < 0 {
			return fmt.Errorf("%w: plan has no ingredient %q", ErrValidation, ingredient.Name)
		}
		plan.MissingIngredients[i].Checked = ingredient.Checked

		if err := tx.Model(&plan).Update("missing_ingredients", plan.MissingIngredients).Error; err != nil {
			return dbError("update ingredient", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// connectMeal embeds the snapshot of the connected meal when the client sent
// only its ID
func (s *PlanService) connectMeal(ctx context.Context, db *gorm.DB, plan *model.PlanItem) error {
	if plan.ConnectedMealID == nil {
		plan.ConnectedMeal = nil
		return nil
	}
	if plan.ConnectedMeal != nil && plan.ConnectedMeal.ID == *plan.ConnectedMealID {
		return nil
	}

	var meal model.Meal
	if err := db.WithContext(ctx).First(&meal, "id = ?", *plan.ConnectedMealID).Error; err != nil {
		return dbError("get connected meal", err)
	}
	plan.ConnectedMeal = meal.Summary()
	return nil
}

func normalizeDate(plan *model.PlanItem) {
	if !plan.HasDate {
		plan.Date = nil
	}
}

func sameMeal(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
