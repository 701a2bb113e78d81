package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pageza/mealmate/backend/internal/model"
	"gorm.io/gorm"
)

// MealService handles meal operations
type MealService struct {
	db *gorm.DB
}

var _ IMealService = (*MealService)(nil)

// NewMealService creates a new MealService instance
func NewMealService(db *gorm.DB) *MealService {
	return &MealService{db: db}
}

// ListByOwner returns every meal of a user in creation order
func (s *MealService) ListByOwner(ctx context.Context, userID string) ([]model.Meal, error) {
	meals := []model.Meal{}
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&meals).Error; err != nil {
		return nil, dbError("list meals", err)
	}
	return meals, nil
}

// Get retrieves a meal by ID
func (s *MealService) Get(ctx context.Context, id uuid.UUID) (*model.Meal, error) {
	var meal model.Meal
	if err := s.db.WithContext(ctx).First(&meal, "id = ?", id).Error; err != nil {
		return nil, dbError("get meal", err)
	}
	return &meal, nil
}

// Create stores a new meal. The ID chosen by the client is kept; a missing
// one is generated.
func (s *MealService) Create(ctx context.Context, callerID string, meal *model.Meal) (*model.Meal, error) {
	if meal.UserID == "" {
		meal.UserID = callerID
	}
	if meal.UserID != callerID {
		return nil, ErrForbidden
	}
	if err := meal.Validate(); err != nil {
		return nil, invalid(err)
	}
	if meal.ID == uuid.Nil {
		meal.ID = uuid.New()
	}

	if err := s.db.WithContext(ctx).Create(meal).Error; err != nil {
		return nil, dbError("create meal", err)
	}
	return meal, nil
}

// Update replaces the editable fields of a meal and refreshes the snapshot
// embedded in every plan connected to it
func (s *MealService) Update(ctx context.Context, callerID string, id uuid.UUID, meal *model.Meal) (*model.Meal, error) {
	if err := meal.Validate(); err != nil {
		return nil, invalid(err)
	}

	var existing model.Meal
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&existing, "id = ?", id).Error; err != nil {
			return dbError("get meal", err)
		}
		if existing.UserID != callerID {
			return ErrForbidden
		}

		existing.Title = meal.Title
		existing.Images = meal.Images
		existing.Link = meal.Link
		existing.Comment = meal.Comment
		existing.Category = meal.Category
		existing.Tags = meal.Tags
		existing.IsToTry = meal.IsToTry

		if err := tx.Save(&existing).Error; err != nil {
			return dbError("update meal", err)
		}
		if err := tx.Model(&model.PlanItem{}).
			Where("connected_meal_id = ?", id).
			Update("connected_meal", existing.Summary()).Error; err != nil {
			return dbError("refresh connected plans", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &existing, nil
}

// Delete removes a meal and returns the deleted record. Plans keep their
// embedded snapshot of it.
func (s *MealService) Delete(ctx context.Context, callerID string, id uuid.UUID) (*model.Meal, error) {
	meal, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if meal.UserID != callerID {
		return nil, ErrForbidden
	}
	if err := s.db.WithContext(ctx).Delete(&model.Meal{}, "id = ?", id).Error; err != nil {
		return nil, dbError("delete meal", err)
	}
	return meal, nil
}
