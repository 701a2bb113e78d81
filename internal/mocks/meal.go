package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/mealmate/backend/internal/model"
)

// MockMealService is a mock implementation of the MealService interface
type MockMealService struct {
	mock.Mock
}

func (m *MockMealService) ListByOwner(ctx context.Context, userID string) ([]model.Meal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Meal), args.Error(1)
}

func (m *MockMealService) Get(ctx context.Context, id uuid.UUID) (*model.Meal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Meal), args.Error(1)
}

func (m *MockMealService) Create(ctx context.Context, callerID string, meal *model.Meal) (*model.Meal, error) {
	args := m.Called(ctx, callerID, meal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Meal), args.Error(1)
}

func (m *MockMealService) Update(ctx context.Context, callerID string, id uuid.UUID, meal *model.Meal) (*model.Meal, error) {
	args := m.Called(ctx, callerID, id, meal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Meal), args.Error(1)
}

func (m *MockMealService) Delete(ctx context.Context, callerID string, id uuid.UUID) (*model.Meal, error) {
	args := m.Called(ctx, callerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Meal), args.Error(1)
}
