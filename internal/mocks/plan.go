package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/mealmate/backend/internal/model"
)

// MockPlanService is a mock implementation of the PlanService interface
type MockPlanService struct {
	mock.Mock
}

func (m *MockPlanService) ListByOwner(ctx context.Context, userID string) ([]model.PlanItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PlanItem), args.Error(1)
}

func (m *MockPlanService) Get(ctx context.Context, id uuid.UUID) (*model.PlanItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PlanItem), args.Error(1)
}

func (m *MockPlanService) Create(ctx context.Context, callerID string, plan *model.PlanItem) (*model.PlanItem, error) {
	args := m.Called(ctx, callerID, plan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PlanItem), args.Error(1)
}

func (m *MockPlanService) Update(ctx context.Context, callerID string, id uuid.UUID, plan *model.PlanItem) (*model.PlanItem, error) {
	args := m.Called(ctx, callerID, id, plan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PlanItem), args.Error(1)
}

func (m *MockPlanService) Delete(ctx context.Context, callerID string, id uuid.UUID) (*model.PlanItem, error) {
	args := m.Called(ctx, callerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PlanItem), args.Error(1)
}

func (m *MockPlanService) CheckOrUncheckIngredient(ctx context.Context, callerID string, planID uuid.UUID, ingredient model.MissingIngredient) (*model.PlanItem, error) {
	args := m.Called(ctx, callerID, planID, ingredient)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PlanItem), args.Error(1)
}
