package service

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/pageza/mealmate/backend/internal/model"
	"github.com/pageza/mealmate/backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)
	return gormDB, mock
}

func TestMealServiceCreateAndGet(t *testing.T) {
	svc := NewMealService(testhelpers.SetupTestDatabase(t))
	ctx := context.Background()

	id := uuid.New()
	created, err := svc.Create(ctx, "u1", &model.Meal{
		ID:       id,
		Title:    "Pancakes",
		Category: strPtr("Breakfast"),
		Tags:     model.JSONList[string]{"sweet", "quick"},
		Images:   model.JSONList[model.MealImage]{{Name: "p.jpg", URL: "http://img/p.jpg", IsMain: true}},
	})
	require.NoError(t, err)
	assert.Equal(t, id, created.ID, "client chosen id is kept")
	assert.Equal(t, "u1", created.UserID)

	got, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Pancakes", got.Title)
	assert.Equal(t, model.JSONList[string]{"sweet", "quick"}, got.Tags)
	main, ok := got.MainImage()
	require.True(t, ok)
	assert.Equal(t, "p.jpg", main.Name)

	generated, err := svc.Create(ctx, "u1", &model.Meal{Title: "Soup"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, generated.ID)

	meals, err := svc.ListByOwner(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, meals, 2)

	meals, err = svc.ListByOwner(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, meals)
	assert.Empty(t, meals)
}

func TestMealServiceCreateRejects(t *testing.T) {
	svc := NewMealService(testhelpers.SetupTestDatabase(t))
	ctx := context.Background()

	_, err := svc.Create(ctx, "u1", &model.Meal{Title: " "})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, "u1", &model.Meal{Title: "x", UserID: "u2"})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMealServiceUpdateRefreshesConnectedPlans(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	meals := NewMealService(db)
	plans := NewPlanService(db)
	ctx := context.Background()

	meal, err := meals.Create(ctx, "u1", &model.Meal{Title: "Soup"})
	require.NoError(t, err)
	plan, err := plans.Create(ctx, "u1", &model.PlanItem{Title: "Cook", ConnectedMealID: &meal.ID})
	require.NoError(t, err)
	require.NotNil(t, plan.ConnectedMeal)
	assert.Equal(t, "Soup", plan.ConnectedMeal.Title)

	_, err = meals.Update(ctx, "u2", meal.ID, &model.Meal{Title: "Stolen"})
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := meals.Update(ctx, "u1", meal.ID, &model.Meal{Title: "Tomato soup", Category: strPtr("Lunch")})
	require.NoError(t, err)
	assert.Equal(t, "Tomato soup", updated.Title)
	assert.Equal(t, "u1", updated.UserID)

	reloaded, err := plans.Get(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tomato soup", reloaded.ConnectedMeal.Title)
	assert.Equal(t, "Lunch", *reloaded.ConnectedMeal.Category)
}

func TestMealServiceDelete(t *testing.T) {
	svc := NewMealService(testhelpers.SetupTestDatabase(t))
	ctx := context.Background()

	meal, err := svc.Create(ctx, "u1", &model.Meal{Title: "Soup"})
	require.NoError(t, err)

	_, err = svc.Delete(ctx, "u2", meal.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	deleted, err := svc.Delete(ctx, "u1", meal.ID)
	require.NoError(t, err)
	assert.Equal(t, "Soup", deleted.Title)

	_, err = svc.Delete(ctx, "u1", meal.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMealServiceDatabaseFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewMealService(db)

	mock.ExpectQuery(`SELECT \* FROM "meals" WHERE user_id = \$1`).
		WithArgs("u1").
		WillReturnError(errors.New("connection reset"))

	meals, err := svc.ListByOwner(context.Background(), "u1")
	assert.Nil(t, meals)
	assert.ErrorContains(t, err, "list meals: connection reset")
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
