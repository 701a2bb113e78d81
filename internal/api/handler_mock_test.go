package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pageza/mealmate/backend/internal/mocks"
	"github.com/pageza/mealmate/backend/internal/model"
	"github.com/pageza/mealmate/backend/internal/service"
	"github.com/pageza/mealmate/backend/internal/testhelpers"
	"github.com/pageza/mealmate/backend/internal/types"
)

type mockedAPI struct {
	router   *gin.Engine
	auth     *mocks.MockAuthService
	meals    *mocks.MockMealService
	plans    *mocks.MockPlanService
	settings *mocks.MockSettingsService
	users    *mocks.MockUserService
	images   *mocks.MockImageService
	logs     *observer.ObservedLogs
}

func setupMockedAPI(t *testing.T) *mockedAPI {
	t.Helper()
	core, logs := observer.New(zap.WarnLevel)
	m := &mockedAPI{
		router:   testhelpers.NewTestRouter(),
		auth:     &mocks.MockAuthService{},
		meals:    &mocks.MockMealService{},
		plans:    &mocks.MockPlanService{},
		settings: &mocks.MockSettingsService{},
		users:    &mocks.MockUserService{},
		images:   &mocks.MockImageService{},
		logs:     logs,
	}
	m.auth.On("ValidateToken", "good").Return(&types.TokenClaims{UserID: "alice", Nickname: "alice"}, nil)
	m.auth.On("ValidateToken", mock.Anything).Return(nil, service.ErrInvalidToken)
	m.users.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	RegisterRoutes(m.router, Services{
		Auth:     m.auth,
		Meals:    m.meals,
		Plans:    m.plans,
		Settings: m.settings,
		Users:    m.users,
		Images:   m.images,
		Log:      zap.New(core),
	})
	return m
}

func TestInternalErrorsAreHidden(t *testing.T) {
	m := setupMockedAPI(t)
	m.meals.On("ListByOwner", mock.Anything, "alice").Return(nil, errors.New("connection reset"))

	w := testhelpers.PerformRequest(m.router, http.MethodGet, "/meals/ofUser/alice", nil, "good")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
	m.meals.AssertExpectations(t)
}

func TestInvalidTokenIsRejected(t *testing.T) {
	m := setupMockedAPI(t)

	w := testhelpers.PerformRequest(m.router, http.MethodGet, "/plans/ofUser/alice", nil, "forged")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	m.plans.AssertNotCalled(t, "ListByOwner", mock.Anything, mock.Anything)
	m.users.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestServiceErrorsMapToStatusCodes(t *testing.T) {
	m := setupMockedAPI(t)
	planID := uuid.New()
	m.plans.On("Delete", mock.Anything, "alice", planID).Return(nil, service.ErrForbidden)
	m.settings.On("Get", mock.Anything, "alice").Return(nil, service.ErrNotFound)
	m.settings.On("UpdateSingle", mock.Anything, "alice", "alice", "fontSize", mock.Anything).
		Return(nil, service.ErrInvalidSetting)
	m.images.On("DeleteAll", mock.Anything, "alice", "meals", "bob").Return(0, service.ErrForbidden)

	w := testhelpers.PerformRequest(m.router, http.MethodPost, "/plans/delete/"+planID.String(), nil, "good")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = testhelpers.PerformRequest(m.router, http.MethodGet, "/settings/ofUser/alice", nil, "good")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = testhelpers.PerformRequest(m.router, http.MethodPut, "/settings/updateSingleUserSetting/alice",
		types.UpdateSettingRequest{Key: "fontSize", Value: []byte("3")}, "good")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = testhelpers.PerformRequest(m.router, http.MethodPost, "/images/deleteAllImagesFromCategory/meals/bob", nil, "good")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCheckIngredientPassesCaller(t *testing.T) {
	m := setupMockedAPI(t)
	planID := uuid.New()
	ing := model.MissingIngredient{Name: "eggs", Checked: true}
	m.plans.On("CheckOrUncheckIngredient", mock.Anything, "alice", planID, ing).
		Return(&model.PlanItem{ID: planID, MissingIngredients: model.JSONList[model.MissingIngredient]{ing}}, nil)

	w := testhelpers.PerformRequest(m.router, http.MethodPut, "/plans/checkOrUncheckIngredient/"+planID.String(), ing, "good")
	assert.Equal(t, http.StatusOK, w.Code)
	m.plans.AssertExpectations(t)
}

func TestSyncUserFailureDoesNotFailRequest(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	users := &mocks.MockUserService{}
	users.On("Upsert", mock.Anything, mock.Anything).Return(errors.New("db down"))
	users.On("All", mock.Anything).Return([]model.User{{ID: "alice", Nickname: "alice"}}, nil)
	auth := &mocks.MockAuthService{}
	auth.On("ValidateToken", "good").Return(&types.TokenClaims{UserID: "alice"}, nil)

	router := testhelpers.NewTestRouter()
	RegisterRoutes(router, Services{Auth: auth, Users: users, Log: zap.New(core)})

	for i := 0; i < 2; i++ {
		w := testhelpers.PerformRequest(router, http.MethodGet, "/users/all", nil, "good")
		assert.Equal(t, http.StatusOK, w.Code)
	}
	users.AssertNumberOfCalls(t, "Upsert", 2)
	assert.Equal(t, 2, logs.FilterMessage("failed to sync user").Len())
}

func TestSyncUserRunsOncePerUser(t *testing.T) {
	m := setupMockedAPI(t)
	m.meals.On("ListByOwner", mock.Anything, "alice").Return([]model.Meal{}, nil)

	for i := 0; i < 3; i++ {
		w := testhelpers.PerformRequest(m.router, http.MethodGet, "/meals/ofUser/alice", nil, "good")
		assert.Equal(t, http.StatusOK, w.Code)
	}
	m.users.AssertNumberOfCalls(t, "Upsert", 1)
	assert.Zero(t, m.logs.Len())
}
