package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/mealmate/backend/config"
	"github.com/pageza/mealmate/backend/internal/api"
	"github.com/pageza/mealmate/backend/internal/service"
	"github.com/pageza/mealmate/backend/internal/testhelpers"
)

func newTestServer(t *testing.T) *Server {
	db := testhelpers.SetupTestDatabase(t)
	cfg := &config.Config{
		ServerHost:     "127.0.0.1",
		ServerPort:     "0",
		JWTSecret:      testhelpers.TestJWTSecret,
		AllowedOrigins: []string{"http://localhost:5173"},
	}
	return New(cfg, api.Services{
		Auth:     service.NewAuthService(cfg.JWTSecret),
		Meals:    service.NewMealService(db),
		Plans:    service.NewPlanService(db),
		Settings: service.NewSettingsService(db, nil),
		Users:    service.NewUserService(db),
	}, zap.NewNop())
}

func TestNew(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = testhelpers.PerformRequest(h, http.MethodGet, "/meals/ofUser/u1", nil, testhelpers.Token(t, "u1"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "mealmate_http_requests_total"))
}

func TestUnknownRouteAnswersJSON(t *testing.T) {
	h := newTestServer(t).Handler()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"404 page not found"}`, w.Body.String())
}

func TestStartAndShutdown(t *testing.T) {
	srv := newTestServer(t)

	done := make(chan error, 1)
	go func() { done <- srv.Start() }()
	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))
	assert.NoError(t, <-done)
}
