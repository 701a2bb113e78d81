package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pageza/mealmate/backend/internal/model"
	"github.com/pageza/mealmate/backend/internal/types"
)

type call struct {
	Method      string
	Path        string
	RawPath     string
	Body        string
	Auth        string
	ContentType string
}

// fakeAPI answers canned responses keyed by "METHOD /path" and records every call
type fakeAPI struct {
	mu     sync.Mutex
	calls  []call
	routes map[string]http.HandlerFunc
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	t.Helper()
	f := &fakeAPI{routes: map[string]http.HandlerFunc{}}
	srv := httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.calls = append(f.calls, call{
		Method:      r.Method,
		Path:        r.URL.Path,
		RawPath:     r.URL.EscapedPath(),
		Body:        string(body),
		Auth:        r.Header.Get("Authorization"),
		ContentType: r.Header.Get("Content-Type"),
	})
	h, ok := f.routes[r.Method+" "+r.URL.Path]
	f.mu.Unlock()

	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not found"}`))
		return
	}
	r.Body = io.NopCloser(strings.NewReader(string(body)))
	h(w, r)
}

func (f *fakeAPI) handle(route string, h http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[route] = h
}

func (f *fakeAPI) reply(route string, status int, body interface{}) {
	f.handle(route, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	})
}

func (f *fakeAPI) recorded() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call(nil), f.calls...)
}

func (f *fakeAPI) count(method, path string) int {
	n := 0
	for _, c := range f.recorded() {
		if c.Method == method && c.Path == path {
			n++
		}
	}
	return n
}

func newTestClient(t *testing.T, srv *httptest.Server, opts ...Option) *Client {
	t.Helper()
	c, err := New(Config{BaseURL: srv.URL + "/", Token: "tok"}, opts...)
	require.NoError(t, err)
	return c
}

func TestNewValidatesConfig(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)

	_, err = New(Config{BaseURL: "ftp://example.com"})
	assert.Error(t, err)

	c, err := New(Config{BaseURL: "https://api.example.com/", Timeout: time.Second})
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/meals/ofUser/u%201", c.path("meals", "ofUser", "u 1"))
	assert.Equal(t, time.Second, c.http.Timeout)
}

func TestMealsOfUser(t *testing.T) {
	api, srv := newFakeAPI(t)
	c := newTestClient(t, srv)

	meal := model.Meal{ID: uuid.New(), UserID: "alice", Title: "Soup", Tags: model.JSONList[string]{"warm"}}
	api.reply("GET /meals/ofUser/alice", http.StatusOK, []model.Meal{meal})

	meals, err := c.MealsOfUser(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, meals, 1)
	assert.Equal(t, meal.ID, meals[0].ID)
	assert.Equal(t, "Soup", meals[0].Title)

	calls := api.recorded()
	require.Len(t, calls, 1)
	assert.Equal(t, "Bearer tok", calls[0].Auth)
}

func TestPathSegmentsAreEscaped(t *testing.T) {
	api, srv := newFakeAPI(t)
	c := newTestClient(t, srv)
	api.reply("GET /users/fromQuery/a b/c", http.StatusOK, []model.UserSummary{{ID: "u1", Nickname: "a b"}})

	users, err := c.UsersFromQuery(context.Background(), "a b/c")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "/users/fromQuery/a%20b%2Fc", api.recorded()[0].RawPath)
}

func TestStatusMapping(t *testing.T) {
	api, srv := newFakeAPI(t)
	core, logs := observer.New(zap.WarnLevel)
	c := newTestClient(t, srv, WithLogger(zap.New(core)))

	id := uuid.New()
	_, err := c.Meal(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotFound)

	api.reply("GET /plans/"+id.String(), http.StatusInternalServerError, types.ErrorResponse{Error: "boom"})
	_, err = c.Plan(context.Background(), id)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "boom", apiErr.Message)

	api.handle("GET /users/all", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down\n"))
	})
	_, err = c.AllUsers(context.Background())
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "upstream down", apiErr.Message)

	assert.Equal(t, 3, logs.FilterMessage("request failed").Len())
}

func TestMalformedBodyIsAnError(t *testing.T) {
	api, srv := newFakeAPI(t)
	c := newTestClient(t, srv)
	api.handle("GET /users/byId/u1", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	})

	_, err := c.UserByID(context.Background(), "u1")
	assert.ErrorContains(t, err, "decode response")
}

func TestAddMealAssignsID(t *testing.T) {
	api, srv := newFakeAPI(t)
	c := newTestClient(t, srv)
	api.handle("POST /meals/add", func(w http.ResponseWriter, r *http.Request) {
		var m model.Meal
		require.NoError(t, json.NewDecoder(r.Body).Decode(&m))
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(m)
	})

	meal := &model.Meal{UserID: "alice", Title: "Pancakes"}
	created, err := c.AddMeal(context.Background(), meal)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, meal.ID)
	assert.Equal(t, meal.ID, created.ID)
	assert.Equal(t, "application/json", api.recorded()[0].ContentType)

	_, err = c.AddMeal(context.Background(), &model.Meal{Title: " "})
	assert.ErrorIs(t, err, model.ErrTitleRequired)
	assert.Len(t, api.recorded(), 1, "invalid meals are not sent")
}

func TestEditMealRefusesForeignMeal(t *testing.T) {
	api, srv := newFakeAPI(t)
	c := newTestClient(t, srv)

	meal := &model.Meal{ID: uuid.New(), UserID: "bob", Title: "Stew"}
	_, err := c.EditMeal(context.Background(), "alice", meal)
	assert.ErrorIs(t, err, ErrNotOwner)
	assert.Empty(t, api.recorded())

	api.reply("POST /meals/edit/"+meal.ID.String(), http.StatusOK, meal)
	updated, err := c.EditMeal(context.Background(), "bob", meal)
	require.NoError(t, err)
	assert.Equal(t, "Stew", updated.Title)
}

func TestDeleteMealRemovesImagesBestEffort(t *testing.T) {
	api, srv := newFakeAPI(t)
	core, logs := observer.New(zap.WarnLevel)
	c := newTestClient(t, srv, WithLogger(zap.New(core)))

	meal := model.Meal{
		ID:     uuid.New(),
		UserID: "alice",
		Title:  "Cake",
		Images: model.JSONList[model.MealImage]{{Name: "one.jpg"}, {Name: "two.jpg"}},
	}
	api.reply("POST /meals/delete/"+meal.ID.String(), http.StatusOK, meal)
	api.reply("POST /images/deleteImage/meals/one.jpg", http.StatusOK, types.DeleteImagesResponse{Deleted: 1})
	api.reply("POST /images/deleteImage/meals/two.jpg", http.StatusInternalServerError, types.ErrorResponse{Error: "s3 down"})

	deleted, err := c.DeleteMeal(context.Background(), meal.ID)
	require.NoError(t, err)
	assert.Equal(t, meal.ID, deleted.ID)
	assert.Equal(t, 1, api.count(http.MethodPost, "/images/deleteImage/meals/one.jpg"))
	assert.Equal(t, 1, api.count(http.MethodPost, "/images/deleteImage/meals/two.jpg"))
	assert.Equal(t, 1, logs.FilterMessage("orphaned meal image").Len())
}

func TestCheckOrUncheckIngredientSendsIngredient(t *testing.T) {
	api, srv := newFakeAPI(t)
	c := newTestClient(t, srv)

	planID := uuid.New()
	api.reply("PUT /plans/checkOrUncheckIngredient/"+planID.String(), http.StatusOK, model.PlanItem{ID: planID})

	_, err := c.CheckOrUncheckIngredient(context.Background(), planID, model.MissingIngredient{Name: "eggs", Checked: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"eggs","checked":true}`, api.recorded()[0].Body)
}

func TestSettingsCalls(t *testing.T) {
	api, srv := newFakeAPI(t)
	c := newTestClient(t, srv)

	saved := model.DefaultSettings("alice")
	saved.DarkMode = true
	api.reply("POST /settings/add", http.StatusOK, model.DefaultSettings("alice"))
	api.reply("PUT /settings/updateSingleUserSetting/alice", http.StatusOK, types.SettingSavedResponse{SettingSaved: saved})

	_, err := c.SettingsOfUser(context.Background(), "alice")
	assert.ErrorIs(t, err, ErrNotFound)

	created, err := c.AddSettings(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", created.UserID)

	got, err := c.UpdateSingleUserSetting(context.Background(), "alice", model.SettingDarkMode, true)
	require.NoError(t, err)
	assert.True(t, got.DarkMode)

	calls := api.recorded()
	require.Len(t, calls, 3)
	assert.JSONEq(t, `{"userId":"alice"}`, calls[1].Body)
	assert.JSONEq(t, `{"key":"darkMode","value":true}`, calls[2].Body)
}

func TestUpdateSettingWithoutRecordIsAnError(t *testing.T) {
	api, srv := newFakeAPI(t)
	c := newTestClient(t, srv)
	api.reply("PUT /settings/updateSingleUserSetting/alice", http.StatusOK, map[string]interface{}{})

	_, err := c.UpdateSingleUserSetting(context.Background(), "alice", model.SettingMealTags, []string{"x"})
	assert.ErrorContains(t, err, "empty response")
}

func TestUpdateUserMetadata(t *testing.T) {
	api, srv := newFakeAPI(t)
	c := newTestClient(t, srv)
	api.reply("PUT /users/updateMetadata/alice", http.StatusOK, model.UserSummary{ID: "alice", Metadata: model.JSONMap{"diet": "vegan"}})

	user, err := c.UpdateUserMetadata(context.Background(), "alice", model.JSONMap{"diet": "vegan"})
	require.NoError(t, err)
	assert.Equal(t, "vegan", user.Metadata["diet"])
	assert.JSONEq(t, `{"metadata":{"diet":"vegan"}}`, api.recorded()[0].Body)
}

func TestAddImageSendsMultipart(t *testing.T) {
	api, srv := newFakeAPI(t)
	c := newTestClient(t, srv)
	api.handle("POST /images/addImage/meals", func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		data, _ := io.ReadAll(file)
		assert.Equal(t, "photo.png", header.Filename)
		assert.Equal(t, "image/png", header.Header.Get("Content-Type"))
		assert.Equal(t, "pixels", string(data))

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(types.ImageUploadResponse{Name: "abc.png", URL: "https://cdn/abc.png"})
	})

	resp, err := c.AddImage(context.Background(), "meals", "photo.png", "image/png", strings.NewReader("pixels"))
	require.NoError(t, err)
	assert.Equal(t, "abc.png", resp.Name)
	assert.Equal(t, "Bearer tok", api.recorded()[0].Auth)
}

func TestDeleteAllImagesFromCategory(t *testing.T) {
	api, srv := newFakeAPI(t)
	c := newTestClient(t, srv)
	api.reply("POST /images/deleteAllImagesFromCategory/meals/alice", http.StatusOK, types.DeleteImagesResponse{Deleted: 4})

	n, err := c.DeleteAllImagesFromCategory(context.Background(), "meals", "alice")
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestTimeout(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.handle("GET /users/all", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	})
	c, err := New(Config{BaseURL: srv.URL, Timeout: 20 * time.Millisecond})
	require.NoError(t, err)

	_, err = c.AllUsers(context.Background())
	assert.Error(t, err)
}
