package service

import (
	"context"
	"encoding/json"
	"io"

	"github.com/google/uuid"
	"github.com/pageza/mealmate/backend/internal/model"
	"github.com/pageza/mealmate/backend/internal/types"
)

// IAuthService validates identity provider tokens
type IAuthService interface {
	ValidateToken(token string) (*types.TokenClaims, error)
	GenerateToken(claims *types.TokenClaims) (string, error)
}

// IMealService defines the interface for meal operations. Mutations take the
// caller's user id and fail with ErrForbidden for records the caller does not own.
type IMealService interface {
	ListByOwner(ctx context.Context, userID string) ([]model.Meal, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Meal, error)
	Create(ctx context.Context, callerID string, meal *model.Meal) (*model.Meal, error)
	Update(ctx context.Context, callerID string, id uuid.UUID, meal *model.Meal) (*model.Meal, error)
	Delete(ctx context.Context, callerID string, id uuid.UUID) (*model.Meal, error)
}

// IPlanService defines the interface for plan operations
type IPlanService interface {
	ListByOwner(ctx context.Context, userID string) ([]model.PlanItem, error)
	Get(ctx context.Context, id uuid.UUID) (*model.PlanItem, error)
	Create(ctx context.Context, callerID string, plan *model.PlanItem) (*model.PlanItem, error)
	Update(ctx context.Context, callerID string, id uuid.UUID, plan *model.PlanItem) (*model.PlanItem, error)
	Delete(ctx context.Context, callerID string, id uuid.UUID) (*model.PlanItem, error)
	CheckOrUncheckIngredient(ctx context.Context, callerID string, planID uuid.UUID, ingredient model.MissingIngredient) (*model.PlanItem, error)
}

// ISettingsService defines the interface for per-user settings
type ISettingsService interface {
	Get(ctx context.Context, userID string) (*model.UserSettings, error)
	Add(ctx context.Context, callerID, userID string) (*model.UserSettings, error)
	UpdateSingle(ctx context.Context, callerID, userID, key string, value json.RawMessage) (*model.UserSettings, error)
}

// IUserService defines the interface for user lookups
type IUserService interface {
	ByID(ctx context.Context, id string) (*model.User, error)
	All(ctx context.Context) ([]model.User, error)
	FromQuery(ctx context.Context, q string) ([]model.User, error)
	UpdateMetadata(ctx context.Context, callerID, userID string, metadata model.JSONMap) (*model.User, error)
	Upsert(ctx context.Context, claims *types.TokenClaims) error
}

// IImageService defines the interface for image storage
type IImageService interface {
	Upload(ctx context.Context, category, ownerID, filename, contentType string, body io.Reader, size int64) (*types.ImageUploadResponse, error)
	Delete(ctx context.Context, category, ownerID, id string) (int, error)
	DeleteAll(ctx context.Context, callerID, category, ownerID string) (int, error)
}
