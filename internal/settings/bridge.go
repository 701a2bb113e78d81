// Package settings loads a user's settings record, creating it on first use,
// and derives the state the rest of the client works from.
package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/pageza/mealmate/backend/internal/client"
	"github.com/pageza/mealmate/backend/internal/model"
)

var (
	// ErrSettingsUnavailable means the record is still missing after creating it
	ErrSettingsUnavailable = errors.New("settings unavailable")
	ErrEmptyName           = errors.New("name must not be empty")
	ErrDuplicate           = errors.New("already present")
)

// API is the part of the service client the bridge needs
type API interface {
	SettingsOfUser(ctx context.Context, userID string) (*model.UserSettings, error)
	AddSettings(ctx context.Context, userID string) (*model.UserSettings, error)
	UpdateSingleUserSetting(ctx context.Context, userID, key string, value interface{}) (*model.UserSettings, error)
	UserByID(ctx context.Context, id string) (*model.UserSummary, error)
}

// Bridge turns settings records into State. Concurrent Get calls for the
// same user share one round trip.
type Bridge struct {
	api   API
	log   *zap.Logger
	group singleflight.Group
}

func NewBridge(api API, log *zap.Logger) *Bridge {
	if log == nil {
		log = zap.NewNop()
	}
	return &Bridge{api: api, log: log}
}

// Get loads the settings of userID. A missing record is created with the
// defaults and read back exactly once.
func (b *Bridge) Get(ctx context.Context, userID string) (*State, error) {
	v, err, _ := b.group.Do(userID, func() (interface{}, error) {
		return b.load(ctx, userID)
	})
	if err != nil {
		return nil, err
	}
	return NewState(v.(*model.UserSettings)), nil
}

func (b *Bridge) load(ctx context.Context, userID string) (*model.UserSettings, error) {
	s, err := b.api.SettingsOfUser(ctx, userID)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, client.ErrNotFound) {
		return nil, err
	}

	b.log.Info("creating default settings", zap.String("user_id", userID))
	if _, err := b.api.AddSettings(ctx, userID); err != nil {
		return nil, err
	}

	s, err = b.api.SettingsOfUser(ctx, userID)
	if errors.Is(err, client.ErrNotFound) {
		return nil, fmt.Errorf("%w: user %s", ErrSettingsUnavailable, userID)
	}
	return s, err
}

// Update saves one field and returns the state of the full saved record
func (b *Bridge) Update(ctx context.Context, userID, key string, value interface{}) (*State, error) {
	saved, err := b.api.UpdateSingleUserSetting(ctx, userID, key, value)
	if err != nil {
		return nil, err
	}
	return NewState(saved), nil
}

// AddCategory appends a category to the list held by st and submits the
// whole list. A concurrent edit from elsewhere is overwritten.
func (b *Bridge) AddCategory(ctx context.Context, st *State, category model.MealCategory) (*State, error) {
	category.Name = strings.TrimSpace(category.Name)
	if category.Name == "" {
		return nil, ErrEmptyName
	}
	if _, ok := st.CategoryIcons[category.Name]; ok {
		return nil, fmt.Errorf("category %q: %w", category.Name, ErrDuplicate)
	}
	categories := append(append([]model.MealCategory(nil), st.Categories...), category)
	return b.Update(ctx, st.UserID(), model.SettingMealCategories, categories)
}

// RemoveCategory drops the named category. Unknown names leave st unchanged.
func (b *Bridge) RemoveCategory(ctx context.Context, st *State, name string) (*State, error) {
	categories := make([]model.MealCategory, 0, len(st.Categories))
	for _, c := range st.Categories {
		if c.Name != name {
			categories = append(categories, c)
		}
	}
	if len(categories) == len(st.Categories) {
		return st, nil
	}
	return b.Update(ctx, st.UserID(), model.SettingMealCategories, categories)
}

// AddTag appends a tag to the vocabulary and submits the whole list
func (b *Bridge) AddTag(ctx context.Context, st *State, tag string) (*State, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return nil, ErrEmptyName
	}
	for _, t := range st.Tags {
		if t == tag {
			return nil, fmt.Errorf("tag %q: %w", tag, ErrDuplicate)
		}
	}
	tags := append(append([]string(nil), st.Tags...), tag)
	return b.Update(ctx, st.UserID(), model.SettingMealTags, tags)
}

// RemoveTag drops a tag from the vocabulary. Unknown tags leave st unchanged.
func (b *Bridge) RemoveTag(ctx context.Context, st *State, tag string) (*State, error) {
	tags := make([]string, 0, len(st.Tags))
	for _, t := range st.Tags {
		if t != tag {
			tags = append(tags, t)
		}
	}
	if len(tags) == len(st.Tags) {
		return st, nil
	}
	return b.Update(ctx, st.UserID(), model.SettingMealTags, tags)
}
