package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pageza/mealmate/backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingsService manages the single settings record of each user
type SettingsService struct {
	db    *gorm.DB
	cache *SettingsCache
}

var _ ISettingsService = (*SettingsService)(nil)

// NewSettingsService creates a new SettingsService. cache may be nil.
func NewSettingsService(db *gorm.DB, cache *SettingsCache) *SettingsService {
	return &SettingsService{db: db, cache: cache}
}

// Get returns the settings of a user, ErrNotFound when none exist yet
func (s *SettingsService) Get(ctx context.Context, userID string) (*model.UserSettings, error) {
	if cached, ok := s.cache.Get(ctx, userID); ok {
		return cached, nil
	}

	var settings model.UserSettings
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&settings).Error; err != nil {
		return nil, dbError("get settings", err)
	}
	s.cache.Set(ctx, &settings)
	return &settings, nil
}

// Add creates the default record for userID. Calling it again returns the
// existing record instead of creating a second one.
func (s *SettingsService) Add(ctx context.Context, callerID, userID string) (*model.UserSettings, error) {
	if userID != callerID {
		return nil, ErrForbidden
	}

	defaults := model.DefaultSettings(userID)
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(defaults).Error
	if err != nil {
		return nil, dbError("create settings", err)
	}

	var settings model.UserSettings
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&settings).Error; err != nil {
		return nil, dbError("get settings", err)
	}
	s.cache.Invalidate(ctx, userID)
	return &settings, nil
}

// UpdateSingle decodes value into the field named by key and saves the
// whole record. List-valued settings are replaced as a whole.
func (s *SettingsService) UpdateSingle(ctx context.Context, callerID, userID, key string, value json.RawMessage) (*model.UserSettings, error) {
	if userID != callerID {
		return nil, ErrForbidden
	}

	var settings model.UserSettings
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).First(&settings).Error; err != nil {
			return dbError("get settings", err)
		}
		if err := applySetting(&settings, key, value); err != nil {
			return err
		}
		if err := tx.Save(&settings).Error; err != nil {
			return dbError("save settings", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, userID)
	return &settings, nil
}

func applySetting(settings *model.UserSettings, key string, value json.RawMessage) error {
	var target interface{}
	switch key {
	case model.SettingDarkMode:
		target = &settings.DarkMode
	case model.SettingOwnStartPage:
		target = &settings.OwnStartPage
	case model.SettingContactStartPage:
		target = &settings.ContactStartPage
	case model.SettingMealCategories:
		target = &settings.MealCategories
	case model.SettingMealTags:
		target = &settings.MealTags
	case model.SettingContacts:
		target = &settings.Contacts
	case model.SettingLanguage:
		target = &settings.Language
	default:
		return fmt.Errorf("%w: unknown key %q", ErrInvalidSetting, key)
	}

	if len(value) == 0 || string(value) == "null" {
		return fmt.Errorf("%w: %s needs a value", ErrInvalidSetting, key)
	}
	if err := json.Unmarshal(value, target); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidSetting, key, err)
	}
	return nil
}
