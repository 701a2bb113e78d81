package model

import "time"

// Keys accepted by a single-setting update
const (
	SettingDarkMode         = "darkMode"
	SettingOwnStartPage     = "ownStartPage"
	SettingContactStartPage = "contactStartPage"
	SettingMealCategories   = "mealCategories"
	SettingMealTags         = "mealTags"
	SettingContacts         = "contacts"
	SettingLanguage         = "language"
)

// MealCategory is a category name with an optional display icon
type MealCategory struct {
	Name string  `json:"name"`
	Icon *string `json:"icon"`
}

// UserSettings is the per-user preference and vocabulary record.
// There is exactly one record per UserID.
type UserSettings struct {
	ID               uint                   `gorm:"primaryKey" json:"id"`
	UserID           string                 `gorm:"size:128;not null;uniqueIndex" json:"userId"`
	DarkMode         bool                   `json:"darkMode"`
	OwnStartPage     int                    `json:"ownStartPage"`
	ContactStartPage int                    `json:"contactStartPage"`
	MealCategories   JSONList[MealCategory] `gorm:"type:jsonb;not null;default:'[]'" json:"mealCategories"`
	MealTags         JSONList[string]       `gorm:"type:jsonb;not null;default:'[]'" json:"mealTags"`
	Contacts         JSONList[UserSummary]  `gorm:"type:jsonb;not null;default:'[]'" json:"contacts"`
	Language         string                 `gorm:"size:16" json:"language"`
	CreatedAt        time.Time              `json:"createdAt"`
	UpdatedAt        time.Time              `json:"updatedAt"`
}

// TableName returns the table name for UserSettings
func (UserSettings) TableName() string {
	return "user_settings"
}

// DefaultSettings is the record created for a user seen for the first time
func DefaultSettings(userID string) *UserSettings {
	return &UserSettings{
		UserID:         userID,
		MealCategories: JSONList[MealCategory]{},
		MealTags:       JSONList[string]{},
		Contacts:       JSONList[UserSummary]{},
		Language:       "en",
	}
}

// CategoryIcons rebuilds the category name to icon mapping. Categories
// without an icon map to "".
func CategoryIcons(categories []MealCategory) map[string]string {
	icons := make(map[string]string, len(categories))
	for _, c := range categories {
		if c.Icon != nil {
			icons[c.Name] = *c.Icon
		} else {
			icons[c.Name] = ""
		}
	}
	return icons
}
