package settings

import "github.com/pageza/mealmate/backend/internal/model"

// State is a settings record plus the values derived from it. The slices
// are copies and can be edited without touching Settings.
type State struct {
	Settings         *model.UserSettings
	CategoryIcons    map[string]string
	DarkMode         bool
	OwnStartPage     int
	ContactStartPage int
	Categories       []model.MealCategory
	Tags             []string
	Contacts         []model.UserSummary
}

// NewState derives a State from s
func NewState(s *model.UserSettings) *State {
	return &State{
		Settings:         s,
		CategoryIcons:    model.CategoryIcons(s.MealCategories),
		DarkMode:         s.DarkMode,
		OwnStartPage:     s.OwnStartPage,
		ContactStartPage: s.ContactStartPage,
		Categories:       append([]model.MealCategory{}, s.MealCategories...),
		Tags:             append([]string{}, s.MealTags...),
		Contacts:         append([]model.UserSummary{}, s.Contacts...),
	}
}

func (s *State) UserID() string {
	return s.Settings.UserID
}
