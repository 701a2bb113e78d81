package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrDuplicateIngredient is returned when two missing ingredients share a name
var ErrDuplicateIngredient = errors.New("ingredient names must be unique within a plan")

// MissingIngredient is one entry of a plan's shopping sub-list
type MissingIngredient struct {
	Name    string `json:"name"`
	Checked bool   `json:"checked"`
}

// PlanItem is a dated or undated intention to prepare a meal.
// GotEverything is toggled by the user and is not derived from the
// checked state of MissingIngredients.
type PlanItem struct {
	ID                 uuid.UUID                   `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID             string                      `gorm:"size:128;not null;index" json:"userId"`
	Title              string                      `gorm:"size:255" json:"title"`
	HasDate            bool                        `json:"hasDate"`
	Date               *time.Time                  `json:"date"`
	GotEverything      bool                        `json:"gotEverything"`
	MissingIngredients JSONList[MissingIngredient] `gorm:"type:jsonb;not null;default:'[]'" json:"missingIngredients"`
	ConnectedMealID    *uuid.UUID                  `gorm:"type:varchar(36);index" json:"connectedMealId"`
	ConnectedMeal      *MealSummary                `gorm:"type:jsonb" json:"connectedMeal"`
	CreatedAt          time.Time                   `json:"createdAt"`
	UpdatedAt          time.Time                   `json:"updatedAt"`
}

// Validate checks that ingredient names are unique, since updates address
// an ingredient by name
func (p *PlanItem) Validate() error {
	seen := make(map[string]struct{}, len(p.MissingIngredients))
	for _, ing := range p.MissingIngredients {
		if _, dup := seen[ing.Name]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateIngredient, ing.Name)
		}
		seen[ing.Name] = struct{}{}
	}
	return nil
}

// DueDate returns the due date when the plan has one
func (p *PlanItem) DueDate() (time.Time, bool) {
	if !p.HasDate || p.Date == nil {
		return time.Time{}, false
	}
	return *p.Date, true
}

// AllIngredientsChecked reports whether there is at least one missing
// ingredient and every one of them is checked
func (p *PlanItem) AllIngredientsChecked() bool {
	if len(p.MissingIngredients) == 0 {
		return false
	}
	for _, ing := range p.MissingIngredients {
		if !ing.Checked {
			return false
		}
	}
	return true
}

// IngredientIndex returns the position of the named ingredient or -1
func (p *PlanItem) IngredientIndex(name string) int {
	for i, ing := range p.MissingIngredients {
		if ing.Name == name {
			return i
		}
	}
	return -1
}
