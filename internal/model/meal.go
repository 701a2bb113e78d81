package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrTitleRequired = errors.New("title is required")
	ErrMultipleMains = errors.New("at most one image can be the main image")
	ErrImageNotFound = errors.New("image not found")
)

// MealImage is a reference to an uploaded image of a meal
type MealImage struct {
	Name   string `json:"name"`
	URL    string `json:"url"`
	IsMain bool   `json:"isMain"`
}

// Meal is a user-owned recipe record
type Meal struct {
	ID        uuid.UUID           `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID    string              `gorm:"size:128;not null;index" json:"userId"`
	Title     string              `gorm:"size:255;not null" json:"title" binding:"required"`
	Images    JSONList[MealImage] `gorm:"type:jsonb;not null;default:'[]'" json:"images"`
	Link      string              `gorm:"size:1024" json:"link"`
	Comment   string              `gorm:"type:text" json:"comment"`
	Category  *string             `gorm:"size:100;index" json:"category"`
	Tags      JSONList[string]    `gorm:"type:jsonb;not null;default:'[]'" json:"tags"`
	IsToTry   bool                `json:"isToTry"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

// Validate checks the invariants every stored meal must satisfy
func (m *Meal) Validate() error {
	if strings.TrimSpace(m.Title) == "" {
		return ErrTitleRequired
	}
	mains := 0
	for _, img := range m.Images {
		if img.IsMain {
			mains++
		}
	}
	if mains > 1 {
		return ErrMultipleMains
	}
	return nil
}

// CategoryName returns the category, or "" when the meal has none
func (m *Meal) CategoryName() string {
	if m.Category == nil {
		return ""
	}
	return strings.TrimSpace(*m.Category)
}

// HasTag reports whether tag is one of the meal's tags
func (m *Meal) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// SetMainImage marks the named image as main and clears the flag on every other image
func (m *Meal) SetMainImage(name string) error {
	found := false
	for i := range m.Images {
		m.Images[i].IsMain = m.Images[i].Name == name
		if m.Images[i].IsMain {
			found = true
		}
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrImageNotFound, name)
	}
	return nil
}

// MainImage returns the main image if one is set
func (m *Meal) MainImage() (MealImage, bool) {
	for _, img := range m.Images {
		if img.IsMain {
			return img, true
		}
	}
	return MealImage{}, false
}

// Summary returns the denormalized copy embedded into plan items
func (m *Meal) Summary() *MealSummary {
	return &MealSummary{
		ID:       m.ID,
		Title:    m.Title,
		Images:   append(JSONList[MealImage](nil), m.Images...),
		Link:     m.Link,
		Category: m.Category,
	}
}

// MealSummary is the part of a meal a plan item carries for display
type MealSummary struct {
	ID       uuid.UUID           `json:"id"`
	Title    string              `json:"title"`
	Images   JSONList[MealImage] `json:"images"`
	Link     string              `json:"link"`
	Category *string             `json:"category"`
}

// Value implements the driver.Valuer interface
func (s MealSummary) Value() (driver.Value, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (s *MealSummary) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("meal summary: unsupported column type %T", value)
	}
}

// MealImageCategory is the image category meal pictures are stored under
const MealImageCategory = "meals"
