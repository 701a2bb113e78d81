// Package seed fills a database with demo meals, plans and settings.
// It is intended for development and testing only.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/mealmate/backend/internal/model"
)

var categoryIcons = map[string]string{
	"Breakfast": "sunrise",
	"Lunch":     "sun",
	"Dinner":    "moon",
	"Snack":     "cookie",
}

var tagPool = []string{"quick", "vegan", "vegetarian", "spicy", "sweet", "kids", "batch"}

// Options controls how much data a Factory creates
type Options struct {
	Meals    int
	Plans    int
	Contacts int
	// Seed makes the generated data reproducible, 0 picks a random seed
	Seed int64
}

// Factory builds domain records and persists them
type Factory struct {
	db    *gorm.DB
	fake  *gofakeit.Faker
	opts  Options
	today time.Time
}

func NewFactory(db *gorm.DB, opts Options) *Factory {
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	now := time.Now()
	return &Factory{
		db:    db,
		fake:  gofakeit.New(opts.Seed),
		opts:  opts,
		today: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
	}
}

// BuildUser returns a fake account
func (f *Factory) BuildUser(id string) *model.User {
	return &model.User{
		ID:       id,
		Nickname: f.fake.Username(),
		Picture:  fmt.Sprintf("https://picsum.photos/seed/%s/200/200", f.fake.UUID()),
		Country:  f.fake.CountryAbr(),
		Metadata: model.JSONMap{"bio": f.fake.Sentence(6)},
	}
}

// BuildMeal returns a meal owned by userID. A fifth of the meals have no category.
func (f *Factory) BuildMeal(userID string) *model.Meal {
	category := f.fake.RandomString([]string{"Breakfast", "Lunch", "Dinner", "Snack", ""})
	var title string
	switch category {
	case "Breakfast":
		title = f.fake.Breakfast()
	case "Lunch":
		title = f.fake.Lunch()
	case "Snack":
		title = f.fake.Snack()
	default:
		title = f.fake.Dinner()
	}

	meal := &model.Meal{
		ID:      uuid.New(),
		UserID:  userID,
		Title:   title,
		Link:    f.fake.URL(),
		Comment: f.fake.Sentence(8),
		Tags:    model.JSONList[string]{},
		IsToTry: f.fake.Bool(),
		Images: model.JSONList[model.MealImage]{{
			Name:   f.fake.UUID() + ".jpg",
			URL:    fmt.Sprintf("https://picsum.photos/seed/%s/800/600", f.fake.UUID()),
			IsMain: true,
		}},
	}
	if category != "" {
		meal.Category = &category
	}
	seen := map[string]bool{}
	for i := f.fake.Number(0, 3); i > 0; i-- {
		tag := f.fake.RandomString(tagPool)
		if !seen[tag] {
			seen[tag] = true
			meal.Tags = append(meal.Tags, tag)
		}
	}
	return meal
}

// BuildPlan returns a plan for one of meals. Dates spread from a week ago
// to two weeks ahead; some plans have no date.
func (f *Factory) BuildPlan(userID string, meals []model.Meal) *model.PlanItem {
	plan := &model.PlanItem{
		ID:                 uuid.New(),
		UserID:             userID,
		Title:              f.fake.Dinner(),
		MissingIngredients: model.JSONList[model.MissingIngredient]{},
	}
	if len(meals) > 0 {
		meal := meals[f.fake.Number(0, len(meals)-1)]
		plan.Title = meal.Title
		plan.ConnectedMealID = &meal.ID
		plan.ConnectedMeal = meal.Summary()
	}
	if f.fake.Number(0, 3) > 0 {
		date := f.today.AddDate(0, 0, f.fake.Number(-7, 14))
		plan.HasDate = true
		plan.Date = &date
	}
	for i := f.fake.Number(0, 4); i > 0; i-- {
		name := f.fake.RandomString([]string{f.fake.Fruit(), f.fake.Vegetable()})
		if plan.IngredientIndex(name) < 0 {
			plan.MissingIngredients = append(plan.MissingIngredients, model.MissingIngredient{Name: name, Checked: f.fake.Bool()})
		}
	}
	return plan
}

// BuildSettings returns settings whose vocabularies cover what meals use
func (f *Factory) BuildSettings(userID string, meals []model.Meal, contacts []model.User) *model.UserSettings {
	settings := model.DefaultSettings(userID)
	settings.DarkMode = f.fake.Bool()

	categories := map[string]bool{}
	tags := map[string]bool{}
	for _, m := range meals {
		if c := m.CategoryName(); c != "" && !categories[c] {
			categories[c] = true
			icon := categoryIcons[c]
			settings.MealCategories = append(settings.MealCategories, model.MealCategory{Name: c, Icon: &icon})
		}
		for _, t := range m.Tags {
			if !tags[t] {
				tags[t] = true
				settings.MealTags = append(settings.MealTags, t)
			}
		}
	}
	for i := range contacts {
		settings.Contacts = append(settings.Contacts, contacts[i].Summary())
	}
	return settings
}

// Result lists what Run created
type Result struct {
	User     model.User
	Meals    []model.Meal
	Plans    []model.PlanItem
	Settings model.UserSettings
	Contacts []model.User
}

// Run creates a user with meals, plans, contacts and settings in one transaction.
// An existing settings record of userID is replaced.
func (f *Factory) Run(ctx context.Context, userID string) (*Result, error) {
	res := &Result{}
	err := f.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res.User = *f.BuildUser(userID)
		if err := tx.Save(&res.User).Error; err != nil {
			return fmt.Errorf("save user: %w", err)
		}

		for i := 0; i < f.opts.Contacts; i++ {
			contact := f.BuildUser("seed|" + f.fake.UUID())
			if err := tx.Create(contact).Error; err != nil {
				return fmt.Errorf("create contact: %w", err)
			}
			res.Contacts = append(res.Contacts, *contact)
		}

		for i := 0; i < f.opts.Meals; i++ {
			res.Meals = append(res.Meals, *f.BuildMeal(userID))
		}
		if len(res.Meals) > 0 {
			if err := tx.CreateInBatches(&res.Meals, 100).Error; err != nil {
				return fmt.Errorf("create meals: %w", err)
			}
		}

		for i := 0; i < f.opts.Plans; i++ {
			res.Plans = append(res.Plans, *f.BuildPlan(userID, res.Meals))
		}
		if len(res.Plans) > 0 {
			if err := tx.CreateInBatches(&res.Plans, 100).Error; err != nil {
				return fmt.Errorf("create plans: %w", err)
			}
		}

		if err := tx.Where("user_id = ?", userID).Delete(&model.UserSettings{}).Error; err != nil {
			return fmt.Errorf("clear settings: %w", err)
		}
		res.Settings = *f.BuildSettings(userID, res.Meals, res.Contacts)
		if err := tx.Create(&res.Settings).Error; err != nil {
			return fmt.Errorf("create settings: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
