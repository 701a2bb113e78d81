package database

import (
	"fmt"

	"github.com/pageza/mealmate/backend/internal/model"
	"gorm.io/gorm"
)

// Models lists every table owned by the service, in creation order
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Meal{},
		&model.PlanItem{},
		&model.UserSettings{},
	}
}

// Migrate brings the schema up to date. PostgreSQL and SQLite share the same
// gorm models; jsonb columns fall back to text affinity on SQLite.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate %s schema: %w", db.Dialector.Name(), err)
	}
	return nil
}
