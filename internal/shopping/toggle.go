package shopping

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/mealmate/backend/internal/model"
)

// IngredientUpdater persists the checked state of one ingredient
type IngredientUpdater interface {
	CheckOrUncheckIngredient(ctx context.Context, planID uuid.UUID, ingredient model.MissingIngredient) (*model.PlanItem, error)
}

// Toggler flips ingredients locally and persists them. There is no
// rollback: the local flip stays even when the update fails.
type Toggler struct {
	updater IngredientUpdater
	memo    *Memo
	log     *zap.Logger
}

// NewToggler returns a Toggler. memo may be nil.
func NewToggler(updater IngredientUpdater, memo *Memo, log *zap.Logger) *Toggler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Toggler{updater: updater, memo: memo, log: log}
}

// Toggle flips plan.MissingIngredients[index].Checked and sends the whole ingredient
func (t *Toggler) Toggle(ctx context.Context, plan *model.PlanItem, index int) error {
	if index < 0 || index >= len(plan.MissingIngredients) {
		return fmt.Errorf("ingredient index %d out of range for plan %s", index, plan.ID)
	}

	ing := &plan.MissingIngredients[index]
	ing.Checked = !ing.Checked
	if t.memo != nil {
		t.memo.Invalidate()
	}

	if _, err := t.updater.CheckOrUncheckIngredient(ctx, plan.ID, *ing); err != nil {
		t.log.Error("failed to persist ingredient",
			zap.String("plan_id", plan.ID.String()),
			zap.String("ingredient", ing.Name),
			zap.Bool("checked", ing.Checked),
			zap.Error(err),
		)
		return err
	}
	return nil
}
