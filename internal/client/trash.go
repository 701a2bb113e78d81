package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/mealmate/backend/internal/model"
)

// DefaultUndoWindow is how long a deletion can be undone
const DefaultUndoWindow = 5 * time.Second

// ErrNothingToUndo is returned by Undo when no deletion is pending
var ErrNothingToUndo = errors.New("nothing to undo")

// Trash offers a short undo window for deletions. Only the most recent
// deletion can be undone; a new deletion commits the previous one.
//
// Plans are deleted right away and undo re-adds the same record. Meals
// are deleted when the window closes, since their images cannot be restored.
type Trash struct {
	client *Client
	window time.Duration

	inflight sync.WaitGroup

	mu      sync.Mutex
	plan    *model.PlanItem
	meal    uuid.UUID
	timer   *time.Timer
	expires time.Time
}

// NewTrash returns a Trash with the given window, or DefaultUndoWindow when window <= 0
func NewTrash(c *Client, window time.Duration) *Trash {
	if window <= 0 {
		window = DefaultUndoWindow
	}
	return &Trash{client: c, window: window}
}

// DeletePlan deletes the plan now and keeps the record for Undo
func (t *Trash) DeletePlan(ctx context.Context, id uuid.UUID) (*model.PlanItem, error) {
	deleted, err := t.client.DeletePlan(ctx, id)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.commitLocked()
	kept := *deleted
	t.plan = &kept
	t.expires = time.Now().Add(t.window)
	t.timer = time.AfterFunc(t.window, func() { t.forgetPlan(kept.ID) })
	return deleted, nil
}

// DeleteMeal schedules the meal for deletion once the window closes
func (t *Trash) DeleteMeal(id uuid.UUID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.commitLocked()
	t.meal = id
	t.expires = time.Now().Add(t.window)
	t.timer = time.AfterFunc(t.window, func() { t.expireMeal(id) })
}

// Pending reports whether a deletion can still be undone and until when
func (t *Trash) Pending() (time.Time, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.plan == nil && t.meal == uuid.Nil {
		return time.Time{}, false
	}
	return t.expires, true
}

// Undo reverts the pending deletion
func (t *Trash) Undo(ctx context.Context) error {
	t.mu.Lock()
	plan, meal := t.plan, t.meal
	t.resetLocked()
	t.mu.Unlock()

	switch {
	case plan != nil:
		if _, err := t.client.AddPlan(ctx, plan); err != nil {
			return fmt.Errorf("restore plan: %w", err)
		}
		return nil
	case meal != uuid.Nil:
		return nil
	default:
		return ErrNothingToUndo
	}
}

// Flush performs a pending meal deletion immediately and waits for
// deletions already under way
func (t *Trash) Flush(ctx context.Context) {
	t.mu.Lock()
	meal := t.meal
	if meal != uuid.Nil {
		t.resetLocked()
	}
	t.mu.Unlock()

	if meal != uuid.Nil {
		t.deleteMeal(ctx, meal)
	}
	t.inflight.Wait()
}

func (t *Trash) expireMeal(id uuid.UUID) {
	t.mu.Lock()
	if t.meal != id {
		t.mu.Unlock()
		return
	}
	t.resetLocked()
	t.inflight.Add(1)
	t.mu.Unlock()

	defer t.inflight.Done()
	t.deleteMeal(context.Background(), id)
}

func (t *Trash) deleteMeal(ctx context.Context, id uuid.UUID) {
	if _, err := t.client.DeleteMeal(ctx, id); err != nil {
		t.client.log.Error("deferred meal deletion failed", zap.String("meal_id", id.String()), zap.Error(err))
	}
}

func (t *Trash) forgetPlan(id uuid.UUID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.plan != nil && t.plan.ID == id {
		t.resetLocked()
	}
}

// commitLocked finalizes whatever is pending so a new deletion can take its place
func (t *Trash) commitLocked() {
	meal := t.meal
	t.resetLocked()
	if meal != uuid.Nil {
		t.inflight.Add(1)
		go func() {
			defer t.inflight.Done()
			t.deleteMeal(context.Background(), meal)
		}()
	}
}

func (t *Trash) resetLocked() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.plan = nil
	t.meal = uuid.Nil
	t.expires = time.Time{}
}
