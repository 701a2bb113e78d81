// Package shopping splits plans into past and future and builds the
// date-bucketed shopping list of the future ones.
package shopping

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/mealmate/backend/internal/model"
)

// Partition splits plans into past and future, keeping input order. A plan
// is past when it has a date whose day is before the day of now, compared
// in now's location. Plans without a date are always future.
func Partition(plans []model.PlanItem, now time.Time) (past, future []model.PlanItem) {
	today := midnight(now, now.Location())
	for _, p := range plans {
		if due, ok := p.DueDate(); ok && midnight(due, now.Location()).Before(today) {
			past = append(past, p)
			continue
		}
		future = append(future, p)
	}
	return past, future
}

func midnight(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// Ingredient is a missing ingredient with the position it has in its plan
type Ingredient struct {
	PlanID  uuid.UUID
	Index   int
	Name    string
	Checked bool
}

// Group lists the missing ingredients of one plan
type Group struct {
	PlanID      uuid.UUID
	PlanTitle   string
	Ingredients []Ingredient
}

// DateBucket holds every plan due on one day, or the plans without a date
type DateBucket struct {
	Date   time.Time
	NoDate bool
	Groups []Group
}

// Flat reports whether the bucket has a single plan, in which case its
// ingredients are listed without a plan heading
func (b DateBucket) Flat() bool {
	return len(b.Groups) == 1
}

// Ingredients returns every ingredient of the bucket in plan order
func (b DateBucket) Ingredients() []Ingredient {
	var out []Ingredient
	for _, g := range b.Groups {
		out = append(out, g.Ingredients...)
	}
	return out
}

// BuildList groups the missing ingredients of plans by due day, taken in
// loc as Partition does; nil means UTC. Plans without missing ingredients
// are skipped. Buckets are sorted by date with the undated bucket last;
// plans keep their input order inside a bucket.
func BuildList(plans []model.PlanItem, loc *time.Location) []DateBucket {
	if loc == nil {
		loc = time.UTC
	}
	var dated []*DateBucket
	byDay := make(map[string]*DateBucket)
	var undated *DateBucket

	for _, p := range plans {
		if len(p.MissingIngredients) == 0 {
			continue
		}
		group := Group{PlanID: p.ID, PlanTitle: p.Title, Ingredients: make([]Ingredient, len(p.MissingIngredients))}
		for i, ing := range p.MissingIngredients {
			group.Ingredients[i] = Ingredient{PlanID: p.ID, Index: i, Name: ing.Name, Checked: ing.Checked}
		}

		due, ok := p.DueDate()
		if !ok {
			if undated == nil {
				undated = &DateBucket{NoDate: true}
			}
			undated.Groups = append(undated.Groups, group)
			continue
		}

		day := midnight(due, loc)
		key := day.Format(time.DateOnly)
		b, found := byDay[key]
		if !found {
			b = &DateBucket{Date: day}
			byDay[key] = b
			dated = append(dated, b)
		}
		b.Groups = append(b.Groups, group)
	}

	sort.SliceStable(dated, func(i, j int) bool { return dated[i].Date.Before(dated[j].Date) })

	out := make([]DateBucket, 0, len(dated)+1)
	for _, b := range dated {
		out = append(out, *b)
	}
	if undated != nil {
		out = append(out, *undated)
	}
	return out
}
