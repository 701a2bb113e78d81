package shopping

import (
	"sync"
	"time"

	"github.com/pageza/mealmate/backend/internal/model"
)

// Memo caches the last BuildList result for one plans slice. The cache is
// keyed on the slice identity, so replacing the slice recomputes while
// re-rendering the same slice does not.
type Memo struct {
	// Location is passed to BuildList
	Location *time.Location

	mu      sync.Mutex
	first   *model.PlanItem
	length  int
	buckets []DateBucket
	valid   bool
}

// List returns BuildList(plans), reusing the previous result when plans is the same slice
func (m *Memo) List(plans []model.PlanItem) []DateBucket {
	var first *model.PlanItem
	if len(plans) > 0 {
		first = &plans[0]
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.valid && m.first == first && m.length == len(plans) {
		return m.buckets
	}
	m.buckets = BuildList(plans, m.Location)
	m.first, m.length, m.valid = first, len(plans), true
	return m.buckets
}

// Invalidate forces the next List call to recompute. Needed after plans
// were mutated in place.
func (m *Memo) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.valid = false
}
