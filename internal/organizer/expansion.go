package organizer

import "sync"

// Labels returned by ToggleAllLabel
const (
	LabelCollapseAll = "collapse all"
	LabelExpandAll   = "expand all"
)

// Expansion remembers which buckets are open. Buckets start open the
// first time they are seen. Safe for concurrent use.
type Expansion struct {
	mu   sync.Mutex
	open map[string]bool
}

// NewExpansion returns an Expansion that knows no buckets yet
func NewExpansion() *Expansion {
	return &Expansion{open: make(map[string]bool)}
}

// Sync registers the names of buckets, opening any not seen before, and
// forgets buckets that are gone
func (e *Expansion) Sync(buckets []Bucket) {
	e.mu.Lock()
	defer e.mu.Unlock()

	present := make(map[string]bool, len(buckets))
	for _, b := range buckets {
		present[b.Name] = true
		if _, ok := e.open[b.Name]; !ok {
			e.open[b.Name] = true
		}
	}
	for name := range e.open {
		if !present[name] {
			delete(e.open, name)
		}
	}
}

// IsOpen reports whether the named bucket is expanded
func (e *Expansion) IsOpen(name string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.open[name]
}

// Toggle flips one bucket and returns its new state. Unknown names are ignored.
func (e *Expansion) Toggle(name string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	open, ok := e.open[name]
	if !ok {
		return false
	}
	e.open[name] = !open
	return !open
}

// SetAll opens or closes every known bucket
func (e *Expansion) SetAll(open bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for name := range e.open {
		e.open[name] = open
	}
}

// ToggleAllLabel is "collapse all" while any bucket is open, otherwise "expand all"
func (e *Expansion) ToggleAllLabel() string {
	if e.AnyOpen() {
		return LabelCollapseAll
	}
	return LabelExpandAll
}

// AnyOpen reports whether at least one bucket is expanded
func (e *Expansion) AnyOpen() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, open := range e.open {
		if open {
			return true
		}
	}
	return false
}

// ToggleAll collapses everything when anything is open, otherwise expands everything
func (e *Expansion) ToggleAll() {
	e.SetAll(!e.AnyOpen())
}
