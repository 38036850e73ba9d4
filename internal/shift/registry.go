package shift

import (
	"sync"
	"time"
)

// Record is one check-in. CheckOut stays nil for the process lifetime; there
// is no checkout operation, so the active roster only ever grows.
type Record struct {
	PersonName string
	Role       string
	CheckIn    time.Time
	CheckOut   *time.Time
}

// Registry owns the check-in records for staff and cooks.
type Registry struct {
	mu      sync.Mutex
	records []Record
}

func NewRegistry() *Registry {
	return &Registry{}
}

// CheckIn appends a new record stamped with the current time.
func (r *Registry) CheckIn(personName, role string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, Record{
		PersonName: personName,
		Role:       role,
		CheckIn:    time.Now(),
	})
}

// ActiveRoster returns every record of the role with no check-out, in
// check-in order.
func (r *Registry) ActiveRoster(role string) []Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Record
	for _, rec := range r.records {
		if rec.Role == role && rec.CheckOut == nil {
			out = append(out, rec)
		}
	}
	return out
}
