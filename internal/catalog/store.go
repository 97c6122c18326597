package catalog

import (
	"sync"

	"github.com/torrentio/cli/internal/models"
)

// Store holds the fetched collection of catalog entities and exposes read access.
//
// Loads replace the collection wholesale and are ordered by issue ticket: a load
// completing after a newer load has already been applied is discarded, so a
// late-arriving response from a superseded fetch can never overwrite fresher data.
type Store[E models.Entity] struct {
	mu      sync.RWMutex
	items   []E
	issued  uint64
	applied uint64
}

// NewStore creates an empty Store.
func NewStore[E models.Entity]() *Store[E] {
	return &Store[E]{}
}

// BeginLoad issues a ticket for an upcoming load.
//
// Call before starting a fetch; pass the ticket to [Store.CompleteLoad] with the result.
func (s *Store[E]) BeginLoad() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

// CompleteLoad replaces the held collection with items if no load issued after
// ticket has been applied yet. Reports whether the load was applied.
func (s *Store[E]) CompleteLoad(ticket uint64, items []E) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ticket <= s.applied {
		return false
	}

	s.applied = ticket
	s.items = make([]E, len(items))
	copy(s.items, items)
	return true
}

// Load replaces the held collection wholesale, issuing and applying a ticket in one step.
func (s *Store[E]) Load(items []E) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.issued++
	s.applied = s.issued
	s.items = make([]E, len(items))
	copy(s.items, items)
}

// All returns the current collection in stored order.
func (s *Store[E]) All() []E {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]E, len(s.items))
	copy(out, s.items)
	return out
}

// FindByID returns the entity with the given id, or false if the store holds no
// such entity. An empty or unloaded store is not an error.
func (s *Store[E]) FindByID(id string) (E, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if item.EntityID() == id {
			return item, true
		}
	}

	var zero E
	return zero, false
}

// Len returns the number of held entities.
func (s *Store[E]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
