package todo

import "sync"

// Store holds one session's todo list.
//
// The zero value is an empty, ready-to-use store. Writes replace the whole
// list under the lock, so a concurrent List never sees a half-replaced list.
type Store struct {
	mu    sync.RWMutex
	items []Item
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{}
}

// Create validates todos and replaces the stored list with them.
// On a validation error the stored list is left untouched.
func (s *Store) Create(todos []Item) (*Result, error) {
	return s.replace(OutcomeCreated, todos)
}

// Update behaves exactly like Create but reports OutcomeUpdated. The caller
// must send the entire desired list, including unchanged items.
func (s *Store) Update(todos []Item) (*Result, error) {
	return s.replace(OutcomeUpdated, todos)
}

// List returns the current list without modifying it.
func (s *Store) List() *Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return newResult(OutcomeListed, s.items)
}

// Snapshot returns a copy of the current list.
func (s *Store) Snapshot() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneItems(s.items)
}

// Len returns the number of stored items.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Reset empties the list.
func (s *Store) Reset() {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()
}

func (s *Store) replace(outcome Outcome, todos []Item) (*Result, error) {
	if err := Validate(todos); err != nil {
		return nil, err
	}
	items := cloneItems(todos)

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()

	return newResult(outcome, items), nil
}
