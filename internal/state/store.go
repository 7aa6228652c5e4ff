package state

import "sync"

// Listener is notified after every successful transition.
type Listener func(prev, next State)

// Store holds the current State and lets presentation code subscribe to
// changes instead of reading shared globals.
type Store struct {
	mu        sync.Mutex
	current   State
	listeners []Listener
}

// NewStore creates a store seeded with initial.
func NewStore(initial State) *Store {
	return &Store{current: initial.Clone()}
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// Subscribe registers a listener and returns a function removing it.
func (s *Store) Subscribe(listener Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listeners = append(s.listeners, listener)
	idx := len(s.listeners) - 1
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if idx < len(s.listeners) {
			s.listeners[idx] = nil
		}
	}
}

// Dispatch reduces the action into the current state and notifies listeners.
// On error the state is left untouched and nobody is notified.
func (s *Store) Dispatch(action Action) (State, error) {
	s.mu.Lock()
	prev := s.current
	next, err := Reduce(prev, action)
	if err != nil {
		s.mu.Unlock()
		return prev.Clone(), err
	}
	s.current = next
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, listener := range listeners {
		if listener != nil {
			listener(prev.Clone(), next.Clone())
		}
	}
	return next.Clone(), nil
}
