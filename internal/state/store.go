package state

import "sync"

// Store holds the current Snapshot and notifies subscribers after every
// transition that changed it.
type Store struct {
	mu        sync.RWMutex
	snap      Snapshot
	listeners []func(Snapshot)
}

func NewStore(initial Snapshot) *Store {
	return &Store{snap: initial}
}

func (s *Store) Current() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Update applies fn to the current snapshot and stores the result.
// Listeners run after the lock is released.
func (s *Store) Update(fn func(Snapshot) Snapshot) Snapshot {
	s.mu.Lock()
	next := fn(s.snap)
	changed := next != s.snap
	s.snap = next
	listeners := make([]func(Snapshot), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	if changed {
		for _, l := range listeners {
			l(next)
		}
	}
	return next
}

func (s *Store) Subscribe(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}
