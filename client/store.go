package client

import (
	"sync"
)

// Store owns one session's ContactsView and is the only way to change
// it: every mutation goes through Dispatch. Subscribers are notified
// synchronously after each transition, mirroring a cooperative UI event
// loop. The store is discarded on logout and rebuilt on login.
type Store struct {
	mu          sync.Mutex
	state       ContactsView
	subscribers map[int]func(ContactsView)
	nextSub     int
}

// NewStore creates a store in the pre-fetch state
func NewStore() *Store {
	return &Store{
		state:       NewContactsView(),
		subscribers: make(map[int]func(ContactsView)),
	}
}

// State returns a snapshot of the current view
func (s *Store) State() ContactsView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies an action and notifies subscribers with the new state
func (s *Store) Dispatch(action Action) {
	s.mu.Lock()
	s.state = Reduce(s.state, action)
	state := s.state
	subs := make([]func(ContactsView), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	// Notify outside the lock so subscribers may read or dispatch
	for _, fn := range subs {
		fn(state)
	}
}

// Subscribe registers a listener called after every dispatch. The
// returned function unsubscribes it.
func (s *Store) Subscribe(fn func(ContactsView)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}
