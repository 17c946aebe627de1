package audit

import (
	"context"
	"sync"
)

// Store is the append-only sink for audit events. The memory implementation
// backs tests and single-node runs; the kafka sink fans events out to the
// compliance pipeline when brokers are configured.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByUser(ctx context.Context, userID string) ([]Event, error)
}

// InMemoryStore keeps events in memory, in append order.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []Event
}

// NewInMemoryStore creates an empty audit store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// Append records the event.
func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// ListByUser returns the events for one user in append order.
func (s *InMemoryStore) ListByUser(_ context.Context, userID string) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := []Event{}
	for _, e := range s.events {
		if e.UserID == userID {
			matches = append(matches, e)
		}
	}
	return matches, nil
}
