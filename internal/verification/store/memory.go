package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"quod/internal/verification/models"
	"quod/pkg/platform/sentinel"
)

// InMemoryStore implements ResultStore with a mutex-guarded map. Intended for
// tests and single-node development; production uses PostgresStore.
type InMemoryStore struct {
	mu      sync.RWMutex
	results map[string]*models.VerificationResult
	order   []string // insertion order, keeps query output deterministic
}

// NewInMemoryStore creates an empty in-memory result store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		results: make(map[string]*models.VerificationResult),
	}
}

// Save inserts the result (assigning an ID) or updates an existing one.
func (s *InMemoryStore) Save(_ context.Context, result *models.VerificationResult) (*models.VerificationResult, error) {
	if result == nil {
		return nil, fmt.Errorf("verification result is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := cloneResult(result)
	if stored.ID == "" {
		stored.ID = uuid.New().String()
		s.order = append(s.order, stored.ID)
	} else if _, ok := s.results[stored.ID]; !ok {
		s.order = append(s.order, stored.ID)
	}
	s.results[stored.ID] = stored

	return cloneResult(stored), nil
}

// FindByID returns the result with the given identity.
func (s *InMemoryStore) FindByID(_ context.Context, id string) (*models.VerificationResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result, ok := s.results[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneResult(result), nil
}

// FindByUser returns all results for a user in insertion order.
func (s *InMemoryStore) FindByUser(_ context.Context, userID string) ([]*models.VerificationResult, error) {
	return s.filter(func(r *models.VerificationResult) bool {
		return r.UserID == userID
	}), nil
}

// FindByUserAndType returns all results for a user and modality in insertion order.
func (s *InMemoryStore) FindByUserAndType(_ context.Context, userID string, verificationType models.VerificationType) ([]*models.VerificationResult, error) {
	return s.filter(func(r *models.VerificationResult) bool {
		return r.UserID == userID && r.Type == verificationType
	}), nil
}

// FindByFraudFlag returns all results matching the fraud flag in insertion order.
func (s *InMemoryStore) FindByFraudFlag(_ context.Context, fraudDetected bool) ([]*models.VerificationResult, error) {
	return s.filter(func(r *models.VerificationResult) bool {
		return r.FraudDetected == fraudDetected
	}), nil
}

// Len reports the number of stored results. Test helper.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.results)
}

func (s *InMemoryStore) filter(keep func(*models.VerificationResult) bool) []*models.VerificationResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := []*models.VerificationResult{}
	for _, id := range s.order {
		if r := s.results[id]; r != nil && keep(r) {
			matches = append(matches, cloneResult(r))
		}
	}
	return matches
}

// cloneResult copies a result so callers never share mutable state with the
// store's map.
func cloneResult(r *models.VerificationResult) *models.VerificationResult {
	clone := *r
	if r.FraudTypes != nil {
		clone.FraudTypes = append([]string(nil), r.FraudTypes...)
	}
	if r.Metadata != nil {
		clone.Metadata = make(map[string]any, len(r.Metadata))
		for k, v := range r.Metadata {
			clone.Metadata[k] = v
		}
	}
	return &clone
}
