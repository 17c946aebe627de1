package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"quod/internal/verification/models"
)

// CachedStore decorates a ResultStore with a Redis read-through cache for the
// per-user queries, which back the read endpoints and are the only hot path.
// Cache failures degrade to the inner store; they never fail a request.
type CachedStore struct {
	inner  ResultStore
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedStore wraps inner with a Redis cache. TTL <= 0 defaults to one minute.
func NewCachedStore(inner ResultStore, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedStore {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedStore{inner: inner, client: client, ttl: ttl, logger: logger}
}

// Save writes through to the inner store and drops the cached user queries so
// readers never see a stale list after a new result lands.
func (s *CachedStore) Save(ctx context.Context, result *models.VerificationResult) (*models.VerificationResult, error) {
	saved, err := s.inner.Save(ctx, result)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, saved)
	return saved, nil
}

// FindByID delegates to the inner store; single-row lookups are cheap enough
// to skip the cache.
func (s *CachedStore) FindByID(ctx context.Context, id string) (*models.VerificationResult, error) {
	return s.inner.FindByID(ctx, id)
}

// FindByUser serves from cache when possible.
func (s *CachedStore) FindByUser(ctx context.Context, userID string) ([]*models.VerificationResult, error) {
	return s.cached(ctx, userKey(userID), func() ([]*models.VerificationResult, error) {
		return s.inner.FindByUser(ctx, userID)
	})
}

// FindByUserAndType serves from cache when possible.
func (s *CachedStore) FindByUserAndType(ctx context.Context, userID string, verificationType models.VerificationType) ([]*models.VerificationResult, error) {
	return s.cached(ctx, userTypeKey(userID, verificationType), func() ([]*models.VerificationResult, error) {
		return s.inner.FindByUserAndType(ctx, userID, verificationType)
	})
}

// FindByFraudFlag delegates to the inner store; the fraud listing is an
// administrative query with no latency budget worth caching for.
func (s *CachedStore) FindByFraudFlag(ctx context.Context, fraudDetected bool) ([]*models.VerificationResult, error) {
	return s.inner.FindByFraudFlag(ctx, fraudDetected)
}

func (s *CachedStore) cached(ctx context.Context, key string, load func() ([]*models.VerificationResult, error)) ([]*models.VerificationResult, error) {
	if payload, err := s.client.Get(ctx, key).Bytes(); err == nil {
		var results []*models.VerificationResult
		if err := json.Unmarshal(payload, &results); err == nil {
			return results, nil
		}
		// Unreadable entry: fall through and overwrite it below.
	}

	results, err := load()
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(results); err == nil {
		if err := s.client.Set(ctx, key, payload, s.ttl).Err(); err != nil {
			s.logger.WarnContext(ctx, "result cache write failed", "key", key, "error", err)
		}
	}
	return results, nil
}

func (s *CachedStore) invalidate(ctx context.Context, result *models.VerificationResult) {
	keys := []string{
		userKey(result.UserID),
		userTypeKey(result.UserID, result.Type),
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		s.logger.WarnContext(ctx, "result cache invalidation failed",
			"user_id", result.UserID, "error", err)
	}
}

func userKey(userID string) string {
	return fmt.Sprintf("verification:user:%s", userID)
}

func userTypeKey(userID string, verificationType models.VerificationType) string {
	return fmt.Sprintf("verification:user:%s:type:%s", userID, verificationType)
}
