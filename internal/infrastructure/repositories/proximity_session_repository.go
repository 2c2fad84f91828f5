package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/you/gatesvc/domain"
)

// ProximitySessionRepositoryImpl implements domain.ProximitySessionRepository
// using Redis. Sessions expire with inactivity: every Save refreshes the
// TTL, so an abandoned dashboard simply ages out and the engine state is
// rebuilt from scratch on the next approach.
type ProximitySessionRepositoryImpl struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewProximitySessionRepository creates a new proximity state repository
func NewProximitySessionRepository(client *redis.Client, ttl time.Duration) domain.ProximitySessionRepository {
	return &ProximitySessionRepositoryImpl{
		client: client,
		prefix: "proximity:",
		ttl:    ttl,
	}
}

// Load implements domain.ProximitySessionRepository. A missing session is
// not an error: it returns (nil, nil) and the engine starts fresh.
func (r *ProximitySessionRepositoryImpl) Load(ctx context.Context, sessionID string) (*domain.ProximitySession, error) {
	data, err := r.client.Get(ctx, r.prefix+sessionID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: load proximity session: %v", domain.ErrStoreFailure, err)
	}

	var session domain.ProximitySession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal proximity session: %w", err)
	}
	if session.GatesInRange == nil {
		session.GatesInRange = make(map[uint]bool)
	}
	if session.AutoOpened == nil {
		session.AutoOpened = make(map[uint]bool)
	}
	return &session, nil
}

// Save implements domain.ProximitySessionRepository
func (r *ProximitySessionRepositoryImpl) Save(ctx context.Context, session *domain.ProximitySession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal proximity session: %w", err)
	}
	return r.client.Set(ctx, r.prefix+session.ID, data, r.ttl).Err()
}

// Delete implements domain.ProximitySessionRepository
func (r *ProximitySessionRepositoryImpl) Delete(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, r.prefix+sessionID).Err()
}
