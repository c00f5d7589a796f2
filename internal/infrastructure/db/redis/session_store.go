package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/syncspace/edge-gateway/internal/core/domain"
)

// SessionStore is the durable mirror of session records, one serialized
// record per browsing context. Key format: session:<sid>
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
// Records expire after ttl; every save refreshes the expiry.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Load(ctx context.Context, sid string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key(sid)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return nil, domain.ErrSessionNotFound
	case err != nil:
		return nil, fmt.Errorf("%w: %v", domain.ErrSessionStoreUnavailable, err)
	}
	return data, nil
}

func (s *SessionStore) Save(ctx context.Context, sid string, data []byte) error {
	if err := s.client.Set(ctx, s.key(sid), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSessionStoreUnavailable, err)
	}
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, sid string) error {
	if err := s.client.Del(ctx, s.key(sid)).Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSessionStoreUnavailable, err)
	}
	return nil
}

func (s *SessionStore) key(sid string) string {
	return fmt.Sprintf("session:%s", sid)
}
