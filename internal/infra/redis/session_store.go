// Package redis backs the mutable admission state with Redis for deployments
// where the data directory is not durable (or is shared read-only). The
// pre-distributed valid-ID list stays file-backed either way.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore keeps one key per active session with TTL equal to the
// liveness window, so expiry needs no explicit pruning: a session that
// misses its heartbeats simply disappears.
type SessionStore struct {
	client *redis.Client
	window time.Duration
}

func NewSessionStore(client *redis.Client, window time.Duration) *SessionStore {
	return &SessionStore{client: client, window: window}
}

func (s *SessionStore) Touch(ctx context.Context, id string) error {
	if err := s.client.Set(ctx, s.key(id), "1", s.window).Err(); err != nil {
		return fmt.Errorf("touch session: %w", err)
	}
	return nil
}

func (s *SessionStore) Heartbeat(ctx context.Context, id string) (bool, error) {
	ok, err := s.client.Expire(ctx, s.key(id), s.window).Result()
	if err != nil {
		return false, fmt.Errorf("heartbeat session: %w", err)
	}
	return ok, nil
}

func (s *SessionStore) IsActive(ctx context.Context, id string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(id)).Result()
	if err != nil {
		return false, fmt.Errorf("check session: %w", err)
	}
	return n > 0, nil
}

func (s *SessionStore) Remove(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

func (s *SessionStore) key(id string) string {
	return "quiz:session:" + id
}
