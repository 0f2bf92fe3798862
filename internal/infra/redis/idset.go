package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// IDSet is a Redis-set implementation of app.IDSet, used for the append-only
// consumed-ID set in redis mode.
type IDSet struct {
	client *redis.Client
	key    string
}

func NewIDSet(client *redis.Client, key string) *IDSet {
	return &IDSet{client: client, key: key}
}

func (s *IDSet) Contains(ctx context.Context, id string) (bool, error) {
	ok, err := s.client.SIsMember(ctx, s.key, id).Result()
	if err != nil {
		return false, fmt.Errorf("check id set: %w", err)
	}
	return ok, nil
}

func (s *IDSet) Add(ctx context.Context, id string) error {
	if err := s.client.SAdd(ctx, s.key, id).Err(); err != nil {
		return fmt.Errorf("add to id set: %w", err)
	}
	return nil
}
