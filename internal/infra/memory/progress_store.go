package memory

import (
	"context"
	"sync"
	"time"

	"quiz-event-service/internal/domain"
)

// ProgressStore is an in-memory implementation of app.ProgressStore.
// Snapshots older than the TTL read as absent.
type ProgressStore struct {
	ttl      time.Duration
	now      func() time.Time
	mu       sync.RWMutex
	byUserID map[string]domain.Progress
}

func NewProgressStore(ttl time.Duration) *ProgressStore {
	return &ProgressStore{
		ttl:      ttl,
		now:      time.Now,
		byUserID: make(map[string]domain.Progress),
	}
}

func (s *ProgressStore) Save(_ context.Context, p domain.Progress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byUserID[p.UserID] = p
	return nil
}

func (s *ProgressStore) Get(_ context.Context, userID string) (*domain.Progress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byUserID[userID]
	if !ok {
		return nil, nil
	}
	if s.ttl > 0 && s.now().Sub(p.Timestamp) >= s.ttl {
		return nil, nil
	}
	return &p, nil
}
