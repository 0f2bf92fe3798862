package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"quiz-event-service/internal/domain"
)

// ProgressStore keeps all mid-attempt snapshots in one JSON document keyed by
// user ID. Snapshots past the TTL read as absent. A corrupt document reads as
// empty and is overwritten by the next save.
type ProgressStore struct {
	path string
	ttl  time.Duration
	now  func() time.Time
	mu   sync.Mutex
}

func NewProgressStore(path string, ttl time.Duration) *ProgressStore {
	return &ProgressStore{path: path, ttl: ttl, now: time.Now}
}

func (s *ProgressStore) Save(_ context.Context, p domain.Progress) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.loadLocked()
	all[p.UserID] = p

	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write progress: %w", err)
	}
	return nil
}

func (s *ProgressStore) Get(_ context.Context, userID string) (*domain.Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.loadLocked()
	p, ok := all[userID]
	if !ok {
		return nil, nil
	}
	if s.ttl > 0 && s.now().Sub(p.Timestamp) >= s.ttl {
		return nil, nil
	}
	return &p, nil
}

func (s *ProgressStore) loadLocked() map[string]domain.Progress {
	all := make(map[string]domain.Progress)
	data, err := os.ReadFile(s.path)
	if err != nil {
		return all
	}
	if err := json.Unmarshal(data, &all); err != nil {
		return make(map[string]domain.Progress)
	}
	return all
}
