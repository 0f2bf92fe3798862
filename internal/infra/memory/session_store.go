package memory

import (
	"context"
	"sync"
	"time"
)

// SessionStore is an in-memory implementation of app.SessionStore. Sessions
// whose last heartbeat is older than the liveness window are pruned lazily on
// every operation.
type SessionStore struct {
	window   time.Duration
	now      func() time.Time
	mu       sync.Mutex
	sessions map[string]time.Time
}

func NewSessionStore(window time.Duration) *SessionStore {
	return &SessionStore{
		window:   window,
		now:      time.Now,
		sessions: make(map[string]time.Time),
	}
}

// NewSessionStoreWithClock allows deterministic timestamps in tests.
func NewSessionStoreWithClock(window time.Duration, now func() time.Time) *SessionStore {
	s := NewSessionStore(window)
	s.now = now
	return s
}

func (s *SessionStore) Touch(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked()
	s.sessions[id] = s.now()
	return nil
}

func (s *SessionStore) Heartbeat(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked()
	if _, ok := s.sessions[id]; !ok {
		return false, nil
	}
	s.sessions[id] = s.now()
	return true, nil
}

func (s *SessionStore) IsActive(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked()
	_, ok := s.sessions[id]
	return ok, nil
}

func (s *SessionStore) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *SessionStore) pruneLocked() {
	cutoff := s.now().Add(-s.window)
	for id, last := range s.sessions {
		if last.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}
