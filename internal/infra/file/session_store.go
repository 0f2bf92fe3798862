package file

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// SessionStore keeps the active-session registry in a pipe-delimited file,
// one "id|RFC3339-timestamp" line per session. Every mutation re-reads,
// prunes expired entries and rewrites the whole file; the admission
// controller serializes concurrent writers per ID on top of the store mutex.
type SessionStore struct {
	path   string
	window time.Duration
	now    func() time.Time
	mu     sync.Mutex
}

func NewSessionStore(path string, window time.Duration) *SessionStore {
	return &SessionStore{path: path, window: window, now: time.Now}
}

// NewSessionStoreWithClock allows deterministic timestamps in tests.
func NewSessionStoreWithClock(path string, window time.Duration, now func() time.Time) *SessionStore {
	s := NewSessionStore(path, window)
	s.now = now
	return s
}

func (s *SessionStore) Touch(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.loadAliveLocked()
	if err != nil {
		return err
	}
	sessions[id] = s.now()
	return s.saveLocked(sessions)
}

func (s *SessionStore) Heartbeat(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.loadAliveLocked()
	if err != nil {
		return false, err
	}
	if _, ok := sessions[id]; !ok {
		return false, nil
	}
	sessions[id] = s.now()
	return true, s.saveLocked(sessions)
}

func (s *SessionStore) IsActive(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.loadAliveLocked()
	if err != nil {
		return false, err
	}
	_, ok := sessions[id]
	return ok, nil
}

func (s *SessionStore) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.loadAliveLocked()
	if err != nil {
		return err
	}
	if _, ok := sessions[id]; !ok {
		return nil
	}
	delete(sessions, id)
	return s.saveLocked(sessions)
}

// loadAliveLocked reads the registry and drops entries outside the liveness
// window. Unparseable lines are skipped rather than surfaced.
func (s *SessionStore) loadAliveLocked() (map[string]time.Time, error) {
	sessions := make(map[string]time.Time)

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return sessions, nil
		}
		return nil, fmt.Errorf("open sessions: %w", err)
	}
	defer f.Close()

	cutoff := s.now().Add(-s.window)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		id, raw, ok := strings.Cut(line, "|")
		if !ok || id == "" {
			continue
		}
		ts, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			continue
		}
		if ts.Before(cutoff) {
			continue
		}
		sessions[id] = ts
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read sessions: %w", err)
	}
	return sessions, nil
}

func (s *SessionStore) saveLocked(sessions map[string]time.Time) error {
	var b strings.Builder
	for id, ts := range sessions {
		fmt.Fprintf(&b, "%s|%s\n", id, ts.Format(time.RFC3339Nano))
	}
	if err := os.WriteFile(s.path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write sessions: %w", err)
	}
	return nil
}
