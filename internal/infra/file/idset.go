// Package file implements the durable stores as plain-text files. The files
// are the sole source of truth and stay human-inspectable: line-oriented ID
// sets, a pipe-delimited session registry, CSV and JSON attempt logs.
package file

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
)

// IDSet is a line-oriented file of identifiers, one per line. Lines starting
// with '#' and blank lines are ignored. Membership checks re-read the file so
// out-of-band edits (an organizer appending IDs) are picked up immediately.
type IDSet struct {
	path string
	mu   sync.Mutex
}

func NewIDSet(path string) *IDSet {
	return &IDSet{path: path}
}

func (s *IDSet) Contains(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.readLocked()
	if err != nil {
		return false, err
	}
	_, ok := ids[id]
	return ok, nil
}

// Add appends id as one line. Duplicate appends are harmless for membership.
func (s *IDSet) Add(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open id set: %w", err)
	}
	defer f.Close()
	if _, err := fmt.Fprintln(f, id); err != nil {
		return fmt.Errorf("append id: %w", err)
	}
	return nil
}

func (s *IDSet) readLocked() (map[string]struct{}, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]struct{}{}, nil
		}
		return nil, fmt.Errorf("open id set: %w", err)
	}
	defer f.Close()

	ids := make(map[string]struct{})
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ids[line] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read id set: %w", err)
	}
	return ids, nil
}
