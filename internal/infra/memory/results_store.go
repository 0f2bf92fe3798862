package memory

import (
	"context"
	"io"
	"sync"

	"quiz-event-service/internal/domain"
	"quiz-event-service/internal/report"
)

// ResultsStore is an in-memory implementation of app.ResultsStore.
type ResultsStore struct {
	mu      sync.RWMutex
	results []domain.AttemptResult
}

func NewResultsStore() *ResultsStore {
	return &ResultsStore{}
}

func (s *ResultsStore) Append(_ context.Context, result domain.AttemptResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, result)
	return nil
}

func (s *ResultsStore) List(_ context.Context) ([]domain.AttemptResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.AttemptResult, len(s.results))
	copy(out, s.results)
	return out, nil
}

func (s *ResultsStore) Stats(ctx context.Context) (domain.AggregateStats, error) {
	results, err := s.List(ctx)
	if err != nil {
		return domain.AggregateStats{}, err
	}
	return report.Aggregate(results), nil
}

func (s *ResultsStore) ExportCSV(ctx context.Context, w io.Writer) error {
	results, err := s.List(ctx)
	if err != nil {
		return err
	}
	return report.WriteCSV(w, results)
}
