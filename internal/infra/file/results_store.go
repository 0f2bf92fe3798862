package file

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/sync/singleflight"

	"quiz-event-service/internal/domain"
	"quiz-event-service/internal/report"
)

// ResultsStore appends finalized attempts to a CSV log and mirrors them in a
// JSON document for programmatic reads. The CSV gets its header row when the
// file is first created. A corrupt or missing JSON mirror reads as "no prior
// data"; it degrades reporting but never blocks quiz-taking.
type ResultsStore struct {
	csvPath  string
	jsonPath string
	mu       sync.Mutex
	sf       singleflight.Group
}

func NewResultsStore(csvPath, jsonPath string) *ResultsStore {
	return &ResultsStore{csvPath: csvPath, jsonPath: jsonPath}
}

func (s *ResultsStore) Append(_ context.Context, result domain.AttemptResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.appendCSVLocked(result); err != nil {
		return err
	}

	results := s.loadJSONLocked()
	results = append(results, result)
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	if err := os.WriteFile(s.jsonPath, data, 0o644); err != nil {
		return fmt.Errorf("write results json: %w", err)
	}
	return nil
}

func (s *ResultsStore) List(_ context.Context) ([]domain.AttemptResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadJSONLocked(), nil
}

// Stats coalesces concurrent aggregations; every dashboard poll would
// otherwise re-parse the whole mirror on its own.
func (s *ResultsStore) Stats(ctx context.Context) (domain.AggregateStats, error) {
	v, err, _ := s.sf.Do("stats", func() (interface{}, error) {
		results, err := s.List(ctx)
		if err != nil {
			return domain.AggregateStats{}, err
		}
		return report.Aggregate(results), nil
	})
	if err != nil {
		return domain.AggregateStats{}, err
	}
	return v.(domain.AggregateStats), nil
}

func (s *ResultsStore) ExportCSV(_ context.Context, w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.csvPath)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.ErrNoResults
		}
		return fmt.Errorf("open results csv: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("copy results csv: %w", err)
	}
	return nil
}

func (s *ResultsStore) appendCSVLocked(result domain.AttemptResult) error {
	_, statErr := os.Stat(s.csvPath)
	fresh := os.IsNotExist(statErr)

	f, err := os.OpenFile(s.csvPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open results csv: %w", err)
	}
	defer f.Close()

	var rows [][]string
	if fresh {
		rows = append(rows, report.CSVHeader)
	}
	row, err := report.CSVRow(result)
	if err != nil {
		return err
	}
	rows = append(rows, row)

	for _, r := range rows {
		if err := writeCSVLine(f, r); err != nil {
			return fmt.Errorf("append results csv: %w", err)
		}
	}
	return nil
}

func (s *ResultsStore) loadJSONLocked() []domain.AttemptResult {
	data, err := os.ReadFile(s.jsonPath)
	if err != nil {
		return nil
	}
	var results []domain.AttemptResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil
	}
	return results
}
