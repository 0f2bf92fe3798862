// Package postgres stores finalized attempts in Postgres for deployments that
// want the reporting log queryable with SQL instead of reading the flat files.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jackc/pgx/v4/pgxpool"

	"quiz-event-service/internal/domain"
	"quiz-event-service/internal/report"
)

// ResultsStore is a pgx-backed implementation of app.ResultsStore. The
// attempts table is append-only; the per-question details ride along as JSONB.
type ResultsStore struct {
	pool *pgxpool.Pool
}

func NewResultsStore(pool *pgxpool.Pool) *ResultsStore {
	return &ResultsStore{pool: pool}
}

func (s *ResultsStore) Append(ctx context.Context, result domain.AttemptResult) error {
	details, err := json.Marshal(result.Details)
	if err != nil {
		return fmt.Errorf("encode details: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO attempts (submitted_at, user_id, score, max_score, percent, time_label, time_seconds, details)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		result.Timestamp, result.UserID, result.Score, result.MaxScore,
		result.Percent, result.Time, result.TimeSeconds, details,
	)
	if err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}
	return nil
}

func (s *ResultsStore) List(ctx context.Context) ([]domain.AttemptResult, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT submitted_at, user_id, score, max_score, percent, time_label, time_seconds, details
		 FROM attempts ORDER BY submitted_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var results []domain.AttemptResult
	for rows.Next() {
		var r domain.AttemptResult
		var details []byte
		if err := rows.Scan(&r.Timestamp, &r.UserID, &r.Score, &r.MaxScore,
			&r.Percent, &r.Time, &r.TimeSeconds, &details); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		if err := json.Unmarshal(details, &r.Details); err != nil {
			// A damaged details blob degrades that row, not the whole report.
			r.Details = nil
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempts: %w", err)
	}
	return results, nil
}

func (s *ResultsStore) Stats(ctx context.Context) (domain.AggregateStats, error) {
	var stats domain.AggregateStats
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*),
		        COALESCE(ROUND(AVG(score)::numeric, 1), 0),
		        COALESCE(ROUND(AVG(percent)::numeric, 1), 0)
		 FROM attempts`).
		Scan(&stats.TotalUsers, &stats.AverageScore, &stats.AveragePercent)
	if err != nil {
		return domain.AggregateStats{}, fmt.Errorf("aggregate attempts: %w", err)
	}
	return stats, nil
}

func (s *ResultsStore) ExportCSV(ctx context.Context, w io.Writer) error {
	results, err := s.List(ctx)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return domain.ErrNoResults
	}
	return report.WriteCSV(w, results)
}
