// Package report renders finalized attempts into the aggregate-stats view and
// the tabular CSV export shared by every results-store backend.
package report

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"math"
	"strconv"

	"quiz-event-service/internal/domain"
)

// CSVHeader matches the column layout of the attempt log.
var CSVHeader = []string{"Дата/Время", "ID Пользователя", "Баллы", "Макс. баллы", "Процент", "Время", "Детали ответов"}

// Aggregate derives the stats view from a list of attempts.
func Aggregate(results []domain.AttemptResult) domain.AggregateStats {
	stats := domain.AggregateStats{TotalUsers: len(results)}
	if len(results) == 0 {
		return stats
	}
	var scoreSum, percentSum float64
	for _, r := range results {
		scoreSum += float64(r.Score)
		percentSum += r.Percent
	}
	n := float64(len(results))
	stats.AverageScore = Round1(scoreSum / n)
	stats.AveragePercent = Round1(percentSum / n)
	return stats
}

// WriteCSV renders attempts in the export format, one JSON-encoded details
// blob per row.
func WriteCSV(w io.Writer, results []domain.AttemptResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, r := range results {
		row, err := CSVRow(r)
		if err != nil {
			return err
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// CSVRow renders one attempt as an export row.
func CSVRow(r domain.AttemptResult) ([]string, error) {
	details, err := json.Marshal(r.Details)
	if err != nil {
		return nil, err
	}
	return []string{
		r.Timestamp.Format("2006-01-02 15:04:05"),
		r.UserID,
		strconv.Itoa(r.Score),
		strconv.Itoa(r.MaxScore),
		strconv.FormatFloat(Round1(r.Percent), 'f', -1, 64),
		r.Time,
		string(details),
	}, nil
}

// Round1 rounds to one decimal place, matching the precision the export and
// stats endpoints report.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
