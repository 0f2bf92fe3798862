package report

import "testing"

func TestAggregateEmpty(t *testing.T) {
	stats := Aggregate(nil)
	if stats.TotalUsers != 0 || stats.AverageScore != 0 || stats.AveragePercent != 0 {
		t.Fatalf("expected zero stats, got %+v", stats)
	}
}
