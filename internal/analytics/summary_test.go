package analytics_test

import (
	"testing"

	"brandpulse/internal/analytics"
	"brandpulse/internal/domain"
)

func pfloat(f float64) *float64 { return &f }

func TestSummarize_NoRowIsZeroSummary(t *testing.T) {
	s := analytics.Summarize(7, nil)
	if s.LocationID != 7 || s.ReviewCount != 0 || s.AverageRating != nil {
		t.Fatalf("unexpected summary: %+v", s)
	}
}

func TestSummarize_Passthrough(t *testing.T) {
	s := analytics.Summarize(7, &domain.LocationStats{
		LocationID: 7,
		Reviews30d: 7,
		AvgRating:  pfloat(4.5),
	})
	if s.ReviewCount != 7 {
		t.Fatalf("count = %d", s.ReviewCount)
	}
	if s.AverageRating == nil || *s.AverageRating != 4.5 {
		t.Fatalf("avg = %v", s.AverageRating)
	}
}

func TestSummarize_DefensiveDefaults(t *testing.T) {
	// A row with a zero count behaves exactly like no row at all, even if the
	// view somehow reported an average alongside it.
	s := analytics.Summarize(3, &domain.LocationStats{LocationID: 3, Reviews30d: 0, AvgRating: pfloat(4.0)})
	if s.ReviewCount != 0 || s.AverageRating != nil {
		t.Fatalf("unexpected summary: %+v", s)
	}

	// Count without an average keeps the average absent.
	s = analytics.Summarize(3, &domain.LocationStats{LocationID: 3, Reviews30d: 2})
	if s.ReviewCount != 2 || s.AverageRating != nil {
		t.Fatalf("unexpected summary: %+v", s)
	}
}

func TestSummarize_RoundsAverage(t *testing.T) {
	s := analytics.Summarize(1, &domain.LocationStats{LocationID: 1, Reviews30d: 3, AvgRating: pfloat(4.666666)})
	if s.AverageRating == nil || *s.AverageRating != 4.67 {
		t.Fatalf("avg = %v", s.AverageRating)
	}
}
