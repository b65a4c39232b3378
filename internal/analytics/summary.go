package analytics

import (
	"github.com/shopspring/decimal"

	"brandpulse/internal/domain"
)

// LocationSummary is the normalized single-location 30-day readout. Exactly
// one is produced per query; a location with no qualifying reviews yields
// {ReviewCount: 0, AverageRating: nil}, never an error.
type LocationSummary struct {
	LocationID    int64    `json:"location_id"`
	ReviewCount   int64    `json:"review_count"`
	AverageRating *float64 `json:"average_rating"`
}

// Summarize normalizes the collaborator's precomputed stats row. All field
// defaulting happens here, in one place: a nil row, a zero/negative count
// and a missing average all collapse to the same zero summary shape.
func Summarize(locationID int64, stats *domain.LocationStats) LocationSummary {
	out := LocationSummary{LocationID: locationID}
	if stats == nil || stats.Reviews30d <= 0 {
		return out
	}
	out.ReviewCount = stats.Reviews30d
	if stats.AvgRating != nil {
		avg := round2(*stats.AvgRating)
		out.AverageRating = &avg
	}
	return out
}

func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).RoundBank(2).Float64()
	return f
}
