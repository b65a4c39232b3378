package domain

import "time"

type Review struct {
	ID         int64
	LocationID int64
	Rating     int // 1..5, validated before insert
	Text       *string
	CreatedAt  time.Time
}

// BrandCityRating is the joined row shape the heatmap consumes: one review's
// rating plus the city of the location it belongs to. City is nil when the
// location row has no city recorded.
type BrandCityRating struct {
	City      *string
	Rating    int
	CreatedAt time.Time
}
