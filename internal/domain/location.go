package domain

type Location struct {
	ID      int64
	BrandID int64
	City    *string
	Status  string // active|closed
}

// LocationStats is the collaborator's precomputed trailing-30-day view row.
// Zero or one per location; absence means the location had no qualifying
// reviews, which is a valid steady state and not an error.
type LocationStats struct {
	LocationID int64
	Reviews30d int64
	AvgRating  *float64
}
