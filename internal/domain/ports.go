package domain

import (
	"context"
	"time"
)

type ReviewRepository interface {
	// Write paths
	UpsertLocation(ctx context.Context, l Location) error
	InsertReview(ctx context.Context, r Review) (int64, error)

	// Read paths
	GetLocation(ctx context.Context, id int64) (Location, error)
	ListReviews(ctx context.Context, locationID int64, limit int) ([]Review, error)
	// GetLocationStats30d returns nil (not an error) when the view has no row
	// for the location.
	GetLocationStats30d(ctx context.Context, locationID int64) (*LocationStats, error)
	// ListBrandCityRatings returns ratings joined with location city for one
	// brand, bounded inclusively by [start, end].
	ListBrandCityRatings(ctx context.Context, brandID int64, start, end time.Time) ([]BrandCityRating, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
