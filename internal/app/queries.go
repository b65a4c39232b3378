package app

import (
	"context"
	"fmt"
	"time"

	"brandpulse/internal/analytics"
	"brandpulse/internal/domain"
)

// MaxReviewPage bounds a single reviews fetch regardless of what the caller
// asks for.
const MaxReviewPage = 100

type QueryService struct {
	repo     domain.ReviewRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(r domain.ReviewRepository, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{repo: r, cache: c, cacheTTL: ttl}
}

func (s *QueryService) GetLocation(ctx context.Context, id int64) (domain.Location, error) {
	key := fmt.Sprintf("location:%d", id)
	var loc domain.Location
	if ok, _ := s.cache.Get(ctx, key, &loc); ok {
		return loc, nil
	}
	loc, err := s.repo.GetLocation(ctx, id)
	if err != nil {
		return domain.Location{}, err
	}
	_ = s.cache.Set(ctx, key, loc, int(s.cacheTTL.Seconds()))
	return loc, nil
}

func (s *QueryService) ListReviews(ctx context.Context, locationID int64, limit int) ([]domain.Review, error) {
	if limit <= 0 || limit > MaxReviewPage {
		limit = MaxReviewPage
	}
	key := fmt.Sprintf("reviews:%d:%d", locationID, limit)
	var out []domain.Review
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}
	rs, err := s.repo.ListReviews(ctx, locationID, limit)
	if err != nil {
		return nil, err
	}
	// copy before caching so callers can't mutate the cached slice
	cp := make([]domain.Review, len(rs))
	copy(cp, rs)
	_ = s.cache.Set(ctx, key, cp, int(s.cacheTTL.Seconds()))
	return cp, nil
}

// LocationSummary always yields exactly one summary. A location with no
// 30-day stats row reads as zero reviews, never as a missing resource.
func (s *QueryService) LocationSummary(ctx context.Context, locationID int64) (analytics.LocationSummary, error) {
	key := fmt.Sprintf("summary:%d", locationID)
	var sum analytics.LocationSummary
	if ok, _ := s.cache.Get(ctx, key, &sum); ok {
		return sum, nil
	}
	stats, err := s.repo.GetLocationStats30d(ctx, locationID)
	if err != nil {
		return analytics.LocationSummary{}, fmt.Errorf("location summary %d: %w", locationID, err)
	}
	sum = analytics.Summarize(locationID, stats)
	_ = s.cache.Set(ctx, key, sum, int(s.cacheTTL.Seconds()))
	return sum, nil
}

type Heatmap struct {
	BrandID int64                `json:"brand_id"`
	Window  analytics.TimeWindow `json:"window"`
	Cities  []CityAggregate      `json:"cities"`
}

type CityAggregate struct {
	City          string  `json:"city"`
	ReviewCount   int64   `json:"review_count"`
	AverageRating float64 `json:"average_rating"`
}

// BrandHeatmap aggregates one brand's reviews per city over the resolved
// window. Not cached: the default window is pinned to the current instant, so
// a cache key would never repeat.
func (s *QueryService) BrandHeatmap(ctx context.Context, brandID int64, from, to string) (Heatmap, error) {
	window, err := analytics.ResolveWindow(time.Now().UTC(), from, to)
	if err != nil {
		return Heatmap{}, err
	}
	rows, err := s.repo.ListBrandCityRatings(ctx, brandID, window.Start, window.End)
	if err != nil {
		return Heatmap{}, fmt.Errorf("brand heatmap %d: %w", brandID, err)
	}

	rated := make([]analytics.Rated, 0, len(rows))
	for _, r := range rows {
		var city string
		if r.City != nil {
			city = *r.City
		}
		rated = append(rated, analytics.Rated{Key: city, Rating: float64(r.Rating)})
	}

	groups := analytics.AggregateByKey(rated)
	cities := make([]CityAggregate, 0, len(groups))
	for _, g := range groups {
		cities = append(cities, CityAggregate{City: g.Key, ReviewCount: g.ReviewCount, AverageRating: g.AverageRating})
	}
	return Heatmap{BrandID: brandID, Window: window, Cities: cities}, nil
}
