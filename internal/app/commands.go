package app

import (
	"context"
	"fmt"

	"brandpulse/internal/adapters/observability"
	"brandpulse/internal/domain"
)

type ReviewService struct {
	repo  domain.ReviewRepository
	cache domain.Cache
}

func NewReviewService(r domain.ReviewRepository, cache domain.Cache) *ReviewService {
	return &ReviewService{repo: r, cache: cache}
}

// CreateReview validates and persists a review. Validation happens here, at
// the write boundary; the analytics core downstream trusts ratings to be in
// range.
func (s *ReviewService) CreateReview(ctx context.Context, locationID int64, rating int, text *string) (domain.Review, error) {
	if locationID <= 0 {
		return domain.Review{}, fmt.Errorf("%w: location_id is required", domain.ErrValidation)
	}
	if rating < 1 || rating > 5 {
		return domain.Review{}, fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrValidation)
	}

	// Reject writes against unknown locations before touching the reviews table.
	if _, err := s.repo.GetLocation(ctx, locationID); err != nil {
		return domain.Review{}, err
	}

	rv := domain.Review{LocationID: locationID, Rating: rating, Text: text}
	id, err := s.repo.InsertReview(ctx, rv)
	if err != nil {
		return domain.Review{}, fmt.Errorf("insert review for location %d: %w", locationID, err)
	}
	rv.ID = id

	observability.ObserveReviewWrite(rating)
	if s.cache != nil {
		s.invalidateLocation(ctx, locationID)
	}
	return rv, nil
}

// invalidate the summary plus the common review page variants
func (s *ReviewService) invalidateLocation(ctx context.Context, locationID int64) {
	_ = s.cache.Del(ctx, fmt.Sprintf("summary:%d", locationID))
	for _, lim := range []int{50, MaxReviewPage} {
		_ = s.cache.Del(ctx, fmt.Sprintf("reviews:%d:%d", locationID, lim))
	}
}
