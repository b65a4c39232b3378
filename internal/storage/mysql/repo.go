package mysql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"brandpulse/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) UpsertLocation(ctx context.Context, l domain.Location) error {
	_, err := r.db.ExecContext(ctx, upsertLocationSQL, l.ID, l.BrandID, valStr(l.City), l.Status)
	return err
}

func (r *Repo) InsertReview(ctx context.Context, rv domain.Review) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertReviewSQL, rv.LocationID, rv.Rating, valStr(rv.Text))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *Repo) GetLocation(ctx context.Context, id int64) (domain.Location, error) {
	row := r.db.QueryRowContext(ctx, getLocationSQL, id)

	var loc domain.Location
	var city sql.NullString
	if err := row.Scan(&loc.ID, &loc.BrandID, &city, &loc.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Location{}, domain.ErrNotFound
		}
		return domain.Location{}, err
	}
	if city.Valid {
		c := city.String
		loc.City = &c
	}
	return loc, nil
}

func (r *Repo) ListReviews(ctx context.Context, locationID int64, limit int) ([]domain.Review, error) {
	rows, err := r.db.QueryContext(ctx, listReviewsSQL, locationID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Review
	for rows.Next() {
		var rv domain.Review
		var text sql.NullString
		var createdAt sql.NullTime
		if err := rows.Scan(&rv.ID, &rv.LocationID, &rv.Rating, &text, &createdAt); err != nil {
			return nil, err
		}
		if text.Valid {
			s := text.String
			rv.Text = &s
		}
		if createdAt.Valid {
			rv.CreatedAt = createdAt.Time
		}
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetLocationStats30d returns nil with no error when the view has no row for
// the location; absence of activity is not a fault.
func (r *Repo) GetLocationStats30d(ctx context.Context, locationID int64) (*domain.LocationStats, error) {
	row := r.db.QueryRowContext(ctx, getStats30dSQL, locationID)

	var st domain.LocationStats
	var avg sql.NullFloat64
	if err := row.Scan(&st.LocationID, &st.Reviews30d, &avg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if avg.Valid {
		f := avg.Float64
		st.AvgRating = &f
	}
	return &st, nil
}

func (r *Repo) ListBrandCityRatings(ctx context.Context, brandID int64, start, end time.Time) ([]domain.BrandCityRating, error) {
	rows, err := r.db.QueryContext(ctx, listBrandCityRatingsSQL, brandID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.BrandCityRating
	for rows.Next() {
		var bc domain.BrandCityRating
		var city sql.NullString
		var createdAt sql.NullTime
		if err := rows.Scan(&city, &bc.Rating, &createdAt); err != nil {
			return nil, err
		}
		if city.Valid {
			c := city.String
			bc.City = &c
		}
		if createdAt.Valid {
			bc.CreatedAt = createdAt.Time
		}
		out = append(out, bc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
