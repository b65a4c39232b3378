package mysql

const upsertLocationSQL = `
INSERT INTO locations (id, brand_id, city, status)
VALUES (?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  brand_id = VALUES(brand_id),
  city     = VALUES(city),
  status   = VALUES(status)
`

const insertReviewSQL = `
INSERT INTO reviews (location_id, rating, review_text)
VALUES (?, ?, ?)
`

const getLocationSQL = `
SELECT id, brand_id, city, status
FROM locations
WHERE id = ?
`

// Newest first; aligns with the index on (location_id, created_at, id).
const listReviewsSQL = `
SELECT id, location_id, rating, review_text, created_at
FROM reviews
WHERE location_id = ?
ORDER BY created_at DESC, id DESC
LIMIT ?
`

// location_stats_30d is a view over the trailing 30 days; zero or one row
// per location.
const getStats30dSQL = `
SELECT location_id, reviews_30d, avg_rating_30d
FROM location_stats_30d
WHERE location_id = ?
`

// BETWEEN is inclusive on both ends, which is exactly the window contract.
const listBrandCityRatingsSQL = `
SELECT l.city, r.rating, r.created_at
FROM reviews r
JOIN locations l ON l.id = r.location_id
WHERE l.brand_id = ?
  AND r.created_at BETWEEN ? AND ?
`
