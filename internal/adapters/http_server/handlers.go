package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"brandpulse/internal/app"
	"brandpulse/internal/domain"
)

type Handlers struct {
	Q *app.QueryService
	W *app.ReviewService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/locations/{id}", h.getLocation)
	s.mux.Get("/v1/locations/{id}/reviews", h.listReviews)
	s.mux.With(WriteLimit(s.writeRL)).Post("/v1/locations/{id}/reviews", h.createReview)
	s.mux.Get("/v1/locations/{id}/summary", h.locationSummary)
	s.mux.Get("/v1/brands/{id}/heatmap", h.brandHeatmap)
}

// ---- response shapes ----

type locationResp struct {
	ID      int64   `json:"id"`
	BrandID int64   `json:"brand_id"`
	City    *string `json:"city"`
	Status  string  `json:"status"`
}

type reviewResp struct {
	ID         int64     `json:"id"`
	LocationID int64     `json:"location_id"`
	Rating     int       `json:"rating"`
	Text       *string   `json:"review_text"`
	CreatedAt  time.Time `json:"created_at"`
}

func toReviewResp(rv domain.Review) reviewResp {
	return reviewResp{ID: rv.ID, LocationID: rv.LocationID, Rating: rv.Rating, Text: rv.Text, CreatedAt: rv.CreatedAt}
}

// ---- helpers ----

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// respondErr maps the error taxonomy: validation -> 400, missing entity ->
// 404, anything else -> 500 carrying the fault's message. Absence of
// analytics data never reaches this path; it is a valid 200.
func respondErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeProblem(w, http.StatusBadRequest, "Invalid Request", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	default:
		writeProblem(w, http.StatusInternalServerError, "Internal Error", err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeWithETag(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag) // include ETag on 304
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// ---- handlers ----

func (h *Handlers) getLocation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	loc, err := h.Q.GetLocation(r.Context(), id)
	if err != nil {
		respondErr(w, err)
		return
	}
	writeWithETag(w, r, locationResp{ID: loc.ID, BrandID: loc.BrandID, City: loc.City, Status: loc.Status})
}

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}

	limit := 50
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > app.MaxReviewPage {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 100")
			return
		}
		limit = l
	}

	rs, err := h.Q.ListReviews(r.Context(), id, limit)
	if err != nil {
		respondErr(w, err)
		return
	}
	out := make([]reviewResp, 0, len(rs))
	for _, rv := range rs {
		out = append(out, toReviewResp(rv))
	}
	writeWithETag(w, r, out)
}

func (h *Handlers) createReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}

	var body struct {
		Rating int     `json:"rating"`
		Text   *string `json:"review_text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "request body must be JSON")
		return
	}

	rv, err := h.W.CreateReview(r.Context(), id, body.Rating, body.Text)
	if err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toReviewResp(rv))
}

// locationSummary always answers 200: a location with no recent reviews is a
// zero summary, not a missing resource.
func (h *Handlers) locationSummary(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	sum, err := h.Q.LocationSummary(r.Context(), id)
	if err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (h *Handlers) brandHeatmap(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	q := r.URL.Query()
	hm, err := h.Q.BrandHeatmap(r.Context(), id, q.Get("from"), q.Get("to"))
	if err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hm)
}
