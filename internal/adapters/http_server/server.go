package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

type Server struct {
	mux     *chi.Mux
	writeRL *rate.Limiter
}

// New builds the router with the full middleware chain. writeRPS bounds the
// review write path; the limiter is shared across all POST handlers.
func New(writeRPS int) *Server {
	if writeRPS <= 0 {
		writeRPS = 10
	}
	m := chi.NewRouter()

	// middlewares must be registered before any routes
	m.Use(chimw.RealIP)
	m.Use(chimw.RequestID)
	m.Use(chimw.Recoverer)
	m.Use(Timeout(15 * time.Second))
	m.Use(Metrics)
	m.Use(Logger(log.Logger))

	return &Server{
		mux:     m,
		writeRL: rate.NewLimiter(rate.Limit(writeRPS), writeRPS),
	}
}

func (s *Server) Mux() http.Handler { return s.mux }

// Mount attaches any extra handler (e.g., /metrics) to the router.
func (s *Server) Mount(path string, h http.Handler) {
	s.mux.Handle(path, h)
}
