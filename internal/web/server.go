// Package web is the upload front-end: an HTML form that accepts a GPX file
// plus trip options and responds with the rendered itinerary. Uploads are
// processed entirely in memory; nothing is persisted.
package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/gpxtrip/gpxtable/internal/config"
	"github.com/gpxtrip/gpxtable/internal/lib/render"
)

// Server holds the front-end's collaborators.
type Server struct {
	cfg     *config.Config
	log     *zap.Logger
	metrics *Collector
	sun     render.SunTimes
}

// New builds a Server. sun may be nil to omit sunrise/sunset footers.
func New(cfg *config.Config, log *zap.Logger, sun render.SunTimes) *Server {
	return &Server{
		cfg:     cfg,
		log:     log,
		metrics: NewCollector(),
		sun:     sun,
	}
}

// Metrics exposes the server's collector for a separate metrics listener.
func (s *Server) Metrics() *Collector { return s.metrics }

// Router assembles the chi routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.Server.CorsOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Get("/", s.handleForm)
	r.Post("/", s.handleUpload)

	return r
}
