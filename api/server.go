package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server hosts the administrative REST surface.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer builds the router and binds the handlers.
func NewServer(addr string, handlers *Handlers, logger *slog.Logger) *Server {
	return &Server{
		httpServer: &http.Server{Addr: addr, Handler: NewRouter(handlers, logger)},
		logger:     logger,
	}
}

// NewRouter assembles the chi router for the admin surface.
func NewRouter(handlers *Handlers, logger *slog.Logger) chi.Router {
	r := chi.NewRouter()
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Route("/queries", func(r chi.Router) {
			r.Get("/", handlers.handleListQueries)
			r.Post("/", handlers.handleAddQuery)
			r.Delete("/", handlers.handleClearQueries)
			r.Delete("/{keyword}", handlers.handleRemoveQuery)
		})

		r.Route("/scanner", func(r chi.Router) {
			r.Post("/pause", handlers.handlePause)
			r.Post("/resume", handlers.handleResume)
			r.Get("/status", handlers.handleStatus)
		})

		r.Route("/config", func(r chi.Router) {
			r.Put("/max-price", handlers.handleSetMaxPrice)
			r.Put("/interval", handlers.handleSetInterval)
			r.Put("/min-profit", handlers.handleSetMinProfit)
			r.Put("/min-confidence", handlers.handleSetMinConfidence)
		})

		r.Post("/ledger/reset", handlers.handleResetLedger)
		r.Post("/check", handlers.handleCheck)
	})

	return r
}

// Start runs the HTTP server until it is shut down.
func (s *Server) Start() error {
	s.logger.Info("admin API listening", "address", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("request handled",
				"method", r.Method,
				"path", r.URL.Path,
				"duration", time.Since(start))
		})
	}
}
