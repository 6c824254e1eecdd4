// Package server wires the application together: it opens the store,
// builds the services and handlers, mounts them on a chi router and runs
// the HTTP server until a shutdown signal arrives.
//
// This is the composition root. Every dependency is constructed here and
// handed down, so no other package reaches for globals except the
// Prometheus collectors in internal/metrics.
//
// Routes:
//
//	GET  /healthz                         liveness plus a database ping
//	GET  /metrics                         Prometheus exposition
//	     /api/habits...                   registry CRUD
//	     /api/checkins...                 ledger reads and writes
//	GET  /api/analytics/...               reports
//	GET  /api/habits/{id}/stats           per-habit stats
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sakif/habitloop/internal/analytics"
	"github.com/sakif/habitloop/internal/calendar"
	"github.com/sakif/habitloop/internal/handler"
	"github.com/sakif/habitloop/internal/middleware"
	sqliteRepo "github.com/sakif/habitloop/internal/repository/sqlite"
	"github.com/sakif/habitloop/internal/service"
)

// Config holds server configuration. It is built from config.Config in
// main so this package does not parse anything itself.
type Config struct {
	Port     int
	DBPath   string
	Location *time.Location // viewer's zone for "today"; nil means time.Local
	Analysis analytics.Options

	// Clock overrides the system clock. Tests pin it.
	Clock calendar.Clock
}

// Server represents the HTTP server and all its dependencies. It owns the
// database connection and closes it on shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New opens the database and wires every route.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if cfg.Clock == nil {
		cfg.Clock = calendar.SystemClock{Location: cfg.Location}
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}
	s.setupRoutes()

	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the database. Start calls it on the way out; callers
// that never Start must call it themselves.
func (s *Server) Close() error {
	return s.db.Close()
}

// setupRoutes installs middleware and routes.
//
// Middleware order matters: RequestID runs first so the logger can read
// the id, and Recoverer sits inside the logger so a panic still produces
// a logged 500.
func (s *Server) setupRoutes() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(middleware.Metrics)
	s.router.Use(chimiddleware.Recoverer)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Handle("/metrics", promhttp.Handler())

	habitService := service.NewHabitService(s.db, s.logger)
	checkinService := service.NewCheckinService(s.db, s.db, s.config.Clock, s.logger)
	analyticsService := service.NewAnalyticsService(s.db, s.config.Clock, s.config.Analysis, s.logger)

	habitHandler := handler.NewHabitHandler(habitService, s.logger)
	checkinHandler := handler.NewCheckinHandler(checkinService, s.logger)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService, s.logger)

	s.router.Route("/api", func(r chi.Router) {
		habitHandler.Routes(r)
		checkinHandler.Routes(r)
		analyticsHandler.Routes(r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	w.Header().Set("Content-Type", "application/json")
	if err := s.db.Ping(ctx); err != nil {
		s.logger.Error("health check failed", slog.String("error", err.Error()))
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status":"unavailable"}`))
		return
	}
	w.Write([]byte(`{"status":"ok"}`))
}

// Start runs the HTTP server and blocks until SIGINT or SIGTERM, then
// drains in-flight requests for up to 30 seconds and closes the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
			slog.String("database", s.config.DBPath),
			slog.String("today", s.config.Clock.Today().String()),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
