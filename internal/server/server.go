// Package server sets up the HTTP server, router, and all route definitions.
//
// This is the "composition root" — the one place where the whole dependency
// chain is assembled:
//
//	sqlite.DB + photo.Store + metrics → DirectoryService → handlers → routes
//
// Handlers never touch the database or the filesystem directly; the service
// never touches HTTP. main.go stays minimal: load config, call New, Start.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sakif/employee-directory/internal/auth"
	"github.com/sakif/employee-directory/internal/config"
	"github.com/sakif/employee-directory/internal/handler"
	"github.com/sakif/employee-directory/internal/metrics"
	"github.com/sakif/employee-directory/internal/middleware"
	"github.com/sakif/employee-directory/internal/photo"
	sqliteRepo "github.com/sakif/employee-directory/internal/repository/sqlite"
	"github.com/sakif/employee-directory/internal/service"
)

// Server owns the router and the resources that must be released on
// shutdown (the database connection).
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New wires the application together.
//
// ROUTE STRUCTURE:
//
//	GET  /                             → public directory page (HTML)
//	GET  /employees/{id}/photo         → stored photo (placeholder fallback)
//	GET  /employees/{id}/qr            → generated QR PNG
//	GET  /api/employees                → JSON listing (read-only)
//	GET  /admin                        → login form or management panel
//	POST /admin/login                  → password check, session cookie
//	POST /admin/logout                 → clear session
//	POST /admin/employees              → add employee (auth required)
//	POST /admin/employees/{id}/delete  → remove employee (auth required)
//	GET  /healthz                      → liveness probe
//	GET  /metrics                      → prometheus metrics
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

func (s *Server) setupRoutes() error {
	// === Metrics registry ===
	// Our own registry (not the global default) so tests creating servers
	// never hit duplicate-registration panics.
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	// === Stores ===
	photos, err := photo.NewStore(s.config.PhotoDir)
	if err != nil {
		return fmt.Errorf("creating photo store: %w", err)
	}

	// === Service ===
	svc := service.NewDirectoryService(s.db, photos, m, s.logger)

	// Seed the employees gauge so it's right after a restart, not only
	// after the first add/remove.
	if employees, err := svc.List(context.Background(), ""); err == nil {
		m.Employees.Set(float64(len(employees)))
	}

	// === Auth ===
	verifier := auth.NewVerifier(s.config.AdminPassword)
	tokens, err := auth.NewTokenService(s.config.SessionSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}

	// === Handlers ===
	directoryHandler, err := handler.NewDirectoryHandler(s.config.TemplateDir, svc, s.logger)
	if err != nil {
		return fmt.Errorf("creating directory handler: %w", err)
	}
	adminHandler, err := handler.NewAdminHandler(s.config.TemplateDir, svc, verifier, tokens, s.logger)
	if err != nil {
		return fmt.Errorf("creating admin handler: %w", err)
	}
	mediaHandler := handler.NewMediaHandler(svc, photos, m, s.logger)
	employeeHandler := handler.NewEmployeeHandler(svc, s.logger)

	// === Global middleware (order matters: first added runs first) ===
	s.router.Use(chimiddleware.RequestID) // X-Request-ID for tracing
	s.router.Use(chimiddleware.RealIP)    // real client IP from proxy headers
	s.router.Use(chimiddleware.Recoverer) // panics become 500s, not crashes
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(middleware.Instrument(m))

	// === Public routes ===
	s.router.Get("/", directoryHandler.HandleDirectory)
	s.router.Get("/employees/{id}/photo", mediaHandler.HandlePhoto)
	s.router.Get("/employees/{id}/qr", mediaHandler.HandleQR)
	s.router.Get("/api/employees", employeeHandler.HandleList)

	// === Admin routes ===
	// The portal page itself is reachable without a session (it shows the
	// login form); the mutating routes are behind RequireAdmin.
	s.router.Group(func(r chi.Router) {
		r.Use(auth.OptionalAdmin(tokens))
		r.Get("/admin", adminHandler.HandleAdmin)
	})
	s.router.Post("/admin/login", adminHandler.HandleLogin)
	s.router.Post("/admin/logout", adminHandler.HandleLogout)
	s.router.Group(func(r chi.Router) {
		r.Use(auth.RequireAdmin(tokens))
		r.Post("/admin/employees", adminHandler.HandleAdd)
		r.Post("/admin/employees/{id}/delete", adminHandler.HandleRemove)
	})

	// === Ops routes ===
	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	s.router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	return nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, give in-flight requests 30s to
// finish, close the database (flushes the WAL, releases the file lock).
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
			slog.String("photos", s.config.PhotoDir),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
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
