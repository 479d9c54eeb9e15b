// Package server is the wiring layer: it assembles the database, services,
// and handlers, mounts the routes, and owns the HTTP server lifecycle.
// All dependencies are constructed in one place (New) and flow downward —
// handlers never touch the database, services never touch HTTP.
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

	"github.com/asif/userstore/internal/handler"
	"github.com/asif/userstore/internal/middleware"
	sqliteRepo "github.com/asif/userstore/internal/repository/sqlite"
	"github.com/asif/userstore/internal/service"
)

// Config holds the server's startup options, passed in once from main.
// The middleware toggles let a deployment strip cross-cutting layers
// without code changes.
type Config struct {
	Port   int
	DBPath string

	RequestID bool
	RealIP    bool
	Logging   bool
	Recovery  bool
}

// Server owns the router and the database connection. The connection is
// closed during graceful shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New assembles the full dependency chain:
// sqlite.DB → services → handlers → routes.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
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

	s.setupRoutes()

	return s, nil
}

// setupRoutes mounts middleware and the resource routes.
//
// Route table (root-mounted, no versioning prefix):
//
//	GET    /users           list users
//	GET    /users/{id}      get one user
//	POST   /register        create account
//	POST   /login           credential check
//	PUT    /users/{id}      full-record update
//	DELETE /users/{id}      delete user
//
// plus the same CRUD shape under /products.
func (s *Server) setupRoutes() {
	if s.config.RequestID {
		s.router.Use(chimiddleware.RequestID)
	}
	if s.config.RealIP {
		s.router.Use(chimiddleware.RealIP)
	}
	if s.config.Recovery {
		s.router.Use(chimiddleware.Recoverer)
	}
	if s.config.Logging {
		s.router.Use(middleware.Logger(s.logger))
	}

	userService := service.NewUserService(s.db, s.logger)
	userHandler := handler.NewUserHandler(userService, s.logger)

	productService := service.NewProductService(s.db, s.logger)
	productHandler := handler.NewProductHandler(productService, s.logger)

	s.router.Get("/users", userHandler.HandleList)
	s.router.Get("/users/{id}", userHandler.HandleGetByID)
	s.router.Post("/register", userHandler.HandleRegister)
	s.router.Post("/login", userHandler.HandleLogin)
	s.router.Put("/users/{id}", userHandler.HandleUpdate)
	s.router.Delete("/users/{id}", userHandler.HandleDelete)

	s.router.Get("/products", productHandler.HandleList)
	s.router.Get("/products/{id}", productHandler.HandleGetByID)
	s.router.Post("/products", productHandler.HandleCreate)
	s.router.Put("/products/{id}", productHandler.HandleUpdate)
	s.router.Delete("/products/{id}", productHandler.HandleDelete)
}

// Handler exposes the assembled router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the database connection. Start does this itself on
// shutdown; Close exists for callers that never reach Start.
func (s *Server) Close() error {
	return s.db.Close()
}

// Start runs the HTTP server until SIGINT/SIGTERM, then drains in-flight
// requests (30 s budget) and closes the database.
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
			slog.String("database", s.config.DBPath),
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
