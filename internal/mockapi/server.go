// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package mockapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/campusshare/internal/auth"
	"github.com/taibuivan/campusshare/internal/platform/config"
	"github.com/taibuivan/campusshare/internal/platform/constants"
	"github.com/taibuivan/campusshare/internal/platform/middleware"
	"github.com/taibuivan/campusshare/internal/platform/sec"
)

// fileLinkTTL bounds the lifetime of a pre-signed download link.
const fileLinkTTL = 5 * time.Minute

// fileIssuer separates download links from session tokens.
const fileIssuer = "campusshare.files"

// # Server Definitions

// Server wraps the chi router and the [http.Server].
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	store      *Store
	log        *slog.Logger
}

// Handlers groups the HTTP handler sets mounted by [NewServer].
type Handlers struct {
	// Liveness is the /health handler. Always 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler.
	Readiness http.HandlerFunc

	// API serves everything under /api/v1.
	API *Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(ctx context.Context, cfg *config.BackendConfig, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(ctx, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	r.Mount("/api/v1", h.API.Routes())

	return &Server{
		router: r,
		store:  h.API.store,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

/*
New assembles a complete backend from configuration.

Description: Builds the store and both token services, seeds the optional
administrator and wires the handlers into a [Server].

Returns:
  - *Server: Ready to serve, or to mount behind httptest via [Server.Handler]
  - error: Invalid signing secret or a failed admin seed
*/
func New(ctx context.Context, cfg *config.BackendConfig, log *slog.Logger) (*Server, error) {
	tokens, err := sec.NewTokenService(cfg.JWTSecret, constants.AuthIssuer, cfg.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("mockapi: session tokens: %w", err)
	}
	files, err := sec.NewTokenService(cfg.JWTSecret, fileIssuer, fileLinkTTL)
	if err != nil {
		return nil, fmt.Errorf("mockapi: file tokens: %w", err)
	}

	store := NewStore()
	if cfg.SeedAdminEmail != "" {
		admin, err := store.SeedUser(auth.Registration{
			FirstName: "Campus",
			LastName:  "Admin",
			Email:     cfg.SeedAdminEmail,
			Password:  cfg.SeedAdminPassword,
		}, sec.RoleAdmin)
		if err != nil {
			return nil, fmt.Errorf("mockapi: seed admin: %w", err)
		}
		log.Info("admin_seeded", slog.String("user_id", admin.ID), slog.String("email", admin.Email))
	}

	liveness, readiness := NewHealthHandlers(HealthDependencies{CheckStore: store.Ping}, log)

	return NewServer(ctx, cfg, log, tokens, Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		API:       NewHandler(store, tokens, files),
	}), nil
}

// Handler exposes the router, for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Store exposes the backend state, for seeding in tests.
func (s *Server) Store() *Store {
	return s.store
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
