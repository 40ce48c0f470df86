// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/narkhlab/narkh/internal/catalog/product"
	"github.com/narkhlab/narkh/internal/geo/city"
	"github.com/narkhlab/narkh/internal/geo/market"
	"github.com/narkhlab/narkh/internal/geo/province"
	"github.com/narkhlab/narkh/internal/moderation/report"
	"github.com/narkhlab/narkh/internal/platform/config"
	"github.com/narkhlab/narkh/internal/platform/constants"
	"github.com/narkhlab/narkh/internal/platform/metrics"
	"github.com/narkhlab/narkh/internal/platform/middleware"
	"github.com/narkhlab/narkh/internal/pricing/exchange"
	"github.com/narkhlab/narkh/internal/pricing/price"
	"github.com/narkhlab/narkh/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here; no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler. Always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. Returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles the session lifecycle and user management.
	Auth *auth.Handler

	// Province, City, and Market cover the geographic hierarchy.
	Province *province.Handler
	City     *city.Handler
	Market   *market.Handler

	// Product manages the trackable goods catalogue.
	Product *product.Handler

	// Price handles crowd-sourced price submissions and the latest view.
	Price *price.Handler

	// Exchange handles currency exchange-rate submissions.
	Exchange *exchange.Handler

	// Report handles data-quality complaints and their moderation.
	Report *report.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(
	context context.Context,
	cfg *config.Config,
	log *slog.Logger,
	reg *metrics.Registry,
	verifier middleware.TokenVerifier,
	users middleware.PrincipalSource,
	h Handlers,
) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(reg.Middleware())
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier, users))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated probes for container orchestration plus the Prometheus
	// scrape target.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	r.Method(http.MethodGet, "/metrics", reg.Handler())

	// # Application API
	r.Route("/api", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/users", h.Auth.UserRoutes())

		api.Route("/provinces", h.Province.RegisterRoutes)
		api.Route("/cities", h.City.RegisterRoutes)
		api.Route("/markets", h.Market.RegisterRoutes)
		api.Route("/products", h.Product.RegisterRoutes)
		api.Route("/prices", h.Price.RegisterRoutes)
		api.Route("/rates", h.Exchange.RegisterRoutes)
		api.Route("/reports", h.Report.RegisterRoutes)
	})

	return &Server{
		router: r,
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
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
