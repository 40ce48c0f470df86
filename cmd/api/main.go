// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

// Command api is the entry point for the Narkh HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/narkhlab/narkh/internal/api"
	"github.com/narkhlab/narkh/internal/catalog/product"
	"github.com/narkhlab/narkh/internal/geo/city"
	"github.com/narkhlab/narkh/internal/geo/market"
	"github.com/narkhlab/narkh/internal/geo/province"
	"github.com/narkhlab/narkh/internal/moderation/report"
	"github.com/narkhlab/narkh/internal/platform/config"
	"github.com/narkhlab/narkh/internal/platform/constants"
	"github.com/narkhlab/narkh/internal/platform/metrics"
	"github.com/narkhlab/narkh/internal/platform/migration"
	pgstore "github.com/narkhlab/narkh/internal/platform/postgres"
	redisstore "github.com/narkhlab/narkh/internal/platform/redis"
	"github.com/narkhlab/narkh/internal/platform/sec"
	"github.com/narkhlab/narkh/internal/pricing/exchange"
	"github.com/narkhlab/narkh/internal/pricing/price"
	"github.com/narkhlab/narkh/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "narkh"))
	slog.SetDefault(log)

	log.Info("[Narkh] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "narkh"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Token Service ──────────────────────────────────────────────────
	tokenService, err := sec.NewTokenService(cfg.TokenSecret, constants.AuthIssuer)
	must(log, err, "initialize token service")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	userRepository := auth.NewUserRepository(pool)
	resetGuard := auth.NewResetGuard(rdb)
	authService := auth.NewService(userRepository, resetGuard, tokenService)
	authHandler := auth.NewHandler(authService, cfg.IsProduction())

	provinceHandler := province.NewHandler(province.NewService(province.NewPostgresRepository(pool), log))
	cityHandler := city.NewHandler(city.NewService(city.NewPostgresRepository(pool), log))
	marketHandler := market.NewHandler(market.NewService(market.NewPostgresRepository(pool), log))
	productHandler := product.NewHandler(product.NewService(product.NewPostgresRepository(pool), log))

	priceService := price.NewService(price.NewPostgresRepository(pool), price.NewRedisCache(rdb), log)
	priceHandler := price.NewHandler(priceService)

	exchangeHandler := exchange.NewHandler(exchange.NewService(exchange.NewPostgresRepository(pool), log))
	reportHandler := report.NewHandler(report.NewService(report.NewPostgresRepository(pool), log))

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	promRegistry := metrics.New()

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      authHandler,
		Province:  provinceHandler,
		City:      cityHandler,
		Market:    marketHandler,
		Product:   productHandler,
		Price:     priceHandler,
		Exchange:  exchangeHandler,
		Report:    reportHandler,
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, promRegistry, tokenService, userRepository, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
