package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	portsrepo "github.com/SscSPs/ledger_desk/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_desk/internal/core/services"
	"github.com/SscSPs/ledger_desk/internal/handlers"
	"github.com/SscSPs/ledger_desk/internal/middleware"
	"github.com/SscSPs/ledger_desk/internal/platform/config"
	"github.com/SscSPs/ledger_desk/internal/repositories/database/pgsql"
	"github.com/SscSPs/ledger_desk/internal/repositories/remote"
	"github.com/SscSPs/ledger_desk/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// @title Ledger Desk API
// @version 1.0
// @description Journals, accounts and journal entries over a remote accounting service or postgres.
// @host localhost:8080
// @BasePath /api/v1
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeStore, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize ledger store", slog.String("backend", string(cfg.Backend)), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	sessions := services.NewSessionStore(func() *services.LedgerSession {
		return services.NewLedgerSession(repos)
	}, cfg.SessionIdleTTL)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.SessionIDHeader, middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.SessionIDHeader, middleware.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	limiter, err := middleware.NewMemoryLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid RATE_LIMIT", slog.String("rate", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}
	r.Use(middleware.RateLimit(limiter))

	handlers.RegisterRoutes(r, sessions)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("backend", string(cfg.Backend)))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
	logger.Info("Server stopped")
}

// buildRepositories connects the configured store backend. The returned func
// releases whatever the backend holds open.
func buildRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*portsrepo.RepositoryProvider, func(), error) {
	switch cfg.Backend {
	case config.BackendPostgres:
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Database connection pool established.")

		if cfg.RunMigrations {
			logger.Info("Running database migrations...")
			changed, err := database.RunMigrations(cfg.DatabaseURL, "file://migrations", logger)
			if err != nil {
				dbPool.Close()
				return nil, nil, err
			}
			if changed {
				logger.Info("Database migrations applied successfully.")
			} else {
				logger.Info("No new migrations to apply.")
			}
		}
		return pgsql.NewRepositoryProvider(dbPool), dbPool.Close, nil

	default:
		opts := []remote.Option{remote.WithTimeout(cfg.APITimeout)}
		if cfg.APIToken != "" {
			opts = append(opts, remote.WithToken(cfg.APIToken))
		}
		client, err := remote.NewClient(cfg.APIBaseURL, opts...)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Using remote accounting service", slog.String("base_url", cfg.APIBaseURL), slog.Bool("strict_entry_fetch", cfg.StrictEntryFetch))
		return remote.NewRepositoryProvider(client, services.WithStrictMode(cfg.StrictEntryFetch)), func() {}, nil
	}
}
