package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/SscSPs/ledgerbook/internal/adapters/database/memory"
	"github.com/SscSPs/ledgerbook/internal/adapters/database/pgsql"
	portsrepo "github.com/SscSPs/ledgerbook/internal/core/ports/repositories"
	"github.com/SscSPs/ledgerbook/internal/core/services"
	"github.com/SscSPs/ledgerbook/internal/handlers"
	"github.com/SscSPs/ledgerbook/internal/middleware"
	"github.com/SscSPs/ledgerbook/internal/platform/config"
	"github.com/SscSPs/ledgerbook/internal/platform/lock"
	"github.com/SscSPs/ledgerbook/pkg/database"
)

// @title Ledgerbook API
// @version 1.0
// @description Double-entry ledger with financial statement reporting.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	chart, err := services.LoadChartOfAccounts(cfg.ChartOfAccountsPath)
	if err != nil {
		logger.Error("Failed to load chart of accounts", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Chart of accounts loaded", slog.Int("accounts", len(chart.Accounts())))

	ctx := context.Background()

	repos, closeRepos, err := setupRepositories(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize ledger store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeRepos()

	locker, closeLocker, err := setupLocker(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize transaction locker", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeLocker()

	serviceContainer := services.NewServiceContainer(cfg, repos, chart, locker)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, cors, metrics)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(corsConfig(cfg)))
	r.Use(middleware.Metrics())

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Failed to create rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}
	r.Use(middleware.RateLimit(rateLimiter))

	err = r.SetTrustedProxies(nil)
	if err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.Bool("auth_enabled", cfg.AuthEnabled))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// setupRepositories opens Postgres and applies migrations, or falls back to the
// in-memory store when no database URL is configured.
func setupRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	if cfg.DatabaseURL == "" {
		logger.Warn("No database configured, ledger data will not survive a restart")
		return memory.NewRepositoryProvider(), func() {}, nil
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, err
	}
	logger.Info("Database connection pool established.")

	logger.Info("Running database migrations...")
	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, database.MigrateUp, logger); err != nil {
		database.ClosePgxPool(dbPool)
		return portsrepo.RepositoryProvider{}, nil, err
	}

	return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool) }, nil
}

// setupLocker uses Redis when configured so that several instances serialize
// postings for the same source transaction.
func setupLocker(ctx context.Context, cfg *config.Config, logger *slog.Logger) (lock.Locker, func(), error) {
	if cfg.RedisURL == "" {
		return lock.NewKeyedMutex(), func() {}, nil
	}

	client, err := lock.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	opts := lock.DefaultOptions()
	opts.Expiry = cfg.LockExpiry
	locker, err := lock.NewRedisLocker(client, opts, logger)
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	logger.Info("Using Redis transaction locks")
	return locker, func() {
		if cerr := client.Close(); cerr != nil {
			logger.Error("Error closing Redis client", slog.String("error", cerr.Error()))
		}
	}, nil
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", "X-Request-ID")
	corsCfg.MaxAge = 12 * time.Hour
	if len(cfg.CORSAllowedOrigins) == 0 || (len(cfg.CORSAllowedOrigins) == 1 && cfg.CORSAllowedOrigins[0] == "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORSAllowedOrigins
	}
	return corsCfg
}
