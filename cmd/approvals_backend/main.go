package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/SscSPs/expense_approvals/internal/adapters/database/memory"
	"github.com/SscSPs/expense_approvals/internal/adapters/database/pgsql"
	"github.com/SscSPs/expense_approvals/internal/adapters/rates/exchangerateapi"
	portsrepo "github.com/SscSPs/expense_approvals/internal/core/ports/repositories"
	"github.com/SscSPs/expense_approvals/internal/core/services"
	"github.com/SscSPs/expense_approvals/internal/handlers"
	"github.com/SscSPs/expense_approvals/internal/middleware"
	"github.com/SscSPs/expense_approvals/internal/platform/config"
	"github.com/SscSPs/expense_approvals/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// @title Expense Approvals API
// @version 1.0
// @description Expense submission and multi-level approval workflow.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var (
		repos  portsrepo.RepositoryProvider
		dbPool *pgxpool.Pool
	)
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		dbPool, err = database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer database.ClosePgxPool(dbPool)
		logger.Info("Database connection pool established.")

		if err := runMigrations(logger, cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
		repos = pgsql.NewRepositoryProvider(dbPool)
	default:
		repos, _ = memory.NewRepositoryProvider()
		logger.Warn("Using in-memory storage")
	}

	var rates portsrepo.RateSource
	switch cfg.RateSource {
	case config.RateSourceDatabase:
		rates = pgsql.NewPgxExchangeRateRepository(dbPool)
	default:
		rates = exchangerateapi.NewClient(cfg.RateAPIBaseURL, cfg.RateAPITimeout)
	}
	logger.Info("Currency rate source configured", slog.String("source", cfg.RateSource))

	serviceContainer := services.NewServiceContainer(cfg, repos, rates)

	actionLimiter, err := middleware.NewLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Failed to configure rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, actionLimiter)

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage", cfg.StorageDriver))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
