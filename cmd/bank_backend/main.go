package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/SscSPs/banking_app/internal/adapters/events"
	"github.com/SscSPs/banking_app/internal/adapters/identity"
	portsrepo "github.com/SscSPs/banking_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/banking_app/internal/core/ports/services"
	"github.com/SscSPs/banking_app/internal/core/services"
	"github.com/SscSPs/banking_app/internal/handlers"
	"github.com/SscSPs/banking_app/internal/middleware"
	"github.com/SscSPs/banking_app/internal/platform/config"
	"github.com/SscSPs/banking_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/banking_app/internal/repositories/memory"
	"github.com/SscSPs/banking_app/internal/utils"
	"github.com/SscSPs/banking_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// @title Banking App API
// @version 1.0
// @description Accounts, top-ups, transfers and transaction history.

// @host localhost:8080
// @BasePath /api/v1

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

	ctx := context.Background()

	repos, closeStore, err := setupStorage(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	identityProvider, err := setupIdentityProvider(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize identity provider client", slog.String("error", err.Error()))
		os.Exit(1)
	}

	publisher, closePublisher := setupPublisher(cfg, logger)
	defer closePublisher()

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer posthogClient.Close()

	serviceContainer := services.NewServiceContainer(cfg, repos, identityProvider, publisher)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, cors)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendBaseURL},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	err = r.SetTrustedProxies(nil)
	if err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := handlers.RegisterRoutes(r, cfg, serviceContainer, posthogClient); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage_driver", cfg.StorageDriver))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// setupStorage returns the repositories for the configured driver and a function releasing them.
func setupStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	if cfg.StorageDriver == config.StorageDriverMemory {
		logger.Warn("Using in-memory storage, data is lost on restart")
		return memory.NewRepositoryProvider(), func() {}, nil
	}

	if cfg.RunMigrations {
		logger.Info("Running database migrations...", slog.String("path", cfg.MigrationsPath))
		if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, err
	}
	logger.Info("Database connection pool established.")

	return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool) }, nil
}

func setupIdentityProvider(ctx context.Context, cfg *config.Config) (portssvc.IdentityProvider, error) {
	if cfg.IdentityAPIKey == "" {
		return identity.Disabled{}, nil
	}
	return identity.NewIdentityToolkitClient(ctx, cfg.IdentityAPIKey, cfg.IdentityEndpoint)
}

func setupPublisher(cfg *config.Config, logger *slog.Logger) (portssvc.EventPublisher, func()) {
	if cfg.AMQPURL == "" {
		logger.Warn("AMQP_URL is empty, money moved events will not be published")
		return events.NoopPublisher{}, func() {}
	}

	publisher, err := events.NewRabbitMQPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		logger.Error("Failed to connect to RabbitMQ, events disabled", slog.String("error", err.Error()))
		return events.NoopPublisher{}, func() {}
	}
	logger.Info("Publishing money moved events", slog.String("exchange", cfg.AMQPExchange))

	return publisher, func() {
		if err := publisher.Close(); err != nil {
			logger.Error("Failed to close RabbitMQ publisher", slog.String("error", err.Error()))
		}
	}
}
