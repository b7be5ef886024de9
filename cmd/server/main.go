package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"perceive-reports/internal/adapters/http/handlers"
	"perceive-reports/internal/adapters/http/middleware"
	"perceive-reports/internal/adapters/http/routes"
	"perceive-reports/internal/adapters/persistence/models"
	"perceive-reports/internal/adapters/persistence/repositories"
	"perceive-reports/internal/config"
	"perceive-reports/internal/core/services"
	"perceive-reports/internal/pkg/jwt"
	"perceive-reports/internal/pkg/logger"
	"perceive-reports/internal/seed"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	_ "perceive-reports/docs" // Swagger docs
)

// @title Perceive Reports API
// @version 1.0
// @description Analyst report browsing and reviewer feedback API

// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	log := logger.New(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})

	// Error reporting
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppMode,
		}); err != nil {
			log.WithError(err).Error("Sentry init failed")
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Seed catalog
	catalog, err := seed.Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load seed catalog")
	}

	// Storage
	store, err := openStorage(context.Background(), cfg, catalog, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to open storage")
	}
	defer store.close()

	// Services
	tokens := jwt.NewManager(cfg.JWT.Secret, cfg.TokenTTL())
	authService := services.NewAuthService(store.repos.Users, tokens, log)
	reportService := services.NewReportService(store.repos.Reports)
	feedbackService := services.NewFeedbackService(store.repos.Feedback, log,
		services.WithStorageLatency(cfg.Storage.Latency),
	)

	// Feedback digest
	digest := services.NewDigestService(feedbackService, log)
	if err := digest.Start(cfg.Digest.Schedule); err != nil {
		log.WithError(err).Fatal("Failed to start feedback digest")
	}
	defer digest.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Perceive Reports API v1.0",
		ErrorHandler: middleware.ErrorHandler(cfg, log),
		Immutable:    true,
	})

	// Setup middlewares
	middleware.Setup(app, cfg, log)

	// Setup routes
	routes.Setup(app, routes.Dependencies{
		Config:   cfg,
		Log:      log,
		Verifier: tokens,
		Auth:     authService,
		Reports:  reportService,
		Feedback: feedbackService,
		Health:   store.health,
	})

	// Graceful shutdown
	go gracefulShutdown(app, log)

	// Start server
	log.WithFields(logrus.Fields{
		"port":    cfg.Port,
		"mode":    cfg.AppMode,
		"storage": cfg.Storage.Driver,
	}).Info("Server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("Failed to start server")
	}
}

// storage holds the repositories and the connections backing them
type storage struct {
	repos  *repositories.Set
	health map[string]handlers.HealthCheck
	closer []func() error
}

func (s *storage) close() {
	for _, c := range s.closer {
		_ = c()
	}
}

// openStorage builds the repository set selected by STORAGE_DRIVER and
// FEEDBACK_BACKEND
func openStorage(ctx context.Context, cfg *config.Config, catalog *seed.Catalog, log logrus.FieldLogger) (*storage, error) {
	s := &storage{health: map[string]handlers.HealthCheck{}}

	if cfg.Storage.Driver == config.DriverMemory {
		repos, err := repositories.NewMemorySet(catalog, cfg.BcryptCost)
		if err != nil {
			return nil, err
		}
		s.repos = repos
	} else {
		db, err := config.ConnectDatabase(cfg, log)
		if err != nil {
			return nil, err
		}
		s.closer = append(s.closer, func() error { return config.CloseDatabase(db) })

		// Auto migrate (creates tables if not exist)
		if err := models.AutoMigrate(db); err != nil {
			s.close()
			return nil, err
		}
		log.Info("Database migration completed")

		if err := config.NewSeeder(db, catalog, cfg.BcryptCost, log).Run(ctx); err != nil {
			s.close()
			return nil, err
		}

		s.repos = repositories.NewGormSet(db)
		s.health["database"] = func(ctx context.Context) error { return config.HealthCheck(db) }
	}

	if cfg.Storage.FeedbackBackend == "redis" {
		rdb, err := config.ConnectRedis(ctx, cfg, log)
		if err != nil {
			s.close()
			return nil, err
		}
		s.closer = append(s.closer, rdb.Close)
		s.repos.Feedback = repositories.NewRedisFeedbackRepository(rdb, cfg.Redis.Prefix)
		s.health["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	return s, nil
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App, log logrus.FieldLogger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.WithError(err).Error("Error during shutdown")
	}
	log.Info("Server stopped gracefully")
}
