package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"postforge-api/internal/client"
	"postforge-api/internal/config"
	"postforge-api/internal/database"
	"postforge-api/internal/job"
	"postforge-api/internal/metrics"
	"postforge-api/internal/repository"
	"postforge-api/internal/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := initLogger(cfg.Server.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting PostForge API",
		zap.Int("port", cfg.Server.Port),
		zap.String("env", cfg.Server.Env),
	)

	// Initialize database
	db, err := database.New(database.Config{
		DSN:             cfg.Database.URL,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	logger.Info("Database connected successfully")

	if err := database.AutoMigrate(db); err != nil {
		logger.Warn("Failed to run database migrations", zap.Error(err))
	} else {
		logger.Info("Database migrations completed")
	}

	// Initialize Redis; discovery caching is skipped when unavailable
	redisClient, err := database.NewRedis(cfg.Redis)
	if err != nil {
		logger.Warn("Failed to connect to Redis, discovery caching disabled", zap.Error(err))
		redisClient = nil
	} else {
		logger.Info("Redis connected successfully")
	}

	// Initialize metrics
	m := metrics.NewWithLogger(logger)
	logger.Info("Metrics initialized")

	// Initialize notifier client
	var notifier client.NotifierClient
	if cfg.Notifier.ServiceURL != "" {
		notifier = client.NewNotifierClient(
			cfg.Notifier.ServiceURL,
			cfg.Notifier.InternalAPIKey,
			cfg.Notifier.Timeout,
			logger,
			m,
		)
		logger.Info("Notifier client initialized", zap.String("url", cfg.Notifier.ServiceURL))
	} else {
		notifier = client.NewNoOpNotifierClient()
		logger.Warn("Notifier service URL not configured, email notifications disabled")
	}

	// Schedule the nightly cleanup of soft-deleted forms
	cleanupJob := job.NewCleanupJob(repository.NewFormRepository(db), cfg.App.CleanupDays, logger)
	scheduler := cron.New()
	if _, err := scheduler.AddJob("0 3 * * *", cleanupJob); err != nil {
		logger.Error("Failed to schedule cleanup job", zap.Error(err))
	} else {
		scheduler.Start()
		logger.Info("Cleanup job scheduled", zap.Int("retention_days", cfg.App.CleanupDays))
	}

	// Setup router with all dependencies
	r := router.Setup(router.Config{
		Cfg:         cfg,
		DB:          db,
		RedisClient: redisClient,
		Notifier:    notifier,
		Metrics:     m,
		Logger:      logger,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("PostForge API started successfully", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	scheduler.Stop()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	if err := database.Close(db); err != nil {
		logger.Error("Failed to close database", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

// initLogger initializes the zap logger with the specified level
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      zapLevel == zapcore.DebugLevel,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}
