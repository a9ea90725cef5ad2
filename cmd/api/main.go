// @title           Ticket Board API
// @version         1.0
// @description     Personal kanban board with tickets, drag-and-drop ordering and draft recovery

// @contact.name   API Support

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "ticket-board-api/docs" // Swagger docs import

	"ticket-board-api/internal/cache"
	"ticket-board-api/internal/client"
	"ticket-board-api/internal/config"
	"ticket-board-api/internal/database"
	"ticket-board-api/internal/handler"
	"ticket-board-api/internal/job"
	"ticket-board-api/internal/metrics"
	"ticket-board-api/internal/repository"
	"ticket-board-api/internal/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := initLogger(cfg.Logger.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Set Gin mode
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Starting Ticket Board API",
		zap.String("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("base_path", cfg.Server.BasePath),
	)

	// Initialize database, retrying in the background on failure so the
	// pod stays alive while the database comes up
	dbConfig := database.Config{
		DSN:             cfg.Database.GetDSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime.Std(),
	}

	db, err := database.New(dbConfig)
	if err != nil {
		logger.Warn("Failed to connect to database on startup, will retry in background",
			zap.Error(err))
		database.NewAsync(dbConfig, 5*time.Second)
	} else {
		logger.Info("Database connected successfully")

		if err := database.SafeAutoMigrateWithRetry(db, logger, 3); err != nil {
			logger.Warn("Failed to run database migrations", zap.Error(err))
		} else {
			logger.Info("Database migrations completed")
		}
	}

	// Initialize metrics
	m := metrics.NewWithLogger(logger)
	logger.Info("Metrics initialized")

	var statsDone chan struct{}
	var businessCollector *metrics.BusinessMetricsCollector
	if db != nil {
		database.RegisterMetricsCallbacks(db, m)
		statsDone = database.StartDBStatsCollector(db, m)
		businessCollector = metrics.NewBusinessMetricsCollector(db, m, logger)
		businessCollector.Start()
	}

	// Initialize Redis for the board cache and the token blacklist
	if err := database.InitRedis(cfg.Redis, logger); err != nil {
		logger.Warn("Failed to connect to Redis, cache and sign-out blacklist degrade gracefully",
			zap.Error(err))
	}
	boardCache := cache.NewBoardCache(database.GetRedis(), logger)
	blacklist := cache.NewTokenBlacklist(database.GetRedis(), logger)

	// Initialize S3 client for avatar uploads
	var s3Client client.S3ClientInterface
	if cfg.S3.Bucket != "" && cfg.S3.Region != "" {
		s3, err := client.NewS3Client(&cfg.S3)
		if err != nil {
			logger.Warn("Failed to initialize S3 client, avatar uploads disabled", zap.Error(err))
		} else {
			s3Client = s3
			logger.Info("S3 client initialized",
				zap.String("bucket", cfg.S3.Bucket),
				zap.String("region", cfg.S3.Region),
			)
		}
	} else {
		logger.Warn("S3 configuration incomplete, avatar uploads disabled")
	}

	// WebSocket hub for live board updates and toasts
	hub := handler.NewHub(logger)
	go hub.Run()

	// Background jobs
	scheduler := cron.New()
	if db != nil {
		userRepo := repository.NewUserRepository(db)
		ticketRepo := repository.NewTicketRepository(db)
		draftRepo := repository.NewDraftRepository(db)

		expiryJob := job.NewExpiryJob(userRepo, ticketRepo, hub, m, logger)
		if _, err := scheduler.AddJob(cfg.Jobs.ExpirySchedule, expiryJob); err != nil {
			logger.Error("Failed to schedule expiry job", zap.Error(err))
		}

		cleanupJob := job.NewCleanupJob(ticketRepo, draftRepo, logger)
		if _, err := scheduler.AddJob(cfg.Jobs.CleanupSchedule, cleanupJob); err != nil {
			logger.Error("Failed to schedule cleanup job", zap.Error(err))
		}

		scheduler.Start()
		logger.Info("Background jobs scheduled",
			zap.String("expiry_schedule", cfg.Jobs.ExpirySchedule),
			zap.String("cleanup_schedule", cfg.Jobs.CleanupSchedule),
		)
	}

	// Setup router with all dependencies
	r := router.Setup(router.Config{
		DB:         db,
		Logger:     logger,
		JWT:        cfg.JWT,
		BasePath:   cfg.Server.BasePath,
		Metrics:    m,
		S3Client:   s3Client,
		BoardCache: boardCache,
		Blacklist:  blacklist,
		Hub:        hub,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout.Std(),
		WriteTimeout: cfg.Server.WriteTimeout.Std(),
	}

	// Start server in goroutine
	go func() {
		logger.Info("Ticket Board API started successfully",
			zap.String("address", srv.Addr),
			zap.String("swagger", fmt.Sprintf("http://localhost:%s/swagger/index.html", cfg.Server.Port)),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Stop background work before draining connections
	scheduler.Stop()
	if businessCollector != nil {
		businessCollector.Stop()
	}
	if statsDone != nil {
		close(statsDone)
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Std())
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
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
