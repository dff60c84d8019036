package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pageza/pantrymatch/backend/config"
	"github.com/pageza/pantrymatch/backend/internal/database"
	"github.com/pageza/pantrymatch/backend/internal/logging"
	"github.com/pageza/pantrymatch/backend/internal/middleware"
	"github.com/pageza/pantrymatch/backend/internal/router"
	"github.com/pageza/pantrymatch/backend/internal/server"
	"github.com/pageza/pantrymatch/backend/internal/service"
	"github.com/pageza/pantrymatch/backend/internal/vision"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.Environment.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := database.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	// Redis backs the vision cache and the scan rate limit. Both are
	// skipped when it is unavailable.
	redisClient, err := database.NewRedisClient(cfg, logger)
	if err != nil {
		logger.Warn("redis unavailable, scan cache and rate limit disabled", zap.Error(err))
		redisClient = nil
	}

	// Initialize services
	recipes := service.NewRecipeService(db, logger)
	ingredients := service.NewIngredientService(db, logger)
	preferences := service.NewPreferenceService(db)
	ratings := service.NewRatingService(db)

	deps := router.Dependencies{
		DB:          db,
		Auth:        service.NewAuthService(cfg.JWTSecret),
		Recipes:     recipes,
		Ingredients: ingredients,
		Preferences: preferences,
		Ratings:     ratings,
		Matches:     service.NewMatchService(recipes, logger),
		Suggestions: service.NewSuggestionService(recipes, preferences, ratings, nil, logger),
	}

	if cfg.VisionAPIKey != "" {
		deps.Scans = service.NewScanService(newExtractor(cfg, redisClient, logger), ingredients, logger)
		if redisClient != nil {
			deps.ScanLimiter = middleware.NewScanRateLimiter(redisClient, cfg.ScanRateLimit, cfg.ScanRateWindow, logger)
		}
	} else {
		logger.Warn("VISION_API_KEY not set, ingredient scan disabled")
	}

	if cfg.S3BucketName != "" {
		s3cfg, err := config.NewS3Config(context.Background(), cfg)
		if err != nil {
			logger.Fatal("failed to configure object storage", zap.Error(err))
		}
		deps.Images = service.NewImageService(s3cfg.Client, s3cfg.BucketName, logger)
	} else {
		logger.Warn("S3_BUCKET_NAME not set, recipe image upload disabled")
	}

	// Create and start server
	srv := server.New(cfg, router.SetupRouter(deps, cfg, logger), logger)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)

	// Start server in a goroutine
	go func() {
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or error
	select {
	case err := <-errChan:
		if err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	case sig := <-quit:
		logger.Info("received signal", zap.String("signal", sig.String()))
	}

	// Gracefully shutdown the server
	logger.Info("shutting down server")
	if err := srv.Shutdown(context.Background()); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logger.Info("server stopped")
}

// newExtractor chains the vision client behind a circuit breaker and, when
// redis is available, a result cache.
func newExtractor(cfg *config.Config, redisClient *redis.Client, logger *zap.Logger) vision.Extractor {
	var extractor vision.Extractor = vision.NewClient(vision.ClientConfig{
		BaseURL: cfg.VisionAPIURL,
		APIKey:  cfg.VisionAPIKey,
		Model:   cfg.VisionModel,
		Timeout: cfg.VisionTimeout,
	}, logger)
	extractor = vision.NewBreakerExtractor(extractor, vision.DefaultBreakerSettings, logger)

	if redisClient != nil {
		extractor = vision.NewCachedExtractor(extractor, vision.NewRedisCache(redisClient), cfg.VisionCacheTTL, logger)
	}
	return extractor
}
