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
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/ivo225/fplhelper-sub000/internal/api"
	"github.com/ivo225/fplhelper-sub000/internal/api/handlers"
	"github.com/ivo225/fplhelper-sub000/internal/api/middleware"
	"github.com/ivo225/fplhelper-sub000/internal/fpl"
	"github.com/ivo225/fplhelper-sub000/internal/services"
	"github.com/ivo225/fplhelper-sub000/pkg/config"
	"github.com/ivo225/fplhelper-sub000/pkg/database"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Setup logging
	if cfg.IsDevelopment() {
		logrus.SetLevel(logrus.DebugLevel)
		gin.SetMode(gin.DebugMode)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Connect to Redis
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logrus.Fatalf("Failed to parse Redis URL: %v", err)
	}
	redisClient := redis.NewClient(opt)
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logrus.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Initialize services
	cacheService := services.NewCacheService(redisClient)
	fplClient := fpl.NewClient(fpl.ClientConfig{
		BaseURL:        cfg.FPLBaseURL,
		Timeout:        cfg.FPLTimeout,
		RequestsPerSec: cfg.FPLRequestsPerSec,
		BootstrapTTL:   cfg.BootstrapCacheTTL,
		FixturesTTL:    cfg.FixturesCacheTTL,
	}, cacheService, logrus.StandardLogger())

	store := services.NewRecommendationStore(db, logrus.StandardLogger())
	if err := store.CheckSchema(); err != nil {
		// Requests degrade to a schema_issue response; keep serving.
		logrus.Warnf("Recommendation store schema check failed: %v", err)
	}

	recommendationService := services.NewRecommendationService(fplClient, store, cacheService, cfg, logrus.StandardLogger())

	// Background refresher
	if cfg.EnableRefresher {
		interval, err := time.ParseDuration(cfg.RefreshInterval)
		if err != nil {
			logrus.Warnf("Invalid refresh interval, using default 2h: %v", err)
			interval = 2 * time.Hour
		}
		refresher := services.NewRefresherService(recommendationService, logrus.StandardLogger(), interval)
		if err := refresher.Start(); err != nil {
			logrus.Errorf("Failed to start refresher: %v", err)
		}
		defer refresher.Stop()
	}

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(cfg.CorsOrigins))

	// Health check endpoint
	healthHandler := handlers.NewHealthHandler(db)
	router.GET("/health", healthHandler.Health)

	// Setup API routes under /api/v1
	apiV1 := router.Group("/api/v1")
	api.SetupRoutes(apiV1, recommendationService, fplClient, cfg)

	// Setup server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logrus.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}
