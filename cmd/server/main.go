package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/mcoot/bingo-challenge-go/internal/api"
	apimiddleware "github.com/mcoot/bingo-challenge-go/internal/api/middleware"
	"github.com/mcoot/bingo-challenge-go/internal/factory"
	redisstorage "github.com/mcoot/bingo-challenge-go/internal/storage/redis"
	"github.com/mcoot/bingo-challenge-go/internal/vision"
)

func main() {
	// Local development keeps secrets in a .env file
	_ = godotenv.Load()

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	visionCfg := vision.DefaultConfig()
	visionCfg.APIKey = os.Getenv("OPENAI_API_KEY")
	if model := os.Getenv("OPENAI_MODEL"); model != "" {
		visionCfg.Model = model
	}

	cfg := factory.Config{
		Logger:       logger,
		StorageType:  os.Getenv("STORAGE_TYPE"),
		VisionConfig: visionCfg,
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	geo := apimiddleware.DefaultGeoConfig()
	if envBool("ALLOW_ALL_GEO", false) {
		geo.AllowAll = true
	}

	studio := apimiddleware.StudioConfig{
		Hash: os.Getenv("STUDIO_CODE_HASH"),
		Code: os.Getenv("STUDIO_CODE"),
	}
	if !studio.Configured() {
		logger.Warn("no studio code configured; admin endpoints will refuse all requests")
	}

	if visionCfg.APIKey == "" {
		logger.Warn("OPENAI_API_KEY not set; scan and define-card will fail upstream")
	}

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:            logger,
		SubmissionService: app.SubmissionService,
		StatsService:      app.StatsService,
		CardService:       app.CardService,
		ScanService:       app.ScanService,
		RaffleService:     app.RaffleService,
		Limiter:           app.Limiter,
		VisionClient:      app.Vision,
		Geo:               geo,
		Studio:            studio,
		ScanningEnabled:   envBool("SCANNING_ENABLED", true),
		MaxImageBytes:     envInt64("MAX_IMAGE_BYTES", 0),
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	if port := envInt64("PORT", 0); port > 0 {
		serverConfig.Port = int(port)
	}
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}

func envBool(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return parsed
}

func envInt64(key string, defaultVal int64) int64 {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	parsed, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return defaultVal
	}
	return parsed
}
