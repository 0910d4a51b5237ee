package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mcoot/bingo-challenge-go/internal/dependencies/clock"
	"github.com/mcoot/bingo-challenge-go/internal/dependencies/random"
	"github.com/mcoot/bingo-challenge-go/internal/services/card"
	"github.com/mcoot/bingo-challenge-go/internal/services/raffle"
	"github.com/mcoot/bingo-challenge-go/internal/services/ratelimit"
	"github.com/mcoot/bingo-challenge-go/internal/services/scan"
	"github.com/mcoot/bingo-challenge-go/internal/services/scoring"
	"github.com/mcoot/bingo-challenge-go/internal/services/stats"
	"github.com/mcoot/bingo-challenge-go/internal/services/submission"
	"github.com/mcoot/bingo-challenge-go/internal/storage"
	"github.com/mcoot/bingo-challenge-go/internal/storage/memory"
	redisstorage "github.com/mcoot/bingo-challenge-go/internal/storage/redis"
	"github.com/mcoot/bingo-challenge-go/internal/vision"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random
	Vision vision.Client

	// Services
	ScoringService    *scoring.Service
	SubmissionService *submission.Service
	StatsService      *stats.Service
	CardService       *card.Service
	ScanService       *scan.Service
	RaffleService     *raffle.Service
	Limiter           *ratelimit.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// ScoringConfig holds the ticket constants (optional)
	// If zero value, defaults to scoring.DefaultConfig()
	ScoringConfig scoring.Config
	// RateLimits holds the per-operation limiter settings (optional)
	// If zero value, defaults to ratelimit.DefaultLimits()
	RateLimits ratelimit.Limits
	// VisionConfig holds the vision upstream settings. An empty APIKey is
	// allowed; scan endpoints will fail upstream until one is set.
	VisionConfig vision.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// A zero ScoringConfig selects the standing defaults; scoring.New
	// itself takes the config verbatim
	scoringCfg := cfg.ScoringConfig
	if scoringCfg == (scoring.Config{}) {
		scoringCfg = scoring.DefaultConfig()
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()
	visionClient := vision.NewOpenAIClient(cfg.VisionConfig, logger)

	return newWithDependencies(store, clk, rnd, visionClient, scoringCfg, cfg.RateLimits, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, visionClient vision.Client, scoringCfg scoring.Config, limits ratelimit.Limits, logger *slog.Logger) *App {
	// Create services
	scoringService := scoring.New(scoringCfg)
	submissionService := submission.New(store, scoringService, clk, logger)
	statsService := stats.New(store, logger)
	cardService := card.New(store, clk, logger)
	scanService := scan.New(store, logger)
	raffleService := raffle.New(store, rnd, logger)
	limiter := ratelimit.New(store, clk, limits, logger)

	return &App{
		Storage:           store,
		Clock:             clk,
		Random:            rnd,
		Vision:            visionClient,
		ScoringService:    scoringService,
		SubmissionService: submissionService,
		StatsService:      statsService,
		CardService:       cardService,
		ScanService:       scanService,
		RaffleService:     raffleService,
		Limiter:           limiter,
	}
}
