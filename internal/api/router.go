package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/bingo-challenge-go/internal/api/handler"
	apimiddleware "github.com/mcoot/bingo-challenge-go/internal/api/middleware"
	"github.com/mcoot/bingo-challenge-go/internal/api/response"
	"github.com/mcoot/bingo-challenge-go/internal/middleware"
	"github.com/mcoot/bingo-challenge-go/internal/services/card"
	"github.com/mcoot/bingo-challenge-go/internal/services/raffle"
	"github.com/mcoot/bingo-challenge-go/internal/services/ratelimit"
	"github.com/mcoot/bingo-challenge-go/internal/services/scan"
	"github.com/mcoot/bingo-challenge-go/internal/services/stats"
	"github.com/mcoot/bingo-challenge-go/internal/services/submission"
	"github.com/mcoot/bingo-challenge-go/internal/vision"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger            *slog.Logger
	SubmissionService *submission.Service
	StatsService      *stats.Service
	CardService       *card.Service
	ScanService       *scan.Service
	RaffleService     *raffle.Service
	Limiter           *ratelimit.Service
	VisionClient      vision.Client

	Geo             apimiddleware.GeoConfig
	Studio          apimiddleware.StudioConfig
	ScanningEnabled bool
	MaxImageBytes   int64
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	submissionHandler := handler.NewSubmissionHandler(cfg.SubmissionService, cfg.Limiter)
	statsHandler := handler.NewStatsHandler(cfg.StatsService)
	cardHandler := handler.NewCardHandler(cfg.CardService, cfg.VisionClient, cfg.Limiter, cfg.MaxImageBytes)
	scanHandler := handler.NewScanHandler(cfg.ScanService, cfg.VisionClient, cfg.Limiter, cfg.ScanningEnabled, cfg.MaxImageBytes)
	raffleHandler := handler.NewRaffleHandler(cfg.RaffleService)

	// Create middleware
	deviceMiddleware := apimiddleware.RequireDevice()
	geoMiddleware := apimiddleware.Geo(cfg.Geo)
	studioMiddleware := apimiddleware.RequireStudioCode(cfg.Studio)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := apimiddleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Read endpoints (no device identity required)
	api.HandleFunc("/leaderboard", submissionHandler.Leaderboard).Methods(http.MethodGet)
	api.HandleFunc("/stats", statsHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/card", cardHandler.Get).Methods(http.MethodGet)

	// Write endpoints require a device id and pass the geo gate
	writes := api.NewRoute().Subrouter()
	writes.Use(geoMiddleware)
	writes.Use(deviceMiddleware)
	writes.HandleFunc("/submit", submissionHandler.Submit).Methods(http.MethodPost)
	writes.HandleFunc("/delete", submissionHandler.Delete).Methods(http.MethodPost)
	writes.HandleFunc("/scan", scanHandler.Scan).Methods(http.MethodPost)

	// Admin endpoints are gated on the studio code
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(studioMiddleware)
	admin.HandleFunc("/define-card", cardHandler.Define).Methods(http.MethodPost)
	admin.HandleFunc("/raffle", raffleHandler.Draw).Methods(http.MethodPost)

	// Geo echo so clients can explain a block to the user
	api.HandleFunc("/geo", geoHandler(cfg.Geo)).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func geoHandler(cfg apimiddleware.GeoConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, http.StatusOK, cfg.Evaluate(r))
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
