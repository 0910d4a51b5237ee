package handler

import (
	"net/http"

	"github.com/mcoot/bingo-challenge-go/internal/api/apierr"
	"github.com/mcoot/bingo-challenge-go/internal/api/middleware"
	"github.com/mcoot/bingo-challenge-go/internal/api/response"
	"github.com/mcoot/bingo-challenge-go/internal/model"
	"github.com/mcoot/bingo-challenge-go/internal/services/ratelimit"
	"github.com/mcoot/bingo-challenge-go/internal/services/scan"
	"github.com/mcoot/bingo-challenge-go/internal/vision"
)

// ScanHandler handles the card photo scan endpoint
type ScanHandler struct {
	scanService   *scan.Service
	visionClient  vision.Client
	limiter       *ratelimit.Service
	enabled       bool
	maxImageBytes int64
}

// NewScanHandler creates a new scan handler
func NewScanHandler(scanService *scan.Service, visionClient vision.Client, limiter *ratelimit.Service, enabled bool, maxImageBytes int64) *ScanHandler {
	return &ScanHandler{
		scanService:   scanService,
		visionClient:  visionClient,
		limiter:       limiter,
		enabled:       enabled,
		maxImageBytes: maxImageBytes,
	}
}

// Scan handles POST /api/v1/scan. Nothing is persisted here: the client
// reviews the detected marks and submits them explicitly.
func (h *ScanHandler) Scan(w http.ResponseWriter, r *http.Request) {
	if !h.enabled {
		WriteError(w, apierr.NewScanningDisabledError())
		return
	}

	device := middleware.MustGetDevice(r.Context())

	checks := h.limiter.ScanChecks(middleware.ClientIP(r), device)
	if err := h.limiter.Guard(r.Context(), checks...); err != nil {
		WriteError(w, err)
		return
	}

	image, contentType, err := readImage(w, r, h.maxImageBytes)
	if err != nil {
		WriteError(w, err)
		return
	}

	week := clampText(r.FormValue("week"), model.MaxWeekIDLen)

	result, err := h.visionClient.DetectMarks(r.Context(), image, contentType)
	if err != nil {
		WriteError(w, err)
		return
	}

	outcome, err := h.scanService.Ingest(r.Context(), model.WeekID(week), device, result)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ScanFromOutcome(outcome))
}
