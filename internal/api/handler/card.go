package handler

import (
	"net/http"

	"github.com/mcoot/bingo-challenge-go/internal/api/middleware"
	"github.com/mcoot/bingo-challenge-go/internal/api/response"
	"github.com/mcoot/bingo-challenge-go/internal/model"
	"github.com/mcoot/bingo-challenge-go/internal/services/card"
	"github.com/mcoot/bingo-challenge-go/internal/services/ratelimit"
	"github.com/mcoot/bingo-challenge-go/internal/vision"
)

// CardHandler handles card definition endpoints
type CardHandler struct {
	cardService   *card.Service
	visionClient  vision.Client
	limiter       *ratelimit.Service
	maxImageBytes int64
}

// NewCardHandler creates a new card handler
func NewCardHandler(cardService *card.Service, visionClient vision.Client, limiter *ratelimit.Service, maxImageBytes int64) *CardHandler {
	return &CardHandler{
		cardService:   cardService,
		visionClient:  visionClient,
		limiter:       limiter,
		maxImageBytes: maxImageBytes,
	}
}

// Get handles GET /api/v1/card
func (h *CardHandler) Get(w http.ResponseWriter, r *http.Request) {
	week := clampText(r.URL.Query().Get("week"), model.MaxWeekIDLen)
	if week == "" {
		WriteError(w, NewMissingWeekError())
		return
	}

	def, err := h.cardService.Get(r.Context(), model.WeekID(week))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.CardFromModel(def))
}

// Define handles POST /api/v1/admin/define-card. The week comes in as a
// form field alongside a photo of the card; the cell labels are read off
// the photo.
func (h *CardHandler) Define(w http.ResponseWriter, r *http.Request) {
	checks := h.limiter.DefineChecks(middleware.ClientIP(r))
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
	if week == "" {
		WriteError(w, NewMissingWeekError())
		return
	}

	cells, err := h.visionClient.ReadCardCells(r.Context(), image, contentType)
	if err != nil {
		WriteError(w, err)
		return
	}

	def, err := h.cardService.Define(r.Context(), model.WeekID(week), cells)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.CardFromModel(def))
}
