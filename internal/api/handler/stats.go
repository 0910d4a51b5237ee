package handler

import (
	"net/http"

	"github.com/mcoot/bingo-challenge-go/internal/api/response"
	"github.com/mcoot/bingo-challenge-go/internal/model"
	"github.com/mcoot/bingo-challenge-go/internal/services/stats"
)

// StatsHandler handles the weekly stats endpoint
type StatsHandler struct {
	statsService *stats.Service
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsService *stats.Service) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// Get handles GET /api/v1/stats
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	week := clampText(r.URL.Query().Get("week"), model.MaxWeekIDLen)
	if week == "" {
		WriteError(w, NewMissingWeekError())
		return
	}

	weekStats, err := h.statsService.Compute(r.Context(), model.WeekID(week))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.StatsFromModel(weekStats))
}
