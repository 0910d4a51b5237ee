package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mcoot/bingo-challenge-go/internal/api/request"
	"github.com/mcoot/bingo-challenge-go/internal/api/response"
	"github.com/mcoot/bingo-challenge-go/internal/model"
	"github.com/mcoot/bingo-challenge-go/internal/services/raffle"
)

// RaffleHandler handles the admin raffle draw endpoint
type RaffleHandler struct {
	raffleService *raffle.Service
}

// NewRaffleHandler creates a new raffle handler
func NewRaffleHandler(raffleService *raffle.Service) *RaffleHandler {
	return &RaffleHandler{
		raffleService: raffleService,
	}
}

// Draw handles POST /api/v1/admin/raffle
func (h *RaffleHandler) Draw(w http.ResponseWriter, r *http.Request) {
	var req request.RaffleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewMissingFieldsError("invalid request body"))
		return
	}

	week := clampText(req.WeekID, model.MaxWeekIDLen)
	if week == "" {
		WriteError(w, NewMissingWeekError())
		return
	}

	result, err := h.raffleService.Draw(r.Context(), model.WeekID(week))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RaffleFromResult(model.WeekID(week), result))
}
