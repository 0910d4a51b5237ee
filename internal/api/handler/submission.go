package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mcoot/bingo-challenge-go/internal/api/middleware"
	"github.com/mcoot/bingo-challenge-go/internal/api/request"
	"github.com/mcoot/bingo-challenge-go/internal/api/response"
	"github.com/mcoot/bingo-challenge-go/internal/model"
	"github.com/mcoot/bingo-challenge-go/internal/services/ratelimit"
	"github.com/mcoot/bingo-challenge-go/internal/services/submission"
)

// SubmissionHandler handles submission and leaderboard endpoints
type SubmissionHandler struct {
	submissionService *submission.Service
	limiter           *ratelimit.Service
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(submissionService *submission.Service, limiter *ratelimit.Service) *SubmissionHandler {
	return &SubmissionHandler{
		submissionService: submissionService,
		limiter:           limiter,
	}
}

// Submit handles POST /api/v1/submit
func (h *SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	device := middleware.MustGetDevice(r.Context())

	var req request.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewMissingFieldsError("invalid request body"))
		return
	}

	week := clampText(req.WeekID, model.MaxWeekIDLen)
	name := clampText(req.DisplayName, model.MaxDisplayNameLen)
	team := clampText(req.Team, model.MaxTeamLen)
	maskStr := clampText(req.MarkedMask, model.MaxMaskLen)

	// Presence is checked before the mask parses, so an empty body reports
	// the fields rather than a mask error
	if week == "" || name == "" || maskStr == "" {
		WriteError(w, NewMissingFieldsError("week_id, display_name and marked_mask are required"))
		return
	}

	mask, err := model.ParseMask(maskStr)
	if err != nil {
		WriteError(w, err)
		return
	}

	checks := h.limiter.SubmitChecks(middleware.ClientIP(r), device)
	if err := h.limiter.Guard(r.Context(), checks...); err != nil {
		WriteError(w, err)
		return
	}

	sub, err := h.submissionService.Upsert(r.Context(), model.WeekID(week), device, name, team, mask)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SubmitResponse{
		OK:         true,
		Submission: response.SubmissionFromModel(sub),
	})
}

// Leaderboard handles GET /api/v1/leaderboard
func (h *SubmissionHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	week := clampText(r.URL.Query().Get("week"), model.MaxWeekIDLen)
	if week == "" {
		WriteError(w, NewMissingWeekError())
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw) // Bad limits fall back to the default
	}

	subs, err := h.submissionService.Leaderboard(r.Context(), model.WeekID(week), limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LeaderboardFromModel(model.WeekID(week), subs))
}

// Delete handles POST /api/v1/delete
func (h *SubmissionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	device := middleware.MustGetDevice(r.Context())

	var req request.DeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewMissingFieldsError("invalid request body"))
		return
	}

	week := clampText(req.WeekID, model.MaxWeekIDLen)
	if week == "" {
		WriteError(w, NewMissingWeekIDError())
		return
	}

	if err := h.submissionService.Delete(r.Context(), model.WeekID(week), device); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.DeleteResponse{OK: true})
}

// clampText trims whitespace and enforces a byte-length cap on caller
// text. The cut always lands on a rune boundary so a capped value stays
// valid UTF-8.
func clampText(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
