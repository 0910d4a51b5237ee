package response

import (
	"time"

	"github.com/mcoot/bingo-challenge-go/internal/model"
	"github.com/mcoot/bingo-challenge-go/internal/services/raffle"
	"github.com/mcoot/bingo-challenge-go/internal/services/scan"
	"github.com/mcoot/bingo-challenge-go/internal/services/stats"
)

// Submission represents a stored submission in API responses
type Submission struct {
	WeekID      string            `json:"week_id"`
	DeviceID    string            `json:"device_id"`
	DisplayName string            `json:"display_name"`
	Team        string            `json:"team,omitempty"`
	MarkedMask  string            `json:"marked_mask"`
	Score       model.ScoreResult `json:"score"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// SubmissionFromModel converts a model.Submission to a response Submission
func SubmissionFromModel(s *model.Submission) Submission {
	return Submission{
		WeekID:      string(s.WeekID),
		DeviceID:    string(s.DeviceID),
		DisplayName: s.DisplayName,
		Team:        s.Team,
		MarkedMask:  s.MarkedMask.String(),
		Score:       s.Score,
		UpdatedAt:   s.UpdatedAt,
	}
}

// SubmitResponse is the response for a successful submit
type SubmitResponse struct {
	OK         bool       `json:"ok"`
	Submission Submission `json:"submission"`
}

// LeaderboardRow is one leaderboard entry; device ids stay private
type LeaderboardRow struct {
	DisplayName  string    `json:"display_name"`
	Team         string    `json:"team,omitempty"`
	TicketsTotal int       `json:"tickets_total"`
	MarkedCount  int       `json:"marked_count"`
	BingoCount   int       `json:"bingo_count"`
	FullCard     bool      `json:"full_card"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LeaderboardResponse is the response for the leaderboard endpoint
type LeaderboardResponse struct {
	WeekID string           `json:"week_id"`
	Rows   []LeaderboardRow `json:"rows"`
}

// LeaderboardFromModel builds a leaderboard response from ordered rows
func LeaderboardFromModel(week model.WeekID, subs []*model.Submission) LeaderboardResponse {
	rows := make([]LeaderboardRow, 0, len(subs))
	for _, sub := range subs {
		rows = append(rows, LeaderboardRow{
			DisplayName:  sub.DisplayName,
			Team:         sub.Team,
			TicketsTotal: sub.Score.TicketsTotal,
			MarkedCount:  sub.Score.MarkedCount,
			BingoCount:   sub.Score.BingoCount,
			FullCard:     sub.Score.FullCard,
			UpdatedAt:    sub.UpdatedAt,
		})
	}
	return LeaderboardResponse{WeekID: string(week), Rows: rows}
}

// CellStat is the per-cell aggregate in stats responses
type CellStat struct {
	Index int     `json:"idx"`
	Label *string `json:"label,omitempty"`
	Count int     `json:"count"`
	Pct   int     `json:"pct"`
}

// TeamStat is the per-team aggregate in stats responses
type TeamStat struct {
	Team         string `json:"team"`
	TicketsTotal int    `json:"tickets_total"`
	Devices      int    `json:"devices"`
}

// StatsResponse is the response for the stats endpoint
type StatsResponse struct {
	WeekID           string     `json:"week_id"`
	TotalSubmissions int        `json:"total_submissions"`
	Cells            []CellStat `json:"cells"`
	Teams            []TeamStat `json:"teams"`
}

// StatsFromModel converts a stats.WeekStats to a StatsResponse
func StatsFromModel(s *stats.WeekStats) StatsResponse {
	cells := make([]CellStat, 0, len(s.Cells))
	for _, cell := range s.Cells {
		cells = append(cells, CellStat{
			Index: cell.Index,
			Label: cell.Label,
			Count: cell.Count,
			Pct:   cell.Pct,
		})
	}
	teams := make([]TeamStat, 0, len(s.Teams))
	for _, team := range s.Teams {
		teams = append(teams, TeamStat{
			Team:         team.Team,
			TicketsTotal: team.TicketsTotal,
			Devices:      team.Devices,
		})
	}
	return StatsResponse{
		WeekID:           string(s.WeekID),
		TotalSubmissions: s.TotalSubmissions,
		Cells:            cells,
		Teams:            teams,
	}
}

// CardResponse is the response for card definition endpoints
type CardResponse struct {
	WeekID    string    `json:"week_id"`
	Cells     []string  `json:"cells"`
	CreatedAt time.Time `json:"created_at"`
}

// CardFromModel converts a model.CardDefinition to a CardResponse
func CardFromModel(c *model.CardDefinition) CardResponse {
	return CardResponse{
		WeekID:    string(c.WeekID),
		Cells:     c.Cells,
		CreatedAt: c.CreatedAt,
	}
}

// ScanCell is one detected cell in a scan response
type ScanCell struct {
	Row int `json:"r"`
	Col int `json:"c"`
}

// ScanResponse is the response for the scan endpoint. MergedMask folds
// the detection into the device's stored marks so clients can apply it
// as-is.
type ScanResponse struct {
	WeekID      string     `json:"week_id,omitempty"`
	MarkedCells []ScanCell `json:"marked_cells"`
	MergedMask  string     `json:"merged_mask"`
	Confidence  float64    `json:"confidence"`
	Notes       string     `json:"notes,omitempty"`
}

// ScanFromOutcome converts a scan.Outcome to a ScanResponse
func ScanFromOutcome(o *scan.Outcome) ScanResponse {
	cells := make([]ScanCell, 0, len(o.Cells))
	for _, pos := range o.Cells {
		cells = append(cells, ScanCell{Row: pos.Row, Col: pos.Col})
	}
	return ScanResponse{
		WeekID:      string(o.Week),
		MarkedCells: cells,
		MergedMask:  o.Merged.String(),
		Confidence:  o.Confidence,
		Notes:       o.Notes,
	}
}

// RaffleResponse is the response for a raffle draw
type RaffleResponse struct {
	WeekID       string `json:"week_id"`
	Winner       string `json:"winner"`
	WinnerDevice string `json:"winner_device"`
	Tickets      int    `json:"tickets"`
	TotalTickets int    `json:"total_tickets"`
	Entrants     int    `json:"entrants"`
}

// RaffleFromResult converts a raffle.Result to a RaffleResponse
func RaffleFromResult(week model.WeekID, r *raffle.Result) RaffleResponse {
	return RaffleResponse{
		WeekID:       string(week),
		Winner:       r.Winner.DisplayName,
		WinnerDevice: string(r.Winner.DeviceID),
		Tickets:      r.Winner.Score.TicketsTotal,
		TotalTickets: r.TotalTickets,
		Entrants:     r.Entrants,
	}
}

// DeleteResponse is the response for a delete request
type DeleteResponse struct {
	OK bool `json:"ok"`
}
