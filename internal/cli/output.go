package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mcoot/bingo-challenge-go/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case SubmitResult:
		o.printSubmitResult(v)
	case Leaderboard:
		o.printLeaderboard(v)
	case WeekStats:
		o.printWeekStats(v)
	case Card:
		o.printCard(v)
	case ScanResult:
		o.printScanResult(v)
	case RaffleResult:
		o.printRaffleResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Submission response type (matches API)
type Submission struct {
	WeekID      string            `json:"week_id"`
	DeviceID    string            `json:"device_id"`
	DisplayName string            `json:"display_name"`
	Team        string            `json:"team,omitempty"`
	MarkedMask  string            `json:"marked_mask"`
	Score       model.ScoreResult `json:"score"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// SubmitResult response type
type SubmitResult struct {
	OK         bool       `json:"ok"`
	Submission Submission `json:"submission"`
}

// LeaderboardRow response type
type LeaderboardRow struct {
	DisplayName  string    `json:"display_name"`
	Team         string    `json:"team,omitempty"`
	TicketsTotal int       `json:"tickets_total"`
	MarkedCount  int       `json:"marked_count"`
	BingoCount   int       `json:"bingo_count"`
	FullCard     bool      `json:"full_card"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Leaderboard response type
type Leaderboard struct {
	WeekID string           `json:"week_id"`
	Rows   []LeaderboardRow `json:"rows"`
}

// CellStat response type
type CellStat struct {
	Index int     `json:"idx"`
	Label *string `json:"label,omitempty"`
	Count int     `json:"count"`
	Pct   int     `json:"pct"`
}

// TeamStat response type
type TeamStat struct {
	Team         string `json:"team"`
	TicketsTotal int    `json:"tickets_total"`
	Devices      int    `json:"devices"`
}

// WeekStats response type
type WeekStats struct {
	WeekID           string     `json:"week_id"`
	TotalSubmissions int        `json:"total_submissions"`
	Cells            []CellStat `json:"cells"`
	Teams            []TeamStat `json:"teams"`
}

// Card response type
type Card struct {
	WeekID    string    `json:"week_id"`
	Cells     []string  `json:"cells"`
	CreatedAt time.Time `json:"created_at"`
}

// ScanCell response type
type ScanCell struct {
	Row int `json:"r"`
	Col int `json:"c"`
}

// ScanResult response type
type ScanResult struct {
	WeekID      string     `json:"week_id,omitempty"`
	MarkedCells []ScanCell `json:"marked_cells"`
	MergedMask  string     `json:"merged_mask"`
	Confidence  float64    `json:"confidence"`
	Notes       string     `json:"notes,omitempty"`
}

// RaffleResult response type
type RaffleResult struct {
	WeekID       string `json:"week_id"`
	Winner       string `json:"winner"`
	WinnerDevice string `json:"winner_device"`
	Tickets      int    `json:"tickets"`
	TotalTickets int    `json:"total_tickets"`
	Entrants     int    `json:"entrants"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printSubmitResult(s SubmitResult) {
	fmt.Printf("Submitted for %s as %s\n", s.Submission.WeekID, s.Submission.DisplayName)
	fmt.Printf("Marked: %d  Bingos: %d  Tickets: %d\n",
		s.Submission.Score.MarkedCount, s.Submission.Score.BingoCount, s.Submission.Score.TicketsTotal)
	if s.Submission.Score.FullCard {
		fmt.Println("Full card!")
	}
}

func (o *Output) printLeaderboard(l Leaderboard) {
	fmt.Printf("Leaderboard for %s (%d entries):\n", l.WeekID, len(l.Rows))
	for i, row := range l.Rows {
		teamStr := ""
		if row.Team != "" {
			teamStr = fmt.Sprintf(" [%s]", row.Team)
		}
		fmt.Printf("  %2d. %s%s - %d tickets (%d marked, %d bingos)\n",
			i+1, row.DisplayName, teamStr, row.TicketsTotal, row.MarkedCount, row.BingoCount)
	}
}

func (o *Output) printWeekStats(s WeekStats) {
	fmt.Printf("Stats for %s: %d submissions\n", s.WeekID, s.TotalSubmissions)

	fmt.Println("Cells:")
	for _, cell := range s.Cells {
		if cell.Count == 0 {
			continue
		}
		label := fmt.Sprintf("cell %d", cell.Index)
		if cell.Label != nil && *cell.Label != "" {
			label = *cell.Label
		}
		fmt.Printf("  %s: %d (%d%%)\n", label, cell.Count, cell.Pct)
	}

	if len(s.Teams) > 0 {
		fmt.Println("Teams:")
		for _, team := range s.Teams {
			fmt.Printf("  %s: %d tickets across %d devices\n", team.Team, team.TicketsTotal, team.Devices)
		}
	}
}

func (o *Output) printCard(c Card) {
	fmt.Printf("Card for %s:\n", c.WeekID)
	for i, cell := range c.Cells {
		fmt.Printf("  (%d,%d) %s\n", i/model.GridSize, i%model.GridSize, cell)
	}
}

func (o *Output) printScanResult(s ScanResult) {
	if s.WeekID != "" {
		fmt.Printf("Week: %s\n", s.WeekID)
	}
	fmt.Printf("Detected %d marked cells (confidence %.2f)\n", len(s.MarkedCells), s.Confidence)
	for _, cell := range s.MarkedCells {
		fmt.Printf("  (%d,%d)\n", cell.Row, cell.Col)
	}
	fmt.Printf("Merged mask: %s\n", s.MergedMask)
	if s.Notes != "" {
		fmt.Printf("Notes: %s\n", s.Notes)
	}
}

func (o *Output) printRaffleResult(r RaffleResult) {
	fmt.Printf("Winner for %s: %s (%d tickets)\n", r.WeekID, r.Winner, r.Tickets)
	fmt.Printf("Drawn from %d entrants holding %d tickets\n", r.Entrants, r.TotalTickets)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
