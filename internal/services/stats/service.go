package stats

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"sort"

	"github.com/mcoot/bingo-challenge-go/internal/model"
	"github.com/mcoot/bingo-challenge-go/internal/storage"
)

// CellStat is the aggregate for one grid position
type CellStat struct {
	Index int
	// Label is the cell's text from the week's card definition, nil for
	// unlabeled weeks
	Label *string
	Count int
	// Pct is round(Count / total * 100), 0 when the week has no
	// submissions
	Pct int
}

// TeamStat is the aggregate for one team tag
type TeamStat struct {
	Team         string
	TicketsTotal int
	Devices      int
}

// WeekStats is the full aggregation for a week
type WeekStats struct {
	WeekID           model.WeekID
	TotalSubmissions int
	Cells            []CellStat
	Teams            []TeamStat
}

// Service aggregates mark frequency and team totals across a week's
// submissions. It runs a full scan each time; weekly volume is small
// (tens to low hundreds), so nothing incremental is kept.
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new StatsService
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// Compute scans every submission for the week and returns per-cell
// frequencies plus team totals
func (s *Service) Compute(ctx context.Context, week model.WeekID) (*WeekStats, error) {
	subs, err := s.storage.ListSubmissions(ctx, week)
	if err != nil {
		return nil, err
	}

	counts := make([]int, model.CellCount)
	teams := make(map[string]*TeamStat)

	for _, sub := range subs {
		for i := 0; i < model.CellCount; i++ {
			if sub.MarkedMask.IsSet(i) {
				counts[i]++
			}
		}

		if sub.Team != "" {
			team, ok := teams[sub.Team]
			if !ok {
				team = &TeamStat{Team: sub.Team}
				teams[sub.Team] = team
			}
			team.TicketsTotal += sub.Score.TicketsTotal
			team.Devices++
		}
	}

	labels := s.cellLabels(ctx, week)

	total := len(subs)
	cells := make([]CellStat, model.CellCount)
	for i := 0; i < model.CellCount; i++ {
		cell := CellStat{Index: i, Count: counts[i]}
		if total > 0 {
			cell.Pct = int(math.Round(float64(counts[i]) / float64(total) * 100))
		}
		if labels != nil {
			label := labels[i]
			cell.Label = &label
		}
		cells[i] = cell
	}

	teamStats := make([]TeamStat, 0, len(teams))
	for _, team := range teams {
		teamStats = append(teamStats, *team)
	}
	sort.Slice(teamStats, func(i, j int) bool {
		if teamStats[i].TicketsTotal != teamStats[j].TicketsTotal {
			return teamStats[i].TicketsTotal > teamStats[j].TicketsTotal
		}
		return teamStats[i].Team < teamStats[j].Team
	})

	return &WeekStats{
		WeekID:           week,
		TotalSubmissions: total,
		Cells:            cells,
		Teams:            teamStats,
	}, nil
}

// cellLabels returns the week's card labels, or nil for unlabeled weeks
func (s *Service) cellLabels(ctx context.Context, week model.WeekID) []string {
	card, err := s.storage.GetCardDefinition(ctx, week)
	if err != nil {
		if !errors.Is(err, model.ErrCardNotFound) {
			s.logger.Warn("could not load card definition for stats",
				slog.String("week", string(week)),
				slog.String("error", err.Error()),
			)
		}
		return nil
	}
	if len(card.Cells) != model.CellCount {
		return nil
	}
	return card.Cells
}
