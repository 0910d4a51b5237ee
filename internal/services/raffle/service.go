package raffle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/mcoot/bingo-challenge-go/internal/dependencies/random"
	"github.com/mcoot/bingo-challenge-go/internal/model"
	"github.com/mcoot/bingo-challenge-go/internal/storage"
)

// ErrNoEntries indicates a draw was requested for a week where nobody
// has earned any tickets
var ErrNoEntries = errors.New("no raffle entries for week")

// Result describes one completed draw
type Result struct {
	Winner       *model.Submission
	TotalTickets int
	Entrants     int
}

// Service draws weighted raffle winners. Each submission holds as many
// entries as its total ticket count; zero-ticket submissions are not
// entered at all.
type Service struct {
	storage storage.Storage
	random  random.Random
	logger  *slog.Logger
}

// New creates a new RaffleService
func New(storage storage.Storage, random random.Random, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		random:  random,
		logger:  logger,
	}
}

// Draw picks a winner for the week, weighted by tickets
func (s *Service) Draw(ctx context.Context, week model.WeekID) (*Result, error) {
	submissions, err := s.storage.ListSubmissions(ctx, week)
	if err != nil {
		return nil, err
	}

	entrants := make([]*model.Submission, 0, len(submissions))
	total := 0
	for _, sub := range submissions {
		if sub.Score.TicketsTotal <= 0 {
			continue
		}
		entrants = append(entrants, sub)
		total += sub.Score.TicketsTotal
	}
	if total == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoEntries, week)
	}

	// Storage order is unspecified, so fix it before rolling
	sort.Slice(entrants, func(i, j int) bool {
		return entrants[i].DeviceID < entrants[j].DeviceID
	})

	roll := s.random.Intn(total)
	var winner *model.Submission
	for _, sub := range entrants {
		roll -= sub.Score.TicketsTotal
		if roll < 0 {
			winner = sub
			break
		}
	}

	s.logger.Info("raffle drawn",
		slog.String("week", string(week)),
		slog.String("winner", string(winner.DeviceID)),
		slog.Int("total_tickets", total),
		slog.Int("entrants", len(entrants)),
	)

	return &Result{
		Winner:       winner,
		TotalTickets: total,
		Entrants:     len(entrants),
	}, nil
}
