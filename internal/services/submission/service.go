package submission

import (
	"context"
	"log/slog"
	"sort"

	"github.com/mcoot/bingo-challenge-go/internal/dependencies/clock"
	"github.com/mcoot/bingo-challenge-go/internal/model"
	"github.com/mcoot/bingo-challenge-go/internal/services/scoring"
	"github.com/mcoot/bingo-challenge-go/internal/storage"
)

const (
	// DefaultLeaderboardLimit bounds leaderboard queries when the caller
	// doesn't ask for a specific size
	DefaultLeaderboardLimit = 50
)

// Service manages per-week, per-device submissions. Scores are always
// recomputed from the submitted mask before persisting.
type Service struct {
	storage storage.Storage
	scoring *scoring.Service
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new SubmissionService
func New(storage storage.Storage, scoring *scoring.Service, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		scoring: scoring,
		clock:   clock,
		logger:  logger,
	}
}

// Upsert inserts or fully overwrites the submission keyed by
// (week, device). The later of two racing writes for the same key wins
// outright; score fields are never merged across writes.
func (s *Service) Upsert(ctx context.Context, week model.WeekID, device model.DeviceID, displayName, team string, mask model.BoardMask) (*model.Submission, error) {
	sub := &model.Submission{
		WeekID:      week,
		DeviceID:    device,
		DisplayName: displayName,
		Team:        team,
		MarkedMask:  mask,
		Score:       s.scoring.Compute(mask),
		UpdatedAt:   s.clock.Now().UTC(),
	}

	if err := s.storage.UpsertSubmission(ctx, sub); err != nil {
		return nil, err
	}

	s.logger.Info("submission upserted",
		slog.String("week", string(week)),
		slog.String("device", string(device)),
		slog.Int("tickets", sub.Score.TicketsTotal),
	)

	return sub, nil
}

// Get returns the submission for (week, device), or ErrSubmissionNotFound
func (s *Service) Get(ctx context.Context, week model.WeekID, device model.DeviceID) (*model.Submission, error) {
	return s.storage.GetSubmission(ctx, week, device)
}

// Leaderboard returns the week's submissions ordered by tickets
// descending, ties broken by most recent update first, bounded to limit
// rows. A non-positive limit uses DefaultLeaderboardLimit.
func (s *Service) Leaderboard(ctx context.Context, week model.WeekID, limit int) ([]*model.Submission, error) {
	subs, err := s.storage.ListSubmissions(ctx, week)
	if err != nil {
		return nil, err
	}

	sort.Slice(subs, func(i, j int) bool {
		if subs[i].Score.TicketsTotal != subs[j].Score.TicketsTotal {
			return subs[i].Score.TicketsTotal > subs[j].Score.TicketsTotal
		}
		return subs[i].UpdatedAt.After(subs[j].UpdatedAt)
	})

	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	if len(subs) > limit {
		subs = subs[:limit]
	}

	return subs, nil
}

// Delete removes the device's submission for the week ("remove me from
// the leaderboard"). Idempotent: deleting an absent row succeeds.
func (s *Service) Delete(ctx context.Context, week model.WeekID, device model.DeviceID) error {
	return s.storage.DeleteSubmission(ctx, week, device)
}
