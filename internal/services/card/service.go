package card

import (
	"context"
	"log/slog"

	"github.com/mcoot/bingo-challenge-go/internal/dependencies/clock"
	"github.com/mcoot/bingo-challenge-go/internal/model"
	"github.com/mcoot/bingo-challenge-go/internal/storage"
)

// Service manages per-week card definitions (the 25 cell labels)
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new CardService
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// Define inserts or replaces the week's card definition. Cells must
// hold exactly one label per grid position, in row-major order.
func (s *Service) Define(ctx context.Context, week model.WeekID, cells []string) (*model.CardDefinition, error) {
	if len(cells) != model.CellCount {
		return nil, model.ErrInvalidCardCells
	}

	card := &model.CardDefinition{
		WeekID:    week,
		Cells:     cells,
		CreatedAt: s.clock.Now().UTC(),
	}

	if err := s.storage.SaveCardDefinition(ctx, card); err != nil {
		return nil, err
	}

	s.logger.Info("card definition saved", slog.String("week", string(week)))
	return card, nil
}

// Get returns the week's card definition, or ErrCardNotFound
func (s *Service) Get(ctx context.Context, week model.WeekID) (*model.CardDefinition, error) {
	return s.storage.GetCardDefinition(ctx, week)
}
