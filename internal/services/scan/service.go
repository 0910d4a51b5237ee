package scan

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mcoot/bingo-challenge-go/internal/model"
	"github.com/mcoot/bingo-challenge-go/internal/storage"
)

// Outcome is the server-side interpretation of one vision result
type Outcome struct {
	// Week is the effective week the scan applies to; empty if neither
	// the caller nor the card photo named one
	Week model.WeekID
	// Cells are the in-range detected positions, invalid entries dropped
	Cells []model.Position
	// Detected is the mask built from Cells alone
	Detected model.BoardMask
	// Merged is Detected OR'd with the device's stored mask for the
	// week, so a scan never unmarks a manually marked cell
	Merged model.BoardMask
	// Confidence and Notes pass through from the vision model
	Confidence float64
	Notes      string
}

// Service turns raw vision results into masks. The vision model's
// output is untrusted: individual bad cells degrade gracefully rather
// than failing the scan.
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new ScanService
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// Ingest validates the vision result for a device. requestedWeek (when
// non-empty) wins over the week read off the card photo.
func (s *Service) Ingest(ctx context.Context, requestedWeek model.WeekID, device model.DeviceID, result *model.ScanResult) (*Outcome, error) {
	week := requestedWeek
	if week == "" {
		week = model.WeekID(result.Week)
	}

	var detected model.BoardMask
	var cells []model.Position
	dropped := 0
	for _, pos := range result.Cells {
		if !pos.IsValid() {
			dropped++
			continue
		}
		detected = detected.Set(pos.Index(), true)
		cells = append(cells, pos)
	}
	if dropped > 0 {
		s.logger.Warn("scan result contained out-of-range cells",
			slog.String("device", string(device)),
			slog.Int("dropped", dropped),
		)
	}

	merged := detected
	if week != "" {
		existing, err := s.storage.GetSubmission(ctx, week, device)
		switch {
		case err == nil:
			merged = existing.MarkedMask.Merge(detected)
		case errors.Is(err, model.ErrSubmissionNotFound):
			// First scan for this week; nothing to merge
		default:
			return nil, err
		}
	}

	return &Outcome{
		Week:       week,
		Cells:      cells,
		Detected:   detected,
		Merged:     merged,
		Confidence: result.Confidence,
		Notes:      result.Notes,
	}, nil
}
