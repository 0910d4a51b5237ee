package scoring

import (
	"github.com/mcoot/bingo-challenge-go/internal/model"
)

// Config holds the product constants for ticket scoring. They are
// configuration rather than hardcoded values so the challenge rules can
// change without touching the algorithm.
type Config struct {
	// PointsPerLine is awarded for each complete row, column, or diagonal
	PointsPerLine int
	// FullCardBonus is awarded once when all 25 cells are marked
	FullCardBonus int
	// CountDiagonals includes the two diagonals as bingo lines
	CountDiagonals bool
}

// DefaultConfig returns the standing challenge rules
func DefaultConfig() Config {
	return Config{
		PointsPerLine:  3,
		FullCardBonus:  5,
		CountDiagonals: true,
	}
}

// Service computes scores from board masks. It is pure: no I/O, no
// stored state beyond the rule constants.
type Service struct {
	cfg Config
}

// New creates a new ScoringService. The config is taken as given; a
// zero config scores marked cells only.
func New(cfg Config) *Service {
	return &Service{cfg: cfg}
}

// Compute derives the full score for a mask. Every call site that needs
// a score goes through here so totals match bit-for-bit everywhere;
// client-supplied totals are never trusted.
func (s *Service) Compute(mask model.BoardMask) model.ScoreResult {
	marked := mask.MarkedCount()
	bingos := s.countLines(mask)
	fullCard := marked == model.CellCount

	tickets := marked + s.cfg.PointsPerLine*bingos
	if fullCard {
		tickets += s.cfg.FullCardBonus
	}

	return model.ScoreResult{
		MarkedCount:  marked,
		BingoCount:   bingos,
		FullCard:     fullCard,
		TicketsTotal: tickets,
	}
}

// countLines counts complete rows, columns, and (optionally) diagonals
func (s *Service) countLines(mask model.BoardMask) int {
	lines := 0

	for r := 0; r < model.GridSize; r++ {
		complete := true
		for c := 0; c < model.GridSize; c++ {
			if !mask.IsSet(r*model.GridSize + c) {
				complete = false
				break
			}
		}
		if complete {
			lines++
		}
	}

	for c := 0; c < model.GridSize; c++ {
		complete := true
		for r := 0; r < model.GridSize; r++ {
			if !mask.IsSet(r*model.GridSize + c) {
				complete = false
				break
			}
		}
		if complete {
			lines++
		}
	}

	if s.cfg.CountDiagonals {
		main := true
		anti := true
		for i := 0; i < model.GridSize; i++ {
			if !mask.IsSet(i*model.GridSize + i) {
				main = false
			}
			if !mask.IsSet(i*model.GridSize + (model.GridSize - 1 - i)) {
				anti = false
			}
		}
		if main {
			lines++
		}
		if anti {
			lines++
		}
	}

	return lines
}

// Interface for dependency injection
type ServiceInterface interface {
	Compute(mask model.BoardMask) model.ScoreResult
}

var _ ServiceInterface = (*Service)(nil)
