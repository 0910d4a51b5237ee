package memory

import (
	"context"
	"sync"
	"time"

	"github.com/mcoot/bingo-challenge-go/internal/model"
	"github.com/mcoot/bingo-challenge-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	submissions map[submissionKey]*model.Submission
	cards       map[model.WeekID]*model.CardDefinition
	counters    map[string]*rateCounter
}

type submissionKey struct {
	week   model.WeekID
	device model.DeviceID
}

type rateCounter struct {
	count   int
	resetAt time.Time
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		submissions: make(map[submissionKey]*model.Submission),
		cards:       make(map[model.WeekID]*model.CardDefinition),
		counters:    make(map[string]*rateCounter),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Submission operations

func (s *Storage) UpsertSubmission(ctx context.Context, sub *model.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *sub
	s.submissions[submissionKey{week: sub.WeekID, device: sub.DeviceID}] = &copied
	return nil
}

func (s *Storage) GetSubmission(ctx context.Context, week model.WeekID, device model.DeviceID) (*model.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sub, ok := s.submissions[submissionKey{week: week, device: device}]
	if !ok {
		return nil, model.ErrSubmissionNotFound
	}
	copied := *sub
	return &copied, nil
}

func (s *Storage) ListSubmissions(ctx context.Context, week model.WeekID) ([]*model.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	subs := []*model.Submission{}
	for key, sub := range s.submissions {
		if key.week == week {
			copied := *sub
			subs = append(subs, &copied)
		}
	}
	return subs, nil
}

func (s *Storage) DeleteSubmission(ctx context.Context, week model.WeekID, device model.DeviceID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.submissions, submissionKey{week: week, device: device})
	return nil
}

// Card definition operations

func (s *Storage) SaveCardDefinition(ctx context.Context, card *model.CardDefinition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *card
	copied.Cells = make([]string, len(card.Cells))
	copy(copied.Cells, card.Cells)
	s.cards[card.WeekID] = &copied
	return nil
}

func (s *Storage) GetCardDefinition(ctx context.Context, week model.WeekID) (*model.CardDefinition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	card, ok := s.cards[week]
	if !ok {
		return nil, model.ErrCardNotFound
	}
	copied := *card
	return &copied, nil
}

// Rate limit operations

func (s *Storage) ConsumeRateToken(ctx context.Context, key string, window time.Duration, limit int, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counter, ok := s.counters[key]
	if !ok || !now.Before(counter.resetAt) {
		s.counters[key] = &rateCounter{count: 1, resetAt: now.Add(window)}
		return true, nil
	}

	if counter.count+1 > limit {
		// Stored count never advances past the limit
		return false, nil
	}

	counter.count++
	return true, nil
}
