package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/bingo-challenge-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) submission(week model.WeekID, device model.DeviceID) *model.Submission {
	return &model.Submission{
		WeekID:      week,
		DeviceID:    device,
		DisplayName: "Jess",
		MarkedMask:  model.BoardMask(0b111),
		Score:       model.ScoreResult{MarkedCount: 3, TicketsTotal: 3},
		UpdatedAt:   time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (s *StorageSuite) TestUpsertAndGet() {
	sub := s.submission("week1", "dev-1")
	s.Require().NoError(s.storage.UpsertSubmission(s.ctx, sub))

	got, err := s.storage.GetSubmission(s.ctx, "week1", "dev-1")
	s.Require().NoError(err)
	s.Equal(sub, got)
}

func (s *StorageSuite) TestGetReturnsCopy() {
	s.Require().NoError(s.storage.UpsertSubmission(s.ctx, s.submission("week1", "dev-1")))

	got, err := s.storage.GetSubmission(s.ctx, "week1", "dev-1")
	s.Require().NoError(err)
	got.DisplayName = "mutated"

	again, err := s.storage.GetSubmission(s.ctx, "week1", "dev-1")
	s.Require().NoError(err)
	s.Equal("Jess", again.DisplayName)
}

func (s *StorageSuite) TestUpsertReplaces() {
	s.Require().NoError(s.storage.UpsertSubmission(s.ctx, s.submission("week1", "dev-1")))

	updated := s.submission("week1", "dev-1")
	updated.MarkedMask = model.BoardMask(0b11111)
	s.Require().NoError(s.storage.UpsertSubmission(s.ctx, updated))

	got, err := s.storage.GetSubmission(s.ctx, "week1", "dev-1")
	s.Require().NoError(err)
	s.Equal(model.BoardMask(0b11111), got.MarkedMask)
}

func (s *StorageSuite) TestGetNotFound() {
	_, err := s.storage.GetSubmission(s.ctx, "week1", "dev-1")
	s.ErrorIs(err, model.ErrSubmissionNotFound)
}

func (s *StorageSuite) TestListScopedToWeek() {
	s.Require().NoError(s.storage.UpsertSubmission(s.ctx, s.submission("week1", "dev-1")))
	s.Require().NoError(s.storage.UpsertSubmission(s.ctx, s.submission("week1", "dev-2")))
	s.Require().NoError(s.storage.UpsertSubmission(s.ctx, s.submission("week2", "dev-1")))

	subs, err := s.storage.ListSubmissions(s.ctx, "week1")
	s.Require().NoError(err)
	s.Len(subs, 2)

	subs, err = s.storage.ListSubmissions(s.ctx, "week3")
	s.Require().NoError(err)
	s.Empty(subs)
}

func (s *StorageSuite) TestDeleteIsIdempotent() {
	s.Require().NoError(s.storage.UpsertSubmission(s.ctx, s.submission("week1", "dev-1")))

	s.Require().NoError(s.storage.DeleteSubmission(s.ctx, "week1", "dev-1"))
	_, err := s.storage.GetSubmission(s.ctx, "week1", "dev-1")
	s.ErrorIs(err, model.ErrSubmissionNotFound)

	s.Require().NoError(s.storage.DeleteSubmission(s.ctx, "week1", "dev-1"))
}

func (s *StorageSuite) TestCardDefinitions() {
	cells := make([]string, model.CellCount)
	cells[12] = "Free space"
	card := &model.CardDefinition{WeekID: "week1", Cells: cells}

	s.Require().NoError(s.storage.SaveCardDefinition(s.ctx, card))

	got, err := s.storage.GetCardDefinition(s.ctx, "week1")
	s.Require().NoError(err)
	s.Equal("Free space", got.Cells[12])

	_, err = s.storage.GetCardDefinition(s.ctx, "week2")
	s.ErrorIs(err, model.ErrCardNotFound)
}

func (s *StorageSuite) TestSaveCardCopiesCells() {
	cells := make([]string, model.CellCount)
	card := &model.CardDefinition{WeekID: "week1", Cells: cells}
	s.Require().NoError(s.storage.SaveCardDefinition(s.ctx, card))

	cells[0] = "mutated"

	got, err := s.storage.GetCardDefinition(s.ctx, "week1")
	s.Require().NoError(err)
	s.Equal("", got.Cells[0])
}

func (s *StorageSuite) TestRateTokenWindow() {
	now := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		ok, err := s.storage.ConsumeRateToken(s.ctx, "submit:ip:1.2.3.4", time.Minute, 3, now)
		s.Require().NoError(err)
		s.True(ok, "request %d should be allowed", i+1)
	}

	ok, err := s.storage.ConsumeRateToken(s.ctx, "submit:ip:1.2.3.4", time.Minute, 3, now)
	s.Require().NoError(err)
	s.False(ok)

	// Denied requests do not advance the counter, so the window still
	// resets on schedule
	ok, err = s.storage.ConsumeRateToken(s.ctx, "submit:ip:1.2.3.4", time.Minute, 3, now.Add(time.Minute))
	s.Require().NoError(err)
	s.True(ok)
}

func (s *StorageSuite) TestRateTokenKeysIndependent() {
	now := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)

	ok, err := s.storage.ConsumeRateToken(s.ctx, "submit:ip:1.2.3.4", time.Minute, 1, now)
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.storage.ConsumeRateToken(s.ctx, "submit:ip:5.6.7.8", time.Minute, 1, now)
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.storage.ConsumeRateToken(s.ctx, "submit:ip:1.2.3.4", time.Minute, 1, now)
	s.Require().NoError(err)
	s.False(ok)
}
