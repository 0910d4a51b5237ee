package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/bingo-challenge-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	client  *goredis.Client
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	mini, err := miniredis.Run()
	s.Require().NoError(err)
	s.mini = mini

	s.client = goredis.NewClient(&goredis.Options{Addr: mini.Addr()})
	s.storage = NewWithClient(s.client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	s.client.Close()
	s.mini.Close()
}

func (s *StorageSuite) submission(week model.WeekID, device model.DeviceID) *model.Submission {
	return &model.Submission{
		WeekID:      week,
		DeviceID:    device,
		DisplayName: "Jess",
		Team:        "red",
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

func (s *StorageSuite) TestUpsertReplaces() {
	s.Require().NoError(s.storage.UpsertSubmission(s.ctx, s.submission("week1", "dev-1")))

	updated := s.submission("week1", "dev-1")
	updated.MarkedMask = model.BoardMask(0b11111)
	updated.Score.MarkedCount = 5
	s.Require().NoError(s.storage.UpsertSubmission(s.ctx, updated))

	got, err := s.storage.GetSubmission(s.ctx, "week1", "dev-1")
	s.Require().NoError(err)
	s.Equal(model.BoardMask(0b11111), got.MarkedMask)

	subs, err := s.storage.ListSubmissions(s.ctx, "week1")
	s.Require().NoError(err)
	s.Len(subs, 1, "replacing a row must not duplicate the index entry")
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

func (s *StorageSuite) TestListSkipsDanglingIndexEntries() {
	s.Require().NoError(s.storage.UpsertSubmission(s.ctx, s.submission("week1", "dev-1")))
	s.Require().NoError(s.storage.UpsertSubmission(s.ctx, s.submission("week1", "dev-2")))

	// Simulate a value expiring out from under its index entry
	s.mini.Del(submissionKey("week1", "dev-2"))

	subs, err := s.storage.ListSubmissions(s.ctx, "week1")
	s.Require().NoError(err)
	s.Require().Len(subs, 1)
	s.Equal(model.DeviceID("dev-1"), subs[0].DeviceID)
}

func (s *StorageSuite) TestDeleteIsIdempotent() {
	s.Require().NoError(s.storage.UpsertSubmission(s.ctx, s.submission("week1", "dev-1")))

	s.Require().NoError(s.storage.DeleteSubmission(s.ctx, "week1", "dev-1"))
	_, err := s.storage.GetSubmission(s.ctx, "week1", "dev-1")
	s.ErrorIs(err, model.ErrSubmissionNotFound)

	subs, err := s.storage.ListSubmissions(s.ctx, "week1")
	s.Require().NoError(err)
	s.Empty(subs)

	s.Require().NoError(s.storage.DeleteSubmission(s.ctx, "week1", "dev-1"))
}

func (s *StorageSuite) TestCardDefinitions() {
	cells := make([]string, model.CellCount)
	cells[12] = "Free space"
	card := &model.CardDefinition{
		WeekID:    "week1",
		Cells:     cells,
		CreatedAt: time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC),
	}

	s.Require().NoError(s.storage.SaveCardDefinition(s.ctx, card))

	got, err := s.storage.GetCardDefinition(s.ctx, "week1")
	s.Require().NoError(err)
	s.Equal(card, got)

	_, err = s.storage.GetCardDefinition(s.ctx, "week2")
	s.ErrorIs(err, model.ErrCardNotFound)
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

	// The stored count stays at the limit even after denials
	count := s.mini.HGet(rateCounterKey("submit:ip:1.2.3.4"), "count")
	s.Equal("3", count)

	ok, err = s.storage.ConsumeRateToken(s.ctx, "submit:ip:1.2.3.4", time.Minute, 3, now.Add(time.Minute))
	s.Require().NoError(err)
	s.True(ok)
}

func (s *StorageSuite) TestRateTokenKeysIndependent() {
	now := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)

	ok, err := s.storage.ConsumeRateToken(s.ctx, "scan:dev:a", time.Minute, 1, now)
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.storage.ConsumeRateToken(s.ctx, "scan:dev:b", time.Minute, 1, now)
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.storage.ConsumeRateToken(s.ctx, "scan:dev:a", time.Minute, 1, now)
	s.Require().NoError(err)
	s.False(ok)
}
