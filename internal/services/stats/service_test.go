package stats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/bingo-challenge-go/internal/model"
	"github.com/mcoot/bingo-challenge-go/internal/storage/memory"
	"github.com/mcoot/bingo-challenge-go/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.service = New(s.storage, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) addSubmission(device model.DeviceID, mask model.BoardMask, team string, tickets int) {
	err := s.storage.UpsertSubmission(s.ctx, &model.Submission{
		WeekID:      "week1",
		DeviceID:    device,
		DisplayName: string(device),
		Team:        team,
		MarkedMask:  mask,
		Score:       model.ScoreResult{MarkedCount: mask.MarkedCount(), TicketsTotal: tickets},
		UpdatedAt:   time.Now(),
	})
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestEmptyWeek() {
	stats, err := s.service.Compute(s.ctx, "week1")
	s.Require().NoError(err)

	s.Equal(0, stats.TotalSubmissions)
	s.Require().Len(stats.Cells, model.CellCount)
	for _, cell := range stats.Cells {
		s.Equal(0, cell.Count)
		s.Equal(0, cell.Pct, "no division by zero for cell %d", cell.Index)
		s.Nil(cell.Label)
	}
	s.Empty(stats.Teams)
}

func (s *ServiceSuite) TestCellCountsAndPercentages() {
	s.addSubmission("dev-1", model.BoardMask(0b11), "", 2) // cells 0 and 1
	s.addSubmission("dev-2", model.BoardMask(0b10), "", 1) // cell 1 only

	stats, err := s.service.Compute(s.ctx, "week1")
	s.Require().NoError(err)

	s.Equal(2, stats.TotalSubmissions)
	s.Equal(1, stats.Cells[0].Count)
	s.Equal(50, stats.Cells[0].Pct)
	s.Equal(2, stats.Cells[1].Count)
	s.Equal(100, stats.Cells[1].Pct)
	s.Equal(0, stats.Cells[2].Count)
	s.Equal(0, stats.Cells[2].Pct)
}

func (s *ServiceSuite) TestRoundedPercentages() {
	s.addSubmission("dev-1", model.BoardMask(1), "", 1)
	s.addSubmission("dev-2", model.BoardMask(1), "", 1)
	s.addSubmission("dev-3", model.BoardMask(0), "", 0)

	stats, err := s.service.Compute(s.ctx, "week1")
	s.Require().NoError(err)

	s.Equal(67, stats.Cells[0].Pct) // 2/3 rounds to 67
}

func (s *ServiceSuite) TestLabelsFromCardDefinition() {
	cells := make([]string, model.CellCount)
	cells[0] = "Attend a 6am class"
	err := s.storage.SaveCardDefinition(s.ctx, &model.CardDefinition{
		WeekID: "week1",
		Cells:  cells,
	})
	s.Require().NoError(err)

	s.addSubmission("dev-1", model.BoardMask(1), "", 1)

	stats, err := s.service.Compute(s.ctx, "week1")
	s.Require().NoError(err)

	s.Require().NotNil(stats.Cells[0].Label)
	s.Equal("Attend a 6am class", *stats.Cells[0].Label)
	s.Require().NotNil(stats.Cells[1].Label)
	s.Equal("", *stats.Cells[1].Label)
}

func (s *ServiceSuite) TestTeamTotals() {
	s.addSubmission("dev-1", model.BoardMask(1), "red", 10)
	s.addSubmission("dev-2", model.BoardMask(1), "red", 5)
	s.addSubmission("dev-3", model.BoardMask(1), "blue", 20)
	s.addSubmission("dev-4", model.BoardMask(1), "", 7) // teamless, excluded

	stats, err := s.service.Compute(s.ctx, "week1")
	s.Require().NoError(err)

	s.Require().Len(stats.Teams, 2)
	s.Equal(TeamStat{Team: "blue", TicketsTotal: 20, Devices: 1}, stats.Teams[0])
	s.Equal(TeamStat{Team: "red", TicketsTotal: 15, Devices: 2}, stats.Teams[1])
}
