package scan

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

func (s *ServiceSuite) TestBuildsMaskFromCells() {
	result := &model.ScanResult{
		Cells: []model.Position{
			{Row: 0, Col: 0},
			{Row: 1, Col: 2},
		},
		Confidence: 0.9,
	}

	outcome, err := s.service.Ingest(s.ctx, "week1", "dev-1", result)
	s.Require().NoError(err)

	s.Equal(model.WeekID("week1"), outcome.Week)
	s.True(outcome.Detected.IsSet(0))
	s.True(outcome.Detected.IsSet(7))
	s.Equal(2, outcome.Detected.MarkedCount())
	s.Equal(outcome.Detected, outcome.Merged)
	s.Equal(0.9, outcome.Confidence)
}

func (s *ServiceSuite) TestDropsOutOfRangeCellsWithoutError() {
	result := &model.ScanResult{
		Cells: []model.Position{
			{Row: 5, Col: 0},  // out of range
			{Row: 0, Col: 0},  // valid
			{Row: -1, Col: 3}, // out of range
			{Row: 2, Col: 7},  // out of range
		},
	}

	outcome, err := s.service.Ingest(s.ctx, "week1", "dev-1", result)
	s.Require().NoError(err)

	s.Require().Len(outcome.Cells, 1)
	s.Equal(model.Position{Row: 0, Col: 0}, outcome.Cells[0])
	s.Equal(1, outcome.Detected.MarkedCount())
}

func (s *ServiceSuite) TestMergesWithExistingMask() {
	err := s.storage.UpsertSubmission(s.ctx, &model.Submission{
		WeekID:     "week1",
		DeviceID:   "dev-1",
		MarkedMask: model.BoardMask(0b100), // cell 2 marked manually
		UpdatedAt:  time.Now(),
	})
	s.Require().NoError(err)

	result := &model.ScanResult{
		Cells: []model.Position{{Row: 0, Col: 0}},
	}

	outcome, err := s.service.Ingest(s.ctx, "week1", "dev-1", result)
	s.Require().NoError(err)

	s.Equal(model.BoardMask(0b001), outcome.Detected)
	s.Equal(model.BoardMask(0b101), outcome.Merged, "manual mark survives the merge")
}

func (s *ServiceSuite) TestDetectedWeekUsedWhenCallerOmitsIt() {
	result := &model.ScanResult{
		Week:  "week4",
		Cells: []model.Position{{Row: 0, Col: 1}},
	}

	outcome, err := s.service.Ingest(s.ctx, "", "dev-1", result)
	s.Require().NoError(err)
	s.Equal(model.WeekID("week4"), outcome.Week)
}

func (s *ServiceSuite) TestRequestedWeekWinsOverDetected() {
	result := &model.ScanResult{Week: "week4"}

	outcome, err := s.service.Ingest(s.ctx, "week2", "dev-1", result)
	s.Require().NoError(err)
	s.Equal(model.WeekID("week2"), outcome.Week)
}

func (s *ServiceSuite) TestEmptyScan() {
	outcome, err := s.service.Ingest(s.ctx, "week1", "dev-1", &model.ScanResult{})
	s.Require().NoError(err)

	s.Empty(outcome.Cells)
	s.Equal(model.BoardMask(0), outcome.Detected)
	s.Equal(model.BoardMask(0), outcome.Merged)
}
