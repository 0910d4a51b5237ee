package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/bingo-challenge-go/internal/dependencies/mocks"
	"github.com/mcoot/bingo-challenge-go/internal/storage/memory"
	"github.com/mcoot/bingo-challenge-go/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(memory.New(), s.clock, DefaultLimits(), testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestAllowUpToLimit() {
	check := Check{Key: "op:dev:abc", Window: time.Minute, Limit: 3}

	s.NoError(s.service.Allow(s.ctx, check))
	s.NoError(s.service.Allow(s.ctx, check))
	s.NoError(s.service.Allow(s.ctx, check))
	s.ErrorIs(s.service.Allow(s.ctx, check), ErrRateLimited)
}

func (s *ServiceSuite) TestWindowExpiryResetsCounter() {
	check := Check{Key: "op:dev:abc", Window: time.Minute, Limit: 3}

	for i := 0; i < 3; i++ {
		s.Require().NoError(s.service.Allow(s.ctx, check))
	}
	s.Require().ErrorIs(s.service.Allow(s.ctx, check), ErrRateLimited)

	s.clock.Advance(time.Minute)

	// Fresh window: the counter reset to 1, so two more fit
	s.NoError(s.service.Allow(s.ctx, check))
	s.NoError(s.service.Allow(s.ctx, check))
}

func (s *ServiceSuite) TestIndependentKeys() {
	a := Check{Key: "op:dev:a", Window: time.Minute, Limit: 1}
	b := Check{Key: "op:dev:b", Window: time.Minute, Limit: 1}

	s.NoError(s.service.Allow(s.ctx, a))
	s.NoError(s.service.Allow(s.ctx, b))
	s.ErrorIs(s.service.Allow(s.ctx, a), ErrRateLimited)
}

func (s *ServiceSuite) TestGuardFirstFailureAborts() {
	narrow := Check{Key: "op:dev:x", Window: time.Minute, Limit: 1}
	wide := Check{Key: "op:ip:1.2.3.4", Window: time.Minute, Limit: 10}

	s.Require().NoError(s.service.Guard(s.ctx, wide, narrow))

	// Second pass: the wide check consumes again (no rollback), then the
	// narrow check rejects
	s.ErrorIs(s.service.Guard(s.ctx, wide, narrow), ErrRateLimited)

	// The wide key really was consumed twice
	s.NoError(s.service.Allow(s.ctx, wide))
}

func (s *ServiceSuite) TestSubmitChecksKeying() {
	checks := s.service.SubmitChecks("1.2.3.4", "dev-1")

	s.Require().Len(checks, 2)
	s.Equal("submit:ip:1.2.3.4", checks[0].Key)
	s.Equal("submit:dev:dev-1", checks[1].Key)
	s.Equal(20, checks[0].Limit)
	s.Equal(10, checks[1].Limit)
}

func (s *ServiceSuite) TestScanChecksIncludeDayBucket() {
	checks := s.service.ScanChecks("1.2.3.4", "dev-1")

	s.Require().Len(checks, 3)
	s.Equal("scan:devday:dev-1:20250901", checks[2].Key)
	s.Equal(24*time.Hour, checks[2].Window)

	// Day bucket rolls over at UTC midnight
	s.clock.Advance(13 * time.Hour)
	checks = s.service.ScanChecks("1.2.3.4", "dev-1")
	s.Equal("scan:devday:dev-1:20250902", checks[2].Key)
}
