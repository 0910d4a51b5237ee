package factory

import (
	"time"

	"github.com/mcoot/bingo-challenge-go/internal/dependencies/mocks"
	"github.com/mcoot/bingo-challenge-go/internal/services/ratelimit"
	"github.com/mcoot/bingo-challenge-go/internal/services/scoring"
	"github.com/mcoot/bingo-challenge-go/internal/storage/memory"
	"github.com/mcoot/bingo-challenge-go/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
	MockVision *mocks.MockVision
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	mockVision := mocks.NewMockVision()

	app := newWithDependencies(store, mockClock, mockRandom, mockVision,
		scoring.DefaultConfig(), ratelimit.DefaultLimits(), testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
		MockVision: mockVision,
	}
}
