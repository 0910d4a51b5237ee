package storage

import (
	"context"
	"time"

	"github.com/mcoot/bingo-challenge-go/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Submission operations.
	// UpsertSubmission atomically inserts or fully overwrites the row
	// keyed by (WeekID, DeviceID); concurrent writers for the same key
	// are last-write-wins.
	UpsertSubmission(ctx context.Context, sub *model.Submission) error
	GetSubmission(ctx context.Context, week model.WeekID, device model.DeviceID) (*model.Submission, error)
	// ListSubmissions returns every submission for the week in no
	// particular order; callers sort and bound as needed
	ListSubmissions(ctx context.Context, week model.WeekID) ([]*model.Submission, error)
	// DeleteSubmission is idempotent; deleting an absent row is not an error
	DeleteSubmission(ctx context.Context, week model.WeekID, device model.DeviceID) error

	// Card definition operations
	SaveCardDefinition(ctx context.Context, card *model.CardDefinition) error
	GetCardDefinition(ctx context.Context, week model.WeekID) (*model.CardDefinition, error)

	// ConsumeRateToken applies one fixed-window rate-limit consumption
	// for key as a single atomic read-modify-write: a missing or expired
	// counter resets to count=1 with the window anchored at now; an
	// unexpired counter increments unless that would exceed limit, in
	// which case the stored count is left untouched and false is
	// returned. Counters expire passively by timestamp comparison.
	ConsumeRateToken(ctx context.Context, key string, window time.Duration, limit int, now time.Time) (bool, error)
}
