package model

import "time"

// WeekID is the opaque token scoping a challenge week (e.g. "week3").
// Mapping wall-clock dates to weeks is the challenge calendar's concern;
// the server only ever receives it as input.
type WeekID string

// DeviceID is the self-asserted, client-generated identity used to key
// submissions. Ownership by device is advisory, not a security boundary.
type DeviceID string

// Field length caps applied to submitted text
const (
	MaxWeekIDLen      = 32
	MaxDisplayNameLen = 40
	MaxTeamLen        = 40
	MaxMaskLen        = 64
)

// ScoreResult is the score derived from a mask. It is always recomputed
// server-side from the submitted mask, never trusted from the client.
type ScoreResult struct {
	MarkedCount  int  `json:"marked_count"`
	BingoCount   int  `json:"bingo_count"`
	FullCard     bool `json:"full_card"`
	TicketsTotal int  `json:"tickets_total"`
}

// Submission is one device's card state for one week.
// Uniquely keyed by (WeekID, DeviceID); resubmitting fully overwrites
// the row (last write wins, no history).
type Submission struct {
	WeekID      WeekID
	DeviceID    DeviceID
	DisplayName string
	Team        string
	MarkedMask  BoardMask
	Score       ScoreResult
	UpdatedAt   time.Time
}
