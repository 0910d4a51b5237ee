package redis

import (
	"fmt"

	"github.com/mcoot/bingo-challenge-go/internal/model"
)

// Key prefix for all challenge data
const keyPrefix = "bingo"

// submissionKey returns the Redis key for a Submission
func submissionKey(week model.WeekID, device model.DeviceID) string {
	return fmt.Sprintf("%s:submission:%s:%s", keyPrefix, week, device)
}

// submissionsForWeekIndexKey returns the Redis key for the SET of
// submission keys for a week
func submissionsForWeekIndexKey(week model.WeekID) string {
	return fmt.Sprintf("%s:idx:submissions_for_week:%s", keyPrefix, week)
}

// cardKey returns the Redis key for a CardDefinition
func cardKey(week model.WeekID) string {
	return fmt.Sprintf("%s:card:%s", keyPrefix, week)
}

// rateCounterKey returns the Redis key for a rate-limit counter
func rateCounterKey(key string) string {
	return fmt.Sprintf("%s:ratelimit:%s", keyPrefix, key)
}
