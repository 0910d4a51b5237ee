package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// SubmissionTTL bounds how long submissions and week indexes live.
	// Zero means no expiry; challenge data is kept for the whole season.
	SubmissionTTL time.Duration

	// CardTTL bounds card definition lifetime. Zero means no expiry.
	CardTTL time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:           "redis://localhost:6379",
		PoolSize:      10,
		MinIdleConns:  2,
		SubmissionTTL: 0,
		CardTTL:       0,
	}
}
