package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// consumeRateTokenScript runs the fixed-window check-and-consume as one
// atomic server-side step, so concurrent callers on the same key cannot
// interleave between the read and the write. The counter never advances
// past the limit. Wall-clock time is passed in rather than read from
// Redis so the limiter shares the application's clock.
var consumeRateTokenScript = redis.NewScript(`
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])

local current = redis.call('HMGET', KEYS[1], 'count', 'reset_at')
local count = tonumber(current[1])
local reset_at = tonumber(current[2])

if count == nil or reset_at == nil or now >= reset_at then
  redis.call('HSET', KEYS[1], 'count', 1, 'reset_at', now + window)
  redis.call('EXPIRE', KEYS[1], window * 2)
  return 1
end

if count + 1 > limit then
  return 0
end

redis.call('HINCRBY', KEYS[1], 'count', 1)
return 1
`)

// ConsumeRateToken applies one fixed-window consumption for key
func (s *Storage) ConsumeRateToken(ctx context.Context, key string, window time.Duration, limit int, now time.Time) (bool, error) {
	res, err := consumeRateTokenScript.Run(ctx, s.client,
		[]string{rateCounterKey(key)},
		now.Unix(), int64(window.Seconds()), limit,
	).Int()
	if err != nil {
		return false, err
	}
	return res == 1, nil
}
