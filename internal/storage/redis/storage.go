package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/bingo-challenge-go/internal/model"
	"github.com/mcoot/bingo-challenge-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Submission operations

func (s *Storage) UpsertSubmission(ctx context.Context, sub *model.Submission) error {
	data, err := json.Marshal(sub)
	if err != nil {
		return err
	}

	subKey := submissionKey(sub.WeekID, sub.DeviceID)
	indexKey := submissionsForWeekIndexKey(sub.WeekID)

	// The SET fully replaces the row, so a racing double-submit from the
	// same device resolves last-write-wins
	pipe := s.client.Pipeline()
	pipe.Set(ctx, subKey, data, s.cfg.SubmissionTTL)
	pipe.SAdd(ctx, indexKey, subKey)
	if s.cfg.SubmissionTTL > 0 {
		pipe.Expire(ctx, indexKey, s.cfg.SubmissionTTL) // Keep index TTL in sync
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetSubmission(ctx context.Context, week model.WeekID, device model.DeviceID) (*model.Submission, error) {
	data, err := s.client.Get(ctx, submissionKey(week, device)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSubmissionNotFound
		}
		return nil, err
	}

	var sub model.Submission
	if err := json.Unmarshal(data, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *Storage) ListSubmissions(ctx context.Context, week model.WeekID) ([]*model.Submission, error) {
	indexKey := submissionsForWeekIndexKey(week)

	subKeys, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, err
	}

	if len(subKeys) == 0 {
		return []*model.Submission{}, nil
	}

	values, err := s.client.MGet(ctx, subKeys...).Result()
	if err != nil {
		return nil, err
	}

	subs := make([]*model.Submission, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Submission may have expired or been deleted
		}
		var sub model.Submission
		if err := json.Unmarshal([]byte(val.(string)), &sub); err != nil {
			continue // Skip invalid data
		}
		subs = append(subs, &sub)
	}

	return subs, nil
}

func (s *Storage) DeleteSubmission(ctx context.Context, week model.WeekID, device model.DeviceID) error {
	subKey := submissionKey(week, device)
	indexKey := submissionsForWeekIndexKey(week)

	pipe := s.client.Pipeline()
	pipe.Del(ctx, subKey)
	pipe.SRem(ctx, indexKey, subKey)
	_, err := pipe.Exec(ctx)
	return err
}

// Card definition operations

func (s *Storage) SaveCardDefinition(ctx context.Context, card *model.CardDefinition) error {
	data, err := json.Marshal(card)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, cardKey(card.WeekID), data, s.cfg.CardTTL).Err()
}

func (s *Storage) GetCardDefinition(ctx context.Context, week model.WeekID) (*model.CardDefinition, error) {
	data, err := s.client.Get(ctx, cardKey(week)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrCardNotFound
		}
		return nil, err
	}

	var card model.CardDefinition
	if err := json.Unmarshal(data, &card); err != nil {
		return nil, err
	}
	return &card, nil
}
