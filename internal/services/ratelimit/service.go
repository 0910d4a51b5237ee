package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mcoot/bingo-challenge-go/internal/dependencies/clock"
	"github.com/mcoot/bingo-challenge-go/internal/model"
	"github.com/mcoot/bingo-challenge-go/internal/storage"
)

// ErrRateLimited is returned when any limiter check for an operation is
// exhausted. Distinct from validation errors so callers can back off.
var ErrRateLimited = errors.New("rate limited")

// Check is one fixed-window limiter applied to an operation
type Check struct {
	Key    string
	Window time.Duration
	Limit  int
}

// Limits holds the per-operation limiter settings
type Limits struct {
	SubmitPerIP     Check
	SubmitPerDevice Check

	ScanPerIP        Check
	ScanPerDevice    Check
	ScanPerDeviceDay Check

	DefinePerIP Check
}

// DefaultLimits returns the standing limits. The scan limits are the
// tightest since scanning is the expensive upstream path.
func DefaultLimits() Limits {
	return Limits{
		SubmitPerIP:      Check{Window: time.Minute, Limit: 20},
		SubmitPerDevice:  Check{Window: time.Minute, Limit: 10},
		ScanPerIP:        Check{Window: time.Minute, Limit: 6},
		ScanPerDevice:    Check{Window: time.Minute, Limit: 3},
		ScanPerDeviceDay: Check{Window: 24 * time.Hour, Limit: 30},
		DefinePerIP:      Check{Window: time.Minute, Limit: 5},
	}
}

// Service enforces fixed-window rate limits over the storage's atomic
// counter primitive. The service itself holds no mutable state; all
// coordination happens in the store.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	limits  Limits
	logger  *slog.Logger
}

// New creates a new rate limit service
func New(storage storage.Storage, clock clock.Clock, limits Limits, logger *slog.Logger) *Service {
	if limits == (Limits{}) {
		limits = DefaultLimits()
	}
	return &Service{
		storage: storage,
		clock:   clock,
		limits:  limits,
		logger:  logger,
	}
}

// Allow consumes one token from a single check, returning ErrRateLimited
// when the window is exhausted
func (s *Service) Allow(ctx context.Context, check Check) error {
	ok, err := s.storage.ConsumeRateToken(ctx, check.Key, check.Window, check.Limit, s.clock.Now())
	if err != nil {
		return fmt.Errorf("rate limit check failed: %w", err)
	}
	if !ok {
		s.logger.Info("rate limit exceeded", slog.String("key", check.Key))
		return fmt.Errorf("%w: %s", ErrRateLimited, check.Key)
	}
	return nil
}

// Guard applies every check in order; the first exhausted check aborts
// the operation. Tokens consumed by earlier checks are not rolled back,
// which is acceptable for a throttle.
func (s *Service) Guard(ctx context.Context, checks ...Check) error {
	for _, check := range checks {
		if err := s.Allow(ctx, check); err != nil {
			return err
		}
	}
	return nil
}

// SubmitChecks builds the limiter keys guarding a submission
func (s *Service) SubmitChecks(ip string, device model.DeviceID) []Check {
	return []Check{
		withKey(s.limits.SubmitPerIP, fmt.Sprintf("submit:ip:%s", ip)),
		withKey(s.limits.SubmitPerDevice, fmt.Sprintf("submit:dev:%s", device)),
	}
}

// ScanChecks builds the limiter keys guarding a scan, including the
// per-device daily cap (UTC day bucket)
func (s *Service) ScanChecks(ip string, device model.DeviceID) []Check {
	day := s.clock.Now().UTC().Format("20060102")
	return []Check{
		withKey(s.limits.ScanPerIP, fmt.Sprintf("scan:ip:%s", ip)),
		withKey(s.limits.ScanPerDevice, fmt.Sprintf("scan:dev:%s", device)),
		withKey(s.limits.ScanPerDeviceDay, fmt.Sprintf("scan:devday:%s:%s", device, day)),
	}
}

// DefineChecks builds the limiter keys guarding admin card definition
func (s *Service) DefineChecks(ip string) []Check {
	return []Check{
		withKey(s.limits.DefinePerIP, fmt.Sprintf("define:ip:%s", ip)),
	}
}

func withKey(check Check, key string) Check {
	check.Key = key
	return check
}
