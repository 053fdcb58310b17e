package persistence

import (
	"context"
	"math"
	"math/rand"
	"time"

	"arcana-backend/application/ports"
	pkgerrors "arcana-backend/pkg/errors"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// RetryConfig configures retry behavior for recency store operations.
// Persistence here is best-effort by contract, so retries are bounded and
// short: a draw must never hang on its history.
type RetryConfig struct {
	MaxRetries    int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
	JitterFactor  float64
}

// DefaultRetryConfig returns sensible defaults for retry configuration
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:    3,
		InitialDelay:  100 * time.Millisecond,
		MaxDelay:      2 * time.Second,
		BackoffFactor: 2.0,
		JitterFactor:  0.1,
	}
}

// RetryRecencyRepository decorates a RecencyRepository with bounded retry
// (exponential backoff + jitter) and a circuit breaker. Transient backend
// failures are retried; a tripped breaker or exhausted retries surface a
// STORE_UNAVAILABLE error, which every caller treats as empty history.
type RetryRecencyRepository struct {
	inner   ports.RecencyRepository
	config  RetryConfig
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

// NewRetryRecencyRepository creates a new resilience decorator around inner
func NewRetryRecencyRepository(inner ports.RecencyRepository, config RetryConfig, logger *zap.Logger) *RetryRecencyRepository {
	if logger == nil {
		logger = zap.NewNop()
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "recency-store",
		MaxRequests: 5,
		Interval:    30 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= 0.8
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &RetryRecencyRepository{
		inner:   inner,
		config:  config,
		breaker: breaker,
		logger:  logger,
	}
}

// Record retries the write; a PutItem on the same key is idempotent so
// retrying is safe.
func (r *RetryRecencyRepository) Record(ctx context.Context, profileID, cardName string, date time.Time) error {
	return r.execute(ctx, "record", func() error {
		return r.inner.Record(ctx, profileID, cardName, date)
	})
}

// RecentSelections retries the read
func (r *RetryRecencyRepository) RecentSelections(ctx context.Context, profileID string, reference time.Time) ([]ports.Selection, error) {
	var selections []ports.Selection
	err := r.execute(ctx, "recent_selections", func() error {
		var innerErr error
		selections, innerErr = r.inner.RecentSelections(ctx, profileID, reference)
		return innerErr
	})
	if err != nil {
		return nil, err
	}
	return selections, nil
}

// DecayPenalty never fails by contract; the inner implementation already
// returns 1.0 on backend trouble, so no retry wrapping is needed.
func (r *RetryRecencyRepository) DecayPenalty(ctx context.Context, profileID, cardName string, reference time.Time) float64 {
	return r.inner.DecayPenalty(ctx, profileID, cardName, reference)
}

// PurgeExpired retries the housekeeping delete
func (r *RetryRecencyRepository) PurgeExpired(ctx context.Context, profileID string, reference time.Time) error {
	return r.execute(ctx, "purge_expired", func() error {
		return r.inner.PurgeExpired(ctx, profileID, reference)
	})
}

// Clear retries the profile wipe
func (r *RetryRecencyRepository) Clear(ctx context.Context, profileID string) error {
	return r.execute(ctx, "clear", func() error {
		return r.inner.Clear(ctx, profileID)
	})
}

func (r *RetryRecencyRepository) execute(ctx context.Context, operation string, fn func() error) error {
	_, err := r.breaker.Execute(func() (interface{}, error) {
		return nil, r.retry(ctx, operation, fn)
	})
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return pkgerrors.NewStoreUnavailableError("recency store circuit open").WithCause(err)
	}
	return err
}

func (r *RetryRecencyRepository) retry(ctx context.Context, operation string, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt <= r.config.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := r.backoffDelay(attempt)
			r.logger.Debug("retrying recency store operation",
				zap.String("operation", operation),
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay),
				zap.Error(lastErr),
			)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !pkgerrors.IsRetryable(lastErr) {
			return lastErr
		}
	}
	return pkgerrors.NewStoreUnavailableError("recency store retries exhausted").WithCause(lastErr)
}

func (r *RetryRecencyRepository) backoffDelay(attempt int) time.Duration {
	delay := float64(r.config.InitialDelay) * math.Pow(r.config.BackoffFactor, float64(attempt-1))
	if max := float64(r.config.MaxDelay); delay > max {
		delay = max
	}
	// backoffDelay runs concurrently across profiles; the global source locks.
	jitter := delay * r.config.JitterFactor * (rand.Float64()*2 - 1)
	return time.Duration(delay + jitter)
}
