package persistence

import (
	"context"
	"sync"
	"testing"
	"time"

	"arcana-backend/application/ports"
	pkgerrors "arcana-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyRecency fails the first failCount calls to Record with the configured
// error, then succeeds.
type flakyRecency struct {
	failCount int
	failWith  error
	calls     int
}

func (f *flakyRecency) Record(ctx context.Context, profileID, cardName string, date time.Time) error {
	f.calls++
	if f.calls <= f.failCount {
		return f.failWith
	}
	return nil
}

func (f *flakyRecency) RecentSelections(ctx context.Context, profileID string, reference time.Time) ([]ports.Selection, error) {
	f.calls++
	if f.calls <= f.failCount {
		return nil, f.failWith
	}
	return []ports.Selection{{CardName: "The Fool", DaysAgo: 1}}, nil
}

func (f *flakyRecency) DecayPenalty(ctx context.Context, profileID, cardName string, reference time.Time) float64 {
	return 0.75
}

func (f *flakyRecency) PurgeExpired(ctx context.Context, profileID string, reference time.Time) error {
	return nil
}

func (f *flakyRecency) Clear(ctx context.Context, profileID string) error {
	return nil
}

func fastRetryConfig() RetryConfig {
	cfg := DefaultRetryConfig()
	cfg.InitialDelay = time.Millisecond
	cfg.MaxDelay = 2 * time.Millisecond
	return cfg
}

func TestRetryRecencyRepository_RetriesTransientFailures(t *testing.T) {
	inner := &flakyRecency{
		failCount: 2,
		failWith:  pkgerrors.NewDatabaseError("Record", assertError("throttled")),
	}
	repo := NewRetryRecencyRepository(inner, fastRetryConfig(), nil)

	err := repo.Record(context.Background(), "p1", "The Fool", time.Now())

	require.NoError(t, err)
	assert.Equal(t, 3, inner.calls)
}

func TestRetryRecencyRepository_DoesNotRetryValidation(t *testing.T) {
	inner := &flakyRecency{
		failCount: 5,
		failWith:  pkgerrors.NewValidationError("bad profile"),
	}
	repo := NewRetryRecencyRepository(inner, fastRetryConfig(), nil)

	err := repo.Record(context.Background(), "p1", "The Fool", time.Now())

	require.Error(t, err)
	assert.Equal(t, 1, inner.calls)
	assert.True(t, pkgerrors.IsValidation(err))
}

func TestRetryRecencyRepository_ExhaustionSurfacesStoreUnavailable(t *testing.T) {
	inner := &flakyRecency{
		failCount: 100,
		failWith:  pkgerrors.NewDatabaseError("Record", assertError("throttled")),
	}
	cfg := fastRetryConfig()
	cfg.MaxRetries = 2
	repo := NewRetryRecencyRepository(inner, cfg, nil)

	err := repo.Record(context.Background(), "p1", "The Fool", time.Now())

	require.Error(t, err)
	assert.True(t, pkgerrors.IsStoreUnavailable(err))
	assert.Equal(t, 3, inner.calls) // initial attempt + 2 retries
}

func TestRetryRecencyRepository_ReadsPassThrough(t *testing.T) {
	inner := &flakyRecency{}
	repo := NewRetryRecencyRepository(inner, fastRetryConfig(), nil)

	selections, err := repo.RecentSelections(context.Background(), "p1", time.Now())
	require.NoError(t, err)
	require.Len(t, selections, 1)

	// DecayPenalty is a plain read with a safe in-band default; it is never
	// retried or wrapped.
	assert.Equal(t, 0.75, repo.DecayPenalty(context.Background(), "p1", "The Fool", time.Now()))
}

// failingRecency always fails Record with a retryable error and is safe for
// concurrent use (it holds no mutable state).
type failingRecency struct {
	flakyRecency
}

func (f *failingRecency) Record(ctx context.Context, profileID, cardName string, date time.Time) error {
	return pkgerrors.NewDatabaseError("Record", assertError("throttled"))
}

func TestRetryRecencyRepository_ConcurrentRetries(t *testing.T) {
	// One decorator shared across goroutines, each forcing backoff jitter;
	// run with -race to catch unsynchronized randomness in the delay path.
	cfg := fastRetryConfig()
	cfg.MaxRetries = 1
	repo := NewRetryRecencyRepository(&failingRecency{}, cfg, nil)

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.Record(context.Background(), "p1", "The Fool", time.Now())
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.Error(t, err)
		assert.True(t, pkgerrors.IsStoreUnavailable(err))
	}
}

// assertError is a minimal error for wrapping in tests.
type assertError string

func (e assertError) Error() string { return string(e) }
