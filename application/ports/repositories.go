package ports

import (
	"context"
	"time"

	"arcana-backend/domain/core/entities"
)

// Selection is one remembered draw inside the recency window
type Selection struct {
	CardName string
	DaysAgo  int
}

// RecencyRepository persists the per-profile, per-day record of selected
// cards. This is a port in hexagonal architecture: the engine only depends on
// the interface, so the concrete backing (DynamoDB, memory, file) stays
// swappable and mockable.
//
// Every implementation is fail-open: an absent or broken backend reads as
// empty history and must never fail the selection path.
type RecencyRepository interface {
	// Record stores the card selected for (profile, calendar day), overwriting
	// any existing entry for that day.
	Record(ctx context.Context, profileID, cardName string, date time.Time) error

	// RecentSelections returns entries within the trailing retention window,
	// most recent first.
	RecentSelections(ctx context.Context, profileID string, reference time.Time) ([]Selection, error)

	// DecayPenalty returns a multiplier in [0.55, 1.0]: 1.0 when the card was
	// not seen in the window, lower the more recently it appeared.
	DecayPenalty(ctx context.Context, profileID, cardName string, reference time.Time) float64

	// PurgeExpired deletes entries older than the retention window.
	PurgeExpired(ctx context.Context, profileID string, reference time.Time) error

	// Clear removes all entries for a profile.
	Clear(ctx context.Context, profileID string) error
}

// CardCatalog provides the static 78-card deck. Implementations load lazily,
// cache for process lifetime, and are safe for concurrent reads.
type CardCatalog interface {
	// Cards returns every catalog entry. A missing or undecodable resource
	// yields a DECK_UNAVAILABLE error, never a panic.
	Cards(ctx context.Context) ([]*entities.Card, error)

	// CardByName looks a card up by its unique name.
	CardByName(ctx context.Context, name string) (*entities.Card, error)
}
