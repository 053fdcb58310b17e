package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"arcana-backend/application/ports"
	"arcana-backend/domain/config"
	"arcana-backend/infrastructure/persistence"
	"arcana-backend/pkg/utils"
)

// RecencyRepository is an in-memory implementation of the recency port,
// used for tests and the local storage backend. Reads and writes for one
// profile are serialized by a per-profile mutex; different profiles proceed
// independently.
type RecencyRepository struct {
	mu       sync.Mutex
	profiles map[string]*profileHistory
	config   *config.DomainConfig
}

type profileHistory struct {
	mu      sync.Mutex
	byDay   map[string]string // ISO day key -> card name
}

// NewRecencyRepository creates an empty in-memory recency store
func NewRecencyRepository(cfg *config.DomainConfig) *RecencyRepository {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &RecencyRepository{
		profiles: make(map[string]*profileHistory),
		config:   cfg,
	}
}

func (r *RecencyRepository) profile(profileID string) *profileHistory {
	r.mu.Lock()
	defer r.mu.Unlock()
	history, ok := r.profiles[profileID]
	if !ok {
		history = &profileHistory{byDay: make(map[string]string)}
		r.profiles[profileID] = history
	}
	return history
}

// Record stores the selection for (profile, day), overwriting any existing
// entry for that day.
func (r *RecencyRepository) Record(ctx context.Context, profileID, cardName string, date time.Time) error {
	history := r.profile(profileID)
	history.mu.Lock()
	defer history.mu.Unlock()
	history.byDay[utils.DayKey(date)] = cardName
	return nil
}

// RecentSelections returns entries inside the retention window, most recent
// first.
func (r *RecencyRepository) RecentSelections(ctx context.Context, profileID string, reference time.Time) ([]ports.Selection, error) {
	history := r.profile(profileID)
	history.mu.Lock()
	defer history.mu.Unlock()

	selections := make([]ports.Selection, 0, len(history.byDay))
	for dayKey, cardName := range history.byDay {
		day, err := utils.ParseDayKey(dayKey)
		if err != nil {
			// Corrupt entries read as no history.
			continue
		}
		daysAgo := utils.DaysBetween(day, reference)
		if daysAgo < 0 || daysAgo > r.config.RetentionDays {
			continue
		}
		selections = append(selections, ports.Selection{CardName: cardName, DaysAgo: daysAgo})
	}

	sort.Slice(selections, func(a, b int) bool {
		return selections[a].DaysAgo < selections[b].DaysAgo
	})
	return selections, nil
}

// DecayPenalty returns the decay multiplier for a card within the window
func (r *RecencyRepository) DecayPenalty(ctx context.Context, profileID, cardName string, reference time.Time) float64 {
	selections, err := r.RecentSelections(ctx, profileID, reference)
	if err != nil {
		return 1.0
	}
	return persistence.DecayMultiplier(selections, cardName, r.config)
}

// PurgeExpired deletes entries older than the retention window
func (r *RecencyRepository) PurgeExpired(ctx context.Context, profileID string, reference time.Time) error {
	history := r.profile(profileID)
	history.mu.Lock()
	defer history.mu.Unlock()

	for dayKey := range history.byDay {
		day, err := utils.ParseDayKey(dayKey)
		if err != nil {
			delete(history.byDay, dayKey)
			continue
		}
		if utils.DaysBetween(day, reference) > r.config.RetentionDays {
			delete(history.byDay, dayKey)
		}
	}
	return nil
}

// Clear removes all entries for a profile
func (r *RecencyRepository) Clear(ctx context.Context, profileID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.profiles, profileID)
	return nil
}
