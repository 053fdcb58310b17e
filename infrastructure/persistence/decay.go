// Package persistence holds backend-agnostic pieces of the recency store:
// the shared decay curve and the resilience decorator wrapped around any
// concrete RecencyRepository.
package persistence

import (
	"arcana-backend/application/ports"
	"arcana-backend/domain/config"
)

// DecayMultiplier computes the decay curve over a selection window: 1.0 when
// the card is absent from the window, otherwise
// max(floor, 1 - rate*(window+1 - daysAgo)). With the default configuration
// that is max(0.55, 1 - 0.12*(8 - daysAgo)): a card seen yesterday sits at
// the 0.55 floor, one seen seven days ago at 0.88. Same-day reuse is not a
// decay concern; the selector blocks it with a hard step penalty.
//
// Every backend applies this identical curve; selections must be
// most-recent-first as the port guarantees.
func DecayMultiplier(selections []ports.Selection, cardName string, cfg *config.DomainConfig) float64 {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}

	daysAgo := -1
	for _, sel := range selections {
		if sel.CardName == cardName {
			daysAgo = sel.DaysAgo
			break
		}
	}
	if daysAgo < 0 || daysAgo > cfg.RetentionDays {
		return 1.0
	}

	multiplier := 1.0 - cfg.DecayRate*float64(cfg.RetentionDays+1-daysAgo)
	if multiplier < cfg.DecayFloor {
		return cfg.DecayFloor
	}
	return multiplier
}
