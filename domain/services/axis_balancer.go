package services

import (
	"arcana-backend/domain/config"
	"arcana-backend/domain/core/valueobjects"
)

// AxisBalancer caps axis dominance and redistributes excess energy to weaker
// axes. It is a pure domain service: no state beyond configuration, no side
// effects, safe for concurrent use.
type AxisBalancer struct {
	config *config.DomainConfig
}

// NewAxisBalancer creates a new axis balancer
func NewAxisBalancer(cfg *config.DomainConfig) *AxisBalancer {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &AxisBalancer{config: cfg}
}

// Balance caps every axis at the ceiling, pools a recoverable share of the
// clipped excess, spreads the pool evenly across axes below the average
// threshold, and finally clamps everything to the floor.
//
// Caps are applied in canonical axis order (action, tempo, strategy,
// visibility) in a single pass before any redistribution, so the
// redistribution step always reads the fully capped vector.
func (b *AxisBalancer) Balance(v valueobjects.AxisVector) valueobjects.AxisVector {
	axes := v.Values()
	pool := 0.0

	for i := range axes {
		if axes[i] > b.config.AxisCeiling {
			excess := axes[i] - b.config.AxisCeiling
			pool += excess * b.config.RedistributeEfficiency
			axes[i] = b.config.AxisCeiling
		}
	}

	if pool > 0 {
		var weak []int
		for i := range axes {
			if axes[i] < b.config.AxisAverage {
				weak = append(weak, i)
			}
		}
		if len(weak) > 0 {
			share := pool / float64(len(weak))
			for _, i := range weak {
				axes[i] += share
				if axes[i] > b.config.AxisCeiling {
					axes[i] = b.config.AxisCeiling
				}
			}
		}
	}

	for i := range axes {
		if axes[i] < b.config.AxisFloor {
			axes[i] = b.config.AxisFloor
		}
	}

	return valueobjects.NewAxisVector(axes[0], axes[1], axes[2], axes[3])
}
