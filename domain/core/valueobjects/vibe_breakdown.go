package valueobjects

import (
	"fmt"

	pkgerrors "arcana-backend/pkg/errors"
)

// VibeBudget is the fixed number of points distributed across the six
// energies each day.
const VibeBudget = 21

// VibeCap is the per-energy point ceiling.
const VibeCap = 10

// VibeBreakdown is a value object holding the day's six-way energy
// distribution. Invariant: every field is in [0,10] and the fields sum to
// exactly 21. Derived once per day; immutable.
type VibeBreakdown struct {
	points map[Energy]int
}

// NewVibeBreakdown creates a breakdown from per-energy points, enforcing the
// budget and per-field bounds.
func NewVibeBreakdown(classic, playful, romantic, utility, drama, edge int) (VibeBreakdown, error) {
	points := map[Energy]int{
		EnergyClassic:  classic,
		EnergyPlayful:  playful,
		EnergyRomantic: romantic,
		EnergyUtility:  utility,
		EnergyDrama:    drama,
		EnergyEdge:     edge,
	}

	sum := 0
	for _, energy := range AllEnergies() {
		p := points[energy]
		if p < 0 || p > VibeCap {
			return VibeBreakdown{}, pkgerrors.NewValidationError(
				fmt.Sprintf("%s points %d outside [0,%d]", energy, p, VibeCap))
		}
		sum += p
	}
	if sum != VibeBudget {
		return VibeBreakdown{}, pkgerrors.NewValidationError(
			fmt.Sprintf("vibe points sum %d, want %d", sum, VibeBudget))
	}

	return VibeBreakdown{points: points}, nil
}

// DefaultVibeBreakdown returns the fixed fallback distribution used when the
// token pool produces no signal: (4,3,4,4,3,3).
func DefaultVibeBreakdown() VibeBreakdown {
	breakdown, err := NewVibeBreakdown(4, 3, 4, 4, 3, 3)
	if err != nil {
		// The literal satisfies the invariant; reaching here is a programming error.
		panic(err)
	}
	return breakdown
}

// Points returns the day's allocation for one energy
func (b VibeBreakdown) Points(energy Energy) int {
	return b.points[energy]
}

// Sum returns the total allocated points (always VibeBudget for a valid value)
func (b VibeBreakdown) Sum() int {
	sum := 0
	for _, p := range b.points {
		sum += p
	}
	return sum
}

// Dominant returns the energy holding the most points. Ties resolve to the
// earliest energy in canonical order.
func (b VibeBreakdown) Dominant() Energy {
	best := EnergyClassic
	bestPoints := -1
	for _, energy := range AllEnergies() {
		if b.points[energy] > bestPoints {
			best = energy
			bestPoints = b.points[energy]
		}
	}
	return best
}

// Secondary returns the energy holding the second-most points, with the same
// tie-break rule as Dominant.
func (b VibeBreakdown) Secondary() Energy {
	dominant := b.Dominant()
	best := EnergyClassic
	bestPoints := -1
	for _, energy := range AllEnergies() {
		if energy == dominant {
			continue
		}
		if b.points[energy] > bestPoints {
			best = energy
			bestPoints = b.points[energy]
		}
	}
	return best
}

// String returns a compact representation for logging
func (b VibeBreakdown) String() string {
	return fmt.Sprintf("vibes(classic=%d playful=%d romantic=%d utility=%d drama=%d edge=%d)",
		b.points[EnergyClassic], b.points[EnergyPlayful], b.points[EnergyRomantic],
		b.points[EnergyUtility], b.points[EnergyDrama], b.points[EnergyEdge])
}
