package valueobjects

import (
	"fmt"
	"math"
)

// AxisVector is a value object holding the four scalar dimensions that
// summarize a day's behavioral tone. Each axis is semantically bounded to
// [1,10] after normalization. The vector is immutable; transforms return a
// new value.
type AxisVector struct {
	action     float64
	tempo      float64
	strategy   float64
	visibility float64
}

// NewAxisVector creates an axis vector from raw axis values
func NewAxisVector(action, tempo, strategy, visibility float64) AxisVector {
	return AxisVector{
		action:     action,
		tempo:      tempo,
		strategy:   strategy,
		visibility: visibility,
	}
}

// Action returns the action axis
func (v AxisVector) Action() float64 { return v.action }

// Tempo returns the tempo axis
func (v AxisVector) Tempo() float64 { return v.tempo }

// Strategy returns the strategy axis
func (v AxisVector) Strategy() float64 { return v.strategy }

// Visibility returns the visibility axis
func (v AxisVector) Visibility() float64 { return v.visibility }

// Values returns the axes in canonical order (action, tempo, strategy,
// visibility).
func (v AxisVector) Values() [4]float64 {
	return [4]float64{v.action, v.tempo, v.strategy, v.visibility}
}

// Kinetic returns the day's kinetic score, the average of action and tempo.
// Filter strictness and suit boosts key off this value.
func (v AxisVector) Kinetic() float64 {
	return (v.action + v.tempo) / 2
}

// Scale multiplies each axis by the matching factor and returns the result
func (v AxisVector) Scale(action, tempo, strategy, visibility float64) AxisVector {
	return AxisVector{
		action:     v.action * action,
		tempo:      v.tempo * tempo,
		strategy:   v.strategy * strategy,
		visibility: v.visibility * visibility,
	}
}

// Clamp bounds every axis to [min, max] and returns the result
func (v AxisVector) Clamp(min, max float64) AxisVector {
	return AxisVector{
		action:     clamp(v.action, min, max),
		tempo:      clamp(v.tempo, min, max),
		strategy:   clamp(v.strategy, min, max),
		visibility: clamp(v.visibility, min, max),
	}
}

// DistanceTo returns the Euclidean distance between two vectors in 4-D axis
// space.
func (v AxisVector) DistanceTo(other AxisVector) float64 {
	da := v.action - other.action
	dt := v.tempo - other.tempo
	ds := v.strategy - other.strategy
	dv := v.visibility - other.visibility
	return math.Sqrt(da*da + dt*dt + ds*ds + dv*dv)
}

// AbsDifferenceSum returns the sum of absolute per-axis differences
func (v AxisVector) AbsDifferenceSum(other AxisVector) float64 {
	return math.Abs(v.action-other.action) +
		math.Abs(v.tempo-other.tempo) +
		math.Abs(v.strategy-other.strategy) +
		math.Abs(v.visibility-other.visibility)
}

// EqualsWithin checks per-axis equality within a floating tolerance
func (v AxisVector) EqualsWithin(other AxisVector, tolerance float64) bool {
	return math.Abs(v.action-other.action) <= tolerance &&
		math.Abs(v.tempo-other.tempo) <= tolerance &&
		math.Abs(v.strategy-other.strategy) <= tolerance &&
		math.Abs(v.visibility-other.visibility) <= tolerance
}

// String returns a compact representation for logging
func (v AxisVector) String() string {
	return fmt.Sprintf("axes(action=%.2f tempo=%.2f strategy=%.2f visibility=%.2f)",
		v.action, v.tempo, v.strategy, v.visibility)
}

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
