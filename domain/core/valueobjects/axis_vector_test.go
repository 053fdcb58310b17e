package valueobjects

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAxisVector_Accessors(t *testing.T) {
	v := NewAxisVector(1.5, 2.5, 3.5, 4.5)

	assert.Equal(t, 1.5, v.Action())
	assert.Equal(t, 2.5, v.Tempo())
	assert.Equal(t, 3.5, v.Strategy())
	assert.Equal(t, 4.5, v.Visibility())
	assert.Equal(t, [4]float64{1.5, 2.5, 3.5, 4.5}, v.Values())
}

func TestAxisVector_Kinetic(t *testing.T) {
	tests := []struct {
		name     string
		vector   AxisVector
		expected float64
	}{
		{"balanced", NewAxisVector(5, 5, 5, 5), 5.0},
		{"fast day", NewAxisVector(8, 9, 2, 3), 8.5},
		{"slow day", NewAxisVector(2, 3, 8, 8), 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.vector.Kinetic())
		})
	}
}

func TestAxisVector_Scale(t *testing.T) {
	v := NewAxisVector(2, 4, 6, 8).Scale(2, 0.5, 1, 1.25)

	assert.Equal(t, 4.0, v.Action())
	assert.Equal(t, 2.0, v.Tempo())
	assert.Equal(t, 6.0, v.Strategy())
	assert.Equal(t, 10.0, v.Visibility())
}

func TestAxisVector_Clamp(t *testing.T) {
	v := NewAxisVector(-3, 0.5, 5, 14).Clamp(1, 10)

	assert.Equal(t, 1.0, v.Action())
	assert.Equal(t, 1.0, v.Tempo())
	assert.Equal(t, 5.0, v.Strategy())
	assert.Equal(t, 10.0, v.Visibility())
}

func TestAxisVector_DistanceTo(t *testing.T) {
	a := NewAxisVector(1, 1, 1, 1)
	b := NewAxisVector(10, 10, 10, 10)

	assert.Zero(t, a.DistanceTo(a))
	assert.InDelta(t, 18.0, a.DistanceTo(b), 1e-9) // sqrt(4*81)
	assert.InDelta(t, a.DistanceTo(b), b.DistanceTo(a), 1e-9)
}

func TestAxisVector_AbsDifferenceSum(t *testing.T) {
	a := NewAxisVector(1, 2, 3, 4)
	b := NewAxisVector(2, 1, 5, 1)

	assert.InDelta(t, 7.0, a.AbsDifferenceSum(b), 1e-9)
}

func TestAxisVector_EqualsWithin(t *testing.T) {
	a := NewAxisVector(5, 5, 5, 5)
	b := NewAxisVector(5.0001, 4.9999, 5, 5)

	assert.True(t, a.EqualsWithin(b, 0.001))
	assert.False(t, a.EqualsWithin(b, math.SmallestNonzeroFloat64))
}
