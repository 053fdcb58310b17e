package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVibeBreakdown(t *testing.T) {
	tests := []struct {
		name    string
		points  [6]int // classic, playful, romantic, utility, drama, edge
		wantErr bool
	}{
		{"valid default shape", [6]int{4, 3, 4, 4, 3, 3}, false},
		{"valid with a capped energy", [6]int{10, 3, 2, 2, 2, 2}, false},
		{"valid skewed", [6]int{0, 0, 10, 10, 1, 0}, false},
		{"sum below budget", [6]int{4, 3, 4, 4, 3, 2}, true},
		{"sum above budget", [6]int{4, 4, 4, 4, 3, 3}, true},
		{"negative points", [6]int{-1, 4, 4, 4, 5, 5}, true},
		{"points above cap", [6]int{11, 2, 2, 2, 2, 2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewVibeBreakdown(tt.points[0], tt.points[1], tt.points[2], tt.points[3], tt.points[4], tt.points[5])
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, VibeBudget, b.Sum())
		})
	}
}

func TestDefaultVibeBreakdown(t *testing.T) {
	b := DefaultVibeBreakdown()

	assert.Equal(t, VibeBudget, b.Sum())
	assert.Equal(t, 4, b.Points(EnergyClassic))
	assert.Equal(t, 3, b.Points(EnergyPlayful))
	assert.Equal(t, 4, b.Points(EnergyRomantic))
	assert.Equal(t, 4, b.Points(EnergyUtility))
	assert.Equal(t, 3, b.Points(EnergyDrama))
	assert.Equal(t, 3, b.Points(EnergyEdge))
}

func TestVibeBreakdown_DominantAndSecondary(t *testing.T) {
	tests := []struct {
		name          string
		points        [6]int
		wantDominant  Energy
		wantSecondary Energy
	}{
		{"clear winner", [6]int{2, 2, 9, 4, 2, 2}, EnergyRomantic, EnergyUtility},
		{"dominant tie resolves canonically", [6]int{6, 6, 3, 2, 2, 2}, EnergyClassic, EnergyPlayful},
		{"secondary tie resolves canonically", [6]int{9, 3, 3, 3, 2, 1}, EnergyClassic, EnergyPlayful},
		{"default shape prefers classic", [6]int{4, 3, 4, 4, 3, 3}, EnergyClassic, EnergyRomantic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewVibeBreakdown(tt.points[0], tt.points[1], tt.points[2], tt.points[3], tt.points[4], tt.points[5])
			require.NoError(t, err)

			assert.Equal(t, tt.wantDominant, b.Dominant())
			assert.Equal(t, tt.wantSecondary, b.Secondary())
		})
	}
}
