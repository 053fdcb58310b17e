package valueobjects

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeTokens_Empty(t *testing.T) {
	assert.Nil(t, MergeTokens(nil, 3.0))
	assert.Nil(t, MergeTokens([]SemanticToken{}, 3.0))
}

func TestMergeTokens_SumsWeightsByName(t *testing.T) {
	tokens := []SemanticToken{
		{Name: "bold", Weight: 1.0},
		{Name: "calm", Weight: 0.5},
		{Name: "Bold", Weight: 1.5}, // merge key is case-insensitive
	}

	merged := MergeTokens(tokens, 10.0)

	require.Len(t, merged, 2)
	assert.Equal(t, "bold", merged[0].Name)
	assert.Equal(t, 2.5, merged[0].Weight)
	assert.Equal(t, "calm", merged[1].Name)
	assert.Equal(t, 0.5, merged[1].Weight)
}

func TestMergeTokens_SoftCapCompression(t *testing.T) {
	tokens := []SemanticToken{
		{Name: "bold", Weight: 2.0},
		{Name: "bold", Weight: 5.0},
	}

	merged := MergeTokens(tokens, 3.0)

	// 7.0 exceeds the cap, so the overage compresses: 3 + sqrt(4) = 5.
	require.Len(t, merged, 1)
	assert.InDelta(t, 3.0+math.Sqrt(4.0), merged[0].Weight, 1e-9)
}

func TestMergeTokens_AtCapIsUntouched(t *testing.T) {
	merged := MergeTokens([]SemanticToken{{Name: "bold", Weight: 3.0}}, 3.0)

	require.Len(t, merged, 1)
	assert.Equal(t, 3.0, merged[0].Weight)
}

func TestMergeTokens_KeepsFirstProvenance(t *testing.T) {
	tokens := []SemanticToken{
		{Name: "warm", Weight: 1.0, Planet: PlanetVenus, Origin: OriginNatal},
		{Name: "warm", Weight: 1.0, Planet: PlanetMars, Origin: OriginTransit},
	}

	merged := MergeTokens(tokens, 10.0)

	require.Len(t, merged, 1)
	assert.Equal(t, PlanetVenus, merged[0].Planet)
	assert.Equal(t, OriginNatal, merged[0].Origin)
	assert.Equal(t, 2.0, merged[0].Weight)
}

func TestSign_IsFire(t *testing.T) {
	assert.True(t, SignAries.IsFire())
	assert.True(t, SignLeo.IsFire())
	assert.True(t, SignSagittarius.IsFire())
	assert.False(t, SignPisces.IsFire())
	assert.False(t, SignNone.IsFire())
}
