package catalog

import (
	"context"
	"testing"

	"arcana-backend/domain/core/entities"
	"arcana-backend/domain/core/valueobjects"
	pkgerrors "arcana-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_EmbeddedDeck(t *testing.T) {
	ctx := context.Background()
	service := NewService("", nil)

	cards, err := service.Cards(ctx)
	require.NoError(t, err)
	require.Len(t, cards, 78)

	majors, minors := 0, 0
	suits := map[entities.Suit]int{}
	for _, card := range cards {
		if card.IsMajor() {
			majors++
			assert.Equal(t, entities.SuitNone, card.Suit(), "major %q carries a suit", card.Name())
			assert.Equal(t, entities.RankNone, card.Rank(), "major %q carries a rank", card.Name())
		} else {
			minors++
			suits[card.Suit()]++
			assert.NotEqual(t, entities.RankNone, card.Rank(), "minor %q has no rank", card.Name())
		}
		assert.True(t, card.HasAxisAffinity(), "card %q has no axis affinity", card.Name())
	}

	assert.Equal(t, 22, majors)
	assert.Equal(t, 56, minors)
	for _, suit := range []entities.Suit{entities.SuitWands, entities.SuitCups, entities.SuitSwords, entities.SuitPentacles} {
		assert.Equal(t, 14, suits[suit], "suit %s incomplete", suit)
	}
}

func TestService_CardByName(t *testing.T) {
	ctx := context.Background()
	service := NewService("", nil)

	card, err := service.CardByName(ctx, "The Fool")
	require.NoError(t, err)
	assert.True(t, card.IsMajor())
	assert.Positive(t, card.EnergyAffinity(valueobjects.EnergyPlayful))

	_, err = service.CardByName(ctx, "The Unwritten")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeNotFound))
}

func TestService_ExternalDeckPath(t *testing.T) {
	ctx := context.Background()
	service := NewService("testdata/mini_deck.yaml", nil)

	cards, err := service.Cards(ctx)
	require.NoError(t, err)
	require.Len(t, cards, 2)

	queen, err := service.CardByName(ctx, "Queen of Cups")
	require.NoError(t, err)
	assert.Equal(t, entities.SuitCups, queen.Suit())
	assert.Equal(t, entities.RankQueen, queen.Rank())
	assert.False(t, queen.HasAxisAffinity())
}

func TestService_LoadFailures(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		path string
	}{
		{"missing file", "testdata/no_such_deck.yaml"},
		{"malformed yaml", "testdata/malformed.yaml"},
		{"unknown arcana", "testdata/bad_arcana.yaml"},
		{"duplicate card name", "testdata/duplicate.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewService(tt.path, nil)

			_, err := service.Cards(ctx)
			require.Error(t, err)
			assert.True(t, pkgerrors.IsDeckUnavailable(err))

			// The failure is cached with the load; later calls see the
			// same error instead of retrying.
			_, second := service.Cards(ctx)
			assert.Equal(t, err, second)
		})
	}
}
