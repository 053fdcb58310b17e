package entities

import (
	"fmt"
	"math"
	"strings"

	"arcana-backend/domain/core/valueobjects"
	pkgerrors "arcana-backend/pkg/errors"
)

// ArcanaKind distinguishes the two halves of the deck
type ArcanaKind string

const (
	ArcanaMajor ArcanaKind = "major"
	ArcanaMinor ArcanaKind = "minor"
)

// Suit is a minor-arcana suit. Major arcana cards carry SuitNone.
type Suit string

const (
	SuitNone      Suit = ""
	SuitWands     Suit = "wands"
	SuitCups      Suit = "cups"
	SuitSwords    Suit = "swords"
	SuitPentacles Suit = "pentacles"
)

// Rank is a minor-arcana rank. Major arcana cards carry RankNone.
type Rank string

const (
	RankNone   Rank = ""
	RankAce    Rank = "ace"
	RankTwo    Rank = "two"
	RankThree  Rank = "three"
	RankFour   Rank = "four"
	RankFive   Rank = "five"
	RankSix    Rank = "six"
	RankSeven  Rank = "seven"
	RankEight  Rank = "eight"
	RankNine   Rank = "nine"
	RankTen    Rank = "ten"
	RankPage   Rank = "page"
	RankKnight Rank = "knight"
	RankQueen  Rank = "queen"
	RankKing   Rank = "king"
)

// IsCourt reports whether the rank is a court (archetype) rank
func (r Rank) IsCourt() bool {
	return r == RankPage || r == RankKnight || r == RankQueen || r == RankKing
}

// IsNovice reports whether the rank reads as impulsive/beginner energy
func (r Rank) IsNovice() bool {
	return r == RankAce || r == RankPage || r == RankKnight
}

// AxisAffinity holds a card's affinity with each axis on a [0,100] scale,
// as authored in the catalog resource.
type AxisAffinity struct {
	Action     float64
	Tempo      float64
	Strategy   float64
	Visibility float64
}

// Rescaled maps the [0,100] authoring scale onto the engine's [1,10] axis
// space.
func (a AxisAffinity) Rescaled() valueobjects.AxisVector {
	rescale := func(v float64) float64 { return v/100*9 + 1 }
	return valueobjects.NewAxisVector(
		rescale(a.Action),
		rescale(a.Tempo),
		rescale(a.Strategy),
		rescale(a.Visibility),
	)
}

// maxAxisDistance is the largest possible 4-D distance between two vectors
// whose axes live on [1,10]: sqrt(4 * 9^2).
const maxAxisDistance = 18.0

// neutralSimilarity is used for cards authored without axis affinities.
const neutralSimilarity = 0.5

// Card is a static catalog entry. The catalog is loaded once at process start
// and read-only thereafter, so Card carries no mutators.
type Card struct {
	name           string
	arcana         ArcanaKind
	suit           Suit
	rank           Rank
	keywords       []string
	themes         []string
	energyAffinity map[valueobjects.Energy]float64
	axisAffinity   *AxisAffinity
	description    string
}

// NewCard creates a validated catalog entry
func NewCard(
	name string,
	arcana ArcanaKind,
	suit Suit,
	rank Rank,
	keywords []string,
	themes []string,
	energyAffinity map[valueobjects.Energy]float64,
	axisAffinity *AxisAffinity,
	description string,
) (*Card, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, pkgerrors.NewValidationError("card name cannot be empty")
	}
	if arcana != ArcanaMajor && arcana != ArcanaMinor {
		return nil, pkgerrors.NewValidationError(fmt.Sprintf("card %q has unknown arcana kind %q", name, arcana))
	}
	for energy, affinity := range energyAffinity {
		if !energy.IsValid() {
			return nil, pkgerrors.NewValidationError(fmt.Sprintf("card %q has unknown energy %q", name, energy))
		}
		if affinity < 0 || affinity > 1 {
			return nil, pkgerrors.NewValidationError(
				fmt.Sprintf("card %q energy %s affinity %.3f outside [0,1]", name, energy, affinity))
		}
	}
	if axisAffinity != nil {
		for _, v := range []float64{axisAffinity.Action, axisAffinity.Tempo, axisAffinity.Strategy, axisAffinity.Visibility} {
			if v < 0 || v > 100 {
				return nil, pkgerrors.NewValidationError(
					fmt.Sprintf("card %q axis affinity %.1f outside [0,100]", name, v))
			}
		}
	}

	affinities := make(map[valueobjects.Energy]float64, len(energyAffinity))
	for energy, affinity := range energyAffinity {
		affinities[energy] = affinity
	}

	return &Card{
		name:           name,
		arcana:         arcana,
		suit:           suit,
		rank:           rank,
		keywords:       append([]string(nil), keywords...),
		themes:         append([]string(nil), themes...),
		energyAffinity: affinities,
		axisAffinity:   axisAffinity,
		description:    description,
	}, nil
}

// Name returns the card's unique name
func (c *Card) Name() string { return c.name }

// Arcana returns the arcana kind
func (c *Card) Arcana() ArcanaKind { return c.arcana }

// IsMajor reports whether the card belongs to the major arcana
func (c *Card) IsMajor() bool { return c.arcana == ArcanaMajor }

// Suit returns the minor-arcana suit, SuitNone for majors
func (c *Card) Suit() Suit { return c.suit }

// Rank returns the minor-arcana rank, RankNone for majors
func (c *Card) Rank() Rank { return c.rank }

// Keywords returns the card's keyword list
func (c *Card) Keywords() []string { return append([]string(nil), c.keywords...) }

// Themes returns the card's theme list
func (c *Card) Themes() []string { return append([]string(nil), c.themes...) }

// Description returns the card's descriptive text
func (c *Card) Description() string { return c.description }

// EnergyAffinity returns the card's affinity with an energy on [0,1],
// defaulting to 0 for energies the catalog does not mention.
func (c *Card) EnergyAffinity(energy valueobjects.Energy) float64 {
	return c.energyAffinity[energy]
}

// HasAxisAffinity reports whether the catalog authored axis affinities for
// this card.
func (c *Card) HasAxisAffinity() bool {
	return c.axisAffinity != nil
}

// AxisSimilarity computes a [0,1] similarity between the card's axis
// affinity and the day's axis vector using normalized Euclidean distance.
// Cards without authored affinities sit at neutral similarity.
func (c *Card) AxisSimilarity(day valueobjects.AxisVector) float64 {
	if c.axisAffinity == nil {
		return neutralSimilarity
	}
	distance := c.axisAffinity.Rescaled().DistanceTo(day)
	similarity := 1 - distance/maxAxisDistance
	return math.Max(0, math.Min(1, similarity))
}

// AxisAffinity returns the authored affinity, nil when absent
func (c *Card) AxisAffinity() *AxisAffinity {
	if c.axisAffinity == nil {
		return nil
	}
	copied := *c.axisAffinity
	return &copied
}
