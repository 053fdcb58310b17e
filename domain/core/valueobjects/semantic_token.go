package valueobjects

import (
	"math"
	"strings"
)

// Planet identifies the celestial body a token was extracted from.
// Provenance is a closed enumeration rather than free-form text so typos
// cannot silently drop bonuses.
type Planet string

const (
	PlanetNone    Planet = ""
	PlanetSun     Planet = "sun"
	PlanetMoon    Planet = "moon"
	PlanetMercury Planet = "mercury"
	PlanetVenus   Planet = "venus"
	PlanetMars    Planet = "mars"
	PlanetJupiter Planet = "jupiter"
	PlanetSaturn  Planet = "saturn"
	PlanetUranus  Planet = "uranus"
	PlanetNeptune Planet = "neptune"
	PlanetPluto   Planet = "pluto"
)

// Sign identifies the zodiac sign a token was extracted from.
type Sign string

const (
	SignNone        Sign = ""
	SignAries       Sign = "aries"
	SignTaurus      Sign = "taurus"
	SignGemini      Sign = "gemini"
	SignCancer      Sign = "cancer"
	SignLeo         Sign = "leo"
	SignVirgo       Sign = "virgo"
	SignLibra       Sign = "libra"
	SignScorpio     Sign = "scorpio"
	SignSagittarius Sign = "sagittarius"
	SignCapricorn   Sign = "capricorn"
	SignAquarius    Sign = "aquarius"
	SignPisces      Sign = "pisces"
)

// IsFire reports whether the sign belongs to the fire element
func (s Sign) IsFire() bool {
	return s == SignAries || s == SignLeo || s == SignSagittarius
}

// AspectKind identifies the aspect geometry a token was extracted from.
type AspectKind string

const (
	AspectNone        AspectKind = ""
	AspectConjunction AspectKind = "conjunction"
	AspectSextile     AspectKind = "sextile"
	AspectSquare      AspectKind = "square"
	AspectTrine       AspectKind = "trine"
	AspectOpposition  AspectKind = "opposition"
)

// OriginKind identifies which upstream extraction pass produced a token.
type OriginKind string

const (
	OriginNone       OriginKind = ""
	OriginNatal      OriginKind = "natal"
	OriginTransit    OriginKind = "transit"
	OriginProgressed OriginKind = "progressed"
	OriginWeather    OriginKind = "weather"
	OriginPhase      OriginKind = "phase"
	OriginAxis       OriginKind = "axis"
)

// SemanticToken is a weighted semantic label with optional provenance, the
// atomic unit of upstream feature extraction consumed by the engine. Tokens
// are read-only inputs; the engine never mutates them.
type SemanticToken struct {
	Name     string
	Category string
	Weight   float64
	Planet   Planet
	Sign     Sign
	House    int // 1..12, 0 when absent
	Aspect   AspectKind
	Origin   OriginKind
}

// Key returns the merge key for the token (lowercased name)
func (t SemanticToken) Key() string {
	return strings.ToLower(t.Name)
}

// MergeTokens collapses tokens sharing a name into a single entry whose
// weight is the sum of the parts, soft-capped by square-root compression
// above softCap so no single label dominates the pool. The merged token keeps
// the provenance of its first occurrence, and first-seen order is preserved.
func MergeTokens(tokens []SemanticToken, softCap float64) []SemanticToken {
	if len(tokens) == 0 {
		return nil
	}

	order := make([]string, 0, len(tokens))
	merged := make(map[string]SemanticToken, len(tokens))

	for _, token := range tokens {
		key := token.Key()
		existing, seen := merged[key]
		if !seen {
			order = append(order, key)
			merged[key] = token
			continue
		}
		existing.Weight += token.Weight
		merged[key] = existing
	}

	result := make([]SemanticToken, 0, len(order))
	for _, key := range order {
		token := merged[key]
		if token.Weight > softCap {
			token.Weight = softCap + math.Sqrt(token.Weight-softCap)
		}
		result = append(result, token)
	}
	return result
}
