package services

import (
	"math"

	"arcana-backend/domain/config"
	"arcana-backend/domain/core/valueobjects"
)

// Keyword sets driving the token-diversity modulation. A token contributes to
// a bucket when its lowercased name appears in the set.
var (
	fastKeywords = keywordSet(
		"quick", "fast", "dynamic", "bold", "energetic", "spontaneous", "impulsive", "fiery",
	)
	slowKeywords = keywordSet(
		"slow", "steady", "calm", "grounded", "patient", "deliberate", "stable", "serene",
	)
	strategicKeywords = keywordSet(
		"strategic", "planned", "calculated", "methodical", "focused", "disciplined", "analytical", "practical",
	)
	expressiveKeywords = keywordSet(
		"expressive", "dramatic", "vibrant", "radiant", "social", "visible", "magnetic", "charismatic",
	)
)

// Per-axis constants for the deterministic seed factor. Distinct frequencies
// and amplitudes keep the axes from wobbling in lockstep day to day.
const (
	seedFreqAction     = 0.017
	seedAmpAction      = 0.08
	seedFreqTempo      = 0.023
	seedAmpTempo       = 0.07
	seedFreqStrategy   = 0.031
	seedAmpStrategy    = 0.06
	seedFreqVisibility = 0.041
	seedAmpVisibility  = 0.09
)

// AxisVolatility applies deterministic, seed-derived daily perturbation to a
// base axis vector. Same inputs always produce the same output: variability
// comes from trigonometric functions of the seed, never from an RNG.
type AxisVolatility struct {
	config   *config.DomainConfig
	balancer *AxisBalancer
}

// NewAxisVolatility creates a new axis volatility service
func NewAxisVolatility(cfg *config.DomainConfig, balancer *AxisBalancer) *AxisVolatility {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	if balancer == nil {
		balancer = NewAxisBalancer(cfg)
	}
	return &AxisVolatility{config: cfg, balancer: balancer}
}

// Modulate multiplies four independent factor vectors into the base axes,
// clamps the result to the semantic [1,10] range, and re-balances. The
// factors capture transit intensity, lunar phase, token composition, and a
// seed-derived daily wobble.
func (m *AxisVolatility) Modulate(
	base valueobjects.AxisVector,
	tokens []valueobjects.SemanticToken,
	transitCount int,
	lunarPhase float64,
	dailySeed int64,
) valueobjects.AxisVector {
	action, tempo, strategy, visibility := 1.0, 1.0, 1.0, 1.0

	// Transit intensity: busy skies speed the day up and crowd out planning.
	t := math.Min(float64(transitCount)/30, 2.0)
	if t < 0 {
		t = 0
	}
	action *= 1 + 0.15*t
	tempo *= 1 + 0.20*t
	strategy *= 1 - 0.10*t
	visibility *= 1 + 0.05*t

	// Lunar phase: fullness peaks at new and full moon, bottoms out at the
	// quarters where strategy gets its turn.
	fullness := math.Abs(lunarPhase-0.5) * 2
	action *= 1 + 0.10*fullness
	tempo *= 1 + 0.08*fullness
	visibility *= 1 + 0.12*fullness
	strategy *= 1 + 0.10*(1-fullness)

	// Token composition.
	if n := len(tokens); n > 0 {
		var fast, slow, strategic, expressive int
		for _, token := range tokens {
			key := token.Key()
			if fastKeywords[key] {
				fast++
			}
			if slowKeywords[key] {
				slow++
			}
			if strategicKeywords[key] {
				strategic++
			}
			if expressiveKeywords[key] {
				expressive++
			}
		}
		speed := float64(fast-slow) / float64(n)
		action *= 1 + 0.15*speed
		tempo *= 1 + 0.20*speed
		strategy *= 1 + 0.25*float64(strategic)/float64(n)
		visibility *= 1 + 0.20*float64(expressive)/float64(n)
	}

	// Seed wobble: reproducible but non-repeating day-to-day variation.
	seed := float64(dailySeed)
	action *= 1 + math.Sin(seed*seedFreqAction)*seedAmpAction
	tempo *= 1 + math.Sin(seed*seedFreqTempo)*seedAmpTempo
	strategy *= 1 + math.Sin(seed*seedFreqStrategy)*seedAmpStrategy
	visibility *= 1 + math.Sin(seed*seedFreqVisibility)*seedAmpVisibility

	modulated := base.
		Scale(action, tempo, strategy, visibility).
		Clamp(m.config.AxisMin, m.config.AxisMax)

	return m.balancer.Balance(modulated)
}

func keywordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
