package config

// DomainConfig holds all configurable business rules for the energy engine.
// Numbers here are tuning knobs, not wire contracts; the defaults reproduce
// the published behavior of the derivation pipeline.
type DomainConfig struct {
	// Axis constraints
	AxisCeiling            float64 // hard cap per axis after balancing
	AxisFloor              float64 // hard floor per axis after balancing
	AxisAverage            float64 // axes below this receive redistributed excess
	RedistributeEfficiency float64 // share of capped excess that is recoverable
	AxisMin                float64 // semantic lower bound pre-balance
	AxisMax                float64 // semantic upper bound pre-balance

	// Token constraints
	TokenWeightSoftCap float64 // merged weights above this compress by sqrt

	// Vibe constraints
	VibePointBudget int // total points distributed across the six energies
	VibePointCap    int // per-energy maximum

	// Selection constraints
	ScoreEpsilon       float64 // absolute tie-break window around the top score
	SimilarityEpsilon  float64 // axis-similarity window inside the tie group
	JitterScale        float64 // deterministic variety jitter multiplier
	RetentionDays      int     // recency window, in calendar days
	DecayFloor         float64 // minimum decay multiplier
	DecayRate          float64 // per-day decay multiplier slope
}

// DefaultDomainConfig returns the default engine configuration
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		AxisCeiling:            8.5,
		AxisFloor:              2.0,
		AxisAverage:            6.0,
		RedistributeEfficiency: 0.7,
		AxisMin:                1.0,
		AxisMax:                10.0,

		TokenWeightSoftCap: 3.0,

		VibePointBudget: 21,
		VibePointCap:    10,

		ScoreEpsilon:      1.5,
		SimilarityEpsilon: 0.05,
		JitterScale:       0.001,
		RetentionDays:     7,
		DecayFloor:        0.55,
		DecayRate:         0.12,
	}
}
