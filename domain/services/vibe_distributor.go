package services

import (
	"math"
	"sort"

	"arcana-backend/domain/config"
	"arcana-backend/domain/core/valueobjects"
)

// Keyword sets owned by each energy. A token feeds an energy when its
// lowercased name appears in the energy's set; overlap between sets is
// intentional (a "bold" day is both playful and dramatic).
var energyKeywords = map[valueobjects.Energy]map[string]bool{
	valueobjects.EnergyClassic: keywordSet(
		"classic", "timeless", "structured", "traditional", "refined", "elegant", "formal", "disciplined",
	),
	valueobjects.EnergyPlayful: keywordSet(
		"playful", "spontaneous", "fun", "quick", "curious", "light", "social", "bold", "dynamic",
	),
	valueobjects.EnergyRomantic: keywordSet(
		"romantic", "soft", "dreamy", "tender", "harmonious", "gentle", "warm", "affectionate",
	),
	valueobjects.EnergyUtility: keywordSet(
		"practical", "grounded", "useful", "functional", "efficient", "methodical", "durable", "simple",
	),
	valueobjects.EnergyDrama: keywordSet(
		"dramatic", "intense", "bold", "powerful", "fiery", "striking", "passionate", "commanding",
	),
	valueobjects.EnergyEdge: keywordSet(
		"edgy", "rebellious", "unconventional", "raw", "dark", "sharp", "daring", "disruptive",
	),
}

// VibeDistributor maps a weighted token pool into the six named energies,
// normalized to the fixed 21-point budget. Pure and safe for concurrent use.
type VibeDistributor struct {
	config *config.DomainConfig
}

// NewVibeDistributor creates a new vibe distributor
func NewVibeDistributor(cfg *config.DomainConfig) *VibeDistributor {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &VibeDistributor{config: cfg}
}

// Distribute accumulates weight*2 + provenance bonus into each energy a
// token's name matches, then scales the raw scores to sum to exactly the
// point budget. An empty or signal-free pool yields the fixed default
// breakdown.
func (d *VibeDistributor) Distribute(tokens []valueobjects.SemanticToken) valueobjects.VibeBreakdown {
	energies := valueobjects.AllEnergies()

	raw := make(map[valueobjects.Energy]float64, len(energies))
	for _, token := range tokens {
		key := token.Key()
		for _, energy := range energies {
			if energyKeywords[energy][key] {
				raw[energy] += token.Weight*2 + provenanceBonus(energy, token)
			}
		}
	}

	total := 0.0
	for _, score := range raw {
		total += score
	}
	if total == 0 {
		return valueobjects.DefaultVibeBreakdown()
	}

	points := d.scaleToBudget(raw, total, energies)
	points = d.capAndRedistribute(points, energies)

	breakdown, err := valueobjects.NewVibeBreakdown(
		points[valueobjects.EnergyClassic],
		points[valueobjects.EnergyPlayful],
		points[valueobjects.EnergyRomantic],
		points[valueobjects.EnergyUtility],
		points[valueobjects.EnergyDrama],
		points[valueobjects.EnergyEdge],
	)
	if err != nil {
		// scaleToBudget and capAndRedistribute guarantee the invariant.
		return valueobjects.DefaultVibeBreakdown()
	}
	return breakdown
}

// scaleToBudget performs largest-remainder apportionment of the point budget:
// floor every proportional share, then hand the leftover points to the
// largest fractional remainders, ties resolving by canonical energy order.
func (d *VibeDistributor) scaleToBudget(
	raw map[valueobjects.Energy]float64,
	total float64,
	energies []valueobjects.Energy,
) map[valueobjects.Energy]int {
	budget := d.config.VibePointBudget

	type share struct {
		index     int
		energy    valueobjects.Energy
		remainder float64
	}

	points := make(map[valueobjects.Energy]int, len(energies))
	shares := make([]share, 0, len(energies))
	assigned := 0

	for i, energy := range energies {
		exact := raw[energy] / total * float64(budget)
		floor := int(math.Floor(exact))
		points[energy] = floor
		assigned += floor
		shares = append(shares, share{index: i, energy: energy, remainder: exact - float64(floor)})
	}

	sort.SliceStable(shares, func(a, b int) bool {
		if shares[a].remainder != shares[b].remainder {
			return shares[a].remainder > shares[b].remainder
		}
		return shares[a].index < shares[b].index
	})

	for i := 0; i < budget-assigned && i < len(shares); i++ {
		points[shares[i].energy]++
	}

	return points
}

// capAndRedistribute enforces the per-energy cap while preserving the budget
// invariant: points clipped from a dominant energy are handed out one at a
// time, cycling the canonical energy order starting just past the last capped
// energy, skipping any energy already at the cap.
//
// The upstream behavior this engine reproduces never decided what a single
// dominant category worth more than the cap should do; cap-and-redistribute
// was chosen over cap-and-drop so the 21-point sum always holds.
func (d *VibeDistributor) capAndRedistribute(
	points map[valueobjects.Energy]int,
	energies []valueobjects.Energy,
) map[valueobjects.Energy]int {
	limit := d.config.VibePointCap

	overflow := 0
	start := 0
	for i, energy := range energies {
		if points[energy] > limit {
			overflow += points[energy] - limit
			points[energy] = limit
			start = i + 1
		}
	}

	// Six energies at a cap of 10 always absorb a 21-point budget.
	for i := 0; overflow > 0 && i < len(energies)*limit; i++ {
		energy := energies[(start+i)%len(energies)]
		if points[energy] >= limit {
			continue
		}
		points[energy]++
		overflow--
	}

	return points
}

func provenanceBonus(energy valueobjects.Energy, token valueobjects.SemanticToken) float64 {
	bonus := 0.0
	switch energy {
	case valueobjects.EnergyClassic:
		if token.Planet == valueobjects.PlanetSaturn {
			bonus += 1.5
		}
		if token.Origin == valueobjects.OriginNatal {
			bonus += 0.5
		}
	case valueobjects.EnergyPlayful:
		if token.Planet == valueobjects.PlanetMercury {
			bonus += 1.0
		}
		if token.Origin == valueobjects.OriginTransit {
			bonus += 0.5
		}
	case valueobjects.EnergyRomantic:
		if token.Planet == valueobjects.PlanetVenus {
			bonus += 1.5
		}
		if token.Planet == valueobjects.PlanetMoon {
			bonus += 1.0
		}
		if token.Aspect == valueobjects.AspectTrine {
			bonus += 0.5
		}
	case valueobjects.EnergyUtility:
		if token.Origin == valueobjects.OriginWeather {
			bonus += 2.0
		}
		if token.Planet == valueobjects.PlanetSaturn {
			bonus += 0.5
		}
	case valueobjects.EnergyDrama:
		if token.Sign.IsFire() {
			bonus += 1.0
		}
		if token.Planet == valueobjects.PlanetSun {
			bonus += 0.5
		}
		if token.Aspect == valueobjects.AspectOpposition {
			bonus += 0.5
		}
	case valueobjects.EnergyEdge:
		if token.Planet == valueobjects.PlanetMars {
			bonus += 1.0
		}
		if token.Planet == valueobjects.PlanetUranus || token.Planet == valueobjects.PlanetPluto {
			bonus += 1.0
		}
		if token.Aspect == valueobjects.AspectSquare {
			bonus += 0.5
		}
	}
	return bonus
}
