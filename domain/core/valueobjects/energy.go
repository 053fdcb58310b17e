package valueobjects

// Energy represents one of the six named style categories a day's point
// budget is distributed across.
type Energy string

const (
	EnergyClassic  Energy = "classic"
	EnergyPlayful  Energy = "playful"
	EnergyRomantic Energy = "romantic"
	EnergyUtility  Energy = "utility"
	EnergyDrama    Energy = "drama"
	EnergyEdge     Energy = "edge"
)

// AllEnergies returns the six energies in their canonical iteration order.
// This order is load-bearing: remainder distribution and dominant/secondary
// tie-breaks resolve by first position in this slice.
func AllEnergies() []Energy {
	return []Energy{
		EnergyClassic,
		EnergyPlayful,
		EnergyRomantic,
		EnergyUtility,
		EnergyDrama,
		EnergyEdge,
	}
}

// IsValid checks whether e is one of the six known energies
func (e Energy) IsValid() bool {
	switch e {
	case EnergyClassic, EnergyPlayful, EnergyRomantic, EnergyUtility, EnergyDrama, EnergyEdge:
		return true
	}
	return false
}

// String returns the energy name
func (e Energy) String() string {
	return string(e)
}
