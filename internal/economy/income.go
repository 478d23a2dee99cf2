// Package economy implements the Income-phase and Maintenance-phase
// arithmetic named in spec.md section 4.3: per-colony tax income,
// natural population/industrial growth, construction/repair dock
// assignment, simultaneous colonization resolution, population
// transfer delivery, and terraform progression. Grounded on
// buildings/data.go's per-planet-class suitability/growth tables
// (generalized onto spec.md's PlanetClass/ResourceRating enums in
// internal/config.Rules) and on players/game_state.go's
// PlayerGameState resource bookkeeping, which this package mutates the
// canonical equivalent of every turn.
package economy

import (
	"github.com/greenm01/ec4x/internal/config"
	"github.com/greenm01/ec4x/internal/event"
	"github.com/greenm01/ec4x/internal/state"
)

// ColonyTax computes one colony's PP income for this turn:
// PU * planetClassFactor * resourceFactor * (infrastructure/100) *
// (taxRate/100), halved under an active blockade (spec.md section 4.3
// Income phase / section 9 "blockade penalty").
func ColonyTax(rules config.Rules, st *state.State, col *state.Colony) int {
	sys := st.Systems[col.System]
	if sys == nil || col.PopulationUnits <= 0 {
		return 0
	}
	pcFactor := rules.PlanetClassIncomeFactor[sys.PlanetClass]
	rrFactor := rules.ResourceIncomeFactor[sys.ResourceRating]
	infraFactor := float64(col.Infrastructure) / 100.0
	base := float64(col.PopulationUnits) * pcFactor * rrFactor * infraFactor
	taxed := base * float64(col.TaxRate) / 100.0

	if col.Blockade.Active {
		taxed *= 1.0 - float64(rules.BlockadePenaltyPct)/100.0
	}

	return int(taxed)
}

// IndustrialOutput computes one colony's available industrial capacity
// for this turn's construction, scaled by IU and EL tech (spec.md
// section 4.3 Income phase: "IU factor x EL modifier").
func IndustrialOutput(house *state.House, col *state.Colony) int {
	elLevel := house.Tech[state.TechEL]
	modifier := 1.0 + float64(elLevel)*0.1
	return int(float64(col.IndustrialUnits) * modifier)
}

// CollectIncome runs ColonyTax over every colony a house owns, crediting
// house.Treasury and recording the rolling tax-rate average used for
// the prestige bonus/penalty (spec.md section 4.3 Income phase).
func CollectIncome(rules config.Rules, st *state.State, house *state.House, turn int) []event.Event {
	var events []event.Event
	total := 0
	for _, cid := range st.ColoniesByOwner[house.ID] {
		col := st.Colonies[cid]
		if col == nil {
			continue
		}
		pp := ColonyTax(rules, st, col)
		total += pp
		events = append(events, event.New(event.ColonyIncomeReport, turn).WithHouse(house.ID).WithSystem(col.System).
			With("colony", cid.String()).With("income", pp))
	}
	house.Treasury += total
	house.TaxWindow.Push(house.TaxRate)
	applyTaxPrestige(rules, house)
	return events
}

func applyTaxPrestige(rules config.Rules, house *state.House) {
	avg := house.TaxWindow.Average()
	for _, tier := range rules.TaxTiers {
		if avg <= float64(tier.MaxRate) {
			house.Prestige += tier.PrestigeDelta
			return
		}
	}
}

// ApplyGrowth applies one turn of natural PopulationUnits/IndustrialUnits
// growth to col, scaled by its system's PlanetClass (spec.md section
// 4.3 Maintenance phase: "natural population/industrial growth").
func ApplyGrowth(rules config.Rules, st *state.State, col *state.Colony) {
	sys := st.Systems[col.System]
	if sys == nil {
		return
	}
	popRate := rules.PopulationGrowthRate[sys.PlanetClass]
	iuRate := rules.IndustrialGrowthRate[sys.PlanetClass]
	col.PopulationUnits += int(float64(col.PopulationUnits) * popRate)
	col.IndustrialUnits += int(float64(col.IndustrialUnits) * iuRate)
}
