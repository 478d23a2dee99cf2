package economy

import (
	"github.com/greenm01/ec4x/internal/config"
	"github.com/greenm01/ec4x/internal/event"
	"github.com/greenm01/ec4x/internal/state"
)

// ProjectedMaintenance sums the per-turn upkeep of every ship, and every
// non-Destroyed Neoria and Kastra, a house owns (spec.md section 4.2/4.3 Maintenance
// phase). Mirrors internal/budget.projectedMaintenance, kept in this
// package too since economy's own shortfall handling needs the figure
// after the budget gate has already run and mutated Treasury.
func ProjectedMaintenance(st *state.State, rules config.Rules, house *state.House) int {
	total := 0
	for _, fid := range st.FleetsByOwner[house.ID] {
		f := st.Fleets[fid]
		if f == nil {
			continue
		}
		for _, sid := range f.Ships {
			sh := st.Ships[sid]
			if sh == nil {
				continue
			}
			total += rules.Ships[sh.Class].MetalCost / 20
		}
	}
	for _, cid := range st.ColoniesByOwner[house.ID] {
		col := st.Colonies[cid]
		if col == nil {
			continue
		}
		for _, nid := range col.Neoriae {
			if n := st.Neoriae[nid]; n != nil && n.State != state.Destroyed {
				total += 10
			}
		}
		for _, kid := range col.Kastrai {
			if k := st.Kastrai[kid]; k != nil && k.State != state.Destroyed {
				total += 25
			}
		}
	}
	return total
}

// PayMaintenance deducts ProjectedMaintenance from house.Treasury. On a
// shortfall it ages house.ConsecutiveShortfallTurns and, past the
// autopilot threshold, transitions the house into Autopilot (spec.md
// section 4.3 Maintenance phase / section 4.3 house state machine).
func PayMaintenance(st *state.State, rules config.Rules, house *state.House, autopilotThreshold int, turn int) []event.Event {
	var events []event.Event
	cost := ProjectedMaintenance(st, rules, house)

	if house.Treasury >= cost {
		house.Treasury -= cost
		house.ConsecutiveShortfallTurns = 0
		return events
	}

	house.Treasury -= cost
	house.ConsecutiveShortfallTurns++
	events = append(events, event.New(event.ResourceWarning, turn).WithHouse(house.ID).
		With("reason", "maintenance shortfall").With("deficit", cost-house.Treasury))

	if house.ConsecutiveShortfallTurns >= autopilotThreshold && house.Status == state.HouseActive {
		house.Status = state.HouseAutopilot
	}
	return events
}
