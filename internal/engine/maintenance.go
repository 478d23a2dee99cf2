package engine

import (
	"sort"

	"github.com/greenm01/ec4x/internal/config"
	"github.com/greenm01/ec4x/internal/economy"
	"github.com/greenm01/ec4x/internal/event"
	"github.com/greenm01/ec4x/internal/id"
	"github.com/greenm01/ec4x/internal/rng"
	"github.com/greenm01/ec4x/internal/state"
)

// autopilotThreshold is the consecutive-turn count named in spec.md
// section 4.3/8: turnsWithoutOrders >= 3 -> Autopilot, also reused for
// ConsecutiveShortfallTurns per the house state machine's single
// autopilot trigger.
const autopilotThreshold = 3

// collapseThreshold is the consecutive negative-prestige-turn count
// that forces the terminal DefensiveCollapse transition (spec.md
// section 4.3 house state machine).
const collapseThreshold = 3

// transferGrowthThreshold is the PTU a colony must bank before one
// converts into a permanent PopulationUnit (spec.md section 4.3
// Maintenance phase: "+PU if PTU >= threshold").
const transferGrowthThreshold = 5

// terraformInstallmentPP is the flat per-turn PP a colony commits
// toward an in-progress TerraformProject (spec.md section 4.3
// Maintenance: "Advance terraforming projects: pay PP, on completion
// raise the system's planet class one step"). The one-time start cost
// is already charged by internal/budget when the project is queued;
// this is the ongoing installment drawn from the owning house's
// treasury each Maintenance phase until TotalCost is met.
const terraformInstallmentPP = 150

// resolveMaintenance is Phase 4 (spec.md section 4.3): upkeep and
// shortfall handling, construction/repair/terraform advancement,
// effect and transit ticking, natural growth, prestige/autopilot/
// collapse bookkeeping, CST dock recomputation, and ActProgression.
func resolveMaintenance(r *rng.RNG, st *state.State, rules config.Rules, submitted map[id.ID]bool, turn int) []event.Event {
	var events []event.Event

	houseIDs := make([]id.ID, 0, len(st.Houses))
	for hid := range st.Houses {
		houseIDs = append(houseIDs, hid)
	}
	sort.Slice(houseIDs, func(i, j int) bool { return houseIDs[i].Index() < houseIDs[j].Index() })

	colonyIDs := make([]id.ID, 0, len(st.Colonies))
	for cid := range st.Colonies {
		colonyIDs = append(colonyIDs, cid)
	}
	sort.Slice(colonyIDs, func(i, j int) bool { return colonyIDs[i].Index() < colonyIDs[j].Index() })

	for _, hid := range houseIDs {
		house := st.Houses[hid]
		if house.IsDefensiveCollapse() {
			continue // zero income/expenditure upkeep for a terminal house, per spec.md section 4.3.
		}
		events = append(events, economy.PayMaintenance(st, rules, house, autopilotThreshold, turn)...)
	}

	for _, cid := range colonyIDs {
		col := st.Colonies[cid]
		house := st.Houses[col.Owner]
		if house == nil {
			continue
		}

		events = append(events, economy.AdvanceConstruction(st, rules, col, turn)...)
		economy.QueueAutoRepairs(st, col)
		events = append(events, economy.AdvanceRepairs(st, col, turn)...)

		if col.Terraform != nil && !house.IsDefensiveCollapse() {
			remaining := col.Terraform.TotalCost - col.Terraform.PaidCost
			payment := terraformInstallmentPP
			if payment > remaining {
				payment = remaining
			}
			if payment > house.Treasury {
				payment = house.Treasury
			}
			if payment > 0 {
				house.Treasury -= payment
				events = append(events, economy.AdvanceTerraform(st, col, payment, turn)...)
			}
		}
	}

	events = append(events, economy.AdvanceTransfers(st, turn)...)
	tickEffects(st)

	for _, cid := range colonyIDs {
		col := st.Colonies[cid]
		house := st.Houses[col.Owner]
		if house == nil || house.IsDefensiveCollapse() {
			continue
		}
		economy.ApplyGrowth(rules, st, col)
		if col.TransferUnits >= transferGrowthThreshold {
			col.TransferUnits -= transferGrowthThreshold
			col.PopulationUnits++
		}
	}

	for _, hid := range houseIDs {
		house := st.Houses[hid]

		if house.Prestige < 0 {
			house.NegativePrestigeTurns++
		} else {
			house.NegativePrestigeTurns = 0
		}
		if house.NegativePrestigeTurns >= collapseThreshold && house.Status != state.HouseDefensiveCollapse {
			house.Status = state.HouseDefensiveCollapse
			events = append(events, event.New(event.PrestigeLoss, turn).WithHouse(hid).
				With("reason", "defensive collapse"))
		}

		if submitted[hid] {
			house.TurnsWithoutOrders = 0
			if house.Status == state.HouseAutopilot {
				house.Status = state.HouseActive
			}
		} else if house.Status != state.HouseDefensiveCollapse {
			house.TurnsWithoutOrders++
			if house.TurnsWithoutOrders >= autopilotThreshold && house.Status == state.HouseActive {
				house.Status = state.HouseAutopilot
			}
		}

		recomputeDocks(st, rules, house)

		if len(st.ColoniesByOwner[hid]) == 0 && len(st.FleetsByOwner[hid]) == 0 && !house.Eliminated {
			house.Eliminated = true
			events = append(events, event.New(event.HouseEliminated, turn).WithHouse(hid))
		}
	}

	cleanupEmptyFleets(st)
	updateActProgression(st, turn)

	return events
}

// recomputeDocks applies rules.CSTDockMultiplier to every Neoria an
// advancing house owns (spec.md section 4.3 Maintenance: "Recompute
// derived capabilities on tech advancement").
func recomputeDocks(st *state.State, rules config.Rules, house *state.House) {
	mult, ok := rules.CSTDockMultiplier[house.Tech[state.TechCST]]
	if !ok {
		mult = 1.0
	}
	for _, cid := range st.ColoniesByOwner[house.ID] {
		col := st.Colonies[cid]
		if col == nil {
			continue
		}
		for _, nid := range col.Neoriae {
			n := st.Neoriae[nid]
			if n == nil {
				continue
			}
			n.EffectiveDocks = int(float64(n.BaseDocks) * mult)
		}
		for _, kid := range col.Kastrai {
			k := st.Kastrai[kid]
			if k == nil {
				continue
			}
			k.EffectiveDocks = int(float64(k.BaseDocks) * mult)
		}
	}
}

// tickEffects decrements every OngoingEffect by one turn and removes
// expired entries (spec.md section 4.3 Maintenance: "Tick every
// OngoingEffect by 1; remove expired").
func tickEffects(st *state.State) {
	var expired []id.ID
	for eid, e := range st.Effects {
		e.TurnsRemaining--
		if e.TurnsRemaining <= 0 {
			expired = append(expired, eid)
		}
	}
	for _, eid := range expired {
		st.RemoveEffect(eid)
	}
}

// cleanupEmptyFleets removes every Fleet left with zero ships (spec.md
// section 3 Fleet invariant / section 8 "Empty-fleet cleanup").
func cleanupEmptyFleets(st *state.State) {
	var empty []id.ID
	for fid, f := range st.Fleets {
		if f.IsEmpty() {
			empty = append(empty, fid)
		}
	}
	for _, fid := range empty {
		st.RemoveFleet(fid)
	}
}

// updateActProgression derives the public coarse game-phase hint from
// current colonization percent and total prestige (spec.md section
// 4.3 Maintenance: "Update ActProgression").
func updateActProgression(st *state.State, turn int) {
	colonized := 0
	for range st.Colonies {
		colonized++
	}
	totalSystems := len(st.Systems)
	pct := 0.0
	if totalSystems > 0 {
		pct = float64(colonized) / float64(totalSystems) * 100
	}

	totalPrestige := 0
	for _, h := range st.Houses {
		totalPrestige += h.Prestige
	}

	st.Act.LastColonizationPercent = pct
	st.Act.LastPrestigeTotal = totalPrestige

	next := st.Act.Current
	switch {
	case pct >= 80 || totalPrestige >= 1800:
		next = state.Act4Endgame
	case pct >= 55 || totalPrestige >= 900:
		next = state.Act3TotalWar
	case pct >= 25 || totalPrestige >= 300:
		next = state.Act2RisingTensions
	default:
		next = state.Act1LandGrab
	}
	if next != st.Act.Current {
		st.Act.Current = next
		st.Act.StartTurn = turn
	}
}
