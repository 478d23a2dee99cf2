package engine

import (
	"sort"

	"github.com/greenm01/ec4x/internal/budget"
	"github.com/greenm01/ec4x/internal/combat"
	"github.com/greenm01/ec4x/internal/command"
	"github.com/greenm01/ec4x/internal/config"
	"github.com/greenm01/ec4x/internal/espionage"
	"github.com/greenm01/ec4x/internal/event"
	"github.com/greenm01/ec4x/internal/id"
	"github.com/greenm01/ec4x/internal/rng"
	"github.com/greenm01/ec4x/internal/state"
)

// resolveConflict is Phase 1 (spec.md section 4.3a-h): combat at every
// contested system, then the single per-house espionage action.
func resolveConflict(r *rng.RNG, st *state.State, rules config.Rules, outcomes map[id.ID]command.Outcome, budgets map[id.ID]budget.Result, turn int) []event.Event {
	var events []event.Event

	for _, sysID := range contestedSystems(st) {
		battle, wantsInvasion, wantsBlitz, wantsBombard, wantsRetreat := buildBattle(st, rules, sysID, outcomes)
		if battle == nil || len(battle.Forces) < 2 {
			continue
		}
		events = append(events, event.New(event.CombatPhaseBegan, turn).WithSystem(sysID))
		events = append(events, combat.EvaluateRetreat(st, battle, wantsRetreat, turn)...)
		events = append(events, combat.Resolve(r, st, rules, battle, wantsInvasion, wantsBlitz, wantsBombard, turn)...)
		events = append(events, event.New(event.CombatPhaseCompleted, turn).WithSystem(sysID))
	}

	houseIDs := make([]id.ID, 0, len(budgets))
	for hid := range budgets {
		houseIDs = append(houseIDs, hid)
	}
	sort.Slice(houseIDs, func(i, j int) bool { return houseIDs[i].Index() < houseIDs[j].Index() })

	for _, hid := range houseIDs {
		bres := budgets[hid]
		if bres.Espionage == nil {
			continue
		}
		house := st.Houses[hid]
		if house == nil {
			continue
		}
		out := espionage.Resolve(r, st, house, *bres.Espionage, turn)
		events = append(events, out.Events...)
	}

	return events
}

// contestedSystems returns every system with fleets from >=2 houses
// whose pairwise relation is not Ally (spec.md section 4.3a), in
// deterministic id order.
func contestedSystems(st *state.State) []id.ID {
	var out []id.ID
	for sysID, fleetIDs := range st.FleetsBySystem {
		owners := make(map[id.ID]bool)
		for _, fid := range fleetIDs {
			f := st.Fleets[fid]
			if f == nil || f.Status != state.FleetActive {
				continue
			}
			owners[f.Owner] = true
		}
		if len(owners) < 2 {
			continue
		}
		if anyNonAllied(st, owners) {
			out = append(out, sysID)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index() < out[j].Index() })
	return out
}

func anyNonAllied(st *state.State, owners map[id.ID]bool) bool {
	ids := make([]id.ID, 0, len(owners))
	for h := range owners {
		ids = append(ids, h)
	}
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			if st.FindRelation(ids[i], ids[j]).State != state.RelationAlly {
				return true
			}
		}
	}
	return false
}

// buildBattle aggregates every house's present Active fleets at sysID
// into a combat.Battle, and scans accepted fleet commands for the
// planetary-attack and retreat flags the theater resolver needs
// (spec.md section 4.3b-c/h).
func buildBattle(st *state.State, rules config.Rules, sysID id.ID, outcomes map[id.ID]command.Outcome) (*combat.Battle, bool, bool, bool, map[id.ID]bool) {
	forces := make(map[id.ID]*combat.Force)
	colID, hasColony := st.ColonyBySystem[sysID]
	var defender id.ID
	if hasColony {
		if c := st.Colonies[colID]; c != nil {
			defender = c.Owner
		}
	}

	for _, fid := range st.FleetsBySystem[sysID] {
		f := st.Fleets[fid]
		if f == nil || f.Status != state.FleetActive {
			continue
		}
		house := st.Houses[f.Owner]
		if house == nil {
			continue
		}
		fc, ok := forces[f.Owner]
		if !ok {
			tier := combat.MoraleTierFor(house.Prestige)
			fc = &combat.Force{
				House:    f.Owner,
				CLK:      house.Tech[state.TechCLK],
				ELI:      house.Tech[state.TechELI],
				MoraleDRM: rules.Morale[tier].DRM,
				Attacker: f.Owner != defender,
			}
			forces[f.Owner] = fc
		}
		fc.Ships = append(fc.Ships, f.Ships...)
	}
	if hasColony {
		if c := st.Colonies[colID]; c != nil {
			for _, gid := range c.GroundUnits {
				g := st.GroundUnits[gid]
				if g == nil {
					continue
				}
				if _, ok := forces[g.Owner]; !ok {
					house := st.Houses[g.Owner]
					if house == nil {
						continue
					}
					tier := combat.MoraleTierFor(house.Prestige)
					forces[g.Owner] = &combat.Force{
						House:    g.Owner,
						CLK:      house.Tech[state.TechCLK],
						ELI:      house.Tech[state.TechELI],
						MoraleDRM: rules.Morale[tier].DRM,
						Attacker: g.Owner != defender,
					}
				}
				forces[g.Owner].GroundUnits = append(forces[g.Owner].GroundUnits, gid)
			}
		}
	}

	if len(forces) < 2 {
		return nil, false, false, false, nil
	}

	wantsInvasion, wantsBlitz, wantsBombard := false, false, false
	wantsRetreat := make(map[id.ID]bool)

	houseIDs := make([]id.ID, 0, len(outcomes))
	for hid := range outcomes {
		houseIDs = append(houseIDs, hid)
	}
	sort.Slice(houseIDs, func(i, j int) bool { return houseIDs[i].Index() < houseIDs[j].Index() })

	for _, hid := range houseIDs {
		for _, fc := range outcomes[hid].AcceptedFleet {
			f := st.Fleets[fc.Fleet]
			if f == nil || f.Location != sysID {
				continue
			}
			switch fc.Kind {
			case command.CmdInvade:
				wantsInvasion = true
			case command.CmdBlitz:
				wantsBlitz = true
			case command.CmdBombard:
				wantsBombard = true
			case command.CmdSeekHome:
				wantsRetreat[f.Owner] = true
			}
		}
	}

	return &combat.Battle{System: sysID, Forces: forces}, wantsInvasion, wantsBlitz, wantsBombard, wantsRetreat
}
