package combat

import (
	"sort"

	"github.com/greenm01/ec4x/internal/config"
	"github.com/greenm01/ec4x/internal/event"
	"github.com/greenm01/ec4x/internal/id"
	"github.com/greenm01/ec4x/internal/rng"
	"github.com/greenm01/ec4x/internal/state"
)

// resolvePlanetary fights the planetary theater at colID once Orbital is
// clear: starbase combat, shield rolls against bombardment, ground
// combat for an Invade/Blitz, and colony/system capture (spec.md
// section 4.3h/4.6).
func resolvePlanetary(r *rng.RNG, st *state.State, rules config.Rules, b *Battle, colID id.ID, wantsInvasion, wantsBlitz, wantsBombard bool, turn int) []event.Event {
	var events []event.Event
	col := st.Colonies[colID]
	if col == nil {
		return events
	}

	attacker := soleSurvivor(st, b)
	if attacker.IsNil() || attacker == col.Owner {
		return events
	}

	events = append(events, resolveStarbases(r, st, rules, col, attacker, turn)...)

	if wantsBombard {
		events = append(events, bombard(r, st, rules, col, attacker, turn)...)
	}

	if wantsInvasion || wantsBlitz {
		captured, groundEvents := invade(r, st, rules, col, attacker, wantsBlitz, turn)
		events = append(events, groundEvents...)
		if captured {
			prevOwner := col.Owner
			st.TransferColony(colID, attacker)
			events = append(events,
				event.New(event.ColonyCaptured, turn).WithHouse(attacker).WithTarget(prevOwner).WithSystem(b.System),
				event.New(event.SystemCaptured, turn).WithHouse(attacker).WithTarget(prevOwner).WithSystem(b.System),
			)
		}
	}

	return events
}

func soleSurvivor(st *state.State, b *Battle) id.ID {
	survivors := housesWithLiveShips(st, b)
	if len(survivors) == 1 {
		return survivors[0]
	}
	// No single house has live ships left: if exactly one force is not
	// Retreating, it is taken as the attacker. Ground troops are not
	// checked here.
	var last id.ID
	n := 0
	for hid, f := range b.Forces {
		if !f.Retreating {
			last = hid
			n++
		}
	}
	if n == 1 {
		return last
	}
	return id.Nil
}

// resolveStarbases fights attacker's surviving ships against colony's
// Kastrai (spec.md section 4.6: "StarbaseCombat"). A Kastra's WEPAtBuild
// is frozen at construction, same as a Ship's.
func resolveStarbases(r *rng.RNG, st *state.State, rules config.Rules, col *state.Colony, attacker id.ID, turn int) []event.Event {
	var events []event.Event
	for _, kid := range col.Kastrai {
		k := st.Kastrai[kid]
		if k == nil || k.State == state.Destroyed {
			continue
		}
		roll := r.D100()
		outcome := RollCER(rules, k.WEPAtBuild, 10, 0, roll)
		switch outcome {
		case config.CERCripple:
			if k.State == state.Undamaged {
				k.State = state.Crippled
			}
		case config.CERDestroy:
			k.State = state.Destroyed
		}
		events = append(events, event.New(event.StarbaseCombat, turn).WithHouse(attacker).With("outcome", int(outcome)))
	}
	return events
}

// bombard fires up to maxBombardmentRounds at col's infrastructure,
// checking the planetary shield's block chance each round unless the
// attacker has a PlanetBreaker present, which always bypasses shields
// (spec.md section 4.6: "shields (blockChance roll, PlanetBreaker
// bypass)").
func bombard(r *rng.RNG, st *state.State, rules config.Rules, col *state.Colony, attacker id.ID, turn int) []event.Event {
	var events []event.Event
	hasBreaker := attackerHasPlanetBreaker(st, col, attacker)

	for round := 1; round <= maxBombardmentRounds; round++ {
		events = append(events, event.New(event.BombardmentRoundBegan, turn).With("round", round))

		blocked := false
		if !hasBreaker && hasShield(st, col) {
			blocked = r.D100() <= rules.ShieldBlockChancePct
		}
		if blocked {
			events = append(events, event.New(event.ShieldActivated, turn).WithSystem(col.System))
		} else {
			col.IndustrialUnits -= col.IndustrialUnits / 10
			if col.IndustrialUnits < 0 {
				col.IndustrialUnits = 0
			}
			col.Infrastructure -= col.Infrastructure / 10
			if col.Infrastructure < 0 {
				col.Infrastructure = 0
			}
		}
		events = append(events, event.New(event.BombardmentRoundCompleted, turn).With("round", round).With("blocked", blocked))
	}
	return events
}

func hasShield(st *state.State, col *state.Colony) bool {
	for _, gid := range col.GroundUnits {
		if g := st.GroundUnits[gid]; g != nil && g.Class == state.GroundPlanetaryShield {
			return true
		}
	}
	return false
}

func attackerHasPlanetBreaker(st *state.State, col *state.Colony, attacker id.ID) bool {
	for _, fid := range st.FleetsBySystem[col.System] {
		f := st.Fleets[fid]
		if f == nil || f.Owner != attacker {
			continue
		}
		for _, sid := range f.Ships {
			if sh := st.Ships[sid]; sh != nil && sh.Class == state.ShipPlanetBreaker && sh.State != state.Destroyed {
				return true
			}
		}
	}
	return false
}

// invade resolves ground combat between attacker's landed marines and
// col's defenders (spec.md section 4.6: "ground combat (batteries,
// marine-vs-army CER, invasion/blitz)"). Invade and Blitz run the same
// CER loop; they differ only in the opening event (BlitzBegan instead of
// InvasionBegan).
func invade(r *rng.RNG, st *state.State, rules config.Rules, col *state.Colony, attacker id.ID, blitz bool, turn int) (bool, []event.Event) {
	var events []event.Event
	kind := event.InvasionBegan
	if blitz {
		kind = event.BlitzBegan
	}
	events = append(events, event.New(kind, turn).WithHouse(attacker).WithSystem(col.System))

	marines := attackerMarines(st, col, attacker)
	defenders := colonyDefenders(st, col)
	// One-directional: marines fire on defenders each round, batteries do
	// not fire back. Planetary shields/Kastrai already had their say in
	// resolveStarbases/bombard before ground combat ever starts.

	for round := 1; round <= maxBombardmentRounds && len(marines) > 0 && len(defenders) > 0; round++ {
		events = append(events, event.New(event.GroundCombatRound, turn).With("round", round))

		for i := 0; i < len(marines) && len(defenders) > 0; i++ {
			m := marines[i]
			d := defenders[0]
			roll := r.D100()
			outcome := RollGroundCER(rules, m.AS, d.DS, 0, roll)
			switch outcome {
			case config.CERCripple:
				d.DS = d.DS / 2
			case config.CERDestroy:
				defenders = defenders[1:]
			}
		}
		marines, defenders = pruneDead(marines), defenders
	}

	if len(defenders) == 0 && len(marines) > 0 {
		// Capture confirmed; resolvePlanetary emits ColonyCaptured/
		// SystemCaptured once ownership actually transfers.
		return true, events
	}
	events = append(events, event.New(event.InvasionRepelled, turn).WithHouse(col.Owner).WithTarget(attacker).WithSystem(col.System))
	return false, events
}

func attackerMarines(st *state.State, col *state.Colony, attacker id.ID) []*state.GroundUnit {
	var out []*state.GroundUnit
	for _, gid := range col.GroundUnits {
		g := st.GroundUnits[gid]
		if g != nil && g.Owner == attacker && g.Class == state.GroundMarine {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Index() < out[j].ID.Index() })
	return out
}

func colonyDefenders(st *state.State, col *state.Colony) []*state.GroundUnit {
	var out []*state.GroundUnit
	for _, gid := range col.GroundUnits {
		g := st.GroundUnits[gid]
		if g != nil && g.Owner == col.Owner && (g.Class == state.GroundArmy || g.Class == state.GroundBattery) {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Index() < out[j].ID.Index() })
	return out
}

func pruneDead(units []*state.GroundUnit) []*state.GroundUnit {
	var out []*state.GroundUnit
	for _, u := range units {
		if u.DS > 0 {
			out = append(out, u)
		}
	}
	return out
}
