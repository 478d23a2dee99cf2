package economy

import (
	"hash/fnv"
	"sort"

	"github.com/greenm01/ec4x/internal/config"
	"github.com/greenm01/ec4x/internal/event"
	"github.com/greenm01/ec4x/internal/id"
	"github.com/greenm01/ec4x/internal/starmap"
	"github.com/greenm01/ec4x/internal/state"
)

// ColonizeClaim is one house's bid to found a colony at a system this
// turn (spec.md section 4.3 Command phase "simultaneous colonization").
type ColonizeClaim struct {
	House  id.ID
	Fleet  id.ID
	System id.ID
}

// tiebreakHash derives the deterministic, replay-stable tiebreak key
// for one system's colonization race (spec.md section 4.3: "tiebreak
// hash(turn, systemId)"), grounded on internal/rng.SeedFor's
// hash/fnv-based seed derivation but scoped to a system rather than a
// whole game.
func tiebreakHash(turn int, sys id.ID) uint64 {
	h := fnv.New64a()
	var buf [12]byte
	t := uint32(turn)
	buf[0], buf[1], buf[2], buf[3] = byte(t), byte(t>>8), byte(t>>16), byte(t>>24)
	idx := uint32(sys.Index())
	buf[4], buf[5], buf[6], buf[7] = byte(idx), byte(idx>>8), byte(idx>>16), byte(idx>>24)
	h.Write(buf[:8])
	return h.Sum64()
}

// fleetStrength sums the attack strength of a fleet's non-destroyed
// ships (spec.md section 4.3: winner picked by "fleetStrength").
func fleetStrength(st *state.State, fleetID id.ID) int {
	f := st.Fleets[fleetID]
	if f == nil {
		return 0
	}
	total := 0
	for _, sid := range f.Ships {
		sh := st.Ships[sid]
		if sh == nil || sh.State == state.Destroyed {
			continue
		}
		total += sh.AS
	}
	return total
}

// depositColonistCargo consumes every ETAC/TroopTransport's Colonist
// cargo aboard a fleet toward a new colony's population, consuming the
// ETAC hull itself (spec.md section 4.3: "the winner deposits *all*
// ETAC/TroopTransport Colonist cargo..., the ETAC hull is consumed
// (becomes colony infrastructure)"). Returns the total PU deposited and
// the infrastructure bonus from consumed hulls.
func depositColonistCargo(st *state.State, fleetID id.ID) (depositedPU, infraBonus int) {
	f := st.Fleets[fleetID]
	if f == nil {
		return 0, 0
	}
	for _, sid := range append([]id.ID(nil), f.Ships...) {
		sh := st.Ships[sid]
		if sh == nil || sh.Cargo == nil || sh.Cargo.Kind != state.CargoColonists {
			continue
		}
		depositedPU += sh.Cargo.Amount
		switch sh.Class {
		case state.ShipETAC:
			infraBonus += 5
			st.RemoveShip(sid)
		case state.ShipTroopTransport:
			sh.Cargo = nil
		}
	}
	return depositedPU, infraBonus
}

// foundColony creates a new colony at sys for winner, with the larger of
// the foundation PU floor and that fleet's deposited colonist cargo.
func foundColony(st *state.State, rules config.Rules, winner id.ID, fleetID, sys id.ID) *state.Colony {
	depositedPU, infraBonus := depositColonistCargo(st, fleetID)
	pu := rules.ColonyFoundationPU
	if depositedPU > pu {
		pu = depositedPU
	}
	col := &state.Colony{
		Owner:           winner,
		System:          sys,
		PopulationUnits: pu,
		Infrastructure:  10 + infraBonus,
		TaxRate:         25,
	}
	st.AddColony(col)
	return col
}

// fallbackCandidates returns the uncolonized systems within range of
// origin, preferredClass matches first at any distance, then the rest;
// each group is ordered nearest first, ties by system index, excluding
// anything in claimed
// (spec.md section 4.3: "scan within range for nearest uncolonized
// system matching planet-class preference").
func fallbackCandidates(st *state.State, origin *state.System, preferredClass state.PlanetClass, scanRange int, claimed map[id.ID]bool) []id.ID {
	type cand struct {
		sys       id.ID
		dist      int
		preferred bool
	}
	var cands []cand
	for sysID, sys := range st.Systems {
		if sysID == origin.ID || claimed[sysID] {
			continue
		}
		if _, colonized := st.ColonyBySystem[sysID]; colonized {
			continue
		}
		d := starmap.HexDistance(origin.Hex, sys.Hex)
		if d > scanRange {
			continue
		}
		cands = append(cands, cand{sys: sysID, dist: d, preferred: sys.PlanetClass == preferredClass})
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].preferred != cands[j].preferred {
			return cands[i].preferred
		}
		if cands[i].dist != cands[j].dist {
			return cands[i].dist < cands[j].dist
		}
		return cands[i].sys.Index() < cands[j].sys.Index()
	})

	out := make([]id.ID, 0, len(cands))
	for _, c := range cands {
		out = append(out, c.sys)
	}
	return out
}

const maxFallbackRounds = 3

// resolveFallback attempts up to maxFallbackRounds nearest candidates
// for a losing claim, claiming the first one not already taken by an
// earlier fallback in this same resolution pass.
func resolveFallback(st *state.State, rules config.Rules, claim ColonizeClaim, origin *state.System, claimed map[id.ID]bool, turn int) []event.Event {
	candidates := fallbackCandidates(st, origin, origin.PlanetClass, rules.ColonizationScanRange, claimed)
	if len(candidates) > maxFallbackRounds {
		candidates = candidates[:maxFallbackRounds]
	}

	for _, sys := range candidates {
		if claimed[sys] {
			continue
		}
		claimed[sys] = true
		foundColony(st, rules, claim.House, claim.Fleet, sys)
		return []event.Event{
			event.New(event.FallbackSuccess, turn).WithHouse(claim.House).WithSystem(sys).
				With("originalTarget", claim.System.String()),
		}
	}

	return []event.Event{
		event.New(event.NoViableTarget, turn).WithHouse(claim.House).WithSystem(claim.System),
	}
}

// ResolveColonization groups claims by target system and, for any
// system with more than one bidder, awards the colony to the claim with
// the greatest fleetStrength, breaking ties with tiebreakHash(turn,
// system) so the outcome is deterministic and seed-free regardless of
// RNG-consumption order elsewhere in the turn (spec.md section 4.3/4.8).
// Losing claimants attempt fallback colonization at a nearby
// uncolonized system; their fleets are left in place and no fleet order
// is changed.
func ResolveColonization(st *state.State, rules config.Rules, claims []ColonizeClaim, turn int) []event.Event {
	var events []event.Event
	bySystem := make(map[id.ID][]ColonizeClaim)
	for _, c := range claims {
		bySystem[c.System] = append(bySystem[c.System], c)
	}

	var systems []id.ID
	for sys := range bySystem {
		systems = append(systems, sys)
	}
	sort.Slice(systems, func(i, j int) bool { return systems[i].Index() < systems[j].Index() })

	claimedFallback := make(map[id.ID]bool)

	for _, sys := range systems {
		bidders := bySystem[sys]
		sort.Slice(bidders, func(i, j int) bool { return bidders[i].House.Index() < bidders[j].House.Index() })

		winner := bidders[0]
		winnerStrength := fleetStrength(st, winner.Fleet)
		winnerKey := tiebreakHash(turn, sys) ^ uint64(winner.House.Index())
		for _, c := range bidders[1:] {
			cStrength := fleetStrength(st, c.Fleet)
			cKey := tiebreakHash(turn, sys) ^ uint64(c.House.Index())
			if cStrength > winnerStrength || (cStrength == winnerStrength && cKey < winnerKey) {
				winner, winnerStrength, winnerKey = c, cStrength, cKey
			}
		}

		foundColony(st, rules, winner.House, winner.Fleet, sys)
		events = append(events, event.New(event.ColonyEstablished, turn).WithHouse(winner.House).WithSystem(sys))

		originSys := st.Systems[sys]
		for _, c := range bidders {
			if c.House == winner.House {
				continue
			}
			events = append(events, event.New(event.OrderFailed, turn).WithHouse(c.House).WithSystem(sys).
				With("reason", "lost colonization race"))
			if originSys != nil {
				events = append(events, resolveFallback(st, rules, c, originSys, claimedFallback, turn)...)
			}
		}
	}

	return events
}
