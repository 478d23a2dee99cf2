// Package fow implements the fog-of-war projector (spec.md section
// 4.4): a pure function from canonical state to one house's player
// view. Grounded on players/game_state.go's PlayerGameState (a
// per-player derived view already separated from the authoritative
// Player/system records) generalized from "my own data only" into a
// full own/foreign split driven by each house's IntelDatabase.
package fow

import (
	"github.com/greenm01/ec4x/internal/id"
	"github.com/greenm01/ec4x/internal/state"
)

// SystemView is what a viewer knows about one system.
type SystemView struct {
	System      id.ID
	Visibility  state.Visibility
	PlanetClass *state.PlanetClass // nil unless Visibility >= Scouted
	Resource    *state.ResourceRating
	Ring        int
	Hex         state.HexCoord
}

// FleetView is what a viewer knows about one foreign (or own) fleet.
type FleetView struct {
	Fleet          id.ID
	Owner          id.ID
	System         id.ID
	Stale          bool
	LastSeenTurn   int
	EstimatedCount int
	Exact          map[state.ShipClass]int // set only on fresh detection or own fleets
}

// ColonyView is what a viewer knows about one foreign (or own) colony.
type ColonyView struct {
	Colony            id.ID
	Owner             id.ID
	System            id.ID
	Own               bool
	PopulationUnits   int
	IndustrialUnits   int
	ProductionCap     int
	EstimatedPop      int
	EstimatedIndustry int
	EstimatedDefenses int
}

// PlayerView is the full projection handed to one house's client.
type PlayerView struct {
	Viewer       id.ID
	Turn         int
	Systems      map[id.ID]SystemView
	Fleets       map[id.ID]FleetView
	Colonies     map[id.ID]ColonyView
	Relations    map[id.ID]state.DiplomaticState // other house id -> relation
	PendingProposals []state.PendingProposal
	Act          state.ActProgression
}

// Project computes viewer's PlayerView from st. Never reads wall-clock
// time; never draws from RNG (spec.md section 4.4).
func Project(st *state.State, viewer id.ID) PlayerView {
	pv := PlayerView{
		Viewer:   viewer,
		Turn:     st.Turn,
		Systems:  make(map[id.ID]SystemView),
		Fleets:   make(map[id.ID]FleetView),
		Colonies: make(map[id.ID]ColonyView),
		Relations: make(map[id.ID]state.DiplomaticState),
		Act:      st.Act,
	}

	house := st.Houses[viewer]
	if house == nil {
		return pv
	}

	for sysID, sys := range st.Systems {
		pv.Systems[sysID] = projectSystem(st, house, sysID, sys)
	}

	for fleetID, f := range st.Fleets {
		if fv, ok := projectFleet(st, house, fleetID, f); ok {
			pv.Fleets[fleetID] = fv
		}
	}

	for colID, c := range st.Colonies {
		pv.Colonies[colID] = projectColony(st, house, colID, c)
	}

	for otherID := range st.Houses {
		if otherID == viewer {
			continue
		}
		r := st.FindRelation(viewer, otherID)
		pv.Relations[otherID] = r.State
		if r.Proposal != nil && (r.Proposal.Proposer == viewer || r.Proposal.Target == viewer) {
			pv.PendingProposals = append(pv.PendingProposals, *r.Proposal)
		}
	}

	return pv
}

func projectSystem(st *state.State, house *state.House, sysID id.ID, sys *state.System) SystemView {
	sv := SystemView{System: sysID, Hex: sys.Hex, Ring: sys.Ring}

	owned := false
	if cid, ok := st.ColonyBySystem[sysID]; ok {
		if c := st.Colonies[cid]; c != nil && c.Owner == house.ID {
			owned = true
		}
	}
	if owned || st.HouseHasPresence(house.ID, sysID) {
		sv.Visibility = state.VisibilityOwned
		pc := sys.PlanetClass
		rr := sys.ResourceRating
		sv.PlanetClass = &pc
		sv.Resource = &rr
		return sv
	}

	intel, ok := house.IntelDB.Systems[sysID]
	if !ok {
		sv.Visibility = state.VisibilityNone
		return sv
	}
	sv.Visibility = intel.Level
	if intel.Level >= state.VisibilityScouted {
		pc := sys.PlanetClass
		rr := sys.ResourceRating
		sv.PlanetClass = &pc
		sv.Resource = &rr
	}
	return sv
}

func projectFleet(st *state.State, house *state.House, fleetID id.ID, f *state.Fleet) (FleetView, bool) {
	if f.Owner == house.ID {
		return FleetView{
			Fleet:  fleetID,
			Owner:  f.Owner,
			System: f.Location,
			Exact:  shipCounts(st, f),
		}, true
	}

	hasPresence := st.HouseHasPresence(house.ID, f.Location)
	intel, sighted := house.IntelDB.Fleets[fleetID]

	if !hasPresence && !sighted {
		return FleetView{}, false
	}

	fv := FleetView{Fleet: fleetID, Owner: f.Owner, System: f.Location}
	if hasPresence {
		fv.LastSeenTurn = st.Turn
		fv.Exact = shipCounts(st, f)
		return fv, true
	}

	fv.Stale = true
	fv.LastSeenTurn = intel.LastUpdatedTurn
	fv.System = intel.LastSeenSystem
	fv.EstimatedCount = intel.EstimatedCount
	if intel.Exact != nil {
		fv.Exact = intel.Exact
		fv.Stale = false
	}
	return fv, true
}

func shipCounts(st *state.State, f *state.Fleet) map[state.ShipClass]int {
	counts := make(map[state.ShipClass]int)
	for _, sid := range f.Ships {
		if sh := st.Ships[sid]; sh != nil {
			counts[sh.Class]++
		}
	}
	return counts
}

func projectColony(st *state.State, house *state.House, colID id.ID, c *state.Colony) ColonyView {
	cv := ColonyView{Colony: colID, Owner: c.Owner, System: c.System}
	if c.Owner == house.ID {
		cv.Own = true
		cv.PopulationUnits = c.PopulationUnits
		cv.IndustrialUnits = c.IndustrialUnits
		cv.ProductionCap = c.ProductionCap
		return cv
	}

	intel, ok := house.IntelDB.Colonies[colID]
	if !ok {
		return cv
	}
	pop, ind, def := intel.EstimatedPop, intel.EstimatedIndustry, intel.EstimatedDefenses
	if corrupted(house, c.System, st.Turn) {
		pop = scramble(pop, colID, st.Turn, 1)
		ind = scramble(ind, colID, st.Turn, 2)
		def = scramble(def, colID, st.Turn, 3)
	}
	cv.EstimatedPop = pop
	cv.EstimatedIndustry = ind
	cv.EstimatedDefenses = def
	return cv
}

// corrupted reports whether an IntelCorrupted effect is currently
// scrambling this house's view of sys (spec.md section 4.4: "the
// presence of corruption is not revealed" — callers must not expose
// this boolean itself to the viewer, only its scrambled side effect).
func corrupted(house *state.House, sys id.ID, turn int) bool {
	si, ok := house.IntelDB.Systems[sys]
	return ok && si.CorruptedUntilTurn > turn
}

// scramble deterministically offsets val by a per-turn, per-field
// factor in +-[20%, 40%], derived from colID/turn/salt rather than the
// shared RNG (the projector must never draw from RNG per spec.md
// section 4.4).
func scramble(val int, colID id.ID, turn, salt int) int {
	if val == 0 {
		return 0
	}
	h := uint32(colID.Index())*2654435761 + uint32(turn)*40503 + uint32(salt)*2246822519
	pct := 20 + int(h%21) // 20..40
	sign := 1
	if h%2 == 0 {
		sign = -1
	}
	return val + sign*(val*pct/100)
}
