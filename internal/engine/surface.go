package engine

import (
	"github.com/greenm01/ec4x/internal/config"
	"github.com/greenm01/ec4x/internal/event"
	"github.com/greenm01/ec4x/internal/fow"
	"github.com/greenm01/ec4x/internal/id"
	"github.com/greenm01/ec4x/internal/state"
)

// ProjectFor is the external projectFor(state, houseId) -> playerView
// interface (spec.md section 6): a thin pass-through to fow.Project so
// callers outside this module never import internal/fow directly.
func ProjectFor(st *state.State, houseID id.ID) fow.PlayerView {
	return fow.Project(st, houseID)
}

// FilterEvents is the external filterEvents(events, houseId, state) ->
// seq<event> interface (spec.md section 6): a thin pass-through to
// event.Filter.
func FilterEvents(events []event.Event, houseID id.ID, st *state.State) []event.Event {
	return event.Filter(events, houseID, st)
}

// VictoryReason names which clause of the victory condition fired.
type VictoryReason int

const (
	VictoryPrestige VictoryReason = iota
	VictoryFinalConflict
)

func (r VictoryReason) String() string {
	switch r {
	case VictoryPrestige:
		return "Prestige"
	case VictoryFinalConflict:
		return "FinalConflict"
	default:
		return "Unknown"
	}
}

// VictoryOutcome names the winning house and the clause that decided
// the game (spec.md section 6).
type VictoryOutcome struct {
	Winner id.ID
	Reason VictoryReason
}

// IsVictory is the external isVictory(state) -> optional<VictoryOutcome>
// interface (spec.md section 6): a house wins outright at
// rules.VictoryPrestigeThreshold prestige, or by being the sole house
// left standing once every rival has been Eliminated or forced into
// DefensiveCollapse (the Final-Conflict last-two-standing rule, which
// both houses in the pair keep approaching until one of them falls).
// Returns nil when no house has won yet.
func IsVictory(st *state.State, rules config.Rules) *VictoryOutcome {
	houseIDs := make([]id.ID, 0, len(st.Houses))
	for hid := range st.Houses {
		houseIDs = append(houseIDs, hid)
	}
	sortByIndex(houseIDs)

	for _, hid := range houseIDs {
		house := st.Houses[hid]
		if house.Eliminated || house.IsDefensiveCollapse() {
			continue
		}
		if house.Prestige >= rules.VictoryPrestigeThreshold {
			return &VictoryOutcome{Winner: hid, Reason: VictoryPrestige}
		}
	}

	var standing []id.ID
	for _, hid := range houseIDs {
		house := st.Houses[hid]
		if !house.Eliminated && !house.IsDefensiveCollapse() {
			standing = append(standing, hid)
		}
	}
	if len(standing) == 1 {
		return &VictoryOutcome{Winner: standing[0], Reason: VictoryFinalConflict}
	}
	return nil
}

// sortByIndex orders ids by index so IsVictory's prestige scan is
// deterministic (ties broken by ascending id, never by map iteration
// order).
func sortByIndex(ids []id.ID) {
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j].Index() < ids[j-1].Index(); j-- {
			ids[j], ids[j-1] = ids[j-1], ids[j]
		}
	}
}
