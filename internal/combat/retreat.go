package combat

import (
	"sort"

	"github.com/greenm01/ec4x/internal/event"
	"github.com/greenm01/ec4x/internal/id"
	"github.com/greenm01/ec4x/internal/starmap"
	"github.com/greenm01/ec4x/internal/state"
)

// EvaluateRetreat marks f.Retreating and picks f.OutgoingLane for every
// force in b whose owning fleet carries CmdSeekHome or whose commander
// otherwise chose to withdraw this round (spec.md section 4.6: "retreat
// logic (valid outgoing lane required, pinned if none)"). A force with
// no traversable lane out of the system is pinned and must keep
// fighting regardless of its retreat order.
func EvaluateRetreat(st *state.State, b *Battle, wantsRetreat map[id.ID]bool, turn int) []event.Event {
	var events []event.Event
	sys := st.Systems[b.System]
	if sys == nil {
		return events
	}

	houseIDs := make([]id.ID, 0, len(b.Forces))
	for hid := range b.Forces {
		houseIDs = append(houseIDs, hid)
	}
	sort.Slice(houseIDs, func(i, j int) bool { return houseIDs[i].Index() < houseIDs[j].Index() })

	for _, hid := range houseIDs {
		if !wantsRetreat[hid] {
			continue
		}
		f := b.Forces[hid]
		lane, ok := findOutgoingLane(st, sys, f)
		if !ok {
			continue // pinned: no valid lane out, must keep fighting
		}
		f.Retreating = true
		f.OutgoingLane = lane
		events = append(events, event.New(event.FleetRetreat, turn).WithHouse(hid).WithSystem(b.System))
	}
	return events
}

func findOutgoingLane(st *state.State, sys *state.System, f *Force) (id.ID, bool) {
	crippled := forceIsCrippled(st, f)
	classes := forceShipClasses(st, f)
	for _, lid := range sys.Lanes {
		l := st.Lanes[lid]
		if l == nil {
			continue
		}
		if starmap.CanTraverse(l, classes, crippled) {
			return lid, true
		}
	}
	return id.Nil, false
}

func forceIsCrippled(st *state.State, f *Force) bool {
	for _, sid := range f.Ships {
		if sh := st.Ships[sid]; sh != nil && sh.State != state.Undamaged {
			return true
		}
	}
	return false
}

func forceShipClasses(st *state.State, f *Force) []state.ShipClass {
	seen := make(map[state.ShipClass]bool)
	var out []state.ShipClass
	for _, sid := range f.Ships {
		if sh := st.Ships[sid]; sh != nil && !seen[sh.Class] {
			seen[sh.Class] = true
			out = append(out, sh.Class)
		}
	}
	return out
}
