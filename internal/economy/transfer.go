package economy

import (
	"github.com/greenm01/ec4x/internal/event"
	"github.com/greenm01/ec4x/internal/id"
	"github.com/greenm01/ec4x/internal/starmap"
	"github.com/greenm01/ec4x/internal/state"
)

// CreateTransfer enqueues a population transfer commissioned this turn
// after the budget gate already deducted its cost (spec.md section 4.3
// Command phase "Population transfer creation").
func CreateTransfer(st *state.State, src, dst *state.Colony, ptu, cost, jumps, turn int) *state.PopulationInTransit {
	t := &state.PopulationInTransit{
		Owner:       src.Owner,
		Source:      src.ID,
		Destination: dst.ID,
		PTU:         ptu,
		CostPaid:    cost,
		ArrivalTurn: turn + jumps,
	}
	st.AddTransit(t)
	src.TransferUnits -= ptu
	return t
}

// AdvanceTransfers resolves every PopulationInTransit due to arrive this
// turn: Delivered if the destination colony is still owned by the
// sender and not under blockade, Redirected otherwise to the house's
// still-owned colony nearest the source colony's system, or Lost if the house holds no colony at all anymore
// (spec.md section 4.3 Maintenance phase "smart delivery").
func AdvanceTransfers(st *state.State, turn int) []event.Event {
	var events []event.Event

	for tid, t := range st.Transits {
		if t.ArrivalTurn > turn {
			continue
		}

		dst := st.Colonies[t.Destination]
		if dst != nil && dst.Owner == t.Owner && !dst.Blockade.Active {
			dst.PopulationUnits += t.PTU
			events = append(events, event.New(event.TransferDelivered, turn).WithHouse(t.Owner).WithSystem(dst.System).
				With("ptu", t.PTU))
			st.RemoveTransit(tid)
			continue
		}

		var fromSys id.ID
		if src := st.Colonies[t.Source]; src != nil {
			fromSys = src.System
		}
		if redirect := nearestOwnedColony(st, t.Owner, fromSys); redirect != nil {
			redirect.PopulationUnits += t.PTU
			events = append(events, event.New(event.TransferRedirected, turn).WithHouse(t.Owner).WithSystem(redirect.System).
				With("ptu", t.PTU))
			st.RemoveTransit(tid)
			continue
		}

		events = append(events, event.New(event.TransferLost, turn).WithHouse(t.Owner).With("ptu", t.PTU))
		st.RemoveTransit(tid)
	}

	return events
}

// nearestOwnedColony picks the house's still-owned colony whose system
// is closest in hex distance to fromSystem (spec.md section 4.3
// Maintenance phase "smart delivery" redirect target).
func nearestOwnedColony(st *state.State, owner, fromSystem id.ID) *state.Colony {
	owned := st.ColoniesByOwner[owner]
	if len(owned) == 0 {
		return nil
	}
	from := st.Systems[fromSystem]
	best := st.Colonies[owned[0]]
	if from == nil {
		return best
	}
	bestDist := -1
	for _, cid := range owned {
		c := st.Colonies[cid]
		if c == nil {
			continue
		}
		sys := st.Systems[c.System]
		if sys == nil {
			continue
		}
		d := starmap.HexDistance(from.Hex, sys.Hex)
		if bestDist == -1 || d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best
}
