package economy

import (
	"github.com/greenm01/ec4x/internal/config"
	"github.com/greenm01/ec4x/internal/event"
	"github.com/greenm01/ec4x/internal/id"
	"github.com/greenm01/ec4x/internal/state"
)

// chooseDock picks the Neoria to assign a newly-queued
// ConstructionProject to at col: a Shipyard with a free dock first,
// falling back to the Spaceport with the most free docks (the earliest
// in col.Neoriae order on a tie), which spreads successive projects
// across spaceports (spec.md
// section 4.3 Command phase "chooseDock: shipyard-preferred then
// spaceport round-robin"). Returns id.Nil if every dock is occupied.
func chooseDock(st *state.State, col *state.Colony) id.ID {
	var shipyards, spaceports []id.ID
	for _, nid := range col.Neoriae {
		n := st.Neoriae[nid]
		if n == nil || n.State == state.Destroyed {
			continue
		}
		switch n.Class {
		case state.Shipyard:
			shipyards = append(shipyards, nid)
		case state.Spaceport:
			spaceports = append(spaceports, nid)
		}
	}

	free := func(neoriaID id.ID) int {
		used := 0
		for _, pid := range col.ActiveConstruction {
			if p := st.Projects[pid]; p != nil && p.AssignedNeoria == neoriaID {
				used++
			}
		}
		for _, rid := range col.RepairQueue {
			if rp := st.Repairs[rid]; rp != nil && rp.AssignedNeoria == neoriaID {
				used++
			}
		}
		n := st.Neoriae[neoriaID]
		if n == nil {
			return 0
		}
		return n.EffectiveDocks - used
	}

	for _, nid := range shipyards {
		if free(nid) > 0 {
			return nid
		}
	}
	best, bestFree := id.Nil, 0
	for _, nid := range spaceports {
		if f := free(nid); f > bestFree {
			best, bestFree = nid, f
		}
	}
	return best
}

// AssignDocks walks col's ConstructionQueue in order, moving any project
// that can claim a free dock into ActiveConstruction (spec.md section
// 4.3 Command phase). Projects remain queued, in order, when no dock is
// free.
func AssignDocks(st *state.State, col *state.Colony) []event.Event {
	var events []event.Event
	var stillQueued []id.ID

	for _, pid := range col.ConstructionQueue {
		p := st.Projects[pid]
		if p == nil {
			continue
		}
		dock := chooseDock(st, col)
		if dock.IsNil() {
			stillQueued = append(stillQueued, pid)
			continue
		}
		p.AssignedNeoria = dock
		p.Stage = state.StageActive
		col.ActiveConstruction = append(col.ActiveConstruction, pid)
	}
	col.ConstructionQueue = stillQueued
	return events
}

// AdvanceConstruction decrements TurnsRemaining on every active project
// at col and commissions any that reach zero, instantiating the
// concrete Ship/Neoria/Kastra/GroundUnit/IndustrialUnits delta it
// describes (spec.md section 4.3 Maintenance phase).
func AdvanceConstruction(st *state.State, rules config.Rules, col *state.Colony, turn int) []event.Event {
	var events []event.Event
	var stillActive []id.ID

	for _, pid := range col.ActiveConstruction {
		p := st.Projects[pid]
		if p == nil {
			continue
		}
		p.TurnsRemaining--
		if p.TurnsRemaining > 0 {
			stillActive = append(stillActive, pid)
			continue
		}
		commissionProject(st, rules, col, p, turn)
		p.Stage = state.StageCommissioned
		st.RemoveProject(pid)
		events = append(events, event.New(event.ConstructionFinished, turn).WithSystem(col.System).
			With("target", int(p.Target.Kind)))
	}
	col.ActiveConstruction = stillActive
	return events
}

// commissionProject instantiates the concrete entity a finished
// ConstructionProject describes, freezing its stats at the owning
// house's current tech levels (spec.md section 3: "stats frozen at
// construction").
func commissionProject(st *state.State, rules config.Rules, col *state.Colony, p *state.ConstructionProject, turn int) {
	house := st.Houses[col.Owner]
	wep := 0
	if house != nil {
		wep = house.Tech[state.TechWEP]
	}

	switch p.Target.Kind {
	case state.TargetShip:
		stats := rules.Ships[p.Target.ShipClass]
		for i := 0; i < p.Quantity; i++ {
			st.AddShip(&state.Ship{
				Owner: col.Owner, Colony: col.ID, Class: p.Target.ShipClass, State: state.Undamaged,
				AS: stats.AS, DS: stats.DS, CommandCost: stats.CommandCost,
				CargoCapacity: stats.CargoCapacity, WEPAtBuild: wep,
			})
		}
	case state.TargetFacility:
		if p.Target.IsKastra {
			baseDocks := state.Spaceport.BaseDocks() // a Kastra's own "dock" count is its bay capacity, sized like a Spaceport
			st.AddKastra(&state.Kastra{
				Colony: col.ID, CommissionedTurn: turn, State: state.Undamaged,
				WEPAtBuild: wep, BaseDocks: baseDocks, EffectiveDocks: baseDocks,
			})
		} else {
			baseDocks := p.Target.FacilityClass.BaseDocks()
			st.AddNeoria(&state.Neoria{
				Colony: col.ID, Class: p.Target.FacilityClass, State: state.Undamaged,
				CommissionedTurn: turn, BaseDocks: baseDocks, EffectiveDocks: baseDocks,
			})
		}
	case state.TargetGroundUnit:
		gstats := rules.GroundUnits[p.Target.GroundClass]
		for i := 0; i < p.Quantity; i++ {
			st.AddGroundUnit(&state.GroundUnit{Owner: col.Owner, Class: p.Target.GroundClass, Location: col.ID, AS: gstats.AS, DS: gstats.DS})
		}
	case state.TargetIndustrialUnits:
		col.IndustrialUnits += p.Target.IUAmount
	}
}

// chooseRepairDock picks a free Drydock, Shipyard or Spaceport at col
// to assign a new RepairProject to, preferring Drydocks since they are
// repair-only (spec.md section 3: "Drydock (5 docks, repair-only)").
func chooseRepairDock(st *state.State, col *state.Colony) id.ID {
	used := func(neoriaID id.ID) int {
		n := 0
		for _, rid := range col.RepairQueue {
			if rp := st.Repairs[rid]; rp != nil && rp.AssignedNeoria == neoriaID {
				n++
			}
		}
		return n
	}

	var drydocks, others []id.ID
	for _, nid := range col.Neoriae {
		n := st.Neoriae[nid]
		if n == nil || n.State == state.Destroyed {
			continue
		}
		if n.Class == state.Drydock {
			drydocks = append(drydocks, nid)
		} else {
			others = append(others, nid)
		}
	}
	for _, nid := range drydocks {
		if n := st.Neoriae[nid]; n != nil && n.EffectiveDocks-used(nid) > 0 {
			return nid
		}
	}
	for _, nid := range others {
		if n := st.Neoriae[nid]; n != nil && n.EffectiveDocks-used(nid) > 0 {
			return nid
		}
	}
	return id.Nil
}

// QueueAutoRepairs scans col's system for crippled ships belonging to
// col's owner, plus col's own crippled Neoriae/Kastrai, and enqueues a
// RepairProject for any not already under repair (spec.md section 3
// Colony "autoRepair flag"). Only runs when col.AutoRepair is set.
func QueueAutoRepairs(st *state.State, col *state.Colony) {
	if !col.AutoRepair {
		return
	}

	queued := make(map[id.ID]bool, len(col.RepairQueue))
	for _, rid := range col.RepairQueue {
		rp := st.Repairs[rid]
		if rp == nil {
			continue
		}
		queued[rp.TargetShip] = true
		queued[rp.TargetNeoria] = true
		queued[rp.TargetKastra] = true
	}

	enqueue := func(rp *state.RepairProject) {
		dock := chooseRepairDock(st, col)
		if dock.IsNil() {
			return
		}
		rp.AssignedNeoria = dock
		rp.TurnsRemaining = 2
		rp.Stage = state.StageActive
		rid := st.AddRepair(rp)
		col.RepairQueue = append(col.RepairQueue, rid)
	}

	for _, fid := range st.FleetsBySystem[col.System] {
		f := st.Fleets[fid]
		if f == nil || f.Owner != col.Owner {
			continue
		}
		for _, sid := range f.Ships {
			sh := st.Ships[sid]
			if sh == nil || sh.State != state.Crippled || queued[sid] {
				continue
			}
			enqueue(&state.RepairProject{Colony: col.ID, TargetShip: sid})
		}
	}
	for _, nid := range col.Neoriae {
		n := st.Neoriae[nid]
		if n == nil || n.State != state.Crippled || queued[nid] {
			continue
		}
		enqueue(&state.RepairProject{Colony: col.ID, TargetNeoria: nid})
	}
	for _, kid := range col.Kastrai {
		k := st.Kastrai[kid]
		if k == nil || k.State != state.Crippled || queued[kid] {
			continue
		}
		enqueue(&state.RepairProject{Colony: col.ID, TargetKastra: kid})
	}
}

// AdvanceRepairs mirrors AdvanceConstruction for col's RepairQueue,
// restoring the target's FacilityState to Undamaged on completion.
func AdvanceRepairs(st *state.State, col *state.Colony, turn int) []event.Event {
	var events []event.Event
	var stillQueued []id.ID

	for _, rid := range col.RepairQueue {
		rp := st.Repairs[rid]
		if rp == nil {
			continue
		}
		rp.TurnsRemaining--
		if rp.TurnsRemaining > 0 {
			stillQueued = append(stillQueued, rid)
			continue
		}
		if sh := st.Ships[rp.TargetShip]; sh != nil {
			sh.State = state.Undamaged
		}
		if n := st.Neoriae[rp.TargetNeoria]; n != nil {
			n.State = state.Undamaged
		}
		if k := st.Kastrai[rp.TargetKastra]; k != nil {
			k.State = state.Undamaged
		}
		st.RemoveRepair(rid)
	}
	col.RepairQueue = stillQueued
	return events
}
