package engine

import (
	"fmt"

	"github.com/greenm01/ec4x/internal/state"
)

// checkInvariants scans st for the post-condition failures spec.md
// section 7/8 names as InvariantPoisoning triggers: a dangling index
// reference, a fleet owned by or located at a non-existent entity, a
// negative PTU, or a dock over-subscription. It panics on the first
// violation found (in deterministic, ascending-id order so the poison
// reason is itself reproducible); ResolveTurn's deferred recover turns
// that panic into the distinguished poisoned return named in spec.md
// section 4.3/7 ("this is never silent").
func checkInvariants(st *state.State) {
	for hid, fids := range st.FleetsByOwner {
		if _, ok := st.Houses[hid]; !ok {
			panic(fmt.Sprintf("index consistency: FleetsByOwner references missing house %s", hid))
		}
		for _, fid := range fids {
			if _, ok := st.Fleets[fid]; !ok {
				panic(fmt.Sprintf("index consistency: FleetsByOwner[%s] references missing fleet %s", hid, fid))
			}
		}
	}

	for sysID, cid := range st.ColonyBySystem {
		if _, ok := st.Systems[sysID]; !ok {
			panic(fmt.Sprintf("index consistency: ColonyBySystem references missing system %s", sysID))
		}
		if _, ok := st.Colonies[cid]; !ok {
			panic(fmt.Sprintf("index consistency: ColonyBySystem[%s] references missing colony %s", sysID, cid))
		}
	}

	for hid, cids := range st.ColoniesByOwner {
		if _, ok := st.Houses[hid]; !ok {
			panic(fmt.Sprintf("index consistency: ColoniesByOwner references missing house %s", hid))
		}
		for _, cid := range cids {
			if _, ok := st.Colonies[cid]; !ok {
				panic(fmt.Sprintf("index consistency: ColoniesByOwner[%s] references missing colony %s", hid, cid))
			}
		}
	}

	for fid, f := range st.Fleets {
		if _, ok := st.Houses[f.Owner]; !ok {
			panic(fmt.Sprintf("ownership: fleet %s owned by missing house %s", fid, f.Owner))
		}
		if _, ok := st.Systems[f.Location]; !ok {
			panic(fmt.Sprintf("ownership: fleet %s located at missing system %s", fid, f.Location))
		}
		for _, sid := range f.Ships {
			sh, ok := st.Ships[sid]
			if !ok {
				panic(fmt.Sprintf("index consistency: fleet %s references missing ship %s", fid, sid))
			}
			if sh.Fleet != fid {
				panic(fmt.Sprintf("index consistency: ship %s's Fleet field disagrees with fleet %s membership", sid, fid))
			}
		}
	}

	for cid, c := range st.Colonies {
		if _, ok := st.Houses[c.Owner]; !ok {
			panic(fmt.Sprintf("ownership: colony %s owned by missing house %s", cid, c.Owner))
		}
		if c.PopulationUnits < 0 {
			panic(fmt.Sprintf("colony %s has negative PopulationUnits", cid))
		}
		if c.TransferUnits < 0 {
			panic(fmt.Sprintf("colony %s has negative TransferUnits", cid))
		}

		for _, nid := range c.Neoriae {
			n, ok := st.Neoriae[nid]
			if !ok {
				panic(fmt.Sprintf("index consistency: colony %s references missing neoria %s", cid, nid))
			}
			active := 0
			for _, pid := range c.ActiveConstruction {
				if p := st.Projects[pid]; p != nil && p.AssignedNeoria == nid {
					active++
				}
			}
			for _, rid := range c.RepairQueue {
				if rp := st.Repairs[rid]; rp != nil && rp.AssignedNeoria == nid {
					active++
				}
			}
			if active > n.EffectiveDocks {
				panic(fmt.Sprintf("dock capacity: neoria %s has %d active projects against %d effective docks", nid, active, n.EffectiveDocks))
			}
		}

		for _, pid := range c.ActiveConstruction {
			if _, ok := st.Projects[pid]; !ok {
				panic(fmt.Sprintf("index consistency: colony %s ActiveConstruction references missing project %s", cid, pid))
			}
		}
	}

	for tid, t := range st.Transits {
		if t.PTU < 0 {
			panic(fmt.Sprintf("population transfer %s has negative PTU", tid))
		}
	}
}
