// Package state defines the canonical game-state aggregate (spec.md
// section 3): every entity table, the star map, the diplomatic matrix,
// per-house intelligence stores, and the global turn/phase counters.
// The canonical state exclusively owns every entity table; all
// cross-entity references are ids (internal/id), never embedded
// pointers or copies. Index tables (by owner, by system, by fleet) are
// maintained as invariants alongside mutation methods here — callers
// must go through these methods rather than reaching into the maps
// directly, so the invariants in spec.md section 8 always hold.
package state

import "github.com/greenm01/ec4x/internal/id"

// Phase names the four fixed phases of a turn (spec.md section 4.3).
type Phase int

const (
	PhaseConflict Phase = iota
	PhaseIncome
	PhaseCommand
	PhaseMaintenance
)

// State is the single aggregate holding all canonical game data.
type State struct {
	GameSeed uint64 // stable per-game seed component for rngSeed = hash(gameId, turn)
	Turn     int
	Phase    Phase
	Act      ActProgression

	houseTbl  *id.Table
	systemTbl *id.Table
	laneTbl   *id.Table
	colonyTbl *id.Table
	neoriaTbl *id.Table
	kastraTbl *id.Table
	fleetTbl  *id.Table
	shipTbl   *id.Table
	groundTbl *id.Table
	projTbl   *id.Table
	repairTbl *id.Table
	transitTbl *id.Table
	effectTbl *id.Table
	relationTbl *id.Table

	Houses  map[id.ID]*House
	Systems map[id.ID]*System
	Lanes   map[id.ID]*JumpLane
	Colonies map[id.ID]*Colony
	Neoriae map[id.ID]*Neoria
	Kastrai map[id.ID]*Kastra
	Fleets  map[id.ID]*Fleet
	Ships   map[id.ID]*Ship
	GroundUnits map[id.ID]*GroundUnit
	Projects map[id.ID]*ConstructionProject
	Repairs map[id.ID]*RepairProject
	Transits map[id.ID]*PopulationInTransit
	Effects map[id.ID]*OngoingEffect
	Relations map[id.ID]*Relation

	// Secondary indices, maintained by the mutation methods below.
	ColonyBySystem map[id.ID]id.ID      // System -> Colony (at most one)
	FleetsBySystem map[id.ID][]id.ID     // System -> []Fleet
	ColoniesByOwner map[id.ID][]id.ID    // House -> []Colony
	FleetsByOwner  map[id.ID][]id.ID     // House -> []Fleet
	ShipsByFleet   map[id.ID][]id.ID     // Fleet -> []Ship (mirrors Fleet.Ships; kept for fast reverse lookup)
}

// New returns an empty canonical state with all tables/indices
// initialized.
func New() *State {
	return &State{
		houseTbl:  id.NewTable(id.KindHouse),
		systemTbl: id.NewTable(id.KindSystem),
		laneTbl:   id.NewTable(id.KindLane),
		colonyTbl: id.NewTable(id.KindColony),
		neoriaTbl: id.NewTable(id.KindNeoria),
		kastraTbl: id.NewTable(id.KindKastra),
		fleetTbl:  id.NewTable(id.KindFleet),
		shipTbl:   id.NewTable(id.KindShip),
		groundTbl: id.NewTable(id.KindGroundUnit),
		projTbl:   id.NewTable(id.KindProject),
		repairTbl: id.NewTable(id.KindProject),
		transitTbl: id.NewTable(id.KindTransit),
		effectTbl: id.NewTable(id.KindEffect),
		relationTbl: id.NewTable(id.KindProposal),

		Houses:   make(map[id.ID]*House),
		Systems:  make(map[id.ID]*System),
		Lanes:    make(map[id.ID]*JumpLane),
		Colonies: make(map[id.ID]*Colony),
		Neoriae:  make(map[id.ID]*Neoria),
		Kastrai:  make(map[id.ID]*Kastra),
		Fleets:   make(map[id.ID]*Fleet),
		Ships:    make(map[id.ID]*Ship),
		GroundUnits: make(map[id.ID]*GroundUnit),
		Projects: make(map[id.ID]*ConstructionProject),
		Repairs:  make(map[id.ID]*RepairProject),
		Transits: make(map[id.ID]*PopulationInTransit),
		Effects:  make(map[id.ID]*OngoingEffect),
		Relations: make(map[id.ID]*Relation),

		ColonyBySystem:  make(map[id.ID]id.ID),
		FleetsBySystem:  make(map[id.ID][]id.ID),
		ColoniesByOwner: make(map[id.ID][]id.ID),
		FleetsByOwner:   make(map[id.ID][]id.ID),
		ShipsByFleet:    make(map[id.ID][]id.ID),
	}
}

func removeID(s []id.ID, target id.ID) []id.ID {
	for i, v := range s {
		if v == target {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}

// --- House ---

func (s *State) AddHouse(h *House) id.ID {
	nid := s.houseTbl.Alloc()
	h.ID = nid
	if h.IntelDB.Systems == nil {
		h.IntelDB = NewIntelDatabase()
	}
	s.Houses[nid] = h
	return nid
}

// --- System / Lane ---

func (s *State) AddSystem(sys *System) id.ID {
	nid := s.systemTbl.Alloc()
	sys.ID = nid
	s.Systems[nid] = sys
	return nid
}

func (s *State) AddLane(l *JumpLane) id.ID {
	nid := s.laneTbl.Alloc()
	l.ID = nid
	s.Lanes[nid] = l
	if a := s.Systems[l.A]; a != nil {
		a.Lanes = append(a.Lanes, nid)
	}
	if b := s.Systems[l.B]; b != nil {
		b.Lanes = append(b.Lanes, nid)
	}
	return nid
}

// --- Colony ---

func (s *State) AddColony(c *Colony) id.ID {
	nid := s.colonyTbl.Alloc()
	c.ID = nid
	s.Colonies[nid] = c
	s.ColonyBySystem[c.System] = nid
	s.ColoniesByOwner[c.Owner] = append(s.ColoniesByOwner[c.Owner], nid)
	return nid
}

func (s *State) RemoveColony(cid id.ID) {
	c, ok := s.Colonies[cid]
	if !ok {
		return
	}
	delete(s.ColonyBySystem, c.System)
	s.ColoniesByOwner[c.Owner] = removeID(s.ColoniesByOwner[c.Owner], cid)
	delete(s.Colonies, cid)
	s.colonyTbl.Free(cid)
}

// TransferColony reassigns ownership of an existing colony (invasion).
func (s *State) TransferColony(cid, newOwner id.ID) {
	c, ok := s.Colonies[cid]
	if !ok {
		return
	}
	s.ColoniesByOwner[c.Owner] = removeID(s.ColoniesByOwner[c.Owner], cid)
	c.Owner = newOwner
	s.ColoniesByOwner[newOwner] = append(s.ColoniesByOwner[newOwner], cid)
}

// --- Neoria / Kastra ---

func (s *State) AddNeoria(n *Neoria) id.ID {
	nid := s.neoriaTbl.Alloc()
	n.ID = nid
	s.Neoriae[nid] = n
	if c := s.Colonies[n.Colony]; c != nil {
		c.Neoriae = append(c.Neoriae, nid)
	}
	return nid
}

func (s *State) AddKastra(k *Kastra) id.ID {
	nid := s.kastraTbl.Alloc()
	k.ID = nid
	s.Kastrai[nid] = k
	if c := s.Colonies[k.Colony]; c != nil {
		c.Kastrai = append(c.Kastrai, nid)
	}
	return nid
}

// --- Fleet ---

func (s *State) AddFleet(f *Fleet) id.ID {
	nid := s.fleetTbl.Alloc()
	f.ID = nid
	s.Fleets[nid] = f
	s.FleetsBySystem[f.Location] = append(s.FleetsBySystem[f.Location], nid)
	s.FleetsByOwner[f.Owner] = append(s.FleetsByOwner[f.Owner], nid)
	return nid
}

func (s *State) RemoveFleet(fid id.ID) {
	f, ok := s.Fleets[fid]
	if !ok {
		return
	}
	s.FleetsBySystem[f.Location] = removeID(s.FleetsBySystem[f.Location], fid)
	s.FleetsByOwner[f.Owner] = removeID(s.FleetsByOwner[f.Owner], fid)
	delete(s.ShipsByFleet, fid)
	delete(s.Fleets, fid)
	s.fleetTbl.Free(fid)
}

// MoveFleet relocates a fleet's system-index entry (used by the
// Command-phase movement step).
func (s *State) MoveFleet(fid, newSystem id.ID) {
	f, ok := s.Fleets[fid]
	if !ok {
		return
	}
	s.FleetsBySystem[f.Location] = removeID(s.FleetsBySystem[f.Location], fid)
	f.Location = newSystem
	s.FleetsBySystem[newSystem] = append(s.FleetsBySystem[newSystem], fid)
}

// --- Ship ---

func (s *State) AddShip(sh *Ship) id.ID {
	nid := s.shipTbl.Alloc()
	sh.ID = nid
	s.Ships[nid] = sh
	if !sh.Fleet.IsNil() {
		s.ShipsByFleet[sh.Fleet] = append(s.ShipsByFleet[sh.Fleet], nid)
		if f := s.Fleets[sh.Fleet]; f != nil {
			f.Ships = append(f.Ships, nid)
		}
	}
	return nid
}

// RemoveShip deletes a destroyed ship and detaches it from its fleet.
func (s *State) RemoveShip(sid id.ID) {
	sh, ok := s.Ships[sid]
	if !ok {
		return
	}
	if !sh.Fleet.IsNil() {
		s.ShipsByFleet[sh.Fleet] = removeID(s.ShipsByFleet[sh.Fleet], sid)
		if f := s.Fleets[sh.Fleet]; f != nil {
			f.Ships = removeID(f.Ships, sid)
		}
	}
	delete(s.Ships, sid)
	s.shipTbl.Free(sid)
}

// --- Diplomatic relations ---

// AddRelation creates the canonical Relation entity for an unordered
// house pair and records it on both houses' Relations maps.
func (s *State) AddRelation(r *Relation) id.ID {
	nid := s.relationTbl.Alloc()
	r.ID = nid
	s.Relations[nid] = r
	if a := s.Houses[r.A]; a != nil {
		if a.Relations == nil {
			a.Relations = make(map[id.ID]id.ID)
		}
		a.Relations[r.B] = nid
	}
	if b := s.Houses[r.B]; b != nil {
		if b.Relations == nil {
			b.Relations = make(map[id.ID]id.ID)
		}
		b.Relations[r.A] = nid
	}
	return nid
}

// FindRelation returns the Relation entity for (h1, h2), allocating one
// in the default Neutral state if none exists yet.
func (s *State) FindRelation(h1, h2 id.ID) *Relation {
	if h := s.Houses[h1]; h != nil {
		if rid, ok := h.Relations[h2]; ok {
			if r := s.Relations[rid]; r != nil {
				return r
			}
		}
	}
	a, b := h1, h2
	if less(b, a) {
		a, b = b, a
	}
	rid := s.AddRelation(&Relation{A: a, B: b, State: RelationNeutral})
	return s.Relations[rid]
}

func less(a, b id.ID) bool {
	return a.Index() < b.Index()
}

// --- Ground units / Projects / Transits / Effects ---

func (s *State) AddGroundUnit(g *GroundUnit) id.ID {
	nid := s.groundTbl.Alloc()
	g.ID = nid
	s.GroundUnits[nid] = g
	return nid
}

func (s *State) AddProject(p *ConstructionProject) id.ID {
	nid := s.projTbl.Alloc()
	p.ID = nid
	s.Projects[nid] = p
	return nid
}

func (s *State) RemoveProject(pid id.ID) {
	delete(s.Projects, pid)
	s.projTbl.Free(pid)
}

func (s *State) AddRepair(r *RepairProject) id.ID {
	nid := s.repairTbl.Alloc()
	r.ID = nid
	s.Repairs[nid] = r
	return nid
}

func (s *State) RemoveRepair(rid id.ID) {
	delete(s.Repairs, rid)
	s.repairTbl.Free(rid)
}

func (s *State) AddTransit(t *PopulationInTransit) id.ID {
	nid := s.transitTbl.Alloc()
	t.ID = nid
	s.Transits[nid] = t
	return nid
}

func (s *State) RemoveTransit(tid id.ID) {
	delete(s.Transits, tid)
	s.transitTbl.Free(tid)
}

func (s *State) AddEffect(e *OngoingEffect) id.ID {
	nid := s.effectTbl.Alloc()
	e.ID = nid
	s.Effects[nid] = e
	return nid
}

func (s *State) RemoveEffect(eid id.ID) {
	delete(s.Effects, eid)
	s.effectTbl.Free(eid)
}

// Clone deep-copies the entire canonical state. The resolver calls this
// once at the start of resolveTurn and mutates only the clone, so the
// previous turn's state is never mutated (spec.md section 4.3: "never
// mutates prior-turn state").
func (s *State) Clone() *State {
	n := &State{
		GameSeed: s.GameSeed,
		Turn:     s.Turn,
		Phase:    s.Phase,
		Act:      s.Act,

		houseTbl:  s.houseTbl.Clone(),
		systemTbl: s.systemTbl.Clone(),
		laneTbl:   s.laneTbl.Clone(),
		colonyTbl: s.colonyTbl.Clone(),
		neoriaTbl: s.neoriaTbl.Clone(),
		kastraTbl: s.kastraTbl.Clone(),
		fleetTbl:  s.fleetTbl.Clone(),
		shipTbl:   s.shipTbl.Clone(),
		groundTbl: s.groundTbl.Clone(),
		projTbl:   s.projTbl.Clone(),
		repairTbl: s.repairTbl.Clone(),
		transitTbl: s.transitTbl.Clone(),
		effectTbl: s.effectTbl.Clone(),
		relationTbl: s.relationTbl.Clone(),

		Houses:   make(map[id.ID]*House, len(s.Houses)),
		Systems:  make(map[id.ID]*System, len(s.Systems)),
		Lanes:    make(map[id.ID]*JumpLane, len(s.Lanes)),
		Colonies: make(map[id.ID]*Colony, len(s.Colonies)),
		Neoriae:  make(map[id.ID]*Neoria, len(s.Neoriae)),
		Kastrai:  make(map[id.ID]*Kastra, len(s.Kastrai)),
		Fleets:   make(map[id.ID]*Fleet, len(s.Fleets)),
		Ships:    make(map[id.ID]*Ship, len(s.Ships)),
		GroundUnits: make(map[id.ID]*GroundUnit, len(s.GroundUnits)),
		Projects: make(map[id.ID]*ConstructionProject, len(s.Projects)),
		Repairs:  make(map[id.ID]*RepairProject, len(s.Repairs)),
		Transits: make(map[id.ID]*PopulationInTransit, len(s.Transits)),
		Effects:  make(map[id.ID]*OngoingEffect, len(s.Effects)),
		Relations: make(map[id.ID]*Relation, len(s.Relations)),

		ColonyBySystem:  make(map[id.ID]id.ID, len(s.ColonyBySystem)),
		FleetsBySystem:  make(map[id.ID][]id.ID, len(s.FleetsBySystem)),
		ColoniesByOwner: make(map[id.ID][]id.ID, len(s.ColoniesByOwner)),
		FleetsByOwner:   make(map[id.ID][]id.ID, len(s.FleetsByOwner)),
		ShipsByFleet:    make(map[id.ID][]id.ID, len(s.ShipsByFleet)),
	}

	for k, v := range s.Houses {
		n.Houses[k] = v.Clone()
	}
	for k, v := range s.Systems {
		n.Systems[k] = v.Clone()
	}
	for k, v := range s.Lanes {
		l := *v
		l.RestrictedTo = append([]ShipClass(nil), v.RestrictedTo...)
		n.Lanes[k] = &l
	}
	for k, v := range s.Colonies {
		n.Colonies[k] = v.Clone()
	}
	for k, v := range s.Neoriae {
		nv := *v
		n.Neoriae[k] = &nv
	}
	for k, v := range s.Kastrai {
		nv := *v
		n.Kastrai[k] = &nv
	}
	for k, v := range s.Fleets {
		n.Fleets[k] = v.Clone()
	}
	for k, v := range s.Ships {
		n.Ships[k] = v.Clone()
	}
	for k, v := range s.GroundUnits {
		nv := *v
		n.GroundUnits[k] = &nv
	}
	for k, v := range s.Projects {
		n.Projects[k] = v.Clone()
	}
	for k, v := range s.Repairs {
		n.Repairs[k] = v.Clone()
	}
	for k, v := range s.Transits {
		n.Transits[k] = v.Clone()
	}
	for k, v := range s.Effects {
		n.Effects[k] = v.Clone()
	}
	for k, v := range s.Relations {
		n.Relations[k] = v.Clone()
	}

	for k, v := range s.ColonyBySystem {
		n.ColonyBySystem[k] = v
	}
	for k, v := range s.FleetsBySystem {
		n.FleetsBySystem[k] = append([]id.ID(nil), v...)
	}
	for k, v := range s.ColoniesByOwner {
		n.ColoniesByOwner[k] = append([]id.ID(nil), v...)
	}
	for k, v := range s.FleetsByOwner {
		n.FleetsByOwner[k] = append([]id.ID(nil), v...)
	}
	for k, v := range s.ShipsByFleet {
		n.ShipsByFleet[k] = append([]id.ID(nil), v...)
	}

	return n
}

// HouseHasPresence reports whether h owns a colony in sys, owns a fleet
// at sys, or owns an uncrippled starbase with active surveillance in
// sys — the single source of truth named in spec.md section 4.5.
func (s *State) HouseHasPresence(h, sys id.ID) bool {
	if cid, ok := s.ColonyBySystem[sys]; ok {
		if c := s.Colonies[cid]; c != nil && c.Owner == h {
			return true
		}
	}
	for _, fid := range s.FleetsBySystem[sys] {
		if f := s.Fleets[fid]; f != nil && f.Owner == h {
			return true
		}
	}
	if cid, ok := s.ColonyBySystem[sys]; ok {
		if c := s.Colonies[cid]; c != nil && c.Owner == h {
			for _, kid := range c.Kastrai {
				if k := s.Kastrai[kid]; k != nil && k.State == Undamaged && k.SurveillanceUp {
					return true
				}
			}
		}
	}
	return false
}
