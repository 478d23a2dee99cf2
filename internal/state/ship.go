package state

import "github.com/greenm01/ec4x/internal/id"

// ShipClass enumerates the fixed set of combatant/cargo subclasses
// (spec.md section 3). Corvette is carried for enum/table completeness
// only; per spec.md section 9 it carries no special balance weight.
type ShipClass int

const (
	ShipFighter ShipClass = iota
	ShipCorvette
	ShipFrigate
	ShipScout
	ShipRaider
	ShipDestroyer
	ShipCruiser
	ShipLightCruiser
	ShipHeavyCruiser
	ShipBattlecruiser
	ShipBattleship
	ShipDreadnought
	ShipSuperDreadnought
	ShipCarrier
	ShipSuperCarrier
	ShipETAC
	ShipTroopTransport
	ShipPlanetBreaker
	ShipClassCount
)

func (c ShipClass) String() string {
	names := [...]string{
		"Fighter", "Corvette", "Frigate", "Scout", "Raider", "Destroyer",
		"Cruiser", "LightCruiser", "HeavyCruiser", "Battlecruiser",
		"Battleship", "Dreadnought", "SuperDreadnought", "Carrier",
		"SuperCarrier", "ETAC", "TroopTransport", "PlanetBreaker",
	}
	if int(c) < 0 || int(c) >= len(names) {
		return "Unknown"
	}
	return names[c]
}

// IsCombatant reports whether this class has a meaningful attack stat
// and can be used to satisfy combat-capability validation.
func (c ShipClass) IsCombatant() bool {
	switch c {
	case ShipScout, ShipETAC, ShipTroopTransport:
		return false
	default:
		return true
	}
}

// IsExpansionOrAuxiliary reports whether this class can carry colonist
// cargo and found a colony.
func (c ShipClass) IsExpansionOrAuxiliary() bool {
	return c == ShipETAC || c == ShipTroopTransport
}

// CargoKind distinguishes what a ship's hold currently carries.
type CargoKind int

const (
	CargoNone CargoKind = iota
	CargoColonists
	CargoMarines
)

// Cargo is the optional payload a Ship carries.
type Cargo struct {
	Kind   CargoKind
	Amount int
}

// Ship is an atomic combatant or cargo unit. Stats are frozen at
// construction time (spec.md section 3); only CombatState mutates
// after commissioning.
type Ship struct {
	ID     id.ID
	Owner  id.ID
	Fleet  id.ID // or Nil if stationed as a fighter at a Colony
	Colony id.ID // set when this is a Fighter stationed at a colony instead of embarked on a carrier

	Class ShipClass
	State FacilityState // reuse Undamaged/Crippled/Destroyed

	// Stats frozen at construction.
	AS            int // attack strength
	DS            int // defence strength
	CommandCost   int
	CargoCapacity int
	WEPAtBuild    int

	Cargo            *Cargo
	AssignedCarrier  id.ID
	EmbarkedFighters []id.ID
}

func (s *Ship) Clone() *Ship {
	c := *s
	if s.Cargo != nil {
		cg := *s.Cargo
		c.Cargo = &cg
	}
	c.EmbarkedFighters = append([]id.ID(nil), s.EmbarkedFighters...)
	return &c
}

// GroundUnitClass enumerates ground-asset subclasses.
type GroundUnitClass int

const (
	GroundArmy GroundUnitClass = iota
	GroundMarine
	GroundBattery
	GroundPlanetaryShield
)

// GroundUnit is a ground asset at a Colony (or in a carrier's hold).
type GroundUnit struct {
	ID       id.ID
	Owner    id.ID
	Class    GroundUnitClass
	Location id.ID // Colony id, or a carrying Ship id
	OnCarrier bool
	AS       int
	DS       int
}

// FleetStatus is a Fleet's activity status (spec.md section 3).
type FleetStatus int

const (
	FleetActive FleetStatus = iota
	FleetReserve
	FleetMothballed
)

// FleetCommandKind is the order currently assigned to a Fleet.
type FleetCommandKind int

const (
	CmdNone FleetCommandKind = iota
	CmdHold
	CmdMove
	CmdPatrol
	CmdSeekHome
	CmdColonize
	CmdBombard
	CmdInvade
	CmdBlitz
	CmdSpyPlanet
	CmdSpySystem
	CmdHackStarbase
	CmdJoinFleet
	CmdRendezvous
	CmdSalvage
	CmdReserve
	CmdMothball
	CmdViewWorld
)

// StandingOrder persists across turns until replaced (spec.md section
// 4.3 Command phase "Standing-command settings").
type StandingOrder struct {
	Kind         FleetCommandKind
	TargetSystem id.ID
}

// Fleet is a movable grouping of ships at one System.
type Fleet struct {
	ID       id.ID
	Owner    id.ID
	Location id.ID // System id
	Status   FleetStatus

	Ships []id.ID // ordered member ship ids

	CurrentOrder  FleetCommandKind
	TargetSystem  id.ID
	TargetFleet   id.ID
	Priority      int

	Standing StandingOrder

	// PathCache is the precomputed shortest path (system ids, excluding
	// the current location) for an in-progress Move/Patrol/Rendezvous;
	// advanced one hop per Command phase.
	PathCache []id.ID
}

func (f *Fleet) Clone() *Fleet {
	c := *f
	c.Ships = append([]id.ID(nil), f.Ships...)
	c.PathCache = append([]id.ID(nil), f.PathCache...)
	return &c
}

func (f *Fleet) IsEmpty() bool { return len(f.Ships) == 0 }

// IsScoutOnly reports whether every member ship has class Scout — the
// unified "spy fleet" predicate spec.md's REDESIGN FLAGS section
// collapses the source's separate spy-scout entity into: a fleet whose
// every ship is a Scout, with no separate entity kind required.
func (f *Fleet) IsScoutOnly(st *State) bool {
	if len(f.Ships) == 0 {
		return false
	}
	for _, sid := range f.Ships {
		sh := st.Ships[sid]
		if sh == nil || sh.Class != ShipScout {
			return false
		}
	}
	return true
}
