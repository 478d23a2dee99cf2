package state

import (
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/greenm01/ec4x/internal/id"
)

// stateTables carries every id.Table's full slot/free-list state, which
// State itself keeps unexported (callers must go through State's
// mutation methods, never the raw tables). A reflection-based BSON
// codec cannot see unexported fields, so without this the generation
// counters a persisted checkpoint depends on for id validity would be
// silently lost on reload.
type stateTables struct {
	House    id.TableSnapshot `bson:"house"`
	System   id.TableSnapshot `bson:"system"`
	Lane     id.TableSnapshot `bson:"lane"`
	Colony   id.TableSnapshot `bson:"colony"`
	Neoria   id.TableSnapshot `bson:"neoria"`
	Kastra   id.TableSnapshot `bson:"kastra"`
	Fleet    id.TableSnapshot `bson:"fleet"`
	Ship     id.TableSnapshot `bson:"ship"`
	Ground   id.TableSnapshot `bson:"ground"`
	Project  id.TableSnapshot `bson:"project"`
	Repair   id.TableSnapshot `bson:"repair"`
	Transit  id.TableSnapshot `bson:"transit"`
	Effect   id.TableSnapshot `bson:"effect"`
	Relation id.TableSnapshot `bson:"relation"`
}

// stateDoc is State's BSON wire form: the exported entity/index maps
// verbatim (id.ID round-trips through MarshalBSONValue/
// UnmarshalBSONValue) plus the table snapshots State.MarshalBSON/
// UnmarshalBSON add back in.
type stateDoc struct {
	GameSeed uint64        `bson:"gameSeed"`
	Turn     int           `bson:"turn"`
	Phase    Phase         `bson:"phase"`
	Act      ActProgression `bson:"act"`
	Tables   stateTables   `bson:"tables"`

	Houses      map[id.ID]*House               `bson:"houses"`
	Systems     map[id.ID]*System              `bson:"systems"`
	Lanes       map[id.ID]*JumpLane            `bson:"lanes"`
	Colonies    map[id.ID]*Colony              `bson:"colonies"`
	Neoriae     map[id.ID]*Neoria              `bson:"neoriae"`
	Kastrai     map[id.ID]*Kastra              `bson:"kastrai"`
	Fleets      map[id.ID]*Fleet               `bson:"fleets"`
	Ships       map[id.ID]*Ship                `bson:"ships"`
	GroundUnits map[id.ID]*GroundUnit          `bson:"groundUnits"`
	Projects    map[id.ID]*ConstructionProject `bson:"projects"`
	Repairs     map[id.ID]*RepairProject       `bson:"repairs"`
	Transits    map[id.ID]*PopulationInTransit `bson:"transits"`
	Effects     map[id.ID]*OngoingEffect       `bson:"effects"`
	Relations   map[id.ID]*Relation            `bson:"relations"`

	ColonyBySystem  map[id.ID]id.ID   `bson:"colonyBySystem"`
	FleetsBySystem  map[id.ID][]id.ID `bson:"fleetsBySystem"`
	ColoniesByOwner map[id.ID][]id.ID `bson:"coloniesByOwner"`
	FleetsByOwner   map[id.ID][]id.ID `bson:"fleetsByOwner"`
	ShipsByFleet    map[id.ID][]id.ID `bson:"shipsByFleet"`
}

// MarshalBSON implements bson.Marshaler so internal/persistence/
// mongostore can store a State snapshot directly as a checkpoint
// document field.
func (s *State) MarshalBSON() ([]byte, error) {
	doc := stateDoc{
		GameSeed: s.GameSeed,
		Turn:     s.Turn,
		Phase:    s.Phase,
		Act:      s.Act,
		Tables: stateTables{
			House:    s.houseTbl.Snapshot(),
			System:   s.systemTbl.Snapshot(),
			Lane:     s.laneTbl.Snapshot(),
			Colony:   s.colonyTbl.Snapshot(),
			Neoria:   s.neoriaTbl.Snapshot(),
			Kastra:   s.kastraTbl.Snapshot(),
			Fleet:    s.fleetTbl.Snapshot(),
			Ship:     s.shipTbl.Snapshot(),
			Ground:   s.groundTbl.Snapshot(),
			Project:  s.projTbl.Snapshot(),
			Repair:   s.repairTbl.Snapshot(),
			Transit:  s.transitTbl.Snapshot(),
			Effect:   s.effectTbl.Snapshot(),
			Relation: s.relationTbl.Snapshot(),
		},
		Houses:      s.Houses,
		Systems:     s.Systems,
		Lanes:       s.Lanes,
		Colonies:    s.Colonies,
		Neoriae:     s.Neoriae,
		Kastrai:     s.Kastrai,
		Fleets:      s.Fleets,
		Ships:       s.Ships,
		GroundUnits: s.GroundUnits,
		Projects:    s.Projects,
		Repairs:     s.Repairs,
		Transits:    s.Transits,
		Effects:     s.Effects,
		Relations:   s.Relations,

		ColonyBySystem:  s.ColonyBySystem,
		FleetsBySystem:  s.FleetsBySystem,
		ColoniesByOwner: s.ColoniesByOwner,
		FleetsByOwner:   s.FleetsByOwner,
		ShipsByFleet:    s.ShipsByFleet,
	}
	return bson.Marshal(doc)
}

// UnmarshalBSON implements bson.Unmarshaler, the inverse of
// MarshalBSON.
func (s *State) UnmarshalBSON(data []byte) error {
	var doc stateDoc
	if err := bson.Unmarshal(data, &doc); err != nil {
		return err
	}

	*s = State{
		GameSeed: doc.GameSeed,
		Turn:     doc.Turn,
		Phase:    doc.Phase,
		Act:      doc.Act,

		houseTbl:    id.RestoreTable(doc.Tables.House),
		systemTbl:   id.RestoreTable(doc.Tables.System),
		laneTbl:     id.RestoreTable(doc.Tables.Lane),
		colonyTbl:   id.RestoreTable(doc.Tables.Colony),
		neoriaTbl:   id.RestoreTable(doc.Tables.Neoria),
		kastraTbl:   id.RestoreTable(doc.Tables.Kastra),
		fleetTbl:    id.RestoreTable(doc.Tables.Fleet),
		shipTbl:     id.RestoreTable(doc.Tables.Ship),
		groundTbl:   id.RestoreTable(doc.Tables.Ground),
		projTbl:     id.RestoreTable(doc.Tables.Project),
		repairTbl:   id.RestoreTable(doc.Tables.Repair),
		transitTbl:  id.RestoreTable(doc.Tables.Transit),
		effectTbl:   id.RestoreTable(doc.Tables.Effect),
		relationTbl: id.RestoreTable(doc.Tables.Relation),

		Houses:      nonNilHouses(doc.Houses),
		Systems:     nonNilSystems(doc.Systems),
		Lanes:       nonNilLanes(doc.Lanes),
		Colonies:    nonNilColonies(doc.Colonies),
		Neoriae:     nonNilNeoriae(doc.Neoriae),
		Kastrai:     nonNilKastrai(doc.Kastrai),
		Fleets:      nonNilFleets(doc.Fleets),
		Ships:       nonNilShips(doc.Ships),
		GroundUnits: nonNilGroundUnits(doc.GroundUnits),
		Projects:    nonNilProjects(doc.Projects),
		Repairs:     nonNilRepairs(doc.Repairs),
		Transits:    nonNilTransits(doc.Transits),
		Effects:     nonNilEffects(doc.Effects),
		Relations:   nonNilRelations(doc.Relations),

		ColonyBySystem:  nonNilColonyBySystem(doc.ColonyBySystem),
		FleetsBySystem:  nonNilIDSlice(doc.FleetsBySystem),
		ColoniesByOwner: nonNilIDSlice(doc.ColoniesByOwner),
		FleetsByOwner:   nonNilIDSlice(doc.FleetsByOwner),
		ShipsByFleet:    nonNilIDSlice(doc.ShipsByFleet),
	}
	return nil
}

// The nonNil* helpers guard against a checkpoint whose document simply
// omitted an empty map (BSON round-trips a nil Go map as a missing
// field, not an empty document), so every State field a caller ranges
// over is always non-nil after UnmarshalBSON, matching what New()
// guarantees.

func nonNilHouses(m map[id.ID]*House) map[id.ID]*House {
	if m == nil {
		return make(map[id.ID]*House)
	}
	return m
}

func nonNilSystems(m map[id.ID]*System) map[id.ID]*System {
	if m == nil {
		return make(map[id.ID]*System)
	}
	return m
}

func nonNilLanes(m map[id.ID]*JumpLane) map[id.ID]*JumpLane {
	if m == nil {
		return make(map[id.ID]*JumpLane)
	}
	return m
}

func nonNilColonies(m map[id.ID]*Colony) map[id.ID]*Colony {
	if m == nil {
		return make(map[id.ID]*Colony)
	}
	return m
}

func nonNilNeoriae(m map[id.ID]*Neoria) map[id.ID]*Neoria {
	if m == nil {
		return make(map[id.ID]*Neoria)
	}
	return m
}

func nonNilKastrai(m map[id.ID]*Kastra) map[id.ID]*Kastra {
	if m == nil {
		return make(map[id.ID]*Kastra)
	}
	return m
}

func nonNilFleets(m map[id.ID]*Fleet) map[id.ID]*Fleet {
	if m == nil {
		return make(map[id.ID]*Fleet)
	}
	return m
}

func nonNilShips(m map[id.ID]*Ship) map[id.ID]*Ship {
	if m == nil {
		return make(map[id.ID]*Ship)
	}
	return m
}

func nonNilGroundUnits(m map[id.ID]*GroundUnit) map[id.ID]*GroundUnit {
	if m == nil {
		return make(map[id.ID]*GroundUnit)
	}
	return m
}

func nonNilProjects(m map[id.ID]*ConstructionProject) map[id.ID]*ConstructionProject {
	if m == nil {
		return make(map[id.ID]*ConstructionProject)
	}
	return m
}

func nonNilRepairs(m map[id.ID]*RepairProject) map[id.ID]*RepairProject {
	if m == nil {
		return make(map[id.ID]*RepairProject)
	}
	return m
}

func nonNilTransits(m map[id.ID]*PopulationInTransit) map[id.ID]*PopulationInTransit {
	if m == nil {
		return make(map[id.ID]*PopulationInTransit)
	}
	return m
}

func nonNilEffects(m map[id.ID]*OngoingEffect) map[id.ID]*OngoingEffect {
	if m == nil {
		return make(map[id.ID]*OngoingEffect)
	}
	return m
}

func nonNilRelations(m map[id.ID]*Relation) map[id.ID]*Relation {
	if m == nil {
		return make(map[id.ID]*Relation)
	}
	return m
}

func nonNilColonyBySystem(m map[id.ID]id.ID) map[id.ID]id.ID {
	if m == nil {
		return make(map[id.ID]id.ID)
	}
	return m
}

func nonNilIDSlice(m map[id.ID][]id.ID) map[id.ID][]id.ID {
	if m == nil {
		return make(map[id.ID][]id.ID)
	}
	return m
}
