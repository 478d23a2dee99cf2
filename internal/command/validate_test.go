package command

import (
	"testing"

	"github.com/greenm01/ec4x/internal/config"
	"github.com/greenm01/ec4x/internal/id"
	"github.com/greenm01/ec4x/internal/starmap"
	"github.com/greenm01/ec4x/internal/state"
)

func newValidateFixture() (*state.State, *starmap.Graph) {
	st := state.New()
	st.AddSystem(&state.System{Hex: state.HexCoord{Q: 0, R: 0}, PlanetClass: state.Benign})
	return st, starmap.Build(st)
}

func TestValidateFleetCommandRejectsInvadeWithNoCombatSquadron(t *testing.T) {
	st, graph := newValidateFixture()
	sys := firstSystemID(st)
	attacker := st.AddHouse(&state.House{Name: "Attacker"})
	defender := st.AddHouse(&state.House{Name: "Defender"})
	st.AddColony(&state.Colony{Owner: defender, System: sys})
	st.AddRelation(&state.Relation{A: attacker, B: defender, State: state.RelationEnemy})

	f := st.AddFleet(&state.Fleet{Owner: attacker, Location: sys})
	st.AddShip(&state.Ship{Owner: attacker, Fleet: f, Class: state.ShipETAC, AS: 0})

	pkt := CommandPacket{House: attacker, FleetCommands: []FleetCommand{
		{Fleet: f, Kind: CmdInvade},
	}}

	out := Validate(st, graph, config.Default(), pkt)
	if len(out.AcceptedFleet) != 0 {
		t.Fatalf("expected Invade to be rejected, got accepted: %+v", out.AcceptedFleet)
	}
	rej := out.Rejected["fleet:0"]
	if len(rej) != 1 || rej[0].Kind != RejectCapabilityMissing {
		t.Fatalf("rejection = %+v, want RejectCapabilityMissing", rej)
	}
}

func TestValidateFleetCommandRejectsBlitzAgainstNonEnemyTarget(t *testing.T) {
	st, graph := newValidateFixture()
	sys := firstSystemID(st)
	attacker := st.AddHouse(&state.House{Name: "Attacker"})
	defender := st.AddHouse(&state.House{Name: "Defender"})
	st.AddColony(&state.Colony{Owner: defender, System: sys})
	// No Relation recorded: defaults to Neutral via relationState.

	f := st.AddFleet(&state.Fleet{Owner: attacker, Location: sys})
	st.AddShip(&state.Ship{Owner: attacker, Fleet: f, Class: state.ShipCruiser, AS: 7})

	pkt := CommandPacket{House: attacker, FleetCommands: []FleetCommand{
		{Fleet: f, Kind: CmdBlitz},
	}}

	out := Validate(st, graph, config.Default(), pkt)
	rej := out.Rejected["fleet:0"]
	if len(rej) != 1 || rej[0].Kind != RejectInvalidDiplomaticTarget {
		t.Fatalf("rejection = %+v, want RejectInvalidDiplomaticTarget", rej)
	}
}

func TestValidateFleetCommandAcceptsBombardAgainstEnemyWithCombatCapability(t *testing.T) {
	st, graph := newValidateFixture()
	sys := firstSystemID(st)
	attacker := st.AddHouse(&state.House{Name: "Attacker"})
	defender := st.AddHouse(&state.House{Name: "Defender"})
	st.AddColony(&state.Colony{Owner: defender, System: sys})
	st.AddRelation(&state.Relation{A: attacker, B: defender, State: state.RelationEnemy})

	f := st.AddFleet(&state.Fleet{Owner: attacker, Location: sys})
	st.AddShip(&state.Ship{Owner: attacker, Fleet: f, Class: state.ShipCruiser, AS: 7})

	pkt := CommandPacket{House: attacker, FleetCommands: []FleetCommand{
		{Fleet: f, Kind: CmdBombard},
	}}

	out := Validate(st, graph, config.Default(), pkt)
	if len(out.AcceptedFleet) != 1 {
		t.Fatalf("expected Bombard to be accepted, rejected: %+v", out.Rejected)
	}
}

func TestValidateFleetCommandRejectsColonizeWithNoColonistCargo(t *testing.T) {
	st, graph := newValidateFixture()
	sys := firstSystemID(st)
	house := st.AddHouse(&state.House{Name: "A"})

	f := st.AddFleet(&state.Fleet{Owner: house, Location: sys})
	st.AddShip(&state.Ship{Owner: house, Fleet: f, Class: state.ShipETAC, AS: 0,
		Cargo: &state.Cargo{Kind: state.CargoMarines, Amount: 3}})

	pkt := CommandPacket{House: house, FleetCommands: []FleetCommand{
		{Fleet: f, Kind: CmdColonize},
	}}

	out := Validate(st, graph, config.Default(), pkt)
	rej := out.Rejected["fleet:0"]
	if len(rej) != 1 || rej[0].Kind != RejectCapabilityMissing {
		t.Fatalf("rejection = %+v, want RejectCapabilityMissing", rej)
	}
}

func TestValidateFleetCommandAcceptsColonizeWithColonistCargo(t *testing.T) {
	st, graph := newValidateFixture()
	sys := firstSystemID(st)
	house := st.AddHouse(&state.House{Name: "A"})

	f := st.AddFleet(&state.Fleet{Owner: house, Location: sys})
	st.AddShip(&state.Ship{Owner: house, Fleet: f, Class: state.ShipTroopTransport, AS: 0,
		Cargo: &state.Cargo{Kind: state.CargoColonists, Amount: 5}})

	pkt := CommandPacket{House: house, FleetCommands: []FleetCommand{
		{Fleet: f, Kind: CmdColonize},
	}}

	out := Validate(st, graph, config.Default(), pkt)
	if len(out.AcceptedFleet) != 1 {
		t.Fatalf("expected Colonize to be accepted, rejected: %+v", out.Rejected)
	}
}

func TestValidateFleetCommandRejectsSpyCommandsForMixedFleet(t *testing.T) {
	st, graph := newValidateFixture()
	sys := firstSystemID(st)
	house := st.AddHouse(&state.House{Name: "A"})

	f := st.AddFleet(&state.Fleet{Owner: house, Location: sys})
	st.AddShip(&state.Ship{Owner: house, Fleet: f, Class: state.ShipScout})
	st.AddShip(&state.Ship{Owner: house, Fleet: f, Class: state.ShipFrigate, AS: 3})

	for _, kind := range []FleetCommandKind{CmdSpyPlanet, CmdSpySystem, CmdHackStarbase} {
		pkt := CommandPacket{House: house, FleetCommands: []FleetCommand{
			{Fleet: f, Kind: kind},
		}}
		out := Validate(st, graph, config.Default(), pkt)
		rej := out.Rejected["fleet:0"]
		if len(rej) != 1 || rej[0].Kind != RejectCapabilityMissing {
			t.Fatalf("kind %v: rejection = %+v, want RejectCapabilityMissing", kind, rej)
		}
	}
}

func TestValidateFleetCommandAcceptsSpySystemForScoutOnlyFleet(t *testing.T) {
	st, graph := newValidateFixture()
	sys := firstSystemID(st)
	house := st.AddHouse(&state.House{Name: "A"})

	f := st.AddFleet(&state.Fleet{Owner: house, Location: sys})
	st.AddShip(&state.Ship{Owner: house, Fleet: f, Class: state.ShipScout})

	pkt := CommandPacket{House: house, FleetCommands: []FleetCommand{
		{Fleet: f, Kind: CmdSpySystem},
	}}

	out := Validate(st, graph, config.Default(), pkt)
	if len(out.AcceptedFleet) != 1 {
		t.Fatalf("expected SpySystem to be accepted, rejected: %+v", out.Rejected)
	}
}

func TestValidateBuildCommandRejectsShipBelowRequiredCST(t *testing.T) {
	st, _ := newValidateFixture()
	sys := firstSystemID(st)
	house := st.AddHouse(&state.House{Name: "A"})
	c := &state.Colony{Owner: house, System: sys}
	cid := st.AddColony(c)
	st.AddNeoria(&state.Neoria{Colony: cid, Class: state.Shipyard, State: state.Undamaged})

	rules := config.Default()
	rej, bad := validateBuildCommand(st, rules, st.Houses[house], BuildCommand{
		Colony: cid, Kind: BuildShip, ShipClass: int(state.ShipDreadnought), Quantity: 1,
	})
	if !bad || rej.Kind != RejectTechGate {
		t.Fatalf("rejection = %+v, bad=%v, want RejectTechGate", rej, bad)
	}
}

func TestValidateBuildCommandRejectsFacilityNeedingShipyardAssist(t *testing.T) {
	st, _ := newValidateFixture()
	sys := firstSystemID(st)
	house := st.AddHouse(&state.House{Name: "A", Tech: [state.TechFieldCount]int{state.TechCST: 5}})
	cid := st.AddColony(&state.Colony{Owner: house, System: sys})

	rules := config.Default()
	rej, bad := validateBuildCommand(st, rules, st.Houses[house], BuildCommand{
		Colony: cid, Kind: BuildFacility, FacilityClass: int(state.Shipyard), Quantity: 1,
	})
	if !bad || rej.Kind != RejectTechGate {
		t.Fatalf("rejection = %+v, bad=%v, want RejectTechGate (no uncrippled shipyard present)", rej, bad)
	}
}

func TestValidateBuildCommandRejectsFighterCapacityExceeded(t *testing.T) {
	st, _ := newValidateFixture()
	sys := firstSystemID(st)
	house := st.AddHouse(&state.House{Name: "A", Tech: [state.TechFieldCount]int{state.TechCST: 8}})
	cid := st.AddColony(&state.Colony{Owner: house, System: sys})
	st.AddNeoria(&state.Neoria{Colony: cid, Class: state.Shipyard, State: state.Undamaged})

	rules := config.Default()
	rules.FighterColonyCapacity = 2
	for i := 0; i < 2; i++ {
		st.AddShip(&state.Ship{Owner: house, Colony: cid, Class: state.ShipFighter})
	}

	rej, bad := validateBuildCommand(st, rules, st.Houses[house], BuildCommand{
		Colony: cid, Kind: BuildShip, ShipClass: int(state.ShipFighter), Quantity: 1,
	})
	if !bad || rej.Kind != RejectCapacityExceeded {
		t.Fatalf("rejection = %+v, bad=%v, want RejectCapacityExceeded", rej, bad)
	}
}

func TestValidateBuildCommandRejectsHouseSquadronCapacityExceeded(t *testing.T) {
	st, _ := newValidateFixture()
	sys := firstSystemID(st)
	house := st.AddHouse(&state.House{Name: "A", Tech: [state.TechFieldCount]int{state.TechCST: 8}})
	cid := st.AddColony(&state.Colony{Owner: house, System: sys})
	st.AddNeoria(&state.Neoria{Colony: cid, Class: state.Shipyard, State: state.Undamaged})

	rules := config.Default()
	rules.HouseSquadronCapacity = 1
	f := st.AddFleet(&state.Fleet{Owner: house, Location: sys})
	st.AddShip(&state.Ship{Owner: house, Fleet: f, Class: state.ShipCruiser, AS: 7})

	rej, bad := validateBuildCommand(st, rules, st.Houses[house], BuildCommand{
		Colony: cid, Kind: BuildShip, ShipClass: int(state.ShipCruiser), Quantity: 1,
	})
	if !bad || rej.Kind != RejectCapacityExceeded {
		t.Fatalf("rejection = %+v, bad=%v, want RejectCapacityExceeded", rej, bad)
	}
}

func TestFleetIsScoutOnly(t *testing.T) {
	st := state.New()
	house := st.AddHouse(&state.House{Name: "A"})
	sys := st.AddSystem(&state.System{Hex: state.HexCoord{Q: 0, R: 0}, PlanetClass: state.Benign})

	empty := st.AddFleet(&state.Fleet{Owner: house, Location: sys})
	if st.Fleets[empty].IsScoutOnly(st) {
		t.Errorf("empty fleet reported scout-only")
	}

	mixed := st.AddFleet(&state.Fleet{Owner: house, Location: sys})
	st.AddShip(&state.Ship{Owner: house, Fleet: mixed, Class: state.ShipScout})
	st.AddShip(&state.Ship{Owner: house, Fleet: mixed, Class: state.ShipFrigate, AS: 3})
	if st.Fleets[mixed].IsScoutOnly(st) {
		t.Errorf("mixed fleet reported scout-only")
	}

	scouts := st.AddFleet(&state.Fleet{Owner: house, Location: sys})
	st.AddShip(&state.Ship{Owner: house, Fleet: scouts, Class: state.ShipScout})
	st.AddShip(&state.Ship{Owner: house, Fleet: scouts, Class: state.ShipScout})
	if !st.Fleets[scouts].IsScoutOnly(st) {
		t.Errorf("all-scout fleet not reported scout-only")
	}
}

func firstSystemID(st *state.State) id.ID {
	for sid := range st.Systems {
		return sid
	}
	return id.Nil
}
